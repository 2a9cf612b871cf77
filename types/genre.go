package types

// Genre groups games under a URL-friendly handle. Games is populated only
// on the genre detail endpoint.
type Genre struct {
	Handle      string `json:"handle"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Games       []Game `json:"games,omitempty"`
}
