package types

import "time"

// Game is a catalog entry.
type Game struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	GenreHandle string  `json:"genre_handle"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	ReleaseDate string  `json:"release_date"`
	Developer   string  `json:"developer"`
}

// releaseDateLayouts are the wire formats the backend has been seen to use
// for release dates.
var releaseDateLayouts = []string{time.RFC3339, "2006-01-02"}

// ReleaseDateDisplay formats the release date like "Jan-02-2006". A date
// that fails to parse renders as-is.
func (g Game) ReleaseDateDisplay() string {
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, g.ReleaseDate); err == nil {
			return t.Format("Jan-02-2006")
		}
	}
	return g.ReleaseDate
}
