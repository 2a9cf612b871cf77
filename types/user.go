package types

// User represents an account as returned by the Gamely backend.
// The backend is authoritative; this record is refetched whenever the
// session token changes and is never persisted client-side.
type User struct {
	// Username is the unique login name, also used as the lookup key
	// decoded from the session token.
	Username string `json:"username"`

	// FirstName is the user's given name.
	FirstName string `json:"first_name"`

	// LastName is the user's family name.
	LastName string `json:"last_name"`

	// Email is the user's email address.
	Email string `json:"email"`

	// IsAdmin reports whether the backend grants this user admin
	// operations (user listing and deletion). The client only uses it
	// to hide admin views; authorization is enforced server-side.
	IsAdmin bool `json:"is_admin"`

	// Likes holds the ids of games the user has liked.
	Likes []int `json:"likes"`
}

// Liked reports whether the user has liked the given game.
func (u User) Liked(gameID int) bool {
	for _, id := range u.Likes {
		if id == gameID {
			return true
		}
	}
	return false
}
