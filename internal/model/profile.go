package model

// Profile holds the authenticated user's account details. The backend
// never returns the password.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ProfileUpdate is the PATCH body for profile edits. Password is
// omitted entirely when unchanged so the backend keeps the current one.
type ProfileUpdate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}
