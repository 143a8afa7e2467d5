package model

// Category is a user-owned transaction grouping label. Name uniqueness
// is enforced server-side only.
type Category struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}
