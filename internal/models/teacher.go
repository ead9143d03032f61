package models

// Teacher represents an instructor record supplied by the caller.
type Teacher struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}
