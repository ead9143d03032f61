package models

// Room represents a bookable room. Capacity is not modeled.
type Room struct {
	ID string `json:"id"`
}
