package model

// Mart represents a purchase location (a shop, market or web store).
type Mart struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DefaultMartID is the ID of the mart created on first run and after a reset.
const DefaultMartID int64 = 1

// UnknownMartName labels prices whose mart no longer exists.
const UnknownMartName = "unknown"

// MartName returns the name of the mart with the given ID, or fallback if no such mart exists.
func MartName(marts []Mart, id int64, fallback string) string {
	for _, m := range marts {
		if m.ID == id {
			return m.Name
		}
	}
	return fallback
}

// HasMart reports whether a mart with the given ID exists.
func HasMart(marts []Mart, id int64) bool {
	for _, m := range marts {
		if m.ID == id {
			return true
		}
	}
	return false
}
