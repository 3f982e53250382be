// Package entity defines the domain models for the property feature.
package entity

import "time"

// Property is a listed real-estate object.
// It is referenced, never owned, by users' favorites, wishlist and residencies.
type Property struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Price       float64
	Address     string
	City        string
	Country     string
	Image       string
	Bedrooms    *int
	Bathrooms   *int
	Area        *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderByIDs arranges props in the order of ids.
// IDs without a matching property are skipped, so dangling references disappear from the result.
func OrderByIDs(ids []string, props []Property) []Property {
	byID := make(map[string]Property, len(props))
	for _, p := range props {
		byID[p.ID] = p
	}
	out := make([]Property, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
