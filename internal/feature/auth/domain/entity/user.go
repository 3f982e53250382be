// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Residency is the {id, title} snapshot appended to a user when they list a property.
type Residency struct {
	PropertyID string
	Title      string
}

// User represents a registered user in the system.
type User struct {
	// ID is the opaque unique identifier assigned by the store.
	ID string

	Name string

	// Email is unique across all users and compared exactly as stored.
	Email string

	// Password is the salted hash of the user's password.
	// It never holds plaintext.
	Password string

	// OwnedResidencies lists the properties this user has listed, oldest first.
	OwnedResidencies []Residency

	// Favorites and Wishlist are independent sets of property IDs.
	Favorites []string
	Wishlist  []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ResidencyIDs returns the property IDs of the owned residencies in stored order.
func (u *User) ResidencyIDs() []string {
	ids := make([]string, 0, len(u.OwnedResidencies))
	for _, r := range u.OwnedResidencies {
		ids = append(ids, r.PropertyID)
	}
	return ids
}
