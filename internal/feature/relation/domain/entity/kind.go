// Package entity defines the relation kinds a user keeps towards properties.
package entity

// Kind names one of the user-to-property relations.
type Kind string

const (
	Favorites Kind = "favorites"
	Wishlist  Kind = "wishlist"
)

// Kinds lists every relation, in route order.
var Kinds = []Kind{Favorites, Wishlist}

func (k Kind) String() string { return string(k) }
