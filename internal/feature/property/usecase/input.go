package usecase

import (
	"fmt"
	"net/url"
	"strings"

	"estate_backend/internal/shared/apperr"
)

// Bounds for the optional numeric fields of a listing.
const (
	MaxBedrooms  = 20
	MaxBathrooms = 10
	MaxArea      = 10000
)

// RawPropertyInput is the loosely typed payload as received from a client.
// It becomes a PropertyInput only through ParsePropertyInput.
type RawPropertyInput struct {
	Title       string
	Description string
	Price       *float64
	Address     string
	City        string
	Country     string
	Image       string
	Bedrooms    *int
	Bathrooms   *int
	Area        *float64
}

// PropertyInput holds listing fields that passed validation.
type PropertyInput struct {
	title       string
	description string
	price       float64
	address     string
	city        string
	country     string
	image       string
	bedrooms    *int
	bathrooms   *int
	area        *float64
}

// ParsePropertyInput validates raw and returns the first violation as an apperr.ValidationError.
func ParsePropertyInput(raw RawPropertyInput) (PropertyInput, error) {
	in := PropertyInput{
		title:       strings.TrimSpace(raw.Title),
		description: strings.TrimSpace(raw.Description),
		address:     strings.TrimSpace(raw.Address),
		city:        strings.TrimSpace(raw.City),
		country:     strings.TrimSpace(raw.Country),
		image:       strings.TrimSpace(raw.Image),
		bedrooms:    raw.Bedrooms,
		bathrooms:   raw.Bathrooms,
		area:        raw.Area,
	}

	required := []struct {
		field, value string
	}{
		{"title", in.title},
		{"address", in.address},
		{"city", in.city},
		{"country", in.country},
		{"image", in.image},
	}
	for _, r := range required {
		if r.value == "" {
			return PropertyInput{}, apperr.Invalid(r.field, "is required")
		}
	}

	if raw.Price == nil || *raw.Price <= 0 {
		return PropertyInput{}, apperr.Invalid("price", "must be greater than 0")
	}
	in.price = *raw.Price

	if u, err := url.ParseRequestURI(in.image); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return PropertyInput{}, apperr.Invalid("image", "must be a valid http(s) URL")
	}

	if in.bedrooms != nil && (*in.bedrooms < 0 || *in.bedrooms > MaxBedrooms) {
		return PropertyInput{}, apperr.Invalid("bedrooms", fmt.Sprintf("must be between 0 and %d", MaxBedrooms))
	}
	if in.bathrooms != nil && (*in.bathrooms < 0 || *in.bathrooms > MaxBathrooms) {
		return PropertyInput{}, apperr.Invalid("bathrooms", fmt.Sprintf("must be between 0 and %d", MaxBathrooms))
	}
	if in.area != nil && (*in.area < 0 || *in.area > MaxArea) {
		return PropertyInput{}, apperr.Invalid("area", fmt.Sprintf("must be between 0 and %d", MaxArea))
	}

	return in, nil
}

// Title returns the validated title.
func (in PropertyInput) Title() string { return in.title }

// valid reports whether in came out of ParsePropertyInput.
func (in PropertyInput) valid() bool { return in.price > 0 }
