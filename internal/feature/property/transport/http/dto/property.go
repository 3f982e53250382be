// Package dto defines the JSON shapes of the property endpoints.
package dto

import (
	"time"

	"estate_backend/internal/feature/property/domain/entity"
	"estate_backend/internal/feature/property/usecase"
)

// PropertyReq is the body of add-property and update.
// Validation happens in usecase.ParsePropertyInput, not in binding tags.
type PropertyReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	Country     string   `json:"country"`
	Image       string   `json:"image"`
	Bedrooms    *int     `json:"bedrooms"`
	Bathrooms   *int     `json:"bathrooms"`
	Area        *float64 `json:"area"`
}

// Raw converts the request into the usecase's unvalidated input.
func (r PropertyReq) Raw() usecase.RawPropertyInput {
	return usecase.RawPropertyInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Address:     r.Address,
		City:        r.City,
		Country:     r.Country,
		Image:       r.Image,
		Bedrooms:    r.Bedrooms,
		Bathrooms:   r.Bathrooms,
		Area:        r.Area,
	}
}

// PropertyRes is the public view of a property.
type PropertyRes struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Image       string    `json:"image"`
	Bedrooms    *int      `json:"bedrooms,omitempty"`
	Bathrooms   *int      `json:"bathrooms,omitempty"`
	Area        *float64  `json:"area,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewPropertyRes(p *entity.Property) PropertyRes {
	return PropertyRes{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Address:     p.Address,
		City:        p.City,
		Country:     p.Country,
		Image:       p.Image,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		Area:        p.Area,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewPropertyResList never returns nil, so an empty list encodes as [].
func NewPropertyResList(props []entity.Property) []PropertyRes {
	out := make([]PropertyRes, 0, len(props))
	for i := range props {
		out = append(out, NewPropertyRes(&props[i]))
	}
	return out
}
