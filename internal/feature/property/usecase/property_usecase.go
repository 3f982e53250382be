// Package usecase implements property listing and the owner residency mirror.
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	authentity "estate_backend/internal/feature/auth/domain/entity"
	"estate_backend/internal/feature/property/domain/entity"
	"estate_backend/internal/shared/apperr"
)

// PropertyRepository abstracts the persistence layer for properties.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type PropertyRepository interface {
	List(ctx context.Context) ([]entity.Property, error)
	// FindByID returns apperr.ErrPropertyNotFound when absent.
	FindByID(ctx context.Context, id string) (*entity.Property, error)
	// FindByIDs returns the existing properties among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]entity.Property, error)
	// Create assigns the ID and timestamps.
	Create(ctx context.Context, p *entity.Property) error
	// Update replaces the mutable fields of the property with the given ID and returns the stored result.
	Update(ctx context.Context, id string, p *entity.Property) (*entity.Property, error)
	Delete(ctx context.Context, id string) error
}

// OwnerRepository is the part of the user store needed to mirror listings onto their owner.
type OwnerRepository interface {
	FindByID(ctx context.Context, id string) (*authentity.User, error)
	// AppendResidency adds a snapshot to the end of the user's owned residencies.
	AppendResidency(ctx context.Context, userID string, r authentity.Residency) error
}

// Owner is a user together with their owned residencies resolved to current property records.
type Owner struct {
	User        *authentity.User
	Residencies []entity.Property
}

// PropertyUsecase provides business logic for property operations.
type PropertyUsecase struct {
	props  PropertyRepository
	owners OwnerRepository
}

// NewPropertyUsecase creates a new PropertyUsecase.
func NewPropertyUsecase(props PropertyRepository, owners OwnerRepository) *PropertyUsecase {
	return &PropertyUsecase{props: props, owners: owners}
}

// ListProperties returns every property.
func (u *PropertyUsecase) ListProperties(ctx context.Context) ([]entity.Property, error) {
	return u.props.List(ctx)
}

// GetProperty returns one property.
func (u *PropertyUsecase) GetProperty(ctx context.Context, id string) (*entity.Property, error) {
	return u.props.FindByID(ctx, id)
}

// AddProperty creates a property owned by ownerID and mirrors it into the owner's residencies.
// The two writes are not atomic: if the mirror fails the property stays listed without an owner entry.
func (u *PropertyUsecase) AddProperty(ctx context.Context, ownerID string, in PropertyInput) (*Owner, error) {
	if !in.valid() {
		return nil, apperr.Invalid("", "property input was not validated")
	}
	if _, err := u.owners.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	p := in.toEntity()
	p.OwnerID = ownerID
	if err := u.props.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}

	if err := u.owners.AppendResidency(ctx, ownerID, authentity.Residency{PropertyID: p.ID, Title: p.Title}); err != nil {
		slog.ErrorContext(ctx, "property created without owner mirror",
			"property_id", p.ID, "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("append residency: %w", err)
	}

	return u.owner(ctx, ownerID)
}

// UpdateProperty replaces every listing field of an existing property.
func (u *PropertyUsecase) UpdateProperty(ctx context.Context, id string, in PropertyInput) (*entity.Property, error) {
	if !in.valid() {
		return nil, apperr.Invalid("", "property input was not validated")
	}
	return u.props.Update(ctx, id, in.toEntity())
}

// DeleteProperty removes a property. References held by users are left in place.
func (u *PropertyUsecase) DeleteProperty(ctx context.Context, id string) error {
	return u.props.Delete(ctx, id)
}

// ListOwnedProperties returns the properties a user has listed, oldest first.
func (u *PropertyUsecase) ListOwnedProperties(ctx context.Context, userID string) ([]entity.Property, error) {
	o, err := u.owner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return o.Residencies, nil
}

// owner loads a user and resolves their residencies. Deleted properties are omitted.
func (u *PropertyUsecase) owner(ctx context.Context, userID string) (*Owner, error) {
	user, err := u.owners.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := user.ResidencyIDs()
	if len(ids) == 0 {
		return &Owner{User: user, Residencies: []entity.Property{}}, nil
	}
	props, err := u.props.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve residencies: %w", err)
	}
	return &Owner{User: user, Residencies: entity.OrderByIDs(ids, props)}, nil
}

func (in PropertyInput) toEntity() *entity.Property {
	return &entity.Property{
		Title:       in.title,
		Description: in.description,
		Price:       in.price,
		Address:     in.address,
		City:        in.city,
		Country:     in.country,
		Image:       in.image,
		Bedrooms:    in.bedrooms,
		Bathrooms:   in.bathrooms,
		Area:        in.area,
	}
}
