// Package usecase maintains the favorites and wishlist relations between users and properties.
package usecase

import (
	"context"
	"fmt"
	"slices"

	authentity "estate_backend/internal/feature/auth/domain/entity"
	propentity "estate_backend/internal/feature/property/domain/entity"
	"estate_backend/internal/feature/relation/domain/entity"
	"estate_backend/internal/shared/apperr"
)

// UserRepository is the part of the user store the relations live in.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*authentity.User, error)

	// AddToRelation adds propertyID to the set with a store-level unique-add primitive.
	// added is false when the id was already present at write time.
	AddToRelation(ctx context.Context, userID string, kind entity.Kind, propertyID string) (added bool, err error)

	// RemoveFromRelation removes propertyID from the set; a missing member is not an error.
	RemoveFromRelation(ctx context.Context, userID string, kind entity.Kind, propertyID string) error
}

// PropertyRepository resolves stored property IDs into records.
type PropertyRepository interface {
	FindByIDs(ctx context.Context, ids []string) ([]propentity.Property, error)
}

// Recorder observes relation mutations.
type Recorder interface {
	RelationChanged(kind entity.Kind, op, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RelationChanged(entity.Kind, string, string) {}

// ExpandedUser is a user whose Kind relation has been resolved to property records.
type ExpandedUser struct {
	User       *authentity.User
	Kind       entity.Kind
	Properties []propentity.Property
}

// RelationUsecase implements add, remove and list for both relation kinds.
type RelationUsecase struct {
	users    UserRepository
	props    PropertyRepository
	recorder Recorder
}

// NewRelationUsecase creates a new RelationUsecase. A nil recorder disables metrics.
func NewRelationUsecase(users UserRepository, props PropertyRepository, recorder Recorder) *RelationUsecase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &RelationUsecase{users: users, props: props, recorder: recorder}
}

// IDs returns the stored property IDs of the given relation.
func IDs(u *authentity.User, kind entity.Kind) []string {
	switch kind {
	case entity.Favorites:
		return u.Favorites
	case entity.Wishlist:
		return u.Wishlist
	}
	return nil
}

// Add puts propertyID into the user's kind relation.
// It fails with ErrUserNotFound or ErrAlreadyPresent; the latter is never swallowed.
func (u *RelationUsecase) Add(ctx context.Context, userID string, kind entity.Kind, propertyID string) (*ExpandedUser, error) {
	if propertyID == "" {
		return nil, apperr.Invalid("propertyId", "is required")
	}
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if slices.Contains(IDs(user, kind), propertyID) {
		u.recorder.RelationChanged(kind, "add", "already_present")
		return nil, fmt.Errorf("%w in %s", apperr.ErrAlreadyPresent, kind)
	}

	added, err := u.users.AddToRelation(ctx, userID, kind, propertyID)
	if err != nil {
		u.recorder.RelationChanged(kind, "add", "error")
		return nil, err
	}
	if !added {
		// a concurrent request added it between the read and the write
		u.recorder.RelationChanged(kind, "add", "already_present")
		return nil, fmt.Errorf("%w in %s", apperr.ErrAlreadyPresent, kind)
	}
	u.recorder.RelationChanged(kind, "add", "ok")

	return u.expanded(ctx, userID, kind)
}

// Remove takes propertyID out of the user's kind relation. Removing a non-member succeeds.
func (u *RelationUsecase) Remove(ctx context.Context, userID string, kind entity.Kind, propertyID string) (*ExpandedUser, error) {
	if _, err := u.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	if err := u.users.RemoveFromRelation(ctx, userID, kind, propertyID); err != nil {
		u.recorder.RelationChanged(kind, "remove", "error")
		return nil, err
	}
	u.recorder.RelationChanged(kind, "remove", "ok")

	return u.expanded(ctx, userID, kind)
}

// List returns the kind relation of a user resolved to property records, in stored order.
func (u *RelationUsecase) List(ctx context.Context, userID string, kind entity.Kind) ([]propentity.Property, error) {
	e, err := u.expanded(ctx, userID, kind)
	if err != nil {
		return nil, err
	}
	return e.Properties, nil
}

// expanded reloads the user and resolves the relation at call time.
// Dangling IDs are omitted from the result.
func (u *RelationUsecase) expanded(ctx context.Context, userID string, kind entity.Kind) (*ExpandedUser, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := IDs(user, kind)
	out := &ExpandedUser{User: user, Kind: kind, Properties: []propentity.Property{}}
	if len(ids) == 0 {
		return out, nil
	}

	props, err := u.props.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", kind, err)
	}
	out.Properties = propentity.OrderByIDs(ids, props)
	return out, nil
}
