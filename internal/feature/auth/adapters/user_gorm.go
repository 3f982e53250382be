// Package adapters provides the user store implementations for MongoDB and GORM.
package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"estate_backend/internal/feature/auth/domain/entity"
	"estate_backend/internal/feature/auth/usecase"
	propertyusecase "estate_backend/internal/feature/property/usecase"
	relationentity "estate_backend/internal/feature/relation/domain/entity"
	relationusecase "estate_backend/internal/feature/relation/usecase"
	"estate_backend/internal/shared/apperr"
)

// userGorm is the relational implementation of the user store.
// The *gorm.DB must be opened with TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
type userGorm struct {
	db *gorm.DB
}

var _ usecase.UserRepository = (*userGorm)(nil)
var _ relationusecase.UserRepository = (*userGorm)(nil)
var _ propertyusecase.OwnerRepository = (*userGorm)(nil)

// NewUserGorm creates a GORM backed user store.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create inserts the user and assigns a UUID.
// It returns usecase.ErrEmailAlreadyExists when the unique email index rejects the row.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	m := toUserModel(u)
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	u.ID = m.ID
	u.CreatedAt = m.CreatedAt
	u.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByEmail matches the email exactly.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return r.hydrate(ctx, &m)
}

func (r *userGorm) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return r.hydrate(ctx, &m)
}

// List returns every user, oldest first, with relations loaded.
func (r *userGorm) List(ctx context.Context) ([]entity.User, error) {
	var rows []UserModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.User, 0, len(rows))
	for i := range rows {
		u, err := r.hydrate(ctx, &rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, nil
}

// AddToRelation inserts a membership row. A unique violation means the member already exists.
func (r *userGorm) AddToRelation(ctx context.Context, userID string, kind relationentity.Kind, propertyID string) (bool, error) {
	if err := validPropertyID(propertyID); err != nil {
		return false, err
	}
	row := &RelationModel{UserID: userID, Kind: kind.String(), PropertyID: propertyID}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// RemoveFromRelation deletes the row if present. An id that is not a UUID can never be a member.
func (r *userGorm) RemoveFromRelation(ctx context.Context, userID string, kind relationentity.Kind, propertyID string) error {
	if validPropertyID(propertyID) != nil {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND property_id = ?", userID, kind.String(), propertyID).
		Delete(&RelationModel{}).Error
}

// AppendResidency records a listed property at the end of the owner's residencies.
func (r *userGorm) AppendResidency(ctx context.Context, userID string, res entity.Residency) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&UserModel{}).Where("id = ?", userID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return usecase.ErrUserNotFound
		}
		return tx.Create(&ResidencyModel{UserID: userID, PropertyID: res.PropertyID, Title: res.Title}).Error
	})
}

// hydrate loads residencies and relation members in insertion order.
func (r *userGorm) hydrate(ctx context.Context, m *UserModel) (*entity.User, error) {
	u := m.toEntity()

	var residencies []ResidencyModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", m.ID).Order("id ASC").Find(&residencies).Error; err != nil {
		return nil, fmt.Errorf("load residencies: %w", err)
	}
	for _, res := range residencies {
		u.OwnedResidencies = append(u.OwnedResidencies, entity.Residency{PropertyID: res.PropertyID, Title: res.Title})
	}

	var members []RelationModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", m.ID).Order("id ASC").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("load relations: %w", err)
	}
	for _, rel := range members {
		switch relationentity.Kind(rel.Kind) {
		case relationentity.Favorites:
			u.Favorites = append(u.Favorites, rel.PropertyID)
		case relationentity.Wishlist:
			u.Wishlist = append(u.Wishlist, rel.PropertyID)
		}
	}
	return u, nil
}

func validPropertyID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.Invalid("propertyId", "is not a valid id")
	}
	return nil
}
