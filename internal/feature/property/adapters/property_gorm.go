// Package adapters provides the property store implementations for MongoDB and GORM.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"estate_backend/internal/feature/property/domain/entity"
	"estate_backend/internal/feature/property/usecase"
	relationusecase "estate_backend/internal/feature/relation/usecase"
	"estate_backend/internal/shared/apperr"
)

// PropertyModel is the GORM row for a property.
type PropertyModel struct {
	ID          string  `gorm:"primaryKey;type:varchar(36)"`
	OwnerID     string  `gorm:"type:varchar(36);index;not null"`
	Title       string  `gorm:"type:varchar(255);not null"`
	Description string  `gorm:"type:text;not null"`
	Price       float64 `gorm:"not null"`
	Address     string  `gorm:"type:varchar(255);not null"`
	City        string  `gorm:"type:varchar(255);not null"`
	Country     string  `gorm:"type:varchar(255);not null"`
	Image       string  `gorm:"type:text;not null"`
	Bedrooms    *int
	Bathrooms   *int
	Area        *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PropertyModel) TableName() string { return "properties" }

func toPropertyModel(p *entity.Property) *PropertyModel {
	return &PropertyModel{
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

func (m *PropertyModel) toEntity() entity.Property {
	return entity.Property{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		Address:     m.Address,
		City:        m.City,
		Country:     m.Country,
		Image:       m.Image,
		Bedrooms:    m.Bedrooms,
		Bathrooms:   m.Bathrooms,
		Area:        m.Area,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type propertyGorm struct {
	db *gorm.DB
}

var _ usecase.PropertyRepository = (*propertyGorm)(nil)
var _ relationusecase.PropertyRepository = (*propertyGorm)(nil)

// NewPropertyGorm creates a GORM backed property store.
func NewPropertyGorm(db *gorm.DB) *propertyGorm {
	return &propertyGorm{db: db}
}

func (r *propertyGorm) List(ctx context.Context) ([]entity.Property, error) {
	var rows []PropertyModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *propertyGorm) FindByID(ctx context.Context, id string) (*entity.Property, error) {
	var m PropertyModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrPropertyNotFound
		}
		return nil, err
	}
	p := m.toEntity()
	return &p, nil
}

func (r *propertyGorm) FindByIDs(ctx context.Context, ids []string) ([]entity.Property, error) {
	if len(ids) == 0 {
		return []entity.Property{}, nil
	}
	var rows []PropertyModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// Create assigns a UUID when p has none.
func (r *propertyGorm) Create(ctx context.Context, p *entity.Property) error {
	m := toPropertyModel(p)
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	p.ID = m.ID
	p.CreatedAt = m.CreatedAt
	p.UpdatedAt = m.UpdatedAt
	return nil
}

// Update overwrites every listing field. ID, owner and creation time are kept.
func (r *propertyGorm) Update(ctx context.Context, id string, p *entity.Property) (*entity.Property, error) {
	var out *entity.Property
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m PropertyModel
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrPropertyNotFound
			}
			return err
		}
		m.Title = p.Title
		m.Description = p.Description
		m.Price = p.Price
		m.Address = p.Address
		m.City = p.City
		m.Country = p.Country
		m.Image = p.Image
		m.Bedrooms = p.Bedrooms
		m.Bathrooms = p.Bathrooms
		m.Area = p.Area
		// Save writes nil pointers as NULL, clearing optional fields the input omitted.
		if err := tx.Save(&m).Error; err != nil {
			return err
		}
		e := m.toEntity()
		out = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *propertyGorm) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PropertyModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrPropertyNotFound
	}
	return nil
}

func toEntities(rows []PropertyModel) []entity.Property {
	out := make([]entity.Property, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out
}
