package adapters

import (
	"time"

	"estate_backend/internal/feature/auth/domain/entity"
)

// UserModel is the GORM row for a user. Relations live in their own tables.
type UserModel struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Name      string `gorm:"type:varchar(255);not null"`
	Email     string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserModel) TableName() string { return "users" }

// ResidencyModel is one {id, title} snapshot of a property the user listed.
// Rows are read back in insertion order.
type ResidencyModel struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	UserID     string `gorm:"type:varchar(36);index;not null"`
	PropertyID string `gorm:"type:varchar(36);not null"`
	Title      string `gorm:"type:varchar(255);not null"`
	CreatedAt  time.Time
}

func (ResidencyModel) TableName() string { return "owned_residencies" }

// RelationModel is one member of a user's favorites or wishlist.
// The composite unique index is the unique-add primitive for the SQL backend.
type RelationModel struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	UserID     string `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_relation"`
	Kind       string `gorm:"type:varchar(16);not null;uniqueIndex:idx_user_relation"`
	PropertyID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_relation"`
	CreatedAt  time.Time
}

func (RelationModel) TableName() string { return "user_relations" }

// Models lists every table owned by the auth adapters, for AutoMigrate.
func Models() []any {
	return []any{&UserModel{}, &ResidencyModel{}, &RelationModel{}}
}

func toUserModel(u *entity.User) *UserModel {
	return &UserModel{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (m *UserModel) toEntity() *entity.User {
	return &entity.User{
		ID:               m.ID,
		Name:             m.Name,
		Email:            m.Email,
		Password:         m.Password,
		OwnedResidencies: []entity.Residency{},
		Favorites:        []string{},
		Wishlist:         []string{},
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
