package dto

import (
	"time"

	"estate_backend/internal/feature/auth/domain/entity"
)

// ResidencyRes is one {id, title} entry of ownedResidencies.
type ResidencyRes struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// UserRes is the public view of a user. The password hash never appears.
// Favorites and Wishlist hold either ID arrays or expanded property objects,
// depending on which relation the endpoint touched.
type UserRes struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	OwnedResidencies []ResidencyRes `json:"ownedResidencies"`
	Favorites        any            `json:"favorites"`
	Wishlist         any            `json:"wishlist"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// NewUserRes renders u with every relation as plain IDs.
func NewUserRes(u *entity.User) UserRes {
	res := UserRes{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		OwnedResidencies: make([]ResidencyRes, 0, len(u.OwnedResidencies)),
		Favorites:        nonNil(u.Favorites),
		Wishlist:         nonNil(u.Wishlist),
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
	for _, r := range u.OwnedResidencies {
		res.OwnedResidencies = append(res.OwnedResidencies, ResidencyRes{ID: r.PropertyID, Title: r.Title})
	}
	return res
}

// NewUserResList renders users with NewUserRes.
func NewUserResList(users []entity.User) []UserRes {
	out := make([]UserRes, 0, len(users))
	for i := range users {
		out = append(out, NewUserRes(&users[i]))
	}
	return out
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
