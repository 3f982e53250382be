package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authentity "estate_backend/internal/feature/auth/domain/entity"
	"estate_backend/internal/feature/property/domain/entity"
	"estate_backend/internal/feature/property/usecase"
	"estate_backend/internal/shared/apperr"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// mockPropertyUsecase is a Func-field mock of PropertyUsecase.
type mockPropertyUsecase struct {
	ListFunc      func(ctx context.Context) ([]entity.Property, error)
	GetFunc       func(ctx context.Context, id string) (*entity.Property, error)
	AddFunc       func(ctx context.Context, ownerID string, in usecase.PropertyInput) (*usecase.Owner, error)
	UpdateFunc    func(ctx context.Context, id string, in usecase.PropertyInput) (*entity.Property, error)
	DeleteFunc    func(ctx context.Context, id string) error
	ListOwnedFunc func(ctx context.Context, userID string) ([]entity.Property, error)
}

func (m *mockPropertyUsecase) ListProperties(ctx context.Context) ([]entity.Property, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockPropertyUsecase) GetProperty(ctx context.Context, id string) (*entity.Property, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, apperr.ErrPropertyNotFound
}

func (m *mockPropertyUsecase) AddProperty(ctx context.Context, ownerID string, in usecase.PropertyInput) (*usecase.Owner, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, ownerID, in)
	}
	return nil, errors.New("not implemented")
}

func (m *mockPropertyUsecase) UpdateProperty(ctx context.Context, id string, in usecase.PropertyInput) (*entity.Property, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, in)
	}
	return nil, errors.New("not implemented")
}

func (m *mockPropertyUsecase) DeleteProperty(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockPropertyUsecase) ListOwnedProperties(ctx context.Context, userID string) ([]entity.Property, error) {
	if m.ListOwnedFunc != nil {
		return m.ListOwnedFunc(ctx, userID)
	}
	return nil, nil
}

func newRouter(h *PropertyHandler) *gin.Engine {
	r := gin.New()
	r.GET("/property", h.List)
	r.GET("/property/:id", h.Get)
	r.POST("/property/add-property/:id", h.Add)
	r.PUT("/property/:id", h.Update)
	r.DELETE("/property/:id", h.Delete)
	r.GET("/users/:userId/properties", h.ListOwned)
	return r
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validBody() gin.H {
	return gin.H{
		"title":   "A",
		"price":   100,
		"address": "1 Main St",
		"city":    "Pune",
		"country": "India",
		"image":   "https://img.example.com/a.jpg",
	}
}

func TestPropertyHandler_Add(t *testing.T) {
	var gotOwner, gotTitle string
	mock := &mockPropertyUsecase{
		AddFunc: func(ctx context.Context, ownerID string, in usecase.PropertyInput) (*usecase.Owner, error) {
			gotOwner, gotTitle = ownerID, in.Title()
			return &usecase.Owner{
				User:        &authentity.User{ID: ownerID, Name: "Ann", Password: "hash"},
				Residencies: []entity.Property{{ID: "p1", Title: in.Title()}},
			}, nil
		},
	}

	w := do(newRouter(NewPropertyHandler(mock)), http.MethodPost, "/property/add-property/U", validBody())

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "U", gotOwner)
	assert.Equal(t, "A", gotTitle)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "U", body["id"])
	assert.NotContains(t, body, "password")
	assert.Equal(t, []any{map[string]any{"id": "p1", "title": "A"}}, body["ownedResidencies"])
}

func TestPropertyHandler_AddRejectsBeforeUsecase(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(gin.H)
		want   string
	}{
		{"zero price", func(b gin.H) { b["price"] = 0 }, "price"},
		{"bad image", func(b gin.H) { b["image"] = "not a url" }, "image"},
		{"too many bedrooms", func(b gin.H) { b["bedrooms"] = 21 }, "bedrooms"},
		{"missing city", func(b gin.H) { delete(b, "city") }, "city"},
		{"price as text", func(b gin.H) { b["price"] = "cheap" }, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockPropertyUsecase{
				AddFunc: func(ctx context.Context, ownerID string, in usecase.PropertyInput) (*usecase.Owner, error) {
					t.Error("usecase must not be called for invalid input")
					return nil, nil
				},
			}
			body := validBody()
			tt.mutate(body)

			w := do(newRouter(NewPropertyHandler(mock)), http.MethodPost, "/property/add-property/U", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}

func TestPropertyHandler_AddUnknownOwner(t *testing.T) {
	mock := &mockPropertyUsecase{
		AddFunc: func(ctx context.Context, ownerID string, in usecase.PropertyInput) (*usecase.Owner, error) {
			return nil, apperr.ErrUserNotFound
		},
	}

	w := do(newRouter(NewPropertyHandler(mock)), http.MethodPost, "/property/add-property/nobody", validBody())

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"user not found"}`, w.Body.String())
}

func TestPropertyHandler_ListAndGet(t *testing.T) {
	beds := 2
	mock := &mockPropertyUsecase{
		ListFunc: func(ctx context.Context) ([]entity.Property, error) {
			return []entity.Property{{ID: "p1", Title: "A", Bedrooms: &beds}}, nil
		},
		GetFunc: func(ctx context.Context, id string) (*entity.Property, error) {
			if id == "p1" {
				return &entity.Property{ID: "p1", Title: "A"}, nil
			}
			return nil, apperr.ErrPropertyNotFound
		},
	}
	r := newRouter(NewPropertyHandler(mock))

	w := do(r, http.MethodGet, "/property", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, float64(2), list[0]["bedrooms"])

	w = do(r, http.MethodGet, "/property/p1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/property/p9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPropertyHandler_EmptyListIsArray(t *testing.T) {
	w := do(newRouter(NewPropertyHandler(&mockPropertyUsecase{})), http.MethodGet, "/property", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestPropertyHandler_Update(t *testing.T) {
	mock := &mockPropertyUsecase{
		UpdateFunc: func(ctx context.Context, id string, in usecase.PropertyInput) (*entity.Property, error) {
			return &entity.Property{ID: id, Title: in.Title()}, nil
		},
	}

	body := validBody()
	body["title"] = "B"
	w := do(newRouter(NewPropertyHandler(mock)), http.MethodPut, "/property/p1", body)

	require.Equal(t, http.StatusOK, w.Code)
	var res map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "p1", res["id"])
	assert.Equal(t, "B", res["title"])
}

func TestPropertyHandler_Delete(t *testing.T) {
	mock := &mockPropertyUsecase{
		DeleteFunc: func(ctx context.Context, id string) error {
			if id == "p1" {
				return nil
			}
			return apperr.ErrPropertyNotFound
		},
	}
	r := newRouter(NewPropertyHandler(mock))

	w := do(r, http.MethodDelete, "/property/p1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Deleted"}`, w.Body.String())

	w = do(r, http.MethodDelete, "/property/p2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPropertyHandler_ListOwned(t *testing.T) {
	mock := &mockPropertyUsecase{
		ListOwnedFunc: func(ctx context.Context, userID string) ([]entity.Property, error) {
			if userID != "U" {
				return nil, apperr.ErrUserNotFound
			}
			return []entity.Property{{ID: "p1"}}, nil
		},
	}
	r := newRouter(NewPropertyHandler(mock))

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/users/U/properties", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/users/X/properties", nil).Code)
}
