package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate_backend/internal/shared/apperr"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperr.Invalid("price", "must be positive"), http.StatusBadRequest},
		{"duplicate email", apperr.ErrDuplicateEmail, http.StatusBadRequest},
		{"already present wrapped", fmt.Errorf("%w in favorites", apperr.ErrAlreadyPresent), http.StatusBadRequest},
		{"invalid credentials", apperr.ErrInvalidCredentials, http.StatusBadRequest},
		{"user not found", apperr.ErrUserNotFound, http.StatusNotFound},
		{"property not found", apperr.ErrPropertyNotFound, http.StatusNotFound},
		{"invalid token", apperr.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", apperr.ErrExpiredToken, http.StatusUnauthorized},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func serve(err error) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/x", func(c *gin.Context) { Error(c, err) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w
}

func TestError_ClientErrorKeepsMessage(t *testing.T) {
	w := serve(apperr.Invalid("title", "is required"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "title: is required", body["error"])
}

func TestError_ServerErrorIsGeneric(t *testing.T) {
	w := serve(errors.New("dial tcp 10.0.0.1:27017: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body["error"])
}
