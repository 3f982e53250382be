package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	relationentity "estate_backend/internal/feature/relation/domain/entity"
)

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()

	assert.NotPanics(t, func() { Register(reg) })
	assert.Panics(t, func() { Register(reg) }, "double registration should panic")
}

func TestRelationRecorder(t *testing.T) {
	before := testutil.ToFloat64(RelationOpsTotal.WithLabelValues("wishlist", "add", "ok"))

	RelationRecorder{}.RelationChanged(relationentity.Wishlist, "add", "ok")

	after := testutil.ToFloat64(RelationOpsTotal.WithLabelValues("wishlist", "add", "ok"))
	assert.Equal(t, before+1, after)
}

func TestNewServer(t *testing.T) {
	srv := NewServer(":0")

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ":0", srv.Addr)
}
