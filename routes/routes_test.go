package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	InitializeRoutes(r)
	return r
}

func TestAvailableSlotsRouteTakesDateParam(t *testing.T) {
	r := newRouter()

	registered := false
	for _, route := range r.Routes() {
		if route.Method == http.MethodGet && route.Path == "/api/bookings/available-slots/:date" {
			registered = true
		}
	}
	if !registered {
		t.Fatalf("expected GET /api/bookings/available-slots/:date to be registered")
	}

	// A malformed date must reach the handler and be rejected there,
	// not fall through to a 404.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/available-slots/not-a-date", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %d", w.Code)
	}
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	r := newRouter()

	paths := []string{
		"/api/bookings",
		"/api/inventory",
		"/api/users",
		"/api/dashboard/overview",
	}
	for _, path := range paths {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("GET %s without a token: expected 401, got %d", path, w.Code)
		}
	}
}
