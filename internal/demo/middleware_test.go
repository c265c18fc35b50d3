package demo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newDemoRouter(enabled bool) *gin.Engine {
	m := NewMiddleware(enabled)
	router := gin.New()
	router.Use(m.Handler())
	ok := func(c *gin.Context) { c.String(http.StatusOK, "OK") }
	router.Any("/api/catalog", ok)
	router.POST("/api/users/login", ok)
	return router
}

func TestNewMiddleware(t *testing.T) {
	if !NewMiddleware(true).IsEnabled() {
		t.Error("Expected middleware to be enabled")
	}
	if NewMiddleware(false).IsEnabled() {
		t.Error("Expected middleware to be disabled")
	}
}

func TestMiddleware_Handler(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		method  string
		path    string
		want    int
	}{
		{"allows GET", true, http.MethodGet, "/api/catalog", http.StatusOK},
		{"allows HEAD", true, http.MethodHead, "/api/catalog", http.StatusOK},
		{"allows OPTIONS", true, http.MethodOptions, "/api/catalog", http.StatusOK},
		{"blocks POST", true, http.MethodPost, "/api/catalog", http.StatusForbidden},
		{"blocks PUT", true, http.MethodPut, "/api/catalog", http.StatusForbidden},
		{"blocks PATCH", true, http.MethodPatch, "/api/catalog", http.StatusForbidden},
		{"blocks DELETE", true, http.MethodDelete, "/api/catalog", http.StatusForbidden},
		{"allows login", true, http.MethodPost, "/api/users/login", http.StatusOK},
		{"disabled allows writes", false, http.MethodPost, "/api/catalog", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newDemoRouter(tt.enabled).ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			if w.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestMiddleware_BlockedResponse(t *testing.T) {
	w := httptest.NewRecorder()
	newDemoRouter(true).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/catalog", nil))

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected JSON body, got %q", w.Body.String())
	}
	if body["demo_mode"] != true {
		t.Errorf("Expected demo_mode true, got %v", body["demo_mode"])
	}
	if body["code"] != "demo_mode" {
		t.Errorf("Expected code demo_mode, got %v", body["code"])
	}
}

func TestMiddleware_InjectContext(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		m := NewMiddleware(enabled)
		router := gin.New()
		router.Use(m.InjectContext())

		var got any
		router.GET("/", func(c *gin.Context) {
			got, _ = c.Get(ContextKeyDemoMode)
			c.Status(http.StatusOK)
		})
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		if got != enabled {
			t.Errorf("Expected demo_mode %v in context, got %v", enabled, got)
		}
	}
}
