package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dstrand/accountd/internal/ctxkeys"
	"github.com/dstrand/accountd/internal/model"
)

func TestSafeNext(t *testing.T) {
	tests := []struct {
		name string
		next string
		want bool
	}{
		{"empty", "", false},
		{"relative path", "/account", true},
		{"path with query", "/account/edit?tab=1", true},
		{"absolute url", "https://evil.example/", false},
		{"missing leading slash", "account", false},
		{"protocol relative", "//evil.example/", false},
		{"backslash trick", "/\\evil.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeNext(tt.next))
		})
	}
}

func TestRequireAuthAnonymousRead(t *testing.T) {
	handler := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/account/edit?tab=1", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2Faccount%2Fedit%3Ftab%3D1", rec.Header().Get("Location"))
}

func TestRequireAuthAnonymousWrite(t *testing.T) {
	handler := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodPost, "/account/delete", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthAuthenticated(t *testing.T) {
	called := false
	handler := RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{ID: "u1"}))
	handler(httptest.NewRecorder(), req)

	assert.True(t, called)
}

func TestRequireGuest(t *testing.T) {
	called := false
	handler := RequireGuest(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	handler(httptest.NewRecorder(), req)
	assert.True(t, called)

	req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{ID: "u1"}))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}
