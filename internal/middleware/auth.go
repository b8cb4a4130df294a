package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dstrand/accountd/internal/ctxkeys"
	"github.com/dstrand/accountd/internal/service"
)

// AuthMiddleware resolves the session cookie and adds the bound user to the
// request context. Anonymous requests continue without a user.
func AuthMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := authService.Current(r)
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			// The password hash has no business in request handling.
			user.PasswordHash = ""

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth guards operations that need an authenticated caller. Safe reads
// are redirected to login with the intended destination in the next
// parameter; state-changing requests are refused outright.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
				return
			}
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// RequireGuest redirects authenticated visitors to the landing page.
func RequireGuest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// SafeNext reports whether a post-login redirect target is a same-origin
// relative path. Anything else is discarded by the caller.
func SafeNext(next string) bool {
	if next == "" || !strings.HasPrefix(next, "/") {
		return false
	}
	// Protocol-relative URLs ("//evil.com") and backslash tricks point
	// off-origin.
	if strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return false
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return false
	}
	return true
}

// WithURLPath stores the request path in context for the page layer.
func WithURLPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := ctxkeys.WithURLPath(r.Context(), r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
