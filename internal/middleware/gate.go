package middleware

import (
	"net/http"
	"strings"

	"pizza-orders-be/internal/utils"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

var protectedPrefixes = []string{"/dashboard", "/orders"}

func isProtectedPage(path string) bool {
	for _, p := range protectedPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// SessionGate redirects page requests based on whether a session exists.
// Signed-in users skip the root and login pages; signed-out users are sent
// to login from any protected page.
func SessionGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		signedIn := utils.HasSession(r.Context())
		path := r.URL.Path

		switch {
		case path == "/" && signedIn:
			http.Redirect(w, r, DashboardPath, http.StatusFound)
		case path == LoginPath && signedIn:
			http.Redirect(w, r, DashboardPath, http.StatusFound)
		case isProtectedPage(path) && !signedIn:
			http.Redirect(w, r, LoginPath, http.StatusFound)
		default:
			next.ServeHTTP(w, r)
		}
	})
}
