package web

import (
	"net/http"
	"net/url"

	"github.com/callmefred/thebestapp/pkg/session"
)

// RequireAuth redirects anonymous visitors to the login page, carrying the
// original path so login can send them back.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.UserIDFromContext(r.Context()); !ok {
			location := "/login?next=" + url.QueryEscape(r.URL.Path)
			h.flashRedirect(w, r, "warning", "Please log in to access this page.", location)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireFeature denies the request unless the signed-in user's role is
// granted the feature. The deny is explicit: a known role without the grant
// gets 403, never a silent pass.
func (h *Handler) RequireFeature(featureID int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := session.UserIDFromContext(r.Context())
			if !ok {
				location := "/login?next=" + url.QueryEscape(r.URL.Path)
				h.flashRedirect(w, r, "warning", "Please log in to access this page.", location)
				return
			}

			user, err := h.users.GetUserByID(r.Context(), userID)
			if err != nil {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			if err := h.authz.Can(user.RoleID, featureID); err != nil {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
