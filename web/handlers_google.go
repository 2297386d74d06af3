package web

import (
	"net/http"

	"github.com/callmefred/thebestapp/auth"
	"github.com/callmefred/thebestapp/pkg/logger"
	"github.com/callmefred/thebestapp/pkg/session"
)

// GoogleLogin stores a one-time state value in the session and redirects to
// the Google consent page.
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := auth.GenerateState()
	if err != nil {
		h.logger.Error("failed to generate oauth state", logger.Error(err))
		h.flashRedirect(w, r, "error", "Something went wrong. Please try again.", "/login")
		return
	}

	sess, err := h.sessions.Ensure(r.Context(), w, r)
	if err != nil {
		h.logger.Error("failed to ensure session for oauth", logger.Error(err))
		h.flashRedirect(w, r, "error", "Something went wrong. Please try again.", "/login")
		return
	}
	sess.Set(oauthStateKey, state)
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		h.logger.Error("failed to persist oauth state", logger.Error(err))
		h.flashRedirect(w, r, "error", "Something went wrong. Please try again.", "/login")
		return
	}

	http.Redirect(w, r, h.google.AuthURL(state), http.StatusSeeOther)
}

// GoogleCallback completes the flow: state check, code exchange, profile
// lookup, local account resolution, session login.
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Get(r.Context(), r)
	if err != nil {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	want, _ := sess.GetString(oauthStateKey)
	got := r.URL.Query().Get("state")
	// State is one-time; drop it before any further checks.
	sess.Delete(oauthStateKey)
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		h.logger.Error("failed to drop oauth state", logger.Error(err))
	}

	if want == "" || got != want {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	tok, err := h.google.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		h.logger.Error("oauth code exchange failed", logger.Error(err))
		h.flashRedirect(w, r, "error", "Google sign-in failed. Please try again.", "/login")
		return
	}

	user, err := h.google.Authenticate(r.Context(), tok.AccessToken)
	if err != nil {
		h.logger.Error("oauth profile resolution failed", logger.Error(err))
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	authed, err := h.sessions.Authenticate(r.Context(), w, r, user.ID)
	if err != nil {
		h.logger.Error("failed to authenticate session", logger.Error(err))
		h.flashRedirect(w, r, "error", "Something went wrong. Please try again.", "/login")
		return
	}

	// Kept for revocation on logout.
	authed.Set(googleTokenKey, tok.AccessToken)
	if err := h.sessions.Save(r.Context(), authed); err != nil {
		h.logger.Error("failed to store access token", logger.Error(err))
	}

	http.Redirect(w, r, "/app", http.StatusSeeOther)
}

// GoogleLogout revokes the provider token, then destroys the local session.
// Revocation failure is logged and the logout proceeds anyway.
func (h *Handler) GoogleLogout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := session.FromContext(r.Context()); ok {
		if accessToken, ok := sess.GetString(googleTokenKey); ok && accessToken != "" {
			if err := h.google.Revoke(r.Context(), accessToken); err != nil {
				h.logger.Error("token revocation failed, logging out locally", logger.Error(err))
			}
		}
	}

	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		h.logger.Error("failed to destroy session", logger.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
