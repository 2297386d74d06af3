package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/callmefred/thebestapp/auth"
	"github.com/callmefred/thebestapp/pkg/logger"
	"github.com/callmefred/thebestapp/pkg/session"
)

// Home renders the landing page, or sends signed-in users to the app.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	if _, ok := session.UserIDFromContext(r.Context()); ok {
		http.Redirect(w, r, "/app", http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, "home", nil)
}

// App renders the workspace page.
func (h *Handler) App(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "app", nil)
}

// Admin renders the admin panel.
func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "admin", nil)
}

// SignupForm renders the registration form.
func (h *Handler) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "signup", nil)
}

// Signup registers a new account and sends the verification email. A mail
// delivery failure is logged but the signup still succeeds; the interstitial
// offers a resend.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	if username == "" || email == "" || password == "" {
		h.flashRedirect(w, r, "error", "All fields are required.", "/signup")
		return
	}

	user, err := h.accounts.Register(r.Context(), username, email, password)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			h.flashRedirect(w, r, "error", "That email or username is already registered.", "/signup")
			return
		}
		h.logger.Error("signup failed", logger.Error(err))
		h.flashRedirect(w, r, "error", "Something went wrong. Please try again.", "/signup")
		return
	}

	token, err := h.accounts.VerificationToken(user.Email)
	if err == nil {
		err = h.mailer.SendVerification(r.Context(), user.Email, token)
	}
	if err != nil {
		h.logger.Error("failed to send verification email", logger.Error(err))
	}

	sess, err := h.sessions.Ensure(r.Context(), w, r)
	if err == nil {
		sess.Set(signupEmailKey, user.Email)
		if err := h.sessions.Save(r.Context(), sess); err != nil {
			h.logger.Error("failed to stash signup email", logger.Error(err))
		}
	}

	http.Redirect(w, r, "/check-email", http.StatusSeeOther)
}

// CheckEmail renders the post-signup interstitial. Visitors with no pending
// signup go back to the form.
func (h *Handler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}
	email, ok := sess.GetString(signupEmailKey)
	if !ok || email == "" {
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, "check_email", map[string]any{"Email": email})
}

// LoginForm renders the login form.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login", map[string]any{
		"Next": r.URL.Query().Get("next"),
	})
}

// Login verifies credentials and establishes an authenticated session. The
// failure message never says whether the address exists; an unconfirmed
// email gets its own notice.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	next := r.URL.Query().Get("next")

	back := "/login"
	if next != "" {
		back = "/login?next=" + url.QueryEscape(next)
	}

	user, err := h.accounts.Authenticate(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailNotConfirmed) {
			h.flashRedirect(w, r, "warning",
				"Please confirm your email address first. Check your inbox or resend the email.", "/resend-verification")
			return
		}
		h.flashRedirect(w, r, "error", "Invalid email or password.", back)
		return
	}

	if _, err := h.sessions.Authenticate(r.Context(), w, r, user.ID); err != nil {
		h.logger.Error("failed to authenticate session", logger.Error(err))
		h.flashRedirect(w, r, "error", "Something went wrong. Please try again.", back)
		return
	}

	http.Redirect(w, r, safeNext(next), http.StatusSeeOther)
}

// Logout destroys the session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		h.logger.Error("failed to destroy session", logger.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ClearSession drops all data from the current session without logging the
// visitor out.
func (h *Handler) ClearSession(w http.ResponseWriter, r *http.Request) {
	if sess, ok := session.FromContext(r.Context()); ok {
		sess.Clear()
		if err := h.sessions.Save(r.Context(), sess); err != nil {
			h.logger.Error("failed to clear session", logger.Error(err))
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// NotFound renders the 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "not_found", nil)
}
