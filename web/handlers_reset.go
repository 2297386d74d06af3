package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/callmefred/thebestapp/auth"
	"github.com/callmefred/thebestapp/pkg/logger"
)

// RequestResetForm renders the forgot-password form.
func (h *Handler) RequestResetForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "request_reset", nil)
}

// RequestReset mints a reset token and emails the link. An unknown address
// is reported to the visitor.
func (h *Handler) RequestReset(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")

	req, err := h.accounts.ResetToken(r.Context(), email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			h.flashRedirect(w, r, "error", "That email address is not registered.", "/request-reset")
			return
		}
		h.logger.Error("failed to mint reset token", logger.Error(err))
		h.flashRedirect(w, r, "error", "Something went wrong. Please try again.", "/request-reset")
		return
	}

	if err := h.mailer.SendPasswordReset(r.Context(), req.Email, req.Token); err != nil {
		h.logger.Error("failed to send reset email", logger.Error(err))
		h.flashRedirect(w, r, "error", "Could not send the email. Please try again.", "/request-reset")
		return
	}

	h.flashRedirect(w, r, "success", "Check your inbox for the reset link.", "/login")
}

// ResetForm validates the emailed token and renders the new-password form.
func (h *Handler) ResetForm(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if _, err := h.accounts.ValidateResetToken(token); err != nil {
		h.flashRedirect(w, r, "error",
			"The reset link is invalid or has expired.", "/request-reset")
		return
	}

	h.render(w, r, http.StatusOK, "reset", map[string]any{"Token": token})
}

// Reset sets the new password.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	password := r.PostFormValue("password")

	if password == "" {
		h.flashRedirect(w, r, "error", "Please choose a password.", "/reset/"+token)
		return
	}

	if err := h.accounts.ResetPassword(r.Context(), token, password); err != nil {
		if errors.Is(err, auth.ErrTokenInvalid) {
			h.flashRedirect(w, r, "error",
				"The reset link is invalid or has expired.", "/request-reset")
			return
		}
		h.logger.Error("failed to reset password", logger.Error(err))
		h.flashRedirect(w, r, "error", "Something went wrong. Please try again.", "/request-reset")
		return
	}

	h.flashRedirect(w, r, "success", "Your password is updated. Log in with the new one.", "/login")
}
