package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/callmefred/thebestapp/auth"
	"github.com/callmefred/thebestapp/pkg/logger"
)

// ConfirmEmail validates the emailed confirmation link. Invalid and expired
// tokens get the same message; a repeated confirmation is acknowledged
// without sending a second welcome email.
func (h *Handler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	user, err := h.accounts.ConfirmEmail(r.Context(), token)
	switch {
	case errors.Is(err, auth.ErrAlreadyConfirmed):
		h.flashRedirect(w, r, "info", "Account already confirmed. Please log in.", "/login")
		return
	case err != nil:
		h.flashRedirect(w, r, "error",
			"The confirmation link is invalid or has expired.", "/resend-verification")
		return
	}

	if err := h.mailer.SendWelcome(r.Context(), user.Email); err != nil {
		h.logger.Error("failed to send welcome email",
			logger.Error(err), logger.UserID(user.ID))
	}

	h.flashRedirect(w, r, "success", "Your email is confirmed. You can log in now.", "/login")
}

// ResendVerificationForm renders the resend form.
func (h *Handler) ResendVerificationForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "resend_verification", nil)
}

// ResendVerification re-mints and re-sends the confirmation email.
func (h *Handler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")

	token, err := h.accounts.ResendVerification(r.Context(), email)
	if err != nil {
		h.flashRedirect(w, r, "error", "That email address is not registered.", "/resend-verification")
		return
	}

	if err := h.mailer.SendVerification(r.Context(), auth.NormalizeEmail(email), token); err != nil {
		h.logger.Error("failed to resend verification email", logger.Error(err))
		h.flashRedirect(w, r, "error", "Could not send the email. Please try again.", "/resend-verification")
		return
	}

	h.flashRedirect(w, r, "success", "A new confirmation email is on its way.", "/login")
}
