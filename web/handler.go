package web

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/callmefred/thebestapp/auth"
	"github.com/callmefred/thebestapp/mail"
	"github.com/callmefred/thebestapp/pkg/session"
	"github.com/callmefred/thebestapp/rbac"
)

// Session data keys used by the handlers.
const (
	signupEmailKey = "signup_email"
	oauthStateKey  = "oauth_state"
	googleTokenKey = "google_access_token"
)

// FeatureApp and FeatureAdminPanel mirror the seeded feature IDs.
const (
	FeatureApp        int64 = 1
	FeatureAdminPanel int64 = 2
)

// Handler carries the dependencies of all page handlers.
type Handler struct {
	accounts *auth.Service
	google   *auth.GoogleService
	mailer   *mail.Service
	sessions *session.Manager
	authz    rbac.Authorizer
	users    auth.Storage
	views    *renderer
	logger   *slog.Logger
}

// Option configures the handler during construction.
type Option func(*Handler)

// WithLogger sets a custom logger for the handlers.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) { h.logger = logger }
}

// NewHandler creates the web handler set.
func NewHandler(
	accounts *auth.Service,
	google *auth.GoogleService,
	mailer *mail.Service,
	sessions *session.Manager,
	authz rbac.Authorizer,
	users auth.Storage,
	opts ...Option,
) (*Handler, error) {
	views, err := newRenderer()
	if err != nil {
		return nil, err
	}

	h := &Handler{
		accounts: accounts,
		google:   google,
		mailer:   mailer,
		sessions: sessions,
		authz:    authz,
		users:    users,
		views:    views,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// render draws a page, draining flashes and resolving the signed-in user for
// the layout.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data map[string]any) {
	pd := pageData{
		Flashes: h.sessions.PopFlashes(r.Context(), r),
		Data:    data,
	}

	if userID, ok := session.UserIDFromContext(r.Context()); ok {
		if user, err := h.users.GetUserByID(r.Context(), userID); err == nil {
			pd.User = &viewUser{ID: user.ID, Username: user.Username, Email: user.Email}
		}
	}

	if err := h.views.render(w, status, page, pd); err != nil {
		h.logger.Error("failed to render page",
			slog.Any("error", err),
			slog.String("page", page),
		)
	}
}

// flashRedirect queues a notice and redirects.
func (h *Handler) flashRedirect(w http.ResponseWriter, r *http.Request, category, message, location string) {
	if err := h.sessions.Flash(r.Context(), w, r, category, message); err != nil {
		h.logger.Error("failed to queue flash", slog.Any("error", err))
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// safeNext keeps post-login redirects on this site: relative paths only,
// no scheme-relative URLs.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/app"
	}
	return next
}
