package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	googleRevokeURL   = "https://accounts.google.com/o/oauth2/revoke"
)

// GoogleConfig holds the Google OAuth configuration.
type GoogleConfig struct {
	ClientID     string   `env:"GOOGLE_OAUTH_CLIENT_ID,required"`
	ClientSecret string   `env:"GOOGLE_OAUTH_CLIENT_SECRET,required"`
	RedirectURL  string   `env:"GOOGLE_OAUTH_REDIRECT_URL,required"`
	Scopes       []string `env:"GOOGLE_OAUTH_SCOPES" envSeparator:"," envDefault:"openid,https://www.googleapis.com/auth/userinfo.email,https://www.googleapis.com/auth/userinfo.profile"`
}

// GoogleProfile is the subset of the userinfo response the app consumes.
type GoogleProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleService maps Google identities onto local user records.
type GoogleService struct {
	storage      Storage
	oauth2Config *oauth2.Config
	httpClient   *http.Client
	logger       *slog.Logger
}

// GoogleOption configures the service during construction.
type GoogleOption func(*GoogleService)

// WithGoogleLogger sets a custom logger for the service.
func WithGoogleLogger(logger *slog.Logger) GoogleOption {
	return func(s *GoogleService) { s.logger = logger }
}

// WithGoogleHTTPClient overrides the HTTP client, used by tests to point the
// service at a stub provider.
func WithGoogleHTTPClient(client *http.Client) GoogleOption {
	return func(s *GoogleService) { s.httpClient = client }
}

// NewGoogleService creates the Google OAuth bridge.
func NewGoogleService(storage Storage, cfg GoogleConfig, opts ...GoogleOption) *GoogleService {
	s := &GoogleService{
		storage: storage,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     google.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateState returns a random state value for CSRF protection. The caller
// keeps it in the session and compares it on callback.
func GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// AuthURL builds the consent page URL for the given state.
func (s *GoogleService) AuthURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// Exchange trades the authorization code for a token.
func (s *GoogleService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	tok, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, ErrInvalidCode
	}
	return tok, nil
}

// Authenticate resolves the token to a local user: an account already linked
// to the Google ID is reused, otherwise a new pre-confirmed account is
// created with the provider's display name and email and no password.
func (s *GoogleService) Authenticate(ctx context.Context, accessToken string) (*User, error) {
	profile, err := s.FetchProfile(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.storage.GetUserByGoogleID(ctx, profile.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check google link: %w", err)
	}

	now := time.Now()
	googleID := profile.ID
	user = &User{
		Username:         profile.Name,
		Email:            NormalizeEmail(profile.Email),
		RoleID:           DefaultRoleID,
		EmailConfirmed:   true,
		EmailConfirmedOn: &now,
		GoogleID:         &googleID,
		CreatedAt:        now,
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user from google profile: %w", err)
	}

	s.logger.Info("created user from google profile",
		slog.Int64("user_id", user.ID),
		slog.String("component", "google_oauth"),
	)

	return user, nil
}

// FetchProfile retrieves the authenticated identity's profile.
func (s *GoogleService) FetchProfile(ctx context.Context, accessToken string) (*GoogleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileFetch, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: userinfo responded %d", ErrProfileFetch, resp.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileFetch, err)
	}
	if profile.ID == "" {
		return nil, fmt.Errorf("%w: empty profile id", ErrProfileFetch)
	}

	return &profile, nil
}

// Revoke invalidates the access token at the provider. One retry, then the
// caller degrades to local logout only.
func (s *GoogleService) Revoke(ctx context.Context, accessToken string) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if lastErr = s.revokeOnce(ctx, accessToken); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrRevokeFailed, lastErr)
}

func (s *GoogleService) revokeOnce(ctx context.Context, accessToken string) error {
	form := url.Values{"token": {accessToken}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleRevokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("revoke responded %d", resp.StatusCode)
	}
	return nil
}
