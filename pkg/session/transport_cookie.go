package session

import (
	"net/http"
	"time"

	"github.com/callmefred/thebestapp/pkg/cookie"
)

// CookieTransport carries the session token in an encrypted cookie.
type CookieTransport struct {
	cookieMgr  *cookie.Manager
	cookieName string
}

// NewCookieTransport creates a cookie-based transport.
func NewCookieTransport(cookieMgr *cookie.Manager, cookieName string) *CookieTransport {
	return &CookieTransport{cookieMgr: cookieMgr, cookieName: cookieName}
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	token, err := t.cookieMgr.GetEncrypted(r, t.cookieName)
	if err != nil {
		return "", ErrSessionNotFound
	}
	return token, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	return t.cookieMgr.SetEncrypted(w, t.cookieName, token,
		cookie.WithMaxAge(int(ttl.Seconds())),
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
	)
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	t.cookieMgr.Delete(w, t.cookieName)
	return nil
}
