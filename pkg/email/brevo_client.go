package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type brevoClient struct {
	httpClient *http.Client
	config     Config
}

// brevoRequest is the wire format of the Brevo transactional email endpoint.
type brevoRequest struct {
	Sender      brevoParty   `json:"sender"`
	To          []brevoParty `json:"to"`
	Subject     string       `json:"subject"`
	HTMLContent string       `json:"htmlContent"`
}

type brevoParty struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// NewBrevoClient creates a Brevo-backed email sender. The API key and sender
// identity are required so a misconfigured deployment fails at startup
// instead of silently dropping mail.
func NewBrevoClient(cfg Config) (EmailSender, error) {
	if cfg.BrevoAPIKey == "" {
		return nil, fmt.Errorf("%w: BrevoAPIKey is required", ErrInvalidConfig)
	}
	if cfg.BrevoURL == "" {
		return nil, fmt.Errorf("%w: BrevoURL is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" || !emailRegex.MatchString(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}

	return &brevoClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		config:     cfg,
	}, nil
}

// MustNewBrevoClient creates a Brevo client that panics on invalid config.
func MustNewBrevoClient(cfg Config) EmailSender {
	client, err := NewBrevoClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// SendEmail posts the message to the Brevo API. The API answers 201 Created
// on success; anything else is treated as a send failure.
func (c *brevoClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(brevoRequest{
		Sender:      brevoParty{Name: c.config.SenderName, Email: c.config.SenderEmail},
		To:          []brevoParty{{Email: params.SendTo}},
		Subject:     params.Subject,
		HTMLContent: params.BodyHTML,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BrevoURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
	}
	req.Header.Set("api-key", c.config.BrevoAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: brevo responded %d: %s", ErrFailedToSendEmail, resp.StatusCode, detail)
	}

	return nil
}
