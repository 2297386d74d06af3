package mail

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/callmefred/thebestapp/pkg/email"
)

// Service composes and dispatches account emails.
type Service struct {
	sender email.EmailSender
	cfg    Config
	logger *slog.Logger
}

// Option configures the service during construction.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService creates the mail service.
func NewService(sender email.EmailSender, cfg Config, opts ...Option) *Service {
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	s := &Service{
		sender: sender,
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ConfirmURL returns the link embedded in verification emails.
func (s *Service) ConfirmURL(token string) string {
	return s.cfg.BaseURL + "/confirm_email/" + token
}

// ResetURL returns the link embedded in password reset emails.
func (s *Service) ResetURL(token string) string {
	return s.cfg.BaseURL + "/reset/" + token
}

// SendVerification emails a confirmation link to the recipient.
func (s *Service) SendVerification(ctx context.Context, recipient, token string) error {
	body := fmt.Sprintf(
		"Hi there!<br><br>Please verify your email address for %s.<br><br>"+
			"Click on the following link to verify: <a href=%q>%s</a><br><br>"+
			"If it wasn't you, please ignore this message.<br><br>"+
			"Best,<br><br>Frederick,<br>%s",
		s.cfg.AppName, s.ConfirmURL(token), s.ConfirmURL(token), s.cfg.AppName,
	)

	return s.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   recipient,
		Subject:  "Email Verification Request",
		BodyHTML: body,
	})
}

// SendPasswordReset emails a reset link to the recipient.
func (s *Service) SendPasswordReset(ctx context.Context, recipient, token string) error {
	body := fmt.Sprintf(
		"Hi there!<br><br>You have requested to reset your password.<br><br>"+
			"Please click on the following link to choose a new password: <a href=%q>%s</a><br><br>"+
			"If it wasn't you, please ignore this message.<br><br>"+
			"Best,<br><br>Frederick,<br>%s",
		s.ResetURL(token), s.ResetURL(token), s.cfg.AppName,
	)

	return s.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   recipient,
		Subject:  "Password Reset Request",
		BodyHTML: body,
	})
}

// SendWelcome greets a newly confirmed user and, when an alert address is
// configured, notifies it about the signup. The alert is best effort; a
// failure there is logged but does not fail the welcome.
func (s *Service) SendWelcome(ctx context.Context, recipient string) error {
	body := fmt.Sprintf(
		"Hi there!<br><br>Thanks so much for joining %s, the easiest way to create stuff on the web<br><br>"+
			"You can start creating your stuff on <a href=%q>%s</a>."+
			"<br><br>Don't hesitate to reach out if you have any questions or feedback."+
			"<br><br>Speak soon,<br><br>Frederick,<br>%s",
		s.cfg.AppName, s.cfg.BaseURL+"/app", s.cfg.BaseURL+"/app", s.cfg.AppName,
	)

	if err := s.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   recipient,
		Subject:  "Welcome on " + s.cfg.AppName,
		BodyHTML: body,
	}); err != nil {
		return err
	}

	if s.cfg.SignupAlertEmail != "" {
		alert := email.SendEmailParams{
			SendTo:   s.cfg.SignupAlertEmail,
			Subject:  "🤘 NEW USER SIGNUP",
			BodyHTML: fmt.Sprintf("A new user has just signed up.<br><br>📧 User's Email: %s", recipient),
		}
		if err := s.sender.SendEmail(ctx, alert); err != nil {
			s.logger.Error("failed to send signup alert",
				slog.Any("error", err),
				slog.String("component", "mail"),
			)
		}
	}

	return nil
}
