package mail_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/callmefred/thebestapp/mail"
	"github.com/callmefred/thebestapp/pkg/email"
)

// recordingSender captures sent messages, optionally failing per recipient.
type recordingSender struct {
	sent    []email.SendEmailParams
	failFor map[string]error
}

func (s *recordingSender) SendEmail(_ context.Context, params email.SendEmailParams) error {
	if err, ok := s.failFor[params.SendTo]; ok {
		return err
	}
	s.sent = append(s.sent, params)
	return nil
}

func testMailConfig() mail.Config {
	return mail.Config{
		BaseURL:          "https://example.com/",
		AppName:          "The Best App",
		SignupAlertEmail: "owner@example.com",
	}
}

func TestService_SendVerification(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	svc := mail.NewService(sender, testMailConfig())

	require.NoError(t, svc.SendVerification(context.Background(), "fred@example.com", "tok123"))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "fred@example.com", msg.SendTo)
	assert.Equal(t, "Email Verification Request", msg.Subject)
	assert.Contains(t, msg.BodyHTML, "https://example.com/confirm_email/tok123")
}

func TestService_SendPasswordReset(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	svc := mail.NewService(sender, testMailConfig())

	require.NoError(t, svc.SendPasswordReset(context.Background(), "fred@example.com", "tok456"))

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "Password Reset Request", msg.Subject)
	assert.Contains(t, msg.BodyHTML, "https://example.com/reset/tok456")
}

func TestService_SendWelcome(t *testing.T) {
	t.Parallel()

	t.Run("greets the user and alerts the owner", func(t *testing.T) {
		t.Parallel()

		sender := &recordingSender{}
		svc := mail.NewService(sender, testMailConfig())

		require.NoError(t, svc.SendWelcome(context.Background(), "fred@example.com"))

		require.Len(t, sender.sent, 2)
		assert.Equal(t, "fred@example.com", sender.sent[0].SendTo)
		assert.Equal(t, "Welcome on The Best App", sender.sent[0].Subject)
		assert.Contains(t, sender.sent[0].BodyHTML, "https://example.com/app")
		assert.Equal(t, "owner@example.com", sender.sent[1].SendTo)
		assert.Contains(t, sender.sent[1].BodyHTML, "fred@example.com")
	})

	t.Run("no alert address configured", func(t *testing.T) {
		t.Parallel()

		cfg := testMailConfig()
		cfg.SignupAlertEmail = ""
		sender := &recordingSender{}
		svc := mail.NewService(sender, cfg)

		require.NoError(t, svc.SendWelcome(context.Background(), "fred@example.com"))
		require.Len(t, sender.sent, 1)
	})

	t.Run("alert failure does not fail the welcome", func(t *testing.T) {
		t.Parallel()

		sender := &recordingSender{failFor: map[string]error{
			"owner@example.com": errors.New("provider down"),
		}}
		svc := mail.NewService(sender, testMailConfig())

		require.NoError(t, svc.SendWelcome(context.Background(), "fred@example.com"))
		require.Len(t, sender.sent, 1)
	})

	t.Run("welcome failure surfaces", func(t *testing.T) {
		t.Parallel()

		sender := &recordingSender{failFor: map[string]error{
			"fred@example.com": errors.New("provider down"),
		}}
		svc := mail.NewService(sender, testMailConfig())

		assert.Error(t, svc.SendWelcome(context.Background(), "fred@example.com"))
	})
}
