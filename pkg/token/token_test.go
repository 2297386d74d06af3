package token_test

import (
	"strings"
	"testing"
	"time"

	"github.com/callmefred/thebestapp/pkg/token"
)

func TestGenerateAndParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		payload string
		purpose string
		secret  string
	}{
		{
			name:    "email address payload",
			payload: "alice@example.com",
			purpose: "email-confirm",
			secret:  "secret123",
		},
		{
			name:    "reset purpose",
			payload: "bob@example.com",
			purpose: "reset-password",
			secret:  "secret123",
		},
		{
			name:    "empty payload",
			payload: "",
			purpose: "email-confirm",
			secret:  "secret123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tok, err := token.Generate(tt.payload, tt.purpose, tt.secret)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			if parts := strings.Split(tok, "."); len(parts) != 2 {
				t.Fatalf("Generate() invalid token format, got %d parts, want 2", len(parts))
			}

			got, err := token.Parse[string](tok, tt.purpose, tt.secret, time.Hour)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got != tt.payload {
				t.Errorf("Parse() got = %q, want %q", got, tt.payload)
			}
		})
	}
}

func TestParse_RejectsWrongPurpose(t *testing.T) {
	t.Parallel()

	tok, err := token.Generate("alice@example.com", "email-confirm", "secret123")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := token.Parse[string](tok, "reset-password", "secret123", time.Hour); err != token.ErrSignatureInvalid {
		t.Errorf("Parse() with wrong purpose error = %v, want %v", err, token.ErrSignatureInvalid)
	}
}

func TestParse_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := token.Generate("alice@example.com", "email-confirm", "secret123")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := token.Parse[string](tok, "email-confirm", "other-secret", time.Hour); err != token.ErrSignatureInvalid {
		t.Errorf("Parse() with wrong secret error = %v, want %v", err, token.ErrSignatureInvalid)
	}
}

func TestParse_RejectsExpired(t *testing.T) {
	t.Parallel()

	// Issued 3601s ago against a 3600s window.
	issuedAt := time.Now().Add(-3601 * time.Second)
	tok, err := token.GenerateAt("alice@example.com", "email-confirm", "secret123", issuedAt)
	if err != nil {
		t.Fatalf("GenerateAt() error = %v", err)
	}

	if _, err := token.Parse[string](tok, "email-confirm", "secret123", 3600*time.Second); err != token.ErrExpired {
		t.Errorf("Parse() error = %v, want %v", err, token.ErrExpired)
	}
}

func TestParse_AcceptsWithinWindow(t *testing.T) {
	t.Parallel()

	issuedAt := time.Now().Add(-3599 * time.Second)
	tok, err := token.GenerateAt("alice@example.com", "email-confirm", "secret123", issuedAt)
	if err != nil {
		t.Fatalf("GenerateAt() error = %v", err)
	}

	got, err := token.Parse[string](tok, "email-confirm", "secret123", 3600*time.Second)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got != "alice@example.com" {
		t.Errorf("Parse() got = %q", got)
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		token string
	}{
		{name: "no separator", token: "justonepart"},
		{name: "too many parts", token: "a.b.c"},
		{name: "bad base64 payload", token: "!@#$.c2ln"},
		{name: "bad base64 signature", token: "cGF5bG9hZA.!@#$"},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := token.Parse[string](tt.token, "email-confirm", "secret123", time.Hour); err != token.ErrMalformed {
				t.Errorf("Parse(%q) error = %v, want %v", tt.token, err, token.ErrMalformed)
			}
		})
	}
}
