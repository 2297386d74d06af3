package email

// Config holds email service configuration. BrevoAPIKey is optional to
// support development environments where outbound mail is disabled; sender
// identity is required because every outbound message carries it.
type Config struct {
	BrevoAPIKey string `env:"BREVO_API_KEY"`
	BrevoURL    string `env:"BREVO_URL" envDefault:"https://api.brevo.com/v3/smtp/email"`
	SenderName  string `env:"SENDER_NAME,required"`
	SenderEmail string `env:"SENDER_EMAIL,required"`
}
