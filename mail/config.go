package mail

// Config holds mail composition settings.
type Config struct {
	// BaseURL prefixes confirmation and reset links, e.g. https://example.com.
	BaseURL string `env:"APP_BASE_URL,required"`

	// AppName appears in subjects and signatures.
	AppName string `env:"APP_NAME" envDefault:"The Best App"`

	// SignupAlertEmail, when set, receives a notification for every new
	// signup.
	SignupAlertEmail string `env:"ADMIN_EMAIL"`
}
