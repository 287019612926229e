package web

import "time"

// Config holds the web module settings loaded from the environment.
type Config struct {
	// SessionSecret signs the session cookie (HS256).
	SessionSecret string `env:"SESSION_SECRET,required"`

	// SessionTTL bounds how long a login stays valid.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// SessionCookie is the session cookie name.
	SessionCookie string `env:"SESSION_COOKIE" envDefault:"tk_session"`

	// SecureCookies should only be disabled for plain-HTTP local development.
	SecureCookies bool `env:"SESSION_SECURE" envDefault:"true"`
}
