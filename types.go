package auth

import "fmt"

// Logger is the minimal structured logger consumed by this package.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds the process-wide token options. Loaded once at startup and
// immutable thereafter; components capture the values at construction.
type Config interface {
	GetSigningKey() string
	GetSigningMethod() string
	GetIssuer() string
	GetContextKey() string
	GetAuthScheme() string
	// GetTokenExpiration is the access token lifetime in hours.
	GetTokenExpiration() int
	// GetRefreshTokenExpiration is the refresh credential lifetime in days.
	GetRefreshTokenExpiration() int
}

// Credentials is the pair returned by login and refresh. RefreshToken is
// the raw opaque secret; it is never persisted in this form.
type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LoginPayload carries the identifier/password pair for password logins.
type LoginPayload interface {
	GetIdentifier() string
	GetPassword() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
