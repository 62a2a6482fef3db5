package auth

// SimpleConfig is an immutable Config implementation. Zero values fall
// back to defaults via the getters, so a partially populated struct is
// safe to use in tests.
type SimpleConfig struct {
	SigningKey             string
	SigningMethod          string
	Issuer                 string
	ContextKey             string
	AuthScheme             string
	TokenExpiration        int
	RefreshTokenExpiration int
}

var _ Config = SimpleConfig{}

const (
	// DefaultTokenExpiration is the access token lifetime in hours.
	DefaultTokenExpiration = 12
	// DefaultRefreshTokenExpiration is the refresh credential lifetime in days.
	DefaultRefreshTokenExpiration = 30
	// DefaultSigningMethod is the only algorithm the codec accepts.
	DefaultSigningMethod = "HS256"
	// DefaultAuthScheme prefixes the Authorization header value.
	DefaultAuthScheme = "Bearer"
	// DefaultContextKey is the router locals key for the auth session.
	DefaultContextKey = "user"
)

func (c SimpleConfig) GetSigningKey() string { return c.SigningKey }

func (c SimpleConfig) GetSigningMethod() string {
	if c.SigningMethod == "" {
		return DefaultSigningMethod
	}
	return c.SigningMethod
}

func (c SimpleConfig) GetIssuer() string { return c.Issuer }

func (c SimpleConfig) GetContextKey() string {
	if c.ContextKey == "" {
		return DefaultContextKey
	}
	return c.ContextKey
}

func (c SimpleConfig) GetAuthScheme() string {
	if c.AuthScheme == "" {
		return DefaultAuthScheme
	}
	return c.AuthScheme
}

func (c SimpleConfig) GetTokenExpiration() int {
	if c.TokenExpiration <= 0 {
		return DefaultTokenExpiration
	}
	return c.TokenExpiration
}

func (c SimpleConfig) GetRefreshTokenExpiration() int {
	if c.RefreshTokenExpiration <= 0 {
		return DefaultRefreshTokenExpiration
	}
	return c.RefreshTokenExpiration
}
