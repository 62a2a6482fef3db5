package auth

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// RouteRegistrar captures the router methods used by the controller.
type RouteRegistrar interface {
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

// HTTPController exposes the token lifecycle as a JSON API: login issues
// a credential pair, refresh re-dates the access token, logout revokes
// the session. ProtectedRoute guards any other route behind the full
// registry-backed check.
type HTTPController struct {
	auther    *Auther
	refresher *Refresher
	revoker   *Revoker
	cfg       Config
	logger    Logger
}

// NewHTTPController wires the full flow set over one repository manager.
func NewHTTPController(repo RepositoryManager, cfg Config, logger Logger) *HTTPController {
	if logger == nil {
		logger = defLogger{}
	}
	return &HTTPController{
		auther:    NewAuther(repo, cfg, logger),
		refresher: NewRefresher(repo, cfg, logger),
		revoker:   NewRevoker(repo, cfg, logger),
		cfg:       cfg,
		logger:    logger,
	}
}

// Auther exposes the underlying authenticator, e.g. for custom middleware.
func (c *HTTPController) Auther() *Auther {
	return c.auther
}

// RegisterRoutes mounts the authentication endpoints.
func (c *HTTPController) RegisterRoutes(group RouteRegistrar) {
	group.Post("/login", c.Login)
	group.Post("/refresh", c.Refresh)
	group.Delete("/logout", c.Logout, c.ProtectedRoute())
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the payload shape before touching the store.
func (p LoginRequest) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required),
	)
}

// RefreshRequest is the refresh payload; the raw secret as issued.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Validate checks the payload shape before hashing.
func (p RefreshRequest) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.RefreshToken, validation.Required),
	)
}

// Login verifies the email/password pair and returns a credential pair.
func (c *HTTPController) Login(ctx router.Context) error {
	var payload LoginRequest
	if err := ctx.Bind(&payload); err != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": err,
		})
	}

	creds, err := c.auther.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		return c.respondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, creds)
}

// Refresh exchanges a raw refresh secret for a fresh access token.
func (c *HTTPController) Refresh(ctx router.Context) error {
	var payload RefreshRequest
	if err := ctx.Bind(&payload); err != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": err,
		})
	}

	creds, err := c.refresher.Refresh(ctx.Context(), payload.RefreshToken)
	if err != nil {
		return c.respondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, creds)
}

// Logout revokes the session of the presented access token. Mounted
// behind ProtectedRoute, so the session in locals is already validated.
func (c *HTTPController) Logout(ctx router.Context) error {
	session, ok := GetRouterSession(ctx, c.cfg.GetContextKey())
	if !ok {
		return c.respondError(ctx, ErrInvalidAccessToken)
	}

	jti, err := session.Claims.SessionUUID()
	if err != nil {
		return c.respondError(ctx, ErrInvalidAccessToken)
	}

	if err := c.revoker.Revoke(ctx.Context(), jti); err != nil {
		return c.respondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]string{
		"status": "revoked",
	})
}

// ProtectedRoute returns middleware that admits a request only after the
// full check: decode, user existence, registry pair match, blacklist. The
// authenticated session is stored in locals under the configured key.
func (c *HTTPController) ProtectedRoute() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			header := ctx.GetString(router.HeaderAuthorization, "")

			session, err := c.auther.Authenticate(ctx.Context(), header)
			if err != nil {
				return c.respondError(ctx, err)
			}

			ctx.Locals(c.cfg.GetContextKey(), session)
			return next(ctx)
		}
	}
}

// GetRouterSession extracts the authenticated session placed in locals by
// ProtectedRoute.
func GetRouterSession(ctx router.Context, key string) (*AuthenticatedSession, bool) {
	if key == "" {
		key = DefaultContextKey
	}
	raw := ctx.Locals(key)
	if raw == nil {
		return nil, false
	}
	session, ok := raw.(*AuthenticatedSession)
	return session, ok
}

func (c *HTTPController) respondError(ctx router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	c.logger.Info(
		"request rejected",
		"error", richErr.Message,
		"category", richErr.Category,
		"details", print.MaybePrettyJSON(richErr.Metadata),
	)

	status := richErr.Code
	if status == 0 {
		status = router.StatusInternalServerError
	}

	body := map[string]string{
		"error": richErr.Message,
	}
	if richErr.TextCode != "" {
		body["text_code"] = richErr.TextCode
	}

	return ctx.JSON(status, body)
}
