package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/task-tracker/internal/domain"
	"github.com/spec-kit/task-tracker/internal/repository"
	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

const principalKey = "auth_principal"

// RevokedTokenMessage is the fixed body returned for denylisted tokens.
const RevokedTokenMessage = "token invalidated, please log in again"

// Principal is the immutable identity resolved from a valid token. Bound to
// the request context by the gateway, never overwritten mid-request.
type Principal struct {
	Email string
	Role  domain.Role
	User  *domain.User
}

// Gateway validates bearer tokens once per request and binds the resolved
// principal. Requests without an Authorization header pass through as
// anonymous; endpoints that need identity reject those downstream.
type Gateway struct {
	tokens  *TokenManager
	users   repository.UserRepository
	revoked repository.InvalidTokenRepository
}

// NewGateway constructs the authentication middleware.
func NewGateway(tokens *TokenManager, users repository.UserRepository, revoked repository.InvalidTokenRepository) *Gateway {
	return &Gateway{tokens: tokens, users: users, revoked: revoked}
}

// Handle runs the per-request authentication flow: extract, revocation
// check, signature validation, principal resolution, bind.
func (g *Gateway) Handle(c *fiber.Ctx) error {
	token := ExtractBearer(c)
	if token == "" {
		return c.Next()
	}

	// Revocation is checked before the signature: a denylisted token is
	// rejected without spending CPU on verification, and must never reach
	// principal resolution.
	revoked, err := g.revoked.IsRevoked(c.Context(), token)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if revoked {
		return c.Status(http.StatusUnauthorized).SendString(RevokedTokenMessage)
	}

	email, err := g.tokens.Validate(token)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	user, err := g.users.GetByEmail(c.Context(), email)
	if err != nil {
		// A verified signature over an unknown subject is a stale
		// credential, not a missing API resource.
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("unknown token subject")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{Email: user.Email, Role: user.Role, User: user})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated identity, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// RequirePrincipal guards routes that demand an authenticated caller.
func RequirePrincipal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// ExtractBearer pulls the token out of the Authorization header, or returns
// the empty string when the header is absent or not a bearer scheme.
func ExtractBearer(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
