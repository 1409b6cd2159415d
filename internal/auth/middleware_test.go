package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/task-tracker/internal/domain"
	"github.com/spec-kit/task-tracker/internal/repository/repositorytest"
	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

func newGatewayApp(t *testing.T) (*fiber.App, *TokenManager, *repositorytest.UserRepo, *repositorytest.TokenRepo) {
	t.Helper()

	tm := NewTokenManager("test-secret", time.Hour)
	users := repositorytest.NewUserRepo()
	tokens := repositorytest.NewTokenRepo()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code, "message": de.Message})
		},
	})
	gateway := NewGateway(tm, users, tokens)
	app.Use(gateway.Handle)

	app.Get("/whoami", func(c *fiber.Ctx) error {
		if principal, ok := PrincipalFromContext(c); ok {
			return c.SendString(principal.Email)
		}
		return c.SendString("anonymous")
	})
	app.Get("/protected", RequirePrincipal(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	return app, tm, users, tokens
}

func seedUser(t *testing.T, users *repositorytest.UserRepo, email string, role domain.Role) *domain.User {
	t.Helper()
	user := &domain.User{Username: "u", Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestGatewayAnonymousPassThrough(t *testing.T) {
	t.Parallel()

	app, _, _, _ := newGatewayApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "anonymous", string(body))

	// missing identity is rejected only where identity is demanded
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGatewayBindsPrincipal(t *testing.T) {
	t.Parallel()

	app, tm, users, _ := newGatewayApp(t)
	seedUser(t, users, "alice@example.com", domain.RoleMember)

	token, _, err := tm.Generate("alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "alice@example.com", string(body))
}

func TestGatewayRejectsRevokedBeforeValidation(t *testing.T) {
	t.Parallel()

	app, tm, users, tokens := newGatewayApp(t)
	seedUser(t, users, "alice@example.com", domain.RoleMember)

	token, _, err := tm.Generate("alice@example.com")
	require.NoError(t, err)

	revoked, err := tokens.Revoke(context.Background(), token)
	require.NoError(t, err)
	require.True(t, revoked)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	// short-circuits with the fixed message even though the token itself
	// would still verify
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, RevokedTokenMessage, string(body))
}

func TestGatewayRejectsInvalidToken(t *testing.T) {
	t.Parallel()

	app, _, _, _ := newGatewayApp(t)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer garbage.token.value")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGatewayRejectsUnknownSubject(t *testing.T) {
	t.Parallel()

	// token verifies but its subject no longer exists: stale credential,
	// surfaced as 401 rather than 404
	app, tm, _, _ := newGatewayApp(t)

	token, _, err := tm.Generate("ghost@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestExtractBearer(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	var got string
	app.Get("/", func(c *fiber.Ctx) error {
		got = ExtractBearer(c)
		return nil
	})

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "absent", header: "", want: ""},
		{name: "bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "case insensitive scheme", header: "bearer tok", want: "tok"},
		{name: "wrong scheme", header: "Basic abc", want: ""},
		{name: "scheme only", header: "Bearer", want: ""},
	}

	for _, tc := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set(fiber.HeaderAuthorization, tc.header)
		}
		_, err := app.Test(req)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, got, tc.name)
	}
}
