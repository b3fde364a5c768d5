package serverutils

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"buddyai-be/internal/entity"
	"buddyai-be/internal/pkg/apperror"
	"buddyai-be/internal/pkg/logger"
	"buddyai-be/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator struct {
	user *entity.User
	err  error
	seen string
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, rawToken string) (*entity.User, *token.Claims, error) {
	s.seen = rawToken
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.user, &token.Claims{UserId: s.user.Id.String()}, nil
}

func newTestApp(auth Authenticator) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandlerMiddleware(logger.NewNopLogger())})
	app.Get("/private", JwtMiddleware(auth), func(c *fiber.Ctx) error {
		id, err := CurrentUserID(c)
		if err != nil {
			return err
		}
		return c.SendString(id.String())
	})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("db exploded") })
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.ErrMethodNotAllowed })
	return app
}

func decodeError(t *testing.T, body io.Reader) Response {
	t.Helper()
	var res Response
	require.NoError(t, json.NewDecoder(body).Decode(&res))
	return res
}

func TestJwtMiddleware_MissingToken(t *testing.T) {
	app := newTestApp(&stubAuthenticator{})

	res, err := app.Test(httptest.NewRequest("GET", "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, res.StatusCode)
	body := decodeError(t, res.Body)
	assert.False(t, body.Success)
	assert.Equal(t, 401, body.Code)
	assert.Equal(t, "Access Denied. No token provided.", body.Message)
}

func TestJwtMiddleware_AcceptsBothHeaders(t *testing.T) {
	user := &entity.User{Id: uuid.New()}
	auth := &stubAuthenticator{user: user}
	app := newTestApp(auth)

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("auth-token", "tok-1")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode)
	assert.Equal(t, "tok-1", auth.seen)
	raw, _ := io.ReadAll(res.Body)
	assert.Equal(t, user.Id.String(), string(raw))

	req = httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer tok-2")
	res, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode)
	assert.Equal(t, "tok-2", auth.seen)
}

func TestJwtMiddleware_PropagatesAuthenticatorKind(t *testing.T) {
	app := newTestApp(&stubAuthenticator{err: apperror.InvalidToken("Invalid Token")})

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("auth-token", "garbage")
	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, res.StatusCode)
	assert.Equal(t, "Invalid Token", decodeError(t, res.Body).Message)
}

func TestErrorHandler_UnknownAndFiberErrors(t *testing.T) {
	app := newTestApp(&stubAuthenticator{})

	res, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, res.StatusCode)
	assert.Equal(t, "db exploded", decodeError(t, res.Body).Message)

	res, err = app.Test(httptest.NewRequest("GET", "/fiber", nil))
	require.NoError(t, err)
	assert.Equal(t, 405, res.StatusCode)

	res, err = app.Test(httptest.NewRequest("GET", "/nowhere", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, res.StatusCode)
	assert.Equal(t, 404, decodeError(t, res.Body).Code)
}

type registerLike struct {
	Username string `validate:"required,min=3"`
	Email    string `validate:"required,email"`
}

func TestValidateRequest(t *testing.T) {
	assert.NoError(t, ValidateRequest(registerLike{Username: "alice", Email: "a@b.co"}))

	err := ValidateRequest(registerLike{Username: "al", Email: "nope"})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.Contains(t, err.Error(), "Username must be at least 3 characters")
	assert.Contains(t, err.Error(), "Email must be a valid email")
}
