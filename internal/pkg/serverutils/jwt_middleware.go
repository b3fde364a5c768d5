package serverutils

import (
	"context"
	"strings"

	"buddyai-be/internal/entity"
	"buddyai-be/internal/pkg/apperror"
	"buddyai-be/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	LocalUserID = "user_id"
	LocalUser   = "user"
	LocalClaims = "token_claims"

	AuthTokenHeader = "auth-token"
)

// Authenticator resolves a raw bearer token to the user it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*entity.User, *token.Claims, error)
}

// ExtractToken reads the auth-token header, falling back to "Authorization: Bearer".
func ExtractToken(ctx *fiber.Ctx) string {
	if raw := strings.TrimSpace(ctx.Get(AuthTokenHeader)); raw != "" {
		return raw
	}
	authHeader := ctx.Get(fiber.HeaderAuthorization)
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

func JwtMiddleware(auth Authenticator) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		raw := ExtractToken(ctx)
		if raw == "" {
			return apperror.Unauthorized("Access Denied. No token provided.")
		}

		user, claims, err := auth.Authenticate(ctx.UserContext(), raw)
		if err != nil {
			return err
		}

		ctx.Locals(LocalUserID, user.Id)
		ctx.Locals(LocalUser, user)
		ctx.Locals(LocalClaims, claims)
		return ctx.Next()
	}
}

// CurrentUserID returns the id stored by JwtMiddleware.
func CurrentUserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, ok := ctx.Locals(LocalUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, apperror.Unauthorized("Access Denied. No token provided.")
	}
	return id, nil
}

func CurrentUser(ctx *fiber.Ctx) (*entity.User, error) {
	user, ok := ctx.Locals(LocalUser).(*entity.User)
	if !ok {
		return nil, apperror.Unauthorized("Access Denied. No token provided.")
	}
	return user, nil
}

func CurrentClaims(ctx *fiber.Ctx) (*token.Claims, error) {
	claims, ok := ctx.Locals(LocalClaims).(*token.Claims)
	if !ok {
		return nil, apperror.Unauthorized("Access Denied. No token provided.")
	}
	return claims, nil
}
