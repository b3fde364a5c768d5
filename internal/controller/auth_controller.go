package controller

import (
	"buddyai-be/internal/dto"
	"buddyai-be/internal/pkg/apperror"
	"buddyai-be/internal/pkg/serverutils"
	"buddyai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
	jwt     fiber.Handler
}

func NewAuthController(service service.IAuthService, jwt fiber.Handler) IAuthController {
	return &authController{service: service, jwt: jwt}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)
	h.Get("/me", c.jwt, c.Me)
	h.Post("/logout", c.jwt, c.Logout)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Register(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	user, err := serverutils.CurrentUser(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(c.service.Me(user))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	claims, err := serverutils.CurrentClaims(ctx)
	if err != nil {
		return err
	}
	if err := c.service.Logout(ctx.UserContext(), claims); err != nil {
		return err
	}
	return ctx.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}

// parseBody decodes the JSON body into req and runs its validate tags.
func parseBody(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return apperror.Wrap(apperror.KindValidation, "Invalid request body", err)
	}
	return serverutils.ValidateRequest(req)
}
