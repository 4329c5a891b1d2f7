package controller

import (
	"quicknote-be/internal/dto"
	"quicknote-be/internal/pkg/apperror"
	"quicknote-be/internal/pkg/serverutils"
	"quicknote-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router, authGuard fiber.Handler)
	Profile(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type userController struct {
	authService service.IAuthService
	userService service.IUserService
}

func NewUserController(authService service.IAuthService, userService service.IUserService) IUserController {
	return &userController{
		authService: authService,
		userService: userService,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router, authGuard fiber.Handler) {
	h := r.Group("/user/v1")
	h.Use(authGuard)
	h.Get("/profile", c.Profile)
	h.Delete("/:id", c.Delete)
}

func (c *userController) Profile(ctx *fiber.Ctx) error {
	sessionId, _ := ctx.Locals("session_id").(string)

	user, err := c.authService.CurrentUser(ctx.Context(), sessionId)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.ErrUnauthenticated
	}

	res := &dto.UserProfileResponse{
		Id:        user.Id,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}

func (c *userController) Delete(ctx *fiber.Ctx) error {
	userId := currentUserId(ctx)

	targetId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.ErrUnauthorized
	}

	if err := c.userService.DeleteAccount(ctx.Context(), userId, targetId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Account deleted", nil))
}
