package user

import (
	"admission-portal/services"
	"admission-portal/services/identity"
	"admission-portal/types"
	"admission-portal/utils"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	identity    *identity.Service
	permissions *services.PermissionService
}

func NewUserController(identityService *identity.Service) *UserController {
	return &UserController{identity: identityService, permissions: services.NewPermissionService()}
}

func (uc *UserController) GetUserInfo(c *fiber.Ctx) error {
	userID, err := uc.permissions.RequireUserID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	account, err := uc.identity.Account(c.UserContext(), userID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "User fetched successfully",
		Status:  fiber.StatusOK,
		Data:    account.Public(),
	})
}
