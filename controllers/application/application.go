package application

import (
	"admission-portal/services"
	applicationService "admission-portal/services/application"
	"admission-portal/types"
	"admission-portal/utils"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	applications *applicationService.Service
	permissions  *services.PermissionService
}

func NewApplicationController(applications *applicationService.Service) *Controller {
	return &Controller{applications: applications, permissions: services.NewPermissionService()}
}

func (ac *Controller) Get(c *fiber.Ctx) error {
	userID, err := ac.permissions.RequireUserID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	application, err := ac.applications.Get(c.UserContext(), userID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Application fetched successfully",
		Status:  fiber.StatusOK,
		Data:    application,
	})
}

func (ac *Controller) Submit(c *fiber.Ctx) error {
	userID, err := ac.permissions.RequireUserID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	application, err := ac.applications.Submit(c.UserContext(), userID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Application submitted successfully",
		Status:  fiber.StatusCreated,
		Data:    application,
	})
}

// List serves admins, optionally filtered by ?status=
func (ac *Controller) List(c *fiber.Ctx) error {
	applications, err := ac.applications.List(c.UserContext(), c.Query("status"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Applications fetched successfully",
		Status:  fiber.StatusOK,
		Data:    applications,
	})
}

func (ac *Controller) Approve(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.SendBadRequest(c, "Invalid application id")
	}
	application, err := ac.applications.Approve(c.UserContext(), uint(id))
	if err != nil {
		return utils.SendError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Application approved successfully",
		Status:  fiber.StatusOK,
		Data:    application,
	})
}
