package profile

import (
	"admission-portal/logger"
	"admission-portal/services"
	profileService "admission-portal/services/profile"
	"admission-portal/types"
	profileTypes "admission-portal/types/profile"
	"admission-portal/utils"

	"github.com/gofiber/fiber/v2"
)

// Controller serves the personal-info and education-info sections
type Controller struct {
	profiles    *profileService.Service
	permissions *services.PermissionService
}

func NewProfileController(profiles *profileService.Service) *Controller {
	return &Controller{profiles: profiles, permissions: services.NewPermissionService()}
}

func respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(types.ApiResponse{
		Message: message,
		Status:  status,
		Data:    data,
	})
}

/*=============================================================================
| Personal info
===============================================================================*/

func (pc *Controller) GetPersonalInfo(c *fiber.Ctx) error {
	userID, err := pc.permissions.RequireUserID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	info, err := pc.profiles.GetPersonalInfo(c.UserContext(), userID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return respond(c, fiber.StatusOK, "Personal info fetched successfully", info)
}

func (pc *Controller) CreatePersonalInfo(c *fiber.Ctx) error {
	userID, err := pc.permissions.RequireUserID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req profileTypes.PersonalInfoRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}

	info, err := pc.profiles.CreatePersonalInfo(c.UserContext(), userID, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return respond(c, fiber.StatusCreated, "Personal info created successfully", info)
}

func (pc *Controller) UpdatePersonalInfo(c *fiber.Ctx) error {
	userID, err := pc.permissions.RequireUserID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req profileTypes.PersonalInfoRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}

	info, err := pc.profiles.UpdatePersonalInfo(c.UserContext(), userID, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return respond(c, fiber.StatusOK, "Personal info updated successfully", info)
}

func (pc *Controller) PatchPersonalInfo(c *fiber.Ctx) error {
	userID, err := pc.permissions.RequireUserID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var patch profileTypes.PersonalInfoPatch
	if err := c.BodyParser(&patch); err != nil {
		logger.Error("Error parsing request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}

	info, err := pc.profiles.PatchPersonalInfo(c.UserContext(), userID, patch)
	if err != nil {
		return utils.SendError(c, err)
	}
	return respond(c, fiber.StatusOK, "Personal info updated successfully", info)
}

/*=============================================================================
| Education info
===============================================================================*/

func (pc *Controller) GetEducationInfo(c *fiber.Ctx) error {
	userID, err := pc.permissions.RequireUserID(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	info, err := pc.profiles.GetEducationInfo(c.UserContext(), userID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return respond(c, fiber.StatusOK, "Education info fetched successfully", info)
}

// SaveEducationInfo answers 201 when the section was created and 200 when an
// existing one was replaced.
func (pc *Controller) SaveEducationInfo(c *fiber.Ctx) error {
	userID, err := pc.permissions.RequireUserID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req profileTypes.EducationInfoRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}

	info, created, err := pc.profiles.SaveEducationInfo(c.UserContext(), userID, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	if created {
		return respond(c, fiber.StatusCreated, "Education info created successfully", info)
	}
	return respond(c, fiber.StatusOK, "Education info updated successfully", info)
}

func (pc *Controller) PatchEducationInfo(c *fiber.Ctx) error {
	userID, err := pc.permissions.RequireUserID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var patch profileTypes.EducationInfoPatch
	if err := c.BodyParser(&patch); err != nil {
		logger.Error("Error parsing request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}

	info, err := pc.profiles.PatchEducationInfo(c.UserContext(), userID, patch)
	if err != nil {
		return utils.SendError(c, err)
	}
	return respond(c, fiber.StatusOK, "Education info updated successfully", info)
}
