package marksheet

import (
	"fmt"
	"io"

	"admission-portal/logger"
	"admission-portal/services"
	parser "admission-portal/services/marksheet_parser"
	"admission-portal/types"
	"admission-portal/utils"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	parser      *parser.Service
	permissions *services.PermissionService
}

func NewMarksheetController(parserService *parser.Service) *Controller {
	return &Controller{parser: parserService, permissions: services.NewPermissionService()}
}

// ParseMarksheet handles the marksheet image upload and returns the
// extracted fields for review.
func (mc *Controller) ParseMarksheet(c *fiber.Ctx) error {
	userID, err := mc.permissions.RequireUserID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		logger.Error(fmt.Sprintf("No image file provided by user %d", userID), err)
		return utils.SendBadRequest(c, "No image file provided")
	}
	if file.Size > parser.MaxImageSize {
		return utils.SendError(c, parser.ErrImageTooLarge)
	}

	src, err := file.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", err)
		return utils.SendBadRequest(c, "Failed to process uploaded file")
	}
	defer src.Close()

	fileBytes, err := io.ReadAll(src)
	if err != nil {
		logger.Error("Failed to read file content", err)
		return utils.SendBadRequest(c, "Failed to read file content")
	}

	result, err := mc.parser.Parse(c.UserContext(), userID, parser.Upload{
		FileName: file.Filename,
		MimeType: file.Header.Get("Content-Type"),
		Data:     fileBytes,
	})
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Marksheet parsed successfully",
		Data:    result,
	})
}

func (mc *Controller) GetParseRequest(c *fiber.Ctx) error {
	userID, err := mc.permissions.RequireUserID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	request, err := mc.parser.Request(c.UserContext(), userID, c.Params("request_id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Parse request fetched successfully",
		Data:    request,
	})
}
