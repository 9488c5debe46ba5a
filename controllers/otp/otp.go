package otp

import (
	"time"

	"admission-portal/logger"
	otpmodel "admission-portal/models/otp"
	"admission-portal/services/identity"
	"admission-portal/types"
	otpTypes "admission-portal/types/otp"
	"admission-portal/utils"

	"github.com/gofiber/fiber/v2"
)

// Controller handles OTP-related HTTP requests
type Controller struct {
	identity *identity.Service
	// exposeCode echoes the issued code in send responses. Off unless OTP_EXPOSE_CODE is set.
	exposeCode bool
}

// NewOTPController creates a new OTP controller
func NewOTPController(identityService *identity.Service, exposeCode bool) *Controller {
	return &Controller{identity: identityService, exposeCode: exposeCode}
}

func (oc *Controller) sent(c *fiber.Ctx, record *otpmodel.OTP, message string) error {
	data := otpTypes.OTPResponse{ExpiresAt: record.ExpiresAt.Format(time.RFC3339)}
	if oc.exposeCode {
		data.OTP = record.Code
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: message,
		Data:    data,
	})
}

// SendEmailOTP sends a verification code to the account's email
func (oc *Controller) SendEmailOTP(c *fiber.Ctx) error {
	var req otpTypes.SendEmailOTPRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.SendError(c, err)
	}

	record, err := oc.identity.RequestEmailOTP(c.UserContext(), req.Email)
	if err != nil {
		return utils.SendError(c, err)
	}
	return oc.sent(c, record, "OTP sent to your email")
}

// ConfirmEmailOTP verifies an email code
func (oc *Controller) ConfirmEmailOTP(c *fiber.Ctx) error {
	var req otpTypes.ConfirmEmailOTPRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.SendError(c, err)
	}

	account, err := oc.identity.ConfirmEmailOTP(c.UserContext(), req.Email, req.OTP)
	if err != nil {
		return utils.SendError(c, err)
	}

	logger.Success("Email verified for " + account.Username)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Email verified successfully",
		Data:    account.Public(),
	})
}

// SendPhoneOTP sends a verification code to the account's phone
func (oc *Controller) SendPhoneOTP(c *fiber.Ctx) error {
	var req otpTypes.SendPhoneOTPRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.SendError(c, err)
	}

	record, err := oc.identity.RequestPhoneOTP(c.UserContext(), req.Phone)
	if err != nil {
		return utils.SendError(c, err)
	}
	return oc.sent(c, record, "OTP sent to your phone number")
}

// ConfirmPhoneOTP verifies a phone code
func (oc *Controller) ConfirmPhoneOTP(c *fiber.Ctx) error {
	var req otpTypes.ConfirmPhoneOTPRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.SendError(c, err)
	}

	account, err := oc.identity.ConfirmPhoneOTP(c.UserContext(), req.Phone, req.OTP)
	if err != nil {
		return utils.SendError(c, err)
	}

	logger.Success("Phone verified for " + account.Username)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Phone number verified successfully",
		Data:    account.Public(),
	})
}

// SendResetOTP sends a password reset code by email
func (oc *Controller) SendResetOTP(c *fiber.Ctx) error {
	var req otpTypes.SendEmailOTPRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.SendError(c, err)
	}

	record, err := oc.identity.RequestPasswordReset(c.UserContext(), req.Email)
	if err != nil {
		return utils.SendError(c, err)
	}
	return oc.sent(c, record, "Password reset OTP sent to your email")
}

// ConfirmReset verifies a reset code and sets the new password
func (oc *Controller) ConfirmReset(c *fiber.Ctx) error {
	var req otpTypes.ConfirmResetRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.SendError(c, err)
	}

	if err := oc.identity.ConfirmPasswordReset(c.UserContext(), req.Email, req.OTP, req.NewPassword); err != nil {
		return utils.SendError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Password has been reset successfully",
	})
}
