package routes

import (
	"admission-portal/constants"
	"admission-portal/controllers/application"
	"admission-portal/controllers/auth"
	"admission-portal/controllers/marksheet"
	"admission-portal/controllers/otp"
	"admission-portal/controllers/profile"
	"admission-portal/controllers/user"
	"admission-portal/middleware"
	"admission-portal/types"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, deps Dependencies) {
	cfg := deps.Config
	authController := auth.NewAuthController(deps.Identity, cfg.IsProduction(), cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	otpController := otp.NewOTPController(deps.Identity, cfg.OTP.ExposeCode && !cfg.IsProduction())
	userController := user.NewUserController(deps.Identity)
	profileController := profile.NewProfileController(deps.Profiles)
	applicationController := application.NewApplicationController(deps.Applications)
	marksheetController := marksheet.NewMarksheetController(deps.Marksheets)

	if deps.AsyncLogger != nil {
		app.Use(middleware.RequestLogger(deps.AsyncLogger))
	}

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(types.ApiResponse{
			Message: "Admission portal API",
			Status:  fiber.StatusOK,
		})
	})

	isAuthenticated := middleware.IsAuthenticated(deps.Issuer)

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api/users")
	api.Post("/register", authController.Register)
	api.Post("/login", authController.Login)
	api.Post("/token/refresh", authController.RefreshToken)

	/*=============================================================================
	| OTP Routes
	===============================================================================*/
	api.Post("/verify-email", otpController.SendEmailOTP)
	api.Put("/verify-email", otpController.ConfirmEmailOTP)
	api.Post("/verify-phone", otpController.SendPhoneOTP)
	api.Put("/verify-phone", otpController.ConfirmPhoneOTP)
	api.Post("/reset-password", otpController.SendResetOTP)
	api.Put("/reset-password", otpController.ConfirmReset)

	/*=============================================================================
	| Protected Routes
	===============================================================================*/
	api.Post("/logout", isAuthenticated, authController.LogOut)
	api.Get("/me", isAuthenticated, userController.GetUserInfo)

	api.Get("/personal-info", isAuthenticated, profileController.GetPersonalInfo)
	api.Post("/personal-info", isAuthenticated, profileController.CreatePersonalInfo)
	api.Put("/personal-info", isAuthenticated, profileController.UpdatePersonalInfo)
	api.Patch("/personal-info", isAuthenticated, profileController.PatchPersonalInfo)

	api.Get("/education-info", isAuthenticated, profileController.GetEducationInfo)
	api.Put("/education-info", isAuthenticated, profileController.SaveEducationInfo)
	api.Patch("/education-info", isAuthenticated, profileController.PatchEducationInfo)
	api.Post("/education-info/parse-marksheet", isAuthenticated, marksheetController.ParseMarksheet)
	api.Get("/education-info/parse-marksheet/:request_id", isAuthenticated, marksheetController.GetParseRequest)

	/*=============================================================================
	| Application Routes
	===============================================================================*/
	applicant := middleware.RequireRole(constants.RoleApplicant)
	api.Get("/application", isAuthenticated, applicant, applicationController.Get)
	api.Post("/application", isAuthenticated, applicant, applicationController.Submit)

	admin := api.Group("/admin", isAuthenticated, middleware.RequireRole(constants.RoleAdmin))
	admin.Get("/applications", applicationController.List)
	admin.Patch("/applications/:id/approve", applicationController.Approve)
}
