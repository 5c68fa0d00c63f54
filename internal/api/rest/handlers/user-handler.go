package handlers

import (
	"strconv"

	"github.com/einkreativername/brightmiss/internal/api/rest/middleware"
	"github.com/einkreativername/brightmiss/internal/dto"
	"github.com/einkreativername/brightmiss/internal/helper"
	"github.com/einkreativername/brightmiss/internal/helper/utils"
	"github.com/einkreativername/brightmiss/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	svc  services.UserService
	auth helper.Auth
}

func NewUserHandler(svc services.UserService, auth helper.Auth) *UserHandler {
	return &UserHandler{svc: svc, auth: auth}
}

func (h *UserHandler) SetupRoutes(app *fiber.App, upload *UploadHandler) {
	api := app.Group("/api")

	// public
	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/set-password", h.SetPassword)

	// authenticated
	protected := api.Group("", middleware.AuthMiddleware(h.auth))
	protected.Get("/me", h.Me)
	protected.Get("/profile", h.GetProfile)
	protected.Patch("/profile", h.UpdateProfile)

	if upload != nil {
		uploads := protected.Group("/uploads")
		uploads.Post("/image", upload.UploadImage)
		uploads.Post("/gallery", upload.UploadGallery)
		uploads.Post("/video", upload.UploadVideo)
	}

	// admin
	admin := protected.Group("/admin", middleware.AdminOnly(h.svc))
	admin.Post("/invite", h.InviteUser)
	admin.Get("/profile-requests", h.ListChangeRequests)
	admin.Patch("/profile-requests", h.ResolveChangeRequest)
	admin.Get("/users", h.ListUsers)
	admin.Get("/users/:userID", h.GetUser)
	admin.Delete("/users/:userID", h.DeleteUser)
}

func (h *UserHandler) Register(ctx *fiber.Ctx) error {
	var requestBody dto.RegisterRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	user, err := h.svc.Register(requestBody)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusCreated, fiber.Map{
		"message": "user created successfully",
		"user": dto.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	})
}

func (h *UserHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.UserLogin
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	user, err := h.svc.Login(requestBody)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}

	token, err := h.auth.GenerateToken(int(user.ID), user.Email, user.Role)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "could not generate token")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      user.Role,
			IsInvited: user.IsInvited,
		},
	})
}

func (h *UserHandler) SetPassword(ctx *fiber.Ctx) error {
	var requestBody dto.SetPasswordRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	if err := h.svc.RedeemInvite(requestBody); err != nil {
		return utils.ResponseAppError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"message": "password set successfully, you can now log in",
	})
}

func (h *UserHandler) Me(ctx *fiber.Ctx) error {
	user, err := h.svc.Authenticate(ctx)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		IsInvited: user.IsInvited,
	})
}

func (h *UserHandler) GetProfile(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)

	profile, err := h.svc.GetProfile(userID)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(ctx *fiber.Ctx) error {
	userID, _ := ctx.Locals("userID").(uint)

	var requestBody dto.UpdateProfileRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	res, err := h.svc.UpdateProfile(userID, requestBody)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

func (h *UserHandler) InviteUser(ctx *fiber.Ctx) error {
	adminID, _ := ctx.Locals("userID").(uint)

	var requestBody dto.InviteRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	res, err := h.svc.InviteUser(adminID, requestBody)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

func (h *UserHandler) ListChangeRequests(ctx *fiber.Ctx) error {
	requests, err := h.svc.ListChangeRequests()
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"requests": requests,
	})
}

func (h *UserHandler) ResolveChangeRequest(ctx *fiber.Ctx) error {
	adminID, _ := ctx.Locals("userID").(uint)

	var requestBody dto.ResolveChangeRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	if err := h.svc.ResolveChangeRequest(adminID, requestBody); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"message": "request " + requestBody.Action + "ed successfully",
	})
}

func (h *UserHandler) ListUsers(ctx *fiber.Ctx) error {
	users, err := h.svc.ListUsers()
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"users": users,
	})
}

func (h *UserHandler) GetUser(ctx *fiber.Ctx) error {
	userID, err := parseUserID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid user id")
	}

	user, err := h.svc.GetUser(userID)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"user": user,
	})
}

func (h *UserHandler) DeleteUser(ctx *fiber.Ctx) error {
	adminID, _ := ctx.Locals("userID").(uint)

	userID, err := parseUserID(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid user id")
	}

	if err := h.svc.DeleteUser(adminID, userID); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"message": "user deleted successfully",
	})
}

func parseUserID(ctx *fiber.Ctx) (uint, error) {
	id64, err := strconv.ParseUint(ctx.Params("userID"), 10, 64)
	if err != nil || id64 == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id64), nil
}
