package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-storage-api/internal/application/ports"
	"file-storage-api/internal/application/services"
	userDB "file-storage-api/internal/infrastructure/db/postgres/user"
	"file-storage-api/internal/infrastructure/jwt"
	"file-storage-api/internal/interface/api/rest/dto/auth"
	"file-storage-api/internal/interface/api/rest/dto/user"
	"file-storage-api/internal/interface/api/rest/middleware"
	"file-storage-api/internal/interface/api/rest/validator"
)

type UserController struct {
	logger      *zap.Logger
	userService ports.UserService
	authService ports.Auth
}

func NewUserController(
	r *gin.Engine,
	logger *zap.Logger,
	userService ports.UserService,
	authService ports.Auth,
	jwtService *jwt.Service,
) *UserController {
	uc := &UserController{
		logger:      logger,
		userService: userService,
		authService: authService,
	}

	authed := middleware.AuthMiddleware(jwtService)
	r.GET(RouteProfile, authed, uc.ProfileHandler)
	r.PUT(RouteUpdateProfile, authed, uc.UpdateProfileHandler)
	r.POST(RouteChangePassword, authed, uc.ChangePasswordHandler)

	return uc
}

func (uc *UserController) ProfileHandler(c *gin.Context) {
	uuid, ok := requesterUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
		return
	}

	u, err := uc.userService.FindUserByUUID(c.Request.Context(), uuid)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"success": false, "message": "failed to get profile"},
		)
		uc.logger.Error("FindUserByUUID() error", zap.Error(err))
		return
	}
	if u == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"success": false, "message": "User not found"},
		)
		return
	}

	c.JSON(http.StatusOK, user.ProfileResponse{
		Success: true,
		User:    user.ToResponseUser(*u),
	})
}

func (uc *UserController) UpdateProfileHandler(c *gin.Context) {
	uuid, ok := requesterUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
		return
	}

	var req auth.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"success": false, "message": "invalid json"},
		)
		return
	}
	if errs := validator.ValidateUpdateProfile(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"errors":  errs,
		})
		return
	}

	u, err := uc.userService.UpdateProfile(c.Request.Context(), uuid, req.Username, req.Email)
	if err != nil {
		if errors.Is(err, userDB.ErrEmailAlreadyExists) || errors.Is(err, userDB.ErrUsernameAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"success": false, "message": "failed to update profile"},
		)
		uc.logger.Error("UpdateProfile() error", zap.Error(err))
		return
	}
	if u == nil {
		c.JSON(
			http.StatusNotFound,
			gin.H{"success": false, "message": "User not found"},
		)
		return
	}

	c.JSON(http.StatusOK, user.UpdateProfileResponse{
		Message: "Profile updated successfully",
		User:    user.ToResponseUser(*u),
	})
}

func (uc *UserController) ChangePasswordHandler(c *gin.Context) {
	uuid, ok := requesterUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
		return
	}

	var req auth.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"success": false, "message": "invalid json"},
		)
		return
	}
	if errs := validator.ValidateChangePassword(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"errors":  errs,
		})
		return
	}

	if err := uc.authService.ChangePassword(c.Request.Context(), uuid, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"success": false, "message": "failed to change password"},
		)
		uc.logger.Error("ChangePassword() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully"})
}
