package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-storage-api/internal/application/ports"
	"file-storage-api/internal/application/services"
	userDB "file-storage-api/internal/infrastructure/db/postgres/user"
	"file-storage-api/internal/interface/api/rest/dto/auth"
	"file-storage-api/internal/interface/api/rest/dto/user"
	"file-storage-api/internal/interface/api/rest/validator"
)

type AuthController struct {
	logger      *zap.Logger
	authService ports.Auth
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	authService ports.Auth,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		authService: authService,
	}

	r.POST(RouteRegister, ac.RegisterHandler)
	r.POST(RouteLogin, ac.LoginHandler)

	return ac
}

func (ac *AuthController) RegisterHandler(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"success": false, "message": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateRegister(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"errors":  errs,
		})
		return
	}

	if _, err := ac.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		if errors.Is(err, userDB.ErrEmailAlreadyExists) || errors.Is(err, userDB.ErrUsernameAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"success": false, "message": "failed to register user"},
		)
		ac.logger.Error("Register() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusCreated, auth.RegisterResponse{
		Success: true,
		Message: "User registered successfully",
	})
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"success": false, "message": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateLogin(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
			"errors":  errs,
		})
		return
	}

	token, u, err := ac.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// One message for unknown email and wrong password alike.
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"success": false, "message": "failed to log in"},
		)
		ac.logger.Error("Login() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, auth.LoginResponse{
		Success: true,
		Token:   token,
		User:    user.ToResponseUser(*u),
	})
}
