package handlers

import (
	"net/http"

	"jewelmart/internal/common"
	"jewelmart/internal/models"
	"jewelmart/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	authService services.AuthService
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	services.TokenResponse
	User *models.User `json:"user"`
}

// Login handles POST /auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Username == "" || req.Password == "" {
		return common.SendClientError(c, "Username and password are required")
	}

	tokens, user, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		if common.IsValidation(err) {
			return common.SendUnauthorizedError(c)
		}
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, LoginResponse{TokenResponse: *tokens, User: user})
}

// SignupRequest represents the signup request payload
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup handles POST /auth/signup
func (h *AuthHandlers) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	user, err := h.authService.Register(ctx, req.Username, req.Password)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// Me handles GET /me
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	user, err := h.authService.GetUser(ctx, userID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
