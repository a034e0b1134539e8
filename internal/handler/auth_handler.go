package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/udmdigital/lead-crm-api/internal/dto"
	"github.com/udmdigital/lead-crm-api/internal/middleware"
	"github.com/udmdigital/lead-crm-api/internal/service"
)

// AuthHandler exposes authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /auth/login requests.
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return Error(c, http.StatusBadRequest, "email and password are required")
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return Error(c, http.StatusUnauthorized, "invalid credentials")
		}
		return Error(c, http.StatusInternalServerError, "unable to authenticate")
	}

	return Success(c, http.StatusOK, "login successful", dto.LoginResponse{AccessToken: token})
}

// Register handles POST /auth/register requests.
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return Error(c, http.StatusBadRequest, "email and password are required")
	}

	token, err := h.authService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyExists):
			return Error(c, http.StatusConflict, "email already exists")
		default:
			var verr service.ValidationError
			if errors.As(err, &verr) {
				return Error(c, http.StatusBadRequest, verr.Message)
			}
			return Error(c, http.StatusInternalServerError, "unable to register user")
		}
	}

	return Success(c, http.StatusCreated, "registration successful", dto.LoginResponse{AccessToken: token})
}

// ResetPassword handles POST /auth/reset-password requests. The response is
// identical whether or not the address belongs to an account.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req dto.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return Error(c, http.StatusBadRequest, "email is required")
	}

	h.authService.ResetPassword(c.Request().Context(), req.Email)

	return Success(c, http.StatusOK, "if the account exists, a reset email has been sent", nil)
}

// CompleteReset handles POST /auth/reset-password/complete requests,
// exchanging an emailed reset token for a new password.
func (h *AuthHandler) CompleteReset(c echo.Context) error {
	var req dto.CompleteResetRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	err := h.authService.CompleteReset(c.Request().Context(), req.Token, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			return Error(c, http.StatusUnauthorized, "invalid or expired reset token")
		}
		var verr service.ValidationError
		if errors.As(err, &verr) {
			return Error(c, http.StatusBadRequest, verr.Message)
		}
		return Error(c, http.StatusInternalServerError, "unable to reset password")
	}

	return Success(c, http.StatusOK, "password updated", nil)
}

// Me handles GET /auth/me requests, echoing the authenticated session.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _ := c.Get(middleware.ContextKeyUserID).(string)
	email, _ := c.Get(middleware.ContextKeyUserEmail).(string)
	role, _ := c.Get(middleware.ContextKeyUserRole).(string)

	if userID == "" {
		return Error(c, http.StatusUnauthorized, "no active session")
	}

	return Success(c, http.StatusOK, "session active", dto.SessionResponse{
		UserID: userID,
		Email:  email,
		Role:   role,
	})
}
