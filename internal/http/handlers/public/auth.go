package public

import (
	"errors"

	"github.com/minikart-next/minikart/internal/http/response"
	"github.com/minikart-next/minikart/internal/service"

	"github.com/gin-gonic/gin"
)

// Register creates a storefront account.
func (h *Handler) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	user, err := h.AuthService.Register(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField):
			response.BadRequest(c, "name, email, password, phone, address and answer are required")
		case errors.Is(err, service.ErrInvalidEmail):
			response.BadRequest(c, "invalid email address")
		case errors.Is(err, service.ErrWeakPassword):
			response.BadRequest(c, "password does not meet policy")
		case errors.Is(err, service.ErrEmailExists):
			response.Conflict(c, "already registered, please login")
		default:
			response.Internal(c, "registration failed")
		}
		return
	}

	response.Created(c, "user registered successfully", gin.H{"user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	user, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid email or password")
			return
		}
		response.Internal(c, "login failed")
		return
	}

	response.Success(c, "login successful", gin.H{
		"user":       user,
		"token":      token,
		"expires_at": expiresAt,
	})
}

type forgotPasswordRequest struct {
	Email       string `json:"email"`
	Answer      string `json:"answer"`
	NewPassword string `json:"new_password"`
}

// ForgotPassword resets the password against the security answer.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	err := h.AuthService.ForgotPassword(req.Email, req.Answer, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingField), errors.Is(err, service.ErrInvalidEmail):
			response.BadRequest(c, "email, answer and new password are required")
		case errors.Is(err, service.ErrWeakPassword):
			response.BadRequest(c, "password does not meet policy")
		case errors.Is(err, service.ErrNotFound):
			response.NotFound(c, "wrong email or answer")
		case errors.Is(err, service.ErrInvalidAnswer):
			response.NotFound(c, "wrong email or answer")
		default:
			response.Internal(c, "something went wrong")
		}
		return
	}

	response.Success(c, "password reset successfully", nil)
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	user, err := h.AuthService.GetByID(userID)
	if err != nil {
		response.Internal(c, "profile fetch failed")
		return
	}
	if user == nil {
		response.Unauthorized(c, "authentication required")
		return
	}
	response.Success(c, "success", gin.H{"user": user})
}

// FederatedCallback receives the provider popup result. The identity is
// logged and nothing else: no account is created or linked, and the
// storefront is told so.
func (h *Handler) FederatedCallback(c *gin.Context) {
	var identity service.FederatedIdentity
	if err := c.ShouldBindJSON(&identity); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.AuthService.LogFederatedIdentity(identity); err != nil {
		response.BadRequest(c, "provider and subject are required")
		return
	}

	response.Success(c, "federated sign-in recorded, account not linked", gin.H{
		"accepted": false,
	})
}
