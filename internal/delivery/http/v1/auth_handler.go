package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meup-backend/internal/delivery/http/response"
	"meup-backend/internal/domain"
	"meup-backend/pkg/apperror"
)

type AuthHandler struct {
	authUsecase domain.AuthUsecase
}

// NewAuthHandler registers the public auth routes on the given group.
func NewAuthHandler(group *gin.RouterGroup, authUsecase domain.AuthUsecase) {
	handler := &AuthHandler{authUsecase: authUsecase}

	group.POST("/auth/register", handler.Register)
	group.POST("/auth/login", handler.Login)
}

// NewAuthMeHandler registers the authenticated profile route.
func NewAuthMeHandler(group *gin.RouterGroup, authUsecase domain.AuthUsecase) {
	handler := &AuthHandler{authUsecase: authUsecase}

	group.GET("/auth/me", handler.Me)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  *domain.Profile `json:"user"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	profile, err := h.authUsecase.Register(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Account created", profile)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Email and password are required"))
		return
	}

	profile, token, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", loginResponse{Token: token, User: profile})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	profile, err := h.authUsecase.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Current user", profile)
}
