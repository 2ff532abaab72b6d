package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meup-backend/internal/delivery/http/response"
	"meup-backend/internal/domain"
	"meup-backend/pkg/apperror"
)

type AdminHandler struct {
	adminUsecase domain.AdminUsecase
}

// NewAdminHandler registers the back-office routes. The group is expected to
// carry the admin role guard already.
func NewAdminHandler(group *gin.RouterGroup, adminUsecase domain.AdminUsecase) {
	handler := &AdminHandler{adminUsecase: adminUsecase}

	group.GET("/users", handler.ListUsers)
	group.POST("/users", handler.CreateUser)
	group.GET("/users/:id", handler.GetUser)
	group.POST("/users/:id/verify", handler.ToggleVerification)
	group.POST("/users/:id/suspend", handler.SetSuspended)
	group.GET("/jobs", handler.ListJobs)
	group.GET("/stats", handler.Stats)
	group.POST("/reset", handler.Reset)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminUsecase.ListUsers(c.Request.Context(), c.Query("search"), c.Query("role"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users", users)
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req domain.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	profile, err := h.adminUsecase.CreateUser(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "User created", profile)
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.adminUsecase.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User detail", user)
}

func (h *AdminHandler) ToggleVerification(c *gin.Context) {
	user, err := h.adminUsecase.ToggleVerification(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Verification updated", user)
}

type suspendRequest struct {
	Suspended *bool `json:"suspended" binding:"required"`
}

func (h *AdminHandler) SetSuspended(c *gin.Context) {
	var req suspendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Field 'suspended' is required"))
		return
	}

	if err := h.adminUsecase.SetSuspended(c.Request.Context(), c.Param("id"), *req.Suspended); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Suspension updated", nil)
}

func (h *AdminHandler) ListJobs(c *gin.Context) {
	jobs, err := h.adminUsecase.ListJobs(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "All jobs", jobs)
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminUsecase.Stats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Platform stats", stats)
}

func (h *AdminHandler) Reset(c *gin.Context) {
	if err := h.adminUsecase.Reset(c.Request.Context()); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Demo data reset", nil)
}
