package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meup-backend/internal/delivery/http/response"
	"meup-backend/internal/domain"
	"meup-backend/pkg/apperror"
)

type AssignmentHandler struct {
	assignmentUsecase domain.AssignmentUsecase
}

// NewAssignmentHandler registers the execution routes. Check-in belongs to
// the professional; start and finish belong to the company.
func NewAssignmentHandler(group *gin.RouterGroup, assignmentUsecase domain.AssignmentUsecase) {
	handler := &AssignmentHandler{assignmentUsecase: assignmentUsecase}

	group.GET("/jobs/:id/assignment", handler.GetByJob)
	group.POST("/jobs/:id/checkin", handler.CheckIn)
	group.POST("/jobs/:id/start", handler.Start)
	group.POST("/jobs/:id/finish", handler.Finish)
	group.GET("/professionals/assignment", handler.GetActive)
}

func (h *AssignmentHandler) GetByJob(c *gin.Context) {
	assignment, err := h.assignmentUsecase.GetByJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Assignment", assignment)
}

func (h *AssignmentHandler) CheckIn(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.RoleProfessional {
		c.Error(apperror.Forbidden("Professional account required"))
		return
	}

	professionalID := c.GetString(string(domain.KeyUserID))
	assignment, err := h.assignmentUsecase.CheckIn(c.Request.Context(), professionalID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Checked in", assignment)
}

func (h *AssignmentHandler) Start(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.RoleCompany {
		c.Error(apperror.Forbidden("Company account required"))
		return
	}

	companyID := c.GetString(string(domain.KeyUserID))
	assignment, err := h.assignmentUsecase.Start(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Execution started", assignment)
}

func (h *AssignmentHandler) Finish(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.RoleCompany {
		c.Error(apperror.Forbidden("Company account required"))
		return
	}

	companyID := c.GetString(string(domain.KeyUserID))
	assignment, err := h.assignmentUsecase.Finish(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job finished", assignment)
}

func (h *AssignmentHandler) GetActive(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.RoleProfessional {
		c.Error(apperror.Forbidden("Professional account required"))
		return
	}

	professionalID := c.GetString(string(domain.KeyUserID))
	assignment, err := h.assignmentUsecase.GetActiveForProfessional(c.Request.Context(), professionalID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Active assignment", assignment)
}
