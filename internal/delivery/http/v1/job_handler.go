package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meup-backend/internal/delivery/http/response"
	"meup-backend/internal/domain"
	"meup-backend/pkg/apperror"
)

type JobHandler struct {
	jobUsecase domain.JobUsecase
}

// NewJobHandler registers the chamado routes. Creation and lifecycle moves
// are company actions; reads are open to any authenticated user.
func NewJobHandler(group *gin.RouterGroup, jobUsecase domain.JobUsecase) {
	handler := &JobHandler{jobUsecase: jobUsecase}

	group.POST("/jobs", handler.Create)
	group.GET("/jobs/:id", handler.Get)
	group.POST("/jobs/:id/distribute", handler.Distribute)
	group.POST("/jobs/:id/cancel", handler.Cancel)
	group.GET("/companies/jobs", handler.ListByCompany)
	group.GET("/professionals/jobs/available", handler.ListAvailable)
}

type createJobRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	SkillRequired string   `json:"skill_required"`
	DateStart     string   `json:"date_start"`
	DurationHours int      `json:"duration_hours"`
	ValueOffered  float64  `json:"value_offered"`
	AddressText   string   `json:"address_text"`
	GeoLat        float64  `json:"geo_lat"`
	GeoLng        float64  `json:"geo_lng"`
	TargetIDs     []string `json:"target_ids"`
}

func (h *JobHandler) Create(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.RoleCompany {
		c.Error(apperror.Forbidden("Only companies can create jobs"))
		return
	}

	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	job := &domain.JobRequest{
		Title:         req.Title,
		Description:   req.Description,
		SkillRequired: req.SkillRequired,
		DurationHours: req.DurationHours,
		ValueOffered:  req.ValueOffered,
		AddressText:   req.AddressText,
		GeoLat:        req.GeoLat,
		GeoLng:        req.GeoLng,
	}
	if req.DateStart != "" {
		t, err := parseDate(req.DateStart)
		if err != nil {
			c.Error(apperror.BadRequest("Invalid date_start"))
			return
		}
		job.DateStart = t
	}

	companyID := c.GetString(string(domain.KeyUserID))
	created, err := h.jobUsecase.CreateJob(c.Request.Context(), companyID, job, req.TargetIDs)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", created)
}

func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobUsecase.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job detail", job)
}

func (h *JobHandler) Distribute(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.RoleCompany {
		c.Error(apperror.Forbidden("Only companies can distribute jobs"))
		return
	}

	companyID := c.GetString(string(domain.KeyUserID))
	offers, err := h.jobUsecase.Distribute(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job distributed", gin.H{"offers": offers, "count": len(offers)})
}

func (h *JobHandler) Cancel(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.RoleCompany {
		c.Error(apperror.Forbidden("Only companies can cancel jobs"))
		return
	}

	companyID := c.GetString(string(domain.KeyUserID))
	if err := h.jobUsecase.Cancel(c.Request.Context(), companyID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job cancelled", nil)
}

func (h *JobHandler) ListByCompany(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.RoleCompany {
		c.Error(apperror.Forbidden("Company account required"))
		return
	}

	companyID := c.GetString(string(domain.KeyUserID))
	jobs, err := h.jobUsecase.ListByCompany(c.Request.Context(), companyID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Company jobs", jobs)
}

func (h *JobHandler) ListAvailable(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.RoleProfessional {
		c.Error(apperror.Forbidden("Professional account required"))
		return
	}

	professionalID := c.GetString(string(domain.KeyUserID))
	jobs, err := h.jobUsecase.ListAvailable(c.Request.Context(), professionalID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Available jobs", jobs)
}
