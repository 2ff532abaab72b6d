package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"meup-backend/internal/delivery/http/response"
	"meup-backend/internal/domain"
	"meup-backend/pkg/apperror"
)

// parseDate accepts both full RFC3339 timestamps and bare dates, since the
// frontend date picker sends either depending on the field.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

type OfferHandler struct {
	offerUsecase domain.OfferUsecase
}

// NewOfferHandler registers the professional-side offer routes, plus the
// direct job acceptance shortcut for open jobs.
func NewOfferHandler(group *gin.RouterGroup, offerUsecase domain.OfferUsecase) {
	handler := &OfferHandler{offerUsecase: offerUsecase}

	group.GET("/offers", handler.List)
	group.POST("/offers/:id/accept", handler.Accept)
	group.POST("/offers/:id/decline", handler.Decline)
	group.DELETE("/offers/:id", handler.Remove)
	group.POST("/jobs/:id/accept", handler.AcceptJob)
}

func (h *OfferHandler) requireProfessional(c *gin.Context) (string, bool) {
	if c.GetString(string(domain.KeyUserRole)) != domain.RoleProfessional {
		c.Error(apperror.Forbidden("Professional account required"))
		return "", false
	}
	return c.GetString(string(domain.KeyUserID)), true
}

func (h *OfferHandler) List(c *gin.Context) {
	professionalID, ok := h.requireProfessional(c)
	if !ok {
		return
	}

	offers, err := h.offerUsecase.ListForProfessional(c.Request.Context(), professionalID, c.Query("status"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Offers", offers)
}

func (h *OfferHandler) Accept(c *gin.Context) {
	professionalID, ok := h.requireProfessional(c)
	if !ok {
		return
	}

	result, err := h.offerUsecase.Accept(c.Request.Context(), professionalID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Offer accepted", result)
}

func (h *OfferHandler) AcceptJob(c *gin.Context) {
	professionalID, ok := h.requireProfessional(c)
	if !ok {
		return
	}

	result, err := h.offerUsecase.AcceptJob(c.Request.Context(), professionalID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job accepted", result)
}

func (h *OfferHandler) Decline(c *gin.Context) {
	professionalID, ok := h.requireProfessional(c)
	if !ok {
		return
	}

	if err := h.offerUsecase.Decline(c.Request.Context(), professionalID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Offer declined", nil)
}

func (h *OfferHandler) Remove(c *gin.Context) {
	professionalID, ok := h.requireProfessional(c)
	if !ok {
		return
	}

	if err := h.offerUsecase.Remove(c.Request.Context(), professionalID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Offer removed", nil)
}
