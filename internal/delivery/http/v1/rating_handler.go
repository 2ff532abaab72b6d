package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meup-backend/internal/delivery/http/response"
	"meup-backend/internal/domain"
	"meup-backend/pkg/apperror"
)

type RatingHandler struct {
	ratingUsecase domain.RatingUsecase
}

// NewRatingHandler registers the rating routes.
func NewRatingHandler(group *gin.RouterGroup, ratingUsecase domain.RatingUsecase) {
	handler := &RatingHandler{ratingUsecase: ratingUsecase}

	group.POST("/ratings", handler.Rate)
	group.GET("/ratings/me", handler.ListMine)
}

func (h *RatingHandler) Rate(c *gin.Context) {
	var req domain.RatingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	raterID := c.GetString(string(domain.KeyUserID))
	rating, err := h.ratingUsecase.Rate(c.Request.Context(), raterID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Rating recorded", rating)
}

func (h *RatingHandler) ListMine(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	ratings, err := h.ratingUsecase.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Ratings received", ratings)
}
