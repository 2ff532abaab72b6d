package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meup-backend/internal/delivery/http/response"
	"meup-backend/internal/domain"
	"meup-backend/pkg/apperror"
)

type ChatHandler struct {
	chatUsecase domain.ChatUsecase
}

// NewChatHandler registers the per-job chat routes.
func NewChatHandler(group *gin.RouterGroup, chatUsecase domain.ChatUsecase) {
	handler := &ChatHandler{chatUsecase: chatUsecase}

	group.GET("/jobs/:id/messages", handler.List)
	group.POST("/jobs/:id/messages", handler.Post)
}

type postMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *ChatHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	messages, err := h.chatUsecase.ListByJob(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Messages", messages)
}

func (h *ChatHandler) Post(c *gin.Context) {
	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Message text is required"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	message, err := h.chatUsecase.Post(c.Request.Context(), userID, c.Param("id"), req.Message)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Message sent", message)
}
