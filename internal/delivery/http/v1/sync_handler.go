package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meup-backend/internal/cloudsync"
	"meup-backend/internal/delivery/http/response"
	"meup-backend/internal/domain"
	"meup-backend/pkg/apperror"
	"meup-backend/pkg/audit"
)

type SyncHandler struct {
	manager *cloudsync.Manager
	store   domain.Store
}

// NewSyncHandler registers the cross-device sync room routes.
func NewSyncHandler(group *gin.RouterGroup, manager *cloudsync.Manager, store domain.Store) {
	handler := &SyncHandler{manager: manager, store: store}

	group.GET("/sync/status", handler.Status)
	group.POST("/sync/room", handler.Join)
	group.DELETE("/sync/room", handler.Leave)
	group.POST("/sync/refresh", handler.Refresh)
}

type joinRoomRequest struct {
	Room string `json:"room" binding:"required"`
}

func (h *SyncHandler) Status(c *gin.Context) {
	room := h.manager.Room()
	response.Success(c, http.StatusOK, "Sync status", gin.H{
		"room":        room,
		"syncing":     room != "",
		"last_update": h.store.LastUpdate(),
	})
}

func (h *SyncHandler) Join(c *gin.Context) {
	var req joinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Room name is required"))
		return
	}

	h.manager.Start(req.Room)
	audit.Default().Event(audit.EventSyncRoomJoined, c.GetString(string(domain.KeyUserID)), zap.String("room", req.Room))

	response.Success(c, http.StatusOK, "Joined sync room", gin.H{"room": h.manager.Room()})
}

func (h *SyncHandler) Leave(c *gin.Context) {
	h.manager.Stop()
	audit.Default().Event(audit.EventSyncRoomLeft, c.GetString(string(domain.KeyUserID)))

	response.Success(c, http.StatusOK, "Left sync room", nil)
}

func (h *SyncHandler) Refresh(c *gin.Context) {
	updated := h.manager.ForceRefresh(c.Request.Context())
	response.Success(c, http.StatusOK, "Refresh complete", gin.H{"updated": updated})
}
