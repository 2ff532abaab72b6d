package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"meup-backend/internal/delivery/http/response"
	"meup-backend/internal/kv"
	"meup-backend/pkg/apperror"
)

// maxSlotBytes bounds a single slot write. Snapshots for the demo data stay
// far below this.
const maxSlotBytes = 8 << 20

type KVHandler struct {
	slots kv.SlotStore
}

// NewKVHandler registers the raw key-value slot routes used by sync rooms.
// Slots are opaque JSON blobs; the handler never inspects them.
func NewKVHandler(group *gin.RouterGroup, slots kv.SlotStore) {
	handler := &KVHandler{slots: slots}

	group.GET("/kv/:key", handler.Get)
	group.POST("/kv/:key", handler.Set)
}

func (h *KVHandler) Get(c *gin.Context) {
	value, err := h.slots.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			response.Error(c, http.StatusNotFound, "Key not found", nil)
			return
		}
		c.Error(apperror.Internal(err))
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/json", value)
}

func (h *KVHandler) Set(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSlotBytes+1))
	if err != nil {
		c.Error(apperror.BadRequest("Unreadable request body"))
		return
	}
	if len(body) == 0 {
		c.Error(apperror.BadRequest("Empty body"))
		return
	}
	if len(body) > maxSlotBytes {
		c.Error(apperror.BadRequest("Payload too large"))
		return
	}

	if err := h.slots.Set(c.Request.Context(), c.Param("key"), body); err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	response.Success(c, http.StatusOK, "Stored", nil)
}
