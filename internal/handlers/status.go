package handlers

import (
	"context"

	"asset-registry/internal/dto"

	"github.com/gin-gonic/gin"
)

// ListStatuses serves the two seeded rows; they never change at runtime.
func (h *Handler) ListStatuses(c *gin.Context) {
	h.cachedJSON(c, keyStatuses, func(ctx context.Context) (interface{}, error) {
		rows, err := h.store.ListStatuses(ctx)
		if err != nil {
			return nil, err
		}
		return dto.StatusItems(rows), nil
	})
}
