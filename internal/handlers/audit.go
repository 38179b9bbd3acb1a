package handlers

import (
	"net/http"
	"strconv"

	"asset-registry/internal/dto"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs returns the newest journal entries; ?limit caps the count (max 200).
func (h *Handler) ListAuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	logs, err := h.store.ListAuditLogs(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AuditItems(logs))
}
