package handlers

import (
	"context"
	"fmt"
	"net/http"

	"asset-registry/internal/dto"
	"asset-registry/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListSectorNames(c *gin.Context) {
	h.cachedJSON(c, keySectors, func(ctx context.Context) (interface{}, error) {
		rows, err := h.store.ListSectors(ctx)
		if err != nil {
			return nil, err
		}
		return dto.Names(rows, func(s models.Sector) string { return s.Name }), nil
	})
}

func (h *Handler) ListSectors(c *gin.Context) {
	h.cachedJSON(c, keySectorList, func(ctx context.Context) (interface{}, error) {
		rows, err := h.store.ListSectors(ctx)
		if err != nil {
			return nil, err
		}
		return dto.SectorItems(rows), nil
	})
}

func (h *Handler) CreateSector(c *gin.Context) {
	var req dto.SectorRequest
	if !bindJSON(c, &req) {
		return
	}
	sector, err := h.store.CreateSector(c.Request.Context(), req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.sectorsChanged(c)
	h.audit(c, "sector", sector.ID, "create", "Setor cadastrado: "+sector.Name)
	c.JSON(http.StatusCreated, dto.SectorItem{ID: sector.ID, Name: sector.Name})
}

func (h *Handler) UpdateSector(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.SectorRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.store.UpdateSector(c.Request.Context(), id, req.Name); err != nil {
		h.fail(c, err)
		return
	}
	h.sectorsChanged(c)
	h.audit(c, "sector", id, "update", "Setor renomeado: "+req.Name)
	c.JSON(http.StatusOK, gin.H{"message": "Setor atualizado com sucesso"})
}

func (h *Handler) DeleteSector(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteSector(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	h.sectorsChanged(c)
	h.audit(c, "sector", id, "delete", fmt.Sprintf("Setor %d excluído", id))
	c.JSON(http.StatusOK, gin.H{"message": "Setor excluído com sucesso"})
}

func (h *Handler) sectorsChanged(c *gin.Context) {
	h.invalidate(c.Request.Context(), keySectors, keySectorList, keyAssets)
}
