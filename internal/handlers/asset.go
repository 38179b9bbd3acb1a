package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"asset-registry/internal/dto"
	"asset-registry/internal/export"

	"github.com/gin-gonic/gin"
)

//
// LIST
//

func (h *Handler) ListAssets(c *gin.Context) {
	h.cachedJSON(c, keyAssets, func(ctx context.Context) (interface{}, error) {
		assets, err := h.store.ListAssets(ctx)
		if err != nil {
			return nil, err
		}
		return dto.NewAssetRows(assets), nil
	})
}

func (h *Handler) GetAsset(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	asset, err := h.store.GetAsset(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAssetRow(asset))
}

// ExportAssets sends the joined list as an xlsx attachment.
func (h *Handler) ExportAssets(c *gin.Context) {
	assets, err := h.store.ListAssets(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	data, err := export.AssetsXLSX(dto.NewAssetRows(assets))
	if err != nil {
		h.fail(c, err)
		return
	}
	filename := fmt.Sprintf("ativos-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, export.ContentType, data)
}

//
// CREATE / UPDATE
//

func (h *Handler) CreateAsset(c *gin.Context) {
	var req dto.AssetRequest
	if !bindJSON(c, &req) {
		return
	}

	asset, err := h.store.CreateAsset(c.Request.Context(), req.ToInput())
	if err != nil {
		h.fail(c, err)
		return
	}

	h.invalidate(c.Request.Context(), keyAssets)
	h.audit(c, "asset", asset.ID, "create", fmt.Sprintf("Ativo cadastrado: %s - %s", asset.Code, asset.Name))
	c.JSON(http.StatusCreated, dto.CreatedAsset{ID: asset.ID})
}

func (h *Handler) UpdateAsset(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.AssetRequest
	if !bindJSON(c, &req) {
		return
	}

	asset, err := h.store.UpdateAsset(c.Request.Context(), id, req.ToInput())
	if err != nil {
		h.fail(c, err)
		return
	}

	h.invalidate(c.Request.Context(), keyAssets)
	h.audit(c, "asset", id, "update", fmt.Sprintf("Ativo atualizado: %s - %s", asset.Code, asset.Name))
	c.JSON(http.StatusOK, gin.H{"message": "Ativo atualizado com sucesso"})
}

//
// DELETE / DEACTIVATE
//

func (h *Handler) DeleteAsset(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteAsset(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	h.invalidate(c.Request.Context(), keyAssets)
	h.audit(c, "asset", id, "delete", fmt.Sprintf("Ativo %d excluído", id))
	c.JSON(http.StatusOK, gin.H{"message": "Ativo excluído com sucesso"})
}

func (h *Handler) DeactivateAsset(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.store.DeactivateAsset(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}

	h.invalidate(c.Request.Context(), keyAssets)
	h.audit(c, "asset", id, "deactivate", fmt.Sprintf("Baixa do ativo %d", id))
	c.JSON(http.StatusOK, gin.H{"message": "Baixa realizada com sucesso"})
}
