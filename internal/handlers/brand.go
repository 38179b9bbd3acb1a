package handlers

import (
	"context"
	"fmt"
	"net/http"

	"asset-registry/internal/dto"
	"asset-registry/internal/models"

	"github.com/gin-gonic/gin"
)

// ListBrandNames feeds the brand select of the asset form.
func (h *Handler) ListBrandNames(c *gin.Context) {
	h.cachedJSON(c, keyBrands, func(ctx context.Context) (interface{}, error) {
		rows, err := h.store.ListBrands(ctx)
		if err != nil {
			return nil, err
		}
		return dto.Names(rows, func(b models.Brand) string { return b.Name }), nil
	})
}

func (h *Handler) ListBrands(c *gin.Context) {
	h.cachedJSON(c, keyBrandList, func(ctx context.Context) (interface{}, error) {
		rows, err := h.store.ListBrands(ctx)
		if err != nil {
			return nil, err
		}
		return dto.BrandItems(rows), nil
	})
}

func (h *Handler) CreateBrand(c *gin.Context) {
	var req dto.BrandRequest
	if !bindJSON(c, &req) {
		return
	}
	brand, err := h.store.CreateBrand(c.Request.Context(), req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.brandsChanged(c)
	h.audit(c, "brand", brand.ID, "create", "Marca cadastrada: "+brand.Name)
	c.JSON(http.StatusCreated, dto.BrandItem{ID: brand.ID, Name: brand.Name})
}

func (h *Handler) UpdateBrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.BrandRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.store.UpdateBrand(c.Request.Context(), id, req.Name); err != nil {
		h.fail(c, err)
		return
	}
	h.brandsChanged(c)
	h.audit(c, "brand", id, "update", "Marca renomeada: "+req.Name)
	c.JSON(http.StatusOK, gin.H{"message": "Marca atualizada com sucesso"})
}

func (h *Handler) DeleteBrand(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteBrand(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	h.brandsChanged(c)
	h.audit(c, "brand", id, "delete", fmt.Sprintf("Marca %d excluída", id))
	c.JSON(http.StatusOK, gin.H{"message": "Marca excluída com sucesso"})
}

func (h *Handler) brandsChanged(c *gin.Context) {
	h.invalidate(c.Request.Context(), keyBrands, keyBrandList, keyAssets)
}
