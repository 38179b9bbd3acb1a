package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"asset-registry/internal/dto"

	"github.com/gin-gonic/gin"
)

//
// GROUPS
//

func (h *Handler) ListGroups(c *gin.Context) {
	h.cachedJSON(c, keyGroups, func(ctx context.Context) (interface{}, error) {
		rows, err := h.store.ListGroups(ctx)
		if err != nil {
			return nil, err
		}
		return dto.GroupItems(rows), nil
	})
}

func (h *Handler) CreateGroup(c *gin.Context) {
	var req dto.GroupRequest
	if !bindJSON(c, &req) {
		return
	}
	group, err := h.store.CreateGroup(c.Request.Context(), req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.groupsChanged(c)
	h.audit(c, "group", group.ID, "create", "Grupo cadastrado: "+group.Name)
	c.JSON(http.StatusCreated, dto.GroupItem{ID: group.ID, Name: group.Name})
}

func (h *Handler) UpdateGroup(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.GroupRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.store.UpdateGroup(c.Request.Context(), id, req.Name); err != nil {
		h.fail(c, err)
		return
	}
	h.groupsChanged(c)
	h.audit(c, "group", id, "update", "Grupo renomeado: "+req.Name)
	c.JSON(http.StatusOK, gin.H{"message": "Grupo atualizado com sucesso"})
}

func (h *Handler) DeleteGroup(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteGroup(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	h.groupsChanged(c)
	h.audit(c, "group", id, "delete", fmt.Sprintf("Grupo %d excluído", id))
	c.JSON(http.StatusOK, gin.H{"message": "Grupo excluído com sucesso"})
}

func (h *Handler) groupsChanged(c *gin.Context) {
	h.invalidate(c.Request.Context(), keyGroups, keySubgroups, keyAssets)
}

//
// SUBGROUPS
//

// ListSubgroups returns every subgroup, or only those of ?idGrupo=N.
// Filtered lists bypass the cache.
func (h *Handler) ListSubgroups(c *gin.Context) {
	raw := c.Query("idGrupo")
	if raw == "" {
		h.cachedJSON(c, keySubgroups, func(ctx context.Context) (interface{}, error) {
			rows, err := h.store.ListSubgroups(ctx, 0)
			if err != nil {
				return nil, err
			}
			return dto.SubgroupItems(rows), nil
		})
		return
	}

	groupID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || groupID == 0 {
		badRequest(c, "idGrupo", "idGrupo inválido")
		return
	}
	rows, err := h.store.ListSubgroups(c.Request.Context(), uint(groupID))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SubgroupItems(rows))
}

func (h *Handler) CreateSubgroup(c *gin.Context) {
	var req dto.SubgroupRequest
	if !bindJSON(c, &req) {
		return
	}
	sub, err := h.store.CreateSubgroup(c.Request.Context(), req.ToInput())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.subgroupsChanged(c)
	h.audit(c, "subgroup", sub.ID, "create", fmt.Sprintf("Subgrupo cadastrado: %s (grupo %d)", sub.Name, sub.GroupID))
	c.JSON(http.StatusCreated, dto.SubgroupItem{ID: sub.ID, Name: sub.Name, GroupID: sub.GroupID, Description: sub.Description})
}

func (h *Handler) UpdateSubgroup(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.SubgroupRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.store.UpdateSubgroup(c.Request.Context(), id, req.ToInput()); err != nil {
		h.fail(c, err)
		return
	}
	h.subgroupsChanged(c)
	h.audit(c, "subgroup", id, "update", fmt.Sprintf("Subgrupo atualizado: %s (grupo %d)", req.Name, req.GroupID))
	c.JSON(http.StatusOK, gin.H{"message": "Subgrupo atualizado com sucesso"})
}

func (h *Handler) DeleteSubgroup(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteSubgroup(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	h.subgroupsChanged(c)
	h.audit(c, "subgroup", id, "delete", fmt.Sprintf("Subgrupo %d excluído", id))
	c.JSON(http.StatusOK, gin.H{"message": "Subgrupo excluído com sucesso"})
}

func (h *Handler) subgroupsChanged(c *gin.Context) {
	h.invalidate(c.Request.Context(), keySubgroups, keyAssets)
}
