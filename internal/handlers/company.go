package handlers

import (
	"context"
	"fmt"
	"net/http"

	"asset-registry/internal/cnpj"
	"asset-registry/internal/dto"
	"asset-registry/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListCompanyNames(c *gin.Context) {
	h.cachedJSON(c, keyCompanies, func(ctx context.Context) (interface{}, error) {
		rows, err := h.store.ListCompanies(ctx)
		if err != nil {
			return nil, err
		}
		return dto.Names(rows, func(co models.Company) string { return co.Name }), nil
	})
}

func (h *Handler) ListCompanies(c *gin.Context) {
	h.cachedJSON(c, keyCompanyList, func(ctx context.Context) (interface{}, error) {
		rows, err := h.store.ListCompanies(ctx)
		if err != nil {
			return nil, err
		}
		return dto.CompanyItems(rows), nil
	})
}

// bindCompany decodes the body and normalizes the CNPJ to digits. The
// client checks it too; this repeats the check for direct API callers.
func bindCompany(c *gin.Context) (dto.CompanyRequest, bool) {
	var req dto.CompanyRequest
	if !bindJSON(c, &req) {
		return req, false
	}
	digits, err := cnpj.Normalize(req.TaxID)
	if err != nil {
		badRequest(c, "cnpjEmpresa", err.Error())
		return req, false
	}
	req.TaxID = digits
	return req, true
}

func (h *Handler) CreateCompany(c *gin.Context) {
	req, ok := bindCompany(c)
	if !ok {
		return
	}
	company, err := h.store.CreateCompany(c.Request.Context(), req.ToInput())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.companiesChanged(c)
	h.audit(c, "company", company.ID, "create", "Empresa cadastrada: "+company.Name)
	c.JSON(http.StatusCreated, dto.CompanyItems([]models.Company{company})[0])
}

func (h *Handler) UpdateCompany(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	req, ok := bindCompany(c)
	if !ok {
		return
	}
	if err := h.store.UpdateCompany(c.Request.Context(), id, req.ToInput()); err != nil {
		h.fail(c, err)
		return
	}
	h.companiesChanged(c)
	h.audit(c, "company", id, "update", "Empresa atualizada: "+req.Name)
	c.JSON(http.StatusOK, gin.H{"message": "Empresa atualizada com sucesso"})
}

func (h *Handler) DeleteCompany(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.store.DeleteCompany(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	h.companiesChanged(c)
	h.audit(c, "company", id, "delete", fmt.Sprintf("Empresa %d excluída", id))
	c.JSON(http.StatusOK, gin.H{"message": "Empresa excluída com sucesso"})
}

func (h *Handler) companiesChanged(c *gin.Context) {
	h.invalidate(c.Request.Context(), keyCompanies, keyCompanyList, keyAssets)
}
