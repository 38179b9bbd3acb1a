// Package dto maps storage rows to the JSON shapes the dashboard consumes.
// Wire keys keep the Portuguese naming of the existing front-end.
package dto

import (
	"strings"
	"time"

	"asset-registry/internal/models"
	"asset-registry/internal/store"
)

// Status flag values accepted in write bodies.
const (
	FlagActive   = "active"
	FlagInactive = "inactive"
)

type AssetRow struct {
	ID               uint      `json:"idItem"`
	Code             string    `json:"codigo"`
	Name             string    `json:"nome"`
	Description      string    `json:"descricaoItem"`
	ImageURL         string    `json:"imagem"`
	Brand            string    `json:"marca"`
	Model            string    `json:"modelo"`
	Company          string    `json:"empresa"`
	Sector           string    `json:"setor"`
	GroupID          *uint     `json:"grupo"`
	GroupName        string    `json:"descricaoGrupo"`
	SubgroupID       *uint     `json:"subgrupo"`
	SubgroupName     string    `json:"descricaoSubgrupo"`
	Status           string    `json:"status"`
	Location         string    `json:"ondeEsta"`
	RegistrationDate time.Time `json:"dataCadastro"`
}

// NewAssetRow flattens an asset with its preloaded lookups.
func NewAssetRow(a models.Asset) AssetRow {
	row := AssetRow{
		ID:               a.ID,
		Code:             a.Code,
		Name:             a.Name,
		Description:      a.Description,
		ImageURL:         a.ImageURL,
		Model:            a.Model,
		GroupID:          a.GroupID,
		SubgroupID:       a.SubgroupID,
		Status:           a.Status.Name,
		Location:         a.Location,
		RegistrationDate: a.CreatedAt,
	}
	if a.Brand != nil {
		row.Brand = a.Brand.Name
	}
	if a.Company != nil {
		row.Company = a.Company.Name
	}
	if a.Sector != nil {
		row.Sector = a.Sector.Name
	}
	if a.Group != nil {
		row.GroupName = a.Group.Name
	}
	if a.Subgroup != nil {
		row.SubgroupName = a.Subgroup.Name
	}
	return row
}

func NewAssetRows(assets []models.Asset) []AssetRow {
	rows := make([]AssetRow, 0, len(assets))
	for _, a := range assets {
		rows = append(rows, NewAssetRow(a))
	}
	return rows
}

type AssetRequest struct {
	Code        string `json:"codigo"`
	Name        string `json:"nome"`
	Description string `json:"descricaoItem"`
	ImageURL    string `json:"imagem"`
	Brand       string `json:"marca"`
	Model       string `json:"modelo"`
	Company     string `json:"empresa"`
	Sector      string `json:"setor"`
	GroupID     uint   `json:"idGrupo"`
	SubgroupID  uint   `json:"idSubgrupo"`
	Status      string `json:"status"`
	Location    string `json:"ondeEsta"`
}

// IsActiveFlag maps the write-body status: "active" or "Ativo" is active,
// anything else (including empty) writes the asset off.
func IsActiveFlag(status string) bool {
	s := strings.TrimSpace(status)
	return strings.EqualFold(s, FlagActive) || strings.EqualFold(s, models.StatusActive)
}

func (r AssetRequest) ToInput() store.AssetInput {
	return store.AssetInput{
		Code:        r.Code,
		Name:        r.Name,
		Description: r.Description,
		Model:       r.Model,
		Location:    r.Location,
		ImageURL:    r.ImageURL,
		BrandName:   r.Brand,
		CompanyName: r.Company,
		SectorName:  r.Sector,
		GroupID:     r.GroupID,
		SubgroupID:  r.SubgroupID,
		Active:      IsActiveFlag(r.Status),
	}
}

type CreatedAsset struct {
	ID uint `json:"idItem"`
}
