package dto

import (
	"time"

	"asset-registry/internal/models"
	"asset-registry/internal/store"
)

type BrandItem struct {
	ID   uint   `json:"idMarca"`
	Name string `json:"descricaoMarca"`
}

type BrandRequest struct {
	Name string `json:"descricaoMarca"`
}

type CompanyItem struct {
	ID          uint   `json:"idEmpresa"`
	Name        string `json:"descricaoEmpresa"`
	TaxID       string `json:"cnpjEmpresa,omitempty"`
	Description string `json:"descricao,omitempty"`
}

type CompanyRequest struct {
	Name        string `json:"descricaoEmpresa"`
	TaxID       string `json:"cnpjEmpresa"`
	Description string `json:"descricao"`
}

// ToInput expects TaxID to be already normalized to digits.
func (r CompanyRequest) ToInput() store.CompanyInput {
	return store.CompanyInput{Name: r.Name, TaxID: r.TaxID, Description: r.Description}
}

type SectorItem struct {
	ID   uint   `json:"idSetor"`
	Name string `json:"descricaoSetor"`
}

type SectorRequest struct {
	Name string `json:"descricaoSetor"`
}

type GroupItem struct {
	ID   uint   `json:"idGrupo"`
	Name string `json:"descricaoGrupo"`
}

type GroupRequest struct {
	Name string `json:"descricaoGrupo"`
}

type SubgroupItem struct {
	ID          uint   `json:"idSubgrupo"`
	Name        string `json:"descricaoSubgrupo"`
	GroupID     uint   `json:"idGrupo"`
	Description string `json:"descricao,omitempty"`
}

type SubgroupRequest struct {
	Name        string `json:"descricaoSubgrupo"`
	GroupID     uint   `json:"idGrupo"`
	Description string `json:"descricao"`
}

func (r SubgroupRequest) ToInput() store.SubgroupInput {
	return store.SubgroupInput{Name: r.Name, GroupID: r.GroupID, Description: r.Description}
}

type StatusItem struct {
	ID   uint   `json:"idStatus"`
	Name string `json:"nomeStatus"`
}

type AuditItem struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Actor     string    `json:"actor"`
	Entity    string    `json:"entity"`
	EntityID  uint      `json:"entityId"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
}

func BrandItems(rows []models.Brand) []BrandItem {
	out := make([]BrandItem, 0, len(rows))
	for _, b := range rows {
		out = append(out, BrandItem{ID: b.ID, Name: b.Name})
	}
	return out
}

func CompanyItems(rows []models.Company) []CompanyItem {
	out := make([]CompanyItem, 0, len(rows))
	for _, c := range rows {
		item := CompanyItem{ID: c.ID, Name: c.Name, Description: c.Description}
		if c.TaxID != nil {
			item.TaxID = *c.TaxID
		}
		out = append(out, item)
	}
	return out
}

func SectorItems(rows []models.Sector) []SectorItem {
	out := make([]SectorItem, 0, len(rows))
	for _, s := range rows {
		out = append(out, SectorItem{ID: s.ID, Name: s.Name})
	}
	return out
}

func GroupItems(rows []models.Group) []GroupItem {
	out := make([]GroupItem, 0, len(rows))
	for _, g := range rows {
		out = append(out, GroupItem{ID: g.ID, Name: g.Name})
	}
	return out
}

func SubgroupItems(rows []models.Subgroup) []SubgroupItem {
	out := make([]SubgroupItem, 0, len(rows))
	for _, s := range rows {
		out = append(out, SubgroupItem{ID: s.ID, Name: s.Name, GroupID: s.GroupID, Description: s.Description})
	}
	return out
}

func StatusItems(rows []models.Status) []StatusItem {
	out := make([]StatusItem, 0, len(rows))
	for _, s := range rows {
		out = append(out, StatusItem{ID: s.ID, Name: s.Name})
	}
	return out
}

func AuditItems(rows []models.AuditLog) []AuditItem {
	out := make([]AuditItem, 0, len(rows))
	for _, l := range rows {
		out = append(out, AuditItem{
			ID:        l.ID,
			CreatedAt: l.CreatedAt,
			Actor:     l.Actor,
			Entity:    l.Entity,
			EntityID:  l.EntityID,
			Action:    l.Action,
			Details:   l.Details,
		})
	}
	return out
}

// Names projects a lookup list to the bare names used by form selects.
func Names[T any](rows []T, name func(T) string) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, name(r))
	}
	return out
}
