package store

import (
	"context"
	"strings"

	"asset-registry/internal/models"
)

type CompanyInput struct {
	Name        string
	TaxID       string // digits only, empty when unknown
	Description string
}

type SubgroupInput struct {
	Name        string
	GroupID     uint
	Description string
}

func listByName[T any](ctx context.Context, s *Store) ([]T, error) {
	rows := make([]T, 0)
	if err := s.db.WithContext(ctx).Order("name asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

//
// BRANDS
//

func (s *Store) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return listByName[models.Brand](ctx, s)
}

func (s *Store) CreateBrand(ctx context.Context, name string) (models.Brand, error) {
	name, err := requireName("descricaoMarca", name)
	if err != nil {
		return models.Brand{}, err
	}
	brand := models.Brand{Name: name}
	if err := s.db.WithContext(ctx).Create(&brand).Error; err != nil {
		return models.Brand{}, translate(err)
	}
	return brand, nil
}

func (s *Store) UpdateBrand(ctx context.Context, id uint, name string) error {
	name, err := requireName("descricaoMarca", name)
	if err != nil {
		return err
	}
	return s.updateColumns(ctx, &models.Brand{}, id, map[string]interface{}{"name": name})
}

func (s *Store) DeleteBrand(ctx context.Context, id uint) error {
	return s.deleteByID(ctx, &models.Brand{}, id)
}

//
// COMPANIES
//

func (s *Store) ListCompanies(ctx context.Context) ([]models.Company, error) {
	return listByName[models.Company](ctx, s)
}

func (s *Store) CreateCompany(ctx context.Context, in CompanyInput) (models.Company, error) {
	name, err := requireName("descricaoEmpresa", in.Name)
	if err != nil {
		return models.Company{}, err
	}
	company := models.Company{
		Name:        name,
		TaxID:       optional(in.TaxID),
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.db.WithContext(ctx).Create(&company).Error; err != nil {
		return models.Company{}, translate(err)
	}
	return company, nil
}

func (s *Store) UpdateCompany(ctx context.Context, id uint, in CompanyInput) error {
	name, err := requireName("descricaoEmpresa", in.Name)
	if err != nil {
		return err
	}
	return s.updateColumns(ctx, &models.Company{}, id, map[string]interface{}{
		"name":        name,
		"tax_id":      optional(in.TaxID),
		"description": strings.TrimSpace(in.Description),
	})
}

func (s *Store) DeleteCompany(ctx context.Context, id uint) error {
	return s.deleteByID(ctx, &models.Company{}, id)
}

//
// SECTORS
//

func (s *Store) ListSectors(ctx context.Context) ([]models.Sector, error) {
	return listByName[models.Sector](ctx, s)
}

func (s *Store) CreateSector(ctx context.Context, name string) (models.Sector, error) {
	name, err := requireName("descricaoSetor", name)
	if err != nil {
		return models.Sector{}, err
	}
	sector := models.Sector{Name: name}
	if err := s.db.WithContext(ctx).Create(&sector).Error; err != nil {
		return models.Sector{}, translate(err)
	}
	return sector, nil
}

func (s *Store) UpdateSector(ctx context.Context, id uint, name string) error {
	name, err := requireName("descricaoSetor", name)
	if err != nil {
		return err
	}
	return s.updateColumns(ctx, &models.Sector{}, id, map[string]interface{}{"name": name})
}

func (s *Store) DeleteSector(ctx context.Context, id uint) error {
	return s.deleteByID(ctx, &models.Sector{}, id)
}

//
// GROUPS / SUBGROUPS
//

func (s *Store) ListGroups(ctx context.Context) ([]models.Group, error) {
	return listByName[models.Group](ctx, s)
}

func (s *Store) CreateGroup(ctx context.Context, name string) (models.Group, error) {
	name, err := requireName("descricaoGrupo", name)
	if err != nil {
		return models.Group{}, err
	}
	group := models.Group{Name: name}
	if err := s.db.WithContext(ctx).Create(&group).Error; err != nil {
		return models.Group{}, translate(err)
	}
	return group, nil
}

func (s *Store) UpdateGroup(ctx context.Context, id uint, name string) error {
	name, err := requireName("descricaoGrupo", name)
	if err != nil {
		return err
	}
	return s.updateColumns(ctx, &models.Group{}, id, map[string]interface{}{"name": name})
}

func (s *Store) DeleteGroup(ctx context.Context, id uint) error {
	return s.deleteByID(ctx, &models.Group{}, id)
}

// ListSubgroups returns every subgroup, or only those of groupID when it is non-zero.
func (s *Store) ListSubgroups(ctx context.Context, groupID uint) ([]models.Subgroup, error) {
	q := s.db.WithContext(ctx).Order("name asc")
	if groupID != 0 {
		q = q.Where("group_id = ?", groupID)
	}
	rows := make([]models.Subgroup, 0)
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) CreateSubgroup(ctx context.Context, in SubgroupInput) (models.Subgroup, error) {
	name, err := requireName("descricaoSubgrupo", in.Name)
	if err != nil {
		return models.Subgroup{}, err
	}
	if err := s.requireGroup(ctx, in.GroupID); err != nil {
		return models.Subgroup{}, err
	}

	sub := models.Subgroup{
		Name:        name,
		GroupID:     in.GroupID,
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.db.WithContext(ctx).Omit("Group").Create(&sub).Error; err != nil {
		return models.Subgroup{}, translate(err)
	}
	return sub, nil
}

// UpdateSubgroup refuses to move a subgroup to another group while assets
// still pair it with its current group. The assets foreign key on
// (subgroup_id, group_id) holds the same rule for concurrent writers.
func (s *Store) UpdateSubgroup(ctx context.Context, id uint, in SubgroupInput) error {
	name, err := requireName("descricaoSubgrupo", in.Name)
	if err != nil {
		return err
	}
	return s.inTx(ctx, func(tx *Store) error {
		if err := tx.requireGroup(ctx, in.GroupID); err != nil {
			return err
		}

		var stale int64
		err := tx.db.WithContext(ctx).Model(&models.Asset{}).
			Where("subgroup_id = ? AND group_id <> ?", id, in.GroupID).
			Count(&stale).Error
		if err != nil {
			return err
		}
		if stale > 0 {
			return ErrInUse
		}

		return tx.updateColumns(ctx, &models.Subgroup{}, id, map[string]interface{}{
			"name":        name,
			"group_id":    in.GroupID,
			"description": strings.TrimSpace(in.Description),
		})
	})
}

func (s *Store) DeleteSubgroup(ctx context.Context, id uint) error {
	return s.deleteByID(ctx, &models.Subgroup{}, id)
}

func (s *Store) requireGroup(ctx context.Context, groupID uint) error {
	if groupID == 0 {
		return invalid("idGrupo", "Grupo é obrigatório")
	}
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Group{}).Where("id = ?", groupID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return invalid("idGrupo", "Grupo %d não encontrado", groupID)
	}
	return nil
}

//
// STATUS
//

func (s *Store) ListStatuses(ctx context.Context) ([]models.Status, error) {
	rows := make([]models.Status, 0)
	if err := s.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
