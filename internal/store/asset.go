package store

import (
	"context"
	"strings"

	"asset-registry/internal/models"

	"gorm.io/gorm"
)

// AssetInput is a full asset record as written by the API. Brand, company
// and sector arrive as display names; group and subgroup as ids.
type AssetInput struct {
	Code        string
	Name        string
	Description string
	Model       string
	Location    string
	ImageURL    string

	BrandName   string
	CompanyName string
	SectorName  string
	GroupID     uint
	SubgroupID  uint

	Active bool
}

func (s *Store) assetQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Brand").
		Preload("Company").
		Preload("Sector").
		Preload("Group").
		Preload("Subgroup").
		Preload("Status")
}

func (s *Store) ListAssets(ctx context.Context) ([]models.Asset, error) {
	assets := make([]models.Asset, 0)
	if err := s.assetQuery(ctx).Order("id asc").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (s *Store) GetAsset(ctx context.Context, id uint) (models.Asset, error) {
	var asset models.Asset
	if err := s.assetQuery(ctx).First(&asset, id).Error; err != nil {
		return models.Asset{}, translate(err)
	}
	return asset, nil
}

func (s *Store) CreateAsset(ctx context.Context, in AssetInput) (models.Asset, error) {
	var asset models.Asset
	err := s.inTx(ctx, func(tx *Store) error {
		var err error
		if asset, err = tx.buildAsset(ctx, in); err != nil {
			return err
		}
		return translate(tx.db.WithContext(ctx).Omit(assetAssociations...).Create(&asset).Error)
	})
	if err != nil {
		return models.Asset{}, err
	}
	return asset, nil
}

// UpdateAsset replaces every editable column of the asset.
func (s *Store) UpdateAsset(ctx context.Context, id uint, in AssetInput) (models.Asset, error) {
	var asset models.Asset
	err := s.inTx(ctx, func(tx *Store) error {
		var err error
		if asset, err = tx.buildAsset(ctx, in); err != nil {
			return err
		}
		return tx.updateColumns(ctx, &models.Asset{}, id, map[string]interface{}{
			"code":        asset.Code,
			"name":        asset.Name,
			"description": asset.Description,
			"model":       asset.Model,
			"location":    asset.Location,
			"image_url":   asset.ImageURL,
			"brand_id":    asset.BrandID,
			"company_id":  asset.CompanyID,
			"sector_id":   asset.SectorID,
			"group_id":    asset.GroupID,
			"subgroup_id": asset.SubgroupID,
			"status_id":   asset.StatusID,
		})
	})
	if err != nil {
		return models.Asset{}, err
	}
	asset.ID = id
	return asset, nil
}

func (s *Store) DeleteAsset(ctx context.Context, id uint) error {
	return s.deleteByID(ctx, &models.Asset{}, id)
}

// DeactivateAsset writes the asset off (status Baixado).
func (s *Store) DeactivateAsset(ctx context.Context, id uint) error {
	statusID, err := s.statusID(ctx, models.StatusWrittenOff)
	if err != nil {
		return err
	}
	return s.updateColumns(ctx, &models.Asset{}, id, map[string]interface{}{"status_id": statusID})
}

var assetAssociations = []string{"Brand", "Company", "Sector", "Group", "Subgroup", "Status"}

func (s *Store) buildAsset(ctx context.Context, in AssetInput) (models.Asset, error) {
	asset := models.Asset{
		Code:        strings.TrimSpace(in.Code),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Model:       strings.TrimSpace(in.Model),
		Location:    strings.TrimSpace(in.Location),
		ImageURL:    strings.TrimSpace(in.ImageURL),
	}
	if asset.Code == "" {
		return models.Asset{}, invalid("codigo", "Código é obrigatório")
	}
	if asset.Name == "" {
		return models.Asset{}, invalid("nome", "Nome é obrigatório")
	}

	var err error
	if asset.BrandID, err = s.resolveName(ctx, &models.Brand{}, "marca", "Marca", in.BrandName); err != nil {
		return models.Asset{}, err
	}
	if asset.CompanyID, err = s.resolveName(ctx, &models.Company{}, "empresa", "Empresa", in.CompanyName); err != nil {
		return models.Asset{}, err
	}
	if asset.SectorID, err = s.resolveName(ctx, &models.Sector{}, "setor", "Setor", in.SectorName); err != nil {
		return models.Asset{}, err
	}
	if asset.GroupID, asset.SubgroupID, err = s.resolveGroup(ctx, in.GroupID, in.SubgroupID); err != nil {
		return models.Asset{}, err
	}

	status := models.StatusWrittenOff
	if in.Active {
		status = models.StatusActive
	}
	if asset.StatusID, err = s.statusID(ctx, status); err != nil {
		return models.Asset{}, err
	}
	return asset, nil
}

// resolveName maps a lookup display name to its id. An empty name means the
// reference is left unset.
func (s *Store) resolveName(ctx context.Context, model interface{}, field, label, name string) (*uint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	var ids []uint
	err := s.db.WithContext(ctx).Model(model).
		Where("lower(name) = lower(?)", name).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, invalid(field, "%s %q não encontrada", label, name)
	}
	return &ids[0], nil
}

func (s *Store) resolveGroup(ctx context.Context, groupID, subgroupID uint) (*uint, *uint, error) {
	if groupID == 0 {
		if subgroupID != 0 {
			return nil, nil, invalid("idGrupo", "Selecione um grupo antes do subgrupo")
		}
		return nil, nil, nil
	}

	var group models.Group
	if err := s.db.WithContext(ctx).First(&group, groupID).Error; err != nil {
		if translate(err) == ErrNotFound {
			return nil, nil, invalid("idGrupo", "Grupo %d não encontrado", groupID)
		}
		return nil, nil, err
	}
	if subgroupID == 0 {
		return &group.ID, nil, nil
	}

	var sub models.Subgroup
	if err := s.db.WithContext(ctx).First(&sub, subgroupID).Error; err != nil {
		if translate(err) == ErrNotFound {
			return nil, nil, invalid("idSubgrupo", "Subgrupo %d não encontrado", subgroupID)
		}
		return nil, nil, err
	}
	if sub.GroupID != group.ID {
		return nil, nil, invalid("idSubgrupo", "Subgrupo %q não pertence ao grupo %q", sub.Name, group.Name)
	}
	return &group.ID, &sub.ID, nil
}

func (s *Store) statusID(ctx context.Context, name string) (uint, error) {
	var status models.Status
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&status).Error; err != nil {
		return 0, translate(err)
	}
	return status.ID, nil
}
