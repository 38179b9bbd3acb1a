package client

import "asset-registry/internal/dto"

// fromWire is the single translation from server row keys to client fields.
func fromWire(r dto.AssetRow) Asset {
	a := Asset{
		ID:               r.ID,
		Code:             r.Code,
		Name:             r.Name,
		Description:      r.Description,
		Brand:            r.Brand,
		Model:            r.Model,
		Company:          r.Company,
		Sector:           r.Sector,
		Group:            r.GroupName,
		Subgroup:         r.SubgroupName,
		Status:           StatusInactive,
		Location:         r.Location,
		ImageURL:         r.ImageURL,
		RegistrationDate: r.RegistrationDate,
	}
	if r.GroupID != nil {
		a.GroupID = *r.GroupID
	}
	if r.SubgroupID != nil {
		a.SubgroupID = *r.SubgroupID
	}
	if r.Status == "Ativo" {
		a.Status = StatusActive
	}
	return a
}

func fromWireRows(rows []dto.AssetRow) []Asset {
	out := make([]Asset, 0, len(rows))
	for _, r := range rows {
		out = append(out, fromWire(r))
	}
	return out
}

// toWire builds the write body from a form.
func toWire(f AssetForm) dto.AssetRequest {
	status := f.Status
	if status == "" {
		status = StatusActive
	}
	return dto.AssetRequest{
		Code:        f.Code,
		Name:        f.Name,
		Description: f.Description,
		ImageURL:    f.ImageURL,
		Brand:       f.Brand,
		Model:       f.Model,
		Company:     f.Company,
		Sector:      f.Sector,
		GroupID:     f.GroupID,
		SubgroupID:  f.SubgroupID,
		Status:      status,
		Location:    f.Location,
	}
}

// FormFromAsset pre-fills an edit form.
func FormFromAsset(a Asset) AssetForm {
	return AssetForm{
		Code:        a.Code,
		Name:        a.Name,
		Description: a.Description,
		Brand:       a.Brand,
		Model:       a.Model,
		Company:     a.Company,
		Sector:      a.Sector,
		GroupID:     a.GroupID,
		SubgroupID:  a.SubgroupID,
		Status:      a.Status,
		Location:    a.Location,
		ImageURL:    a.ImageURL,
	}
}
