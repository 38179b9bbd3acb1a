package client

import (
	"fmt"
	"strings"
)

// AssetForm is the asset editor state. Brand, company and sector are picked
// by name; group and subgroup by id.
type AssetForm struct {
	Code        string
	Name        string
	Description string
	Brand       string
	Model       string
	Company     string
	Sector      string
	GroupID     uint
	SubgroupID  uint
	Status      string
	Location    string
	ImageURL    string
}

// FormError lists missing required fields (by label) and local duplicates.
type FormError struct {
	Missing    []string
	Duplicates []string
}

func (e *FormError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "Preencha todos os campos obrigatórios: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Duplicates) > 0 {
		parts = append(parts, strings.Join(e.Duplicates, ". "))
	}
	return strings.Join(parts, ". ")
}

type requiredField struct {
	label string
	value func(AssetForm) string
}

var requiredFields = []requiredField{
	{"Código", func(f AssetForm) string { return f.Code }},
	{"Nome", func(f AssetForm) string { return f.Name }},
	{"Descrição", func(f AssetForm) string { return f.Description }},
	{"Marca", func(f AssetForm) string { return f.Brand }},
	{"Modelo", func(f AssetForm) string { return f.Model }},
	{"Empresa", func(f AssetForm) string { return f.Company }},
	{"Setor", func(f AssetForm) string { return f.Sector }},
	{"Grupo", func(f AssetForm) string { return idString(f.GroupID) }},
	{"Subgrupo", func(f AssetForm) string { return idString(f.SubgroupID) }},
	{"Status", func(f AssetForm) string { return f.Status }},
	{"Onde está localizado", func(f AssetForm) string { return f.Location }},
}

func idString(id uint) string {
	if id == 0 {
		return ""
	}
	return fmt.Sprint(id)
}

// MissingFields returns the labels of empty required fields, in form order.
func MissingFields(f AssetForm) []string {
	var missing []string
	for _, rf := range requiredFields {
		if strings.TrimSpace(rf.value(f)) == "" {
			missing = append(missing, rf.label)
		}
	}
	return missing
}

// DuplicateErrors compares code and name (trimmed, case-insensitive) with the
// loaded assets, skipping excludeID when editing.
func DuplicateErrors(f AssetForm, assets []Asset, excludeID uint) []string {
	code := strings.ToLower(strings.TrimSpace(f.Code))
	name := strings.ToLower(strings.TrimSpace(f.Name))

	var codeTaken, nameTaken bool
	for _, a := range assets {
		if excludeID != 0 && a.ID == excludeID {
			continue
		}
		if strings.ToLower(strings.TrimSpace(a.Code)) == code {
			codeTaken = true
		}
		if strings.ToLower(strings.TrimSpace(a.Name)) == name {
			nameTaken = true
		}
	}

	var errs []string
	if codeTaken {
		errs = append(errs, "Código já cadastrado")
	}
	if nameTaken {
		errs = append(errs, "Nome já cadastrado")
	}
	return errs
}

// ValidateForm runs the editor checks against the currently loaded list.
// The server enforces uniqueness again on write.
func (c *Client) ValidateForm(f AssetForm, excludeID uint) error {
	if missing := MissingFields(f); len(missing) > 0 {
		return &FormError{Missing: missing}
	}
	if dups := DuplicateErrors(f, c.Assets(), excludeID); len(dups) > 0 {
		return &FormError{Duplicates: dups}
	}
	return nil
}

// SetGroup changes the form group and clears the subgroup when it does not
// belong to the new group.
func (c *Client) SetGroup(f *AssetForm, groupID uint) {
	f.GroupID = groupID
	if f.SubgroupID == 0 {
		return
	}
	for _, s := range c.SubgroupsOf(groupID) {
		if s.ID == f.SubgroupID {
			return
		}
	}
	f.SubgroupID = 0
}
