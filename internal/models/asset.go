package models

import "time"

const (
	StatusActive     = "Ativo"
	StatusWrittenOff = "Baixado"
)

// Asset is one registered piece of equipment. Code and name are unique
// (case-insensitive) at the storage layer.
type Asset struct {
	ID          uint   `gorm:"primaryKey"`
	Code        string `gorm:"size:50;not null"`
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	Model       string `gorm:"size:100"`
	Location    string `gorm:"size:255"` // where the asset physically is
	ImageURL    string `gorm:"size:500"`

	BrandID *uint
	Brand   *Brand

	CompanyID *uint
	Company   *Company

	SectorID *uint
	Sector   *Sector

	GroupID *uint
	Group   *Group

	SubgroupID *uint
	Subgroup   *Subgroup

	StatusID uint
	Status   Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Asset) TableName() string { return "assets" }
