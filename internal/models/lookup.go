package models

type Brand struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;not null"`
}

func (Brand) TableName() string { return "brands" }

type Company struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:255;not null"`
	TaxID       *string `gorm:"size:14"` // CNPJ, digits only
	Description string  `gorm:"type:text"`
}

func (Company) TableName() string { return "companies" }

type Sector struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;not null"`
}

func (Sector) TableName() string { return "sectors" }

type Group struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;not null"`
}

func (Group) TableName() string { return "asset_groups" }

// Subgroup always belongs to exactly one group.
type Subgroup struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null"`
	GroupID     uint   `gorm:"not null"`
	Group       Group
	Description string `gorm:"type:text"`
}

func (Subgroup) TableName() string { return "subgroups" }

type Status struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:50;not null"`
}

func (Status) TableName() string { return "statuses" }
