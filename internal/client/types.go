package client

import (
	"time"

	"asset-registry/internal/dto"
)

// Client-side status values, sent as-is in write bodies.
const (
	StatusActive   = dto.FlagActive
	StatusInactive = dto.FlagInactive
)

// Asset is the client-facing view of an asset row.
type Asset struct {
	ID               uint
	Code             string
	Name             string
	Description      string
	Brand            string
	Model            string
	Company          string
	Sector           string
	GroupID          uint
	Group            string
	SubgroupID       uint
	Subgroup         string
	Status           string // StatusActive or StatusInactive
	Location         string
	ImageURL         string
	RegistrationDate time.Time
}

func (a Asset) Active() bool { return a.Status == StatusActive }

type Brand struct {
	ID   uint
	Name string
}

type Company struct {
	ID          uint
	Name        string
	TaxID       string
	Description string
}

type Sector struct {
	ID   uint
	Name string
}

type Group struct {
	ID   uint
	Name string
}

type Subgroup struct {
	ID          uint
	Name        string
	GroupID     uint
	Description string
}

type Status struct {
	ID   uint
	Name string
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (u User) IsAdmin() bool { return u.Role == "admin" }
