package driver

import (
	"time"

	"wastetrack/internal/models"
)

type CountDto struct {
	Pickups int64 `json:"pickups"`
}

// DriverDto is the admin-facing row, including the derived pickup count.
type DriverDto struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Count     CountDto  `json:"_count"`
}

// AccountDto is the slim shape returned from login and mutations.
type AccountDto struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

type CreateDriverInput struct {
	Code     string
	Name     string
	Password string
	IsActive *bool
}

// UpdateDriverInput requires a name; password and isActive are optional.
type UpdateDriverInput struct {
	Name     string
	Password string
	IsActive *bool
}

func toDTO(d *models.Driver) *DriverDto {
	return &DriverDto{
		ID:        d.ID,
		Code:      d.Code,
		Name:      d.Name,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		Count:     CountDto{Pickups: d.PickupCount},
	}
}

func toAccountDTO(d *models.Driver) *AccountDto {
	return &AccountDto{ID: d.ID, Code: d.Code, Name: d.Name, IsActive: d.IsActive}
}
