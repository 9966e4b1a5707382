package hospital

import (
	"time"

	"wastetrack/internal/models"
)

type CountDto struct {
	Pickups int64 `json:"pickups"`
}

// HospitalDto is the admin-facing row, including the derived pickup count.
type HospitalDto struct {
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

// OptionDto is what drivers see when picking a destination hospital.
type OptionDto struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type CreateHospitalInput struct {
	Code     string
	Name     string
	Password string
	IsActive *bool
}

// UpdateHospitalInput has partial-update semantics: empty fields are left
// untouched, and a request that touches nothing is rejected.
type UpdateHospitalInput struct {
	Name     string
	Password string
	IsActive *bool
}

func toDTO(h *models.Hospital) *HospitalDto {
	return &HospitalDto{
		ID:        h.ID,
		Code:      h.Code,
		Name:      h.Name,
		IsActive:  h.IsActive,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
		Count:     CountDto{Pickups: h.PickupCount},
	}
}

func toAccountDTO(h *models.Hospital) *AccountDto {
	return &AccountDto{ID: h.ID, Code: h.Code, Name: h.Name, IsActive: h.IsActive}
}
