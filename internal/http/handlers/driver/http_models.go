package driver

import (
	"encoding/json"

	appdriver "wastetrack/internal/app/driver"
	apppickup "wastetrack/internal/app/pickup"
)

type loginRequest struct {
	DriverCode string `json:"driver_code" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type loginResponse struct {
	Success bool                  `json:"success"`
	Driver  *appdriver.AccountDto `json:"driver"`
}

type pickupResponse struct {
	Success bool                 `json:"success"`
	Pickup  *apppickup.PickupDto `json:"pickup"`
}

type successMessage struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// patchRequest is the JSON edit form. weightKg arrives as a number or a
// numeric string depending on the client, hence json.Number.
type patchRequest struct {
	WeightKg    json.Number `json:"weightKg"`
	Status      string      `json:"status"`
	Note        string      `json:"note"`
	CollectedAt string      `json:"collectedAt"`
}
