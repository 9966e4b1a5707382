package pickup

import (
	"mime/multipart"
	"time"

	"wastetrack/internal/models"
)

type HospitalRef struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type DriverRef struct {
	Name string `json:"name"`
}

type PhotoDto struct {
	ID       string `json:"id"`
	PickupID string `json:"pickupId"`
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	FileSize int64  `json:"fileSize"`
}

type PickupDto struct {
	ID          string       `json:"id"`
	HospitalID  string       `json:"hospitalId"`
	DriverID    string       `json:"driverId"`
	WeightKg    float64      `json:"weightKg"`
	CollectedAt time.Time    `json:"collectedAt"`
	Status      string       `json:"status"`
	Note        *string      `json:"note"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Hospital    *HospitalRef `json:"hospital,omitempty"`
	Driver      *DriverRef   `json:"driver,omitempty"`
	Photos      []PhotoDto   `json:"photos"`
}

type CreatePickupInput struct {
	DriverID     string
	HospitalCode string
	WeightKg     float64
	CollectedAt  time.Time
	Status       string
	Note         string
	Photos       []*multipart.FileHeader
}

type UpdatePickupInput struct {
	ID           string
	DriverID     string
	HospitalCode string
	WeightKg     float64
	CollectedAt  time.Time
	Status       string
	Note         string
	Photos       []*multipart.FileHeader
}

// PatchPickupInput is the JSON update path: hospital stays as-is, no photos.
type PatchPickupInput struct {
	ID          string
	DriverID    string
	WeightKg    float64
	CollectedAt time.Time
	Status      string
	Note        string
}

// HospitalStats is the hospital dashboard summary block.
type HospitalStats struct {
	TotalPickups    int     `json:"totalPickups"`
	CollectedStatus int     `json:"collectedStatus"`
	InTransitStatus int     `json:"inTransitStatus"`
	TotalWeight     float64 `json:"totalWeight"`
	TodayPickups    int     `json:"todayPickups"`
}

type PhotoRef struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
}

// HospitalDashboardItem is the flattened pickup row shown on the hospital
// dashboard, newest collection first.
type HospitalDashboardItem struct {
	ID          string     `json:"id"`
	DriverName  string     `json:"driverName"`
	CollectedAt time.Time  `json:"collectedAt"`
	WeightKg    float64    `json:"weightKg"`
	Status      string     `json:"status"`
	Note        *string    `json:"note"`
	Photos      []PhotoRef `json:"photos"`
}

func toDTO(p *models.Pickup) *PickupDto {
	if p == nil {
		return nil
	}
	dto := &PickupDto{
		ID:          p.ID,
		HospitalID:  p.HospitalID,
		DriverID:    p.DriverID,
		WeightKg:    p.WeightKg,
		CollectedAt: p.CollectedAt,
		Status:      p.Status,
		Note:        p.Note,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Photos:      make([]PhotoDto, 0, len(p.Photos)),
	}
	if p.Hospital != nil {
		dto.Hospital = &HospitalRef{Name: p.Hospital.Name, Code: p.Hospital.Code}
	}
	if p.Driver != nil {
		dto.Driver = &DriverRef{Name: p.Driver.Name}
	}
	for _, photo := range p.Photos {
		dto.Photos = append(dto.Photos, PhotoDto{
			ID:       photo.ID,
			PickupID: photo.PickupID,
			FileName: photo.FileName,
			MimeType: photo.MimeType,
			FileSize: photo.FileSize,
		})
	}
	return dto
}

func toDTOs(list []models.Pickup) []PickupDto {
	res := make([]PickupDto, 0, len(list))
	for _, p := range list {
		item := p // copy
		res = append(res, *toDTO(&item))
	}
	return res
}
