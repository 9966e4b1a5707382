package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pickup status vocabulary. Any status may move to any other; there is no
// transition enforcement.
const (
	StatusScheduled   = "SCHEDULED"
	StatusInProgress  = "IN_PROGRESS"
	StatusDone        = "DONE"
	StatusCollected   = "COLLECTED"
	StatusInTransit   = "IN_TRANSIT"
	StatusEnRoute     = "EN_ROUTE"
	StatusIncinerated = "INCINERATED"
	StatusCancelled   = "CANCELLED"
)

var validStatuses = map[string]struct{}{
	StatusScheduled:   {},
	StatusInProgress:  {},
	StatusDone:        {},
	StatusCollected:   {},
	StatusInTransit:   {},
	StatusEnRoute:     {},
	StatusIncinerated: {},
	StatusCancelled:   {},
}

// ValidStatus reports whether s is a known pickup status.
func ValidStatus(s string) bool {
	_, ok := validStatuses[s]
	return ok
}

type Admin struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Username     string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

type Hospital struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Code         string    `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Pickups []Pickup `gorm:"foreignKey:HospitalID" json:"-"`

	// PickupCount is populated by list queries, not a column.
	PickupCount int64 `gorm:"-" json:"-"`
}

func (h *Hospital) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

type Driver struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Code         string    `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Pickups []Pickup `gorm:"foreignKey:DriverID" json:"-"`

	PickupCount int64 `gorm:"-" json:"-"`
}

func (d *Driver) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

type Pickup struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	HospitalID  string    `gorm:"size:36;not null;index" json:"hospitalId"`
	Hospital    *Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	DriverID    string    `gorm:"size:36;not null;index" json:"driverId"`
	Driver      *Driver   `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	WeightKg    float64   `gorm:"not null" json:"weightKg"`
	CollectedAt time.Time `gorm:"not null;index" json:"collectedAt"`
	Status      string    `gorm:"size:20;not null" json:"status"`
	Note        *string   `gorm:"type:text" json:"note"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Photos []PickupPhoto `gorm:"foreignKey:PickupID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`
}

func (p *Pickup) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type PickupPhoto struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	PickupID  string    `gorm:"size:36;not null;index" json:"pickupId"`
	Pickup    *Pickup   `gorm:"foreignKey:PickupID" json:"-"`
	FileName  string    `gorm:"size:255;not null" json:"fileName"`
	MimeType  string    `gorm:"size:128" json:"mimeType"`
	FileSize  int64     `json:"fileSize"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p *PickupPhoto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
