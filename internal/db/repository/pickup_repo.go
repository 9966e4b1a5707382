package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"wastetrack/internal/app/common"
	"wastetrack/internal/db"
	"wastetrack/internal/logging"
	"wastetrack/internal/models"
)

type PickupRepository struct {
	client *db.Client
	logger logging.Logger
}

func NewPickupRepository(client *db.Client, logger logging.Logger) *PickupRepository {
	return &PickupRepository{
		client: client,
		logger: logger.With("component", "pickup_repo"),
	}
}

func (r *PickupRepository) GetByID(ctx context.Context, id string) (*models.Pickup, error) {
	var p models.Pickup
	err := r.client.DB().WithContext(ctx).
		Preload("Hospital").
		Preload("Driver").
		Preload("Photos").
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFound("ไม่พบรายการเก็บขยะ")
		}
		return nil, fmt.Errorf("get pickup by id: %w", err)
	}
	return &p, nil
}

func (r *PickupRepository) ListByDriver(ctx context.Context, driverID string) ([]models.Pickup, error) {
	var pickups []models.Pickup
	err := r.client.DB().WithContext(ctx).
		Where("driver_id = ?", driverID).
		Preload("Hospital").
		Preload("Driver").
		Preload("Photos").
		Order("created_at DESC").
		Find(&pickups).Error
	if err != nil {
		return nil, fmt.Errorf("list pickups by driver: %w", err)
	}
	return pickups, nil
}

func (r *PickupRepository) ListByHospital(ctx context.Context, hospitalID string) ([]models.Pickup, error) {
	var pickups []models.Pickup
	err := r.client.DB().WithContext(ctx).
		Where("hospital_id = ?", hospitalID).
		Preload("Hospital").
		Preload("Driver").
		Preload("Photos").
		Order("created_at DESC").
		Find(&pickups).Error
	if err != nil {
		return nil, fmt.Errorf("list pickups by hospital: %w", err)
	}
	return pickups, nil
}

func (r *PickupRepository) Create(ctx context.Context, p *models.Pickup) error {
	if err := r.client.DB().WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create pickup: %w", err)
	}
	return nil
}

func (r *PickupRepository) Save(ctx context.Context, p *models.Pickup) error {
	err := r.client.DB().WithContext(ctx).
		Omit("Hospital", "Driver", "Photos").
		Save(p).Error
	if err != nil {
		return fmt.Errorf("save pickup: %w", err)
	}
	return nil
}

// Delete removes the photo rows and then the pickup row. Two independent
// statements, matching the non-atomic behavior of the rest of the system.
func (r *PickupRepository) Delete(ctx context.Context, id string) error {
	gdb := r.client.DB().WithContext(ctx)
	if err := gdb.Delete(&models.PickupPhoto{}, "pickup_id = ?", id).Error; err != nil {
		return fmt.Errorf("delete pickup photos: %w", err)
	}
	res := gdb.Delete(&models.Pickup{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete pickup: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.NewNotFound("ไม่พบรายการเก็บขยะ")
	}
	return nil
}

func (r *PickupRepository) AddPhoto(ctx context.Context, photo *models.PickupPhoto) error {
	if err := r.client.DB().WithContext(ctx).Create(photo).Error; err != nil {
		return fmt.Errorf("create pickup photo: %w", err)
	}
	return nil
}

func (r *PickupRepository) GetPhoto(ctx context.Context, id string) (*models.PickupPhoto, error) {
	var photo models.PickupPhoto
	err := r.client.DB().WithContext(ctx).
		Preload("Pickup").
		First(&photo, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFound("ไม่พบรูปภาพ")
		}
		return nil, fmt.Errorf("get pickup photo: %w", err)
	}
	return &photo, nil
}

func (r *PickupRepository) DeletePhoto(ctx context.Context, id string) error {
	res := r.client.DB().WithContext(ctx).Delete(&models.PickupPhoto{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete pickup photo: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.NewNotFound("ไม่พบรูปภาพ")
	}
	return nil
}

func (r *PickupRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.client.DB().WithContext(ctx).Model(&models.Pickup{}).Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count pickups: %w", err)
	}
	return n, nil
}

func (r *PickupRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.client.DB().WithContext(ctx).
		Model(&models.Pickup{}).
		Where("status = ?", status).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count pickups by status: %w", err)
	}
	return n, nil
}

// CountCollectedBetween counts pickups whose collection time falls in [from, to).
func (r *PickupRepository) CountCollectedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := r.client.DB().WithContext(ctx).
		Model(&models.Pickup{}).
		Where("collected_at >= ? AND collected_at < ?", from, to).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count pickups collected between: %w", err)
	}
	return n, nil
}

// Recent returns the most recently collected pickups with hospital and driver
// preloaded.
func (r *PickupRepository) Recent(ctx context.Context, limit int) ([]models.Pickup, error) {
	var pickups []models.Pickup
	err := r.client.DB().WithContext(ctx).
		Preload("Hospital").
		Preload("Driver").
		Order("collected_at DESC").
		Limit(limit).
		Find(&pickups).Error
	if err != nil {
		return nil, fmt.Errorf("recent pickups: %w", err)
	}
	return pickups, nil
}
