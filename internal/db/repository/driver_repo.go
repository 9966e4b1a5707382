package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"wastetrack/internal/app/common"
	"wastetrack/internal/db"
	"wastetrack/internal/logging"
	"wastetrack/internal/models"
)

type DriverRepository struct {
	client *db.Client
	logger logging.Logger
}

func NewDriverRepository(client *db.Client, logger logging.Logger) *DriverRepository {
	return &DriverRepository{
		client: client,
		logger: logger.With("component", "driver_repo"),
	}
}

func (r *DriverRepository) GetByID(ctx context.Context, id string) (*models.Driver, error) {
	var d models.Driver
	err := r.client.DB().WithContext(ctx).First(&d, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFound("ไม่พบพนักงาน")
		}
		return nil, fmt.Errorf("get driver by id: %w", err)
	}
	return &d, nil
}

func (r *DriverRepository) GetByCode(ctx context.Context, code string) (*models.Driver, error) {
	var d models.Driver
	err := r.client.DB().WithContext(ctx).First(&d, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFound("ไม่พบพนักงาน")
		}
		return nil, fmt.Errorf("get driver by code: %w", err)
	}
	return &d, nil
}

// ListWithPickupCounts returns all drivers, newest first, each with its
// pickup count populated.
func (r *DriverRepository) ListWithPickupCounts(ctx context.Context) ([]models.Driver, error) {
	var drivers []models.Driver
	err := r.client.DB().WithContext(ctx).
		Order("created_at DESC").
		Find(&drivers).Error
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}

	counts, err := pickupCountsBy(ctx, r.client.DB(), "driver_id")
	if err != nil {
		return nil, err
	}
	for i := range drivers {
		drivers[i].PickupCount = counts[drivers[i].ID]
	}
	return drivers, nil
}

func (r *DriverRepository) Create(ctx context.Context, d *models.Driver) error {
	if err := r.client.DB().WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("create driver: %w", err)
	}
	return nil
}

func (r *DriverRepository) Save(ctx context.Context, d *models.Driver) error {
	if err := r.client.DB().WithContext(ctx).Save(d).Error; err != nil {
		return fmt.Errorf("save driver: %w", err)
	}
	return nil
}

func (r *DriverRepository) Delete(ctx context.Context, id string) error {
	res := r.client.DB().WithContext(ctx).Delete(&models.Driver{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete driver: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.NewNotFound("ไม่พบพนักงาน")
	}
	return nil
}

func (r *DriverRepository) PickupCount(ctx context.Context, id string) (int64, error) {
	var n int64
	err := r.client.DB().WithContext(ctx).
		Model(&models.Pickup{}).
		Where("driver_id = ?", id).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count driver pickups: %w", err)
	}
	return n, nil
}

func (r *DriverRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.client.DB().WithContext(ctx).
		Model(&models.Driver{}).
		Where("is_active = ?", true).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count active drivers: %w", err)
	}
	return n, nil
}
