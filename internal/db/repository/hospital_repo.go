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

type HospitalRepository struct {
	client *db.Client
	logger logging.Logger
}

func NewHospitalRepository(client *db.Client, logger logging.Logger) *HospitalRepository {
	return &HospitalRepository{
		client: client,
		logger: logger.With("component", "hospital_repo"),
	}
}

func (r *HospitalRepository) GetByID(ctx context.Context, id string) (*models.Hospital, error) {
	var h models.Hospital
	err := r.client.DB().WithContext(ctx).First(&h, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFound("ไม่พบโรงพยาบาล")
		}
		return nil, fmt.Errorf("get hospital by id: %w", err)
	}
	return &h, nil
}

func (r *HospitalRepository) GetByCode(ctx context.Context, code string) (*models.Hospital, error) {
	var h models.Hospital
	err := r.client.DB().WithContext(ctx).First(&h, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFound("ไม่พบโรงพยาบาล")
		}
		return nil, fmt.Errorf("get hospital by code: %w", err)
	}
	return &h, nil
}

// ListWithPickupCounts returns all hospitals, newest first, each with its
// pickup count populated.
func (r *HospitalRepository) ListWithPickupCounts(ctx context.Context) ([]models.Hospital, error) {
	var hospitals []models.Hospital
	err := r.client.DB().WithContext(ctx).
		Order("created_at DESC").
		Find(&hospitals).Error
	if err != nil {
		return nil, fmt.Errorf("list hospitals: %w", err)
	}

	counts, err := pickupCountsBy(ctx, r.client.DB(), "hospital_id")
	if err != nil {
		return nil, err
	}
	for i := range hospitals {
		hospitals[i].PickupCount = counts[hospitals[i].ID]
	}
	return hospitals, nil
}

// ListActive returns active hospitals sorted by name, for the pickup form.
func (r *HospitalRepository) ListActive(ctx context.Context) ([]models.Hospital, error) {
	var hospitals []models.Hospital
	err := r.client.DB().WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&hospitals).Error
	if err != nil {
		return nil, fmt.Errorf("list active hospitals: %w", err)
	}
	return hospitals, nil
}

func (r *HospitalRepository) Create(ctx context.Context, h *models.Hospital) error {
	if err := r.client.DB().WithContext(ctx).Create(h).Error; err != nil {
		return fmt.Errorf("create hospital: %w", err)
	}
	return nil
}

func (r *HospitalRepository) Save(ctx context.Context, h *models.Hospital) error {
	if err := r.client.DB().WithContext(ctx).Save(h).Error; err != nil {
		return fmt.Errorf("save hospital: %w", err)
	}
	return nil
}

func (r *HospitalRepository) Delete(ctx context.Context, id string) error {
	res := r.client.DB().WithContext(ctx).Delete(&models.Hospital{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete hospital: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return common.NewNotFound("ไม่พบโรงพยาบาล")
	}
	return nil
}

func (r *HospitalRepository) PickupCount(ctx context.Context, id string) (int64, error) {
	var n int64
	err := r.client.DB().WithContext(ctx).
		Model(&models.Pickup{}).
		Where("hospital_id = ?", id).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count hospital pickups: %w", err)
	}
	return n, nil
}

func (r *HospitalRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.client.DB().WithContext(ctx).
		Model(&models.Hospital{}).
		Where("is_active = ?", true).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count active hospitals: %w", err)
	}
	return n, nil
}

// pickupCountsBy groups pickup rows by the given FK column.
func pickupCountsBy(ctx context.Context, gdb *gorm.DB, column string) (map[string]int64, error) {
	type row struct {
		Key string
		N   int64
	}
	var rows []row
	err := gdb.WithContext(ctx).
		Model(&models.Pickup{}).
		Select(column + " AS key, COUNT(*) AS n").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count pickups by %s: %w", column, err)
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Key] = r.N
	}
	return counts, nil
}
