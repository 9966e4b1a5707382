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

type AdminRepository struct {
	client *db.Client
	logger logging.Logger
}

func NewAdminRepository(client *db.Client, logger logging.Logger) *AdminRepository {
	return &AdminRepository{
		client: client,
		logger: logger.With("component", "admin_repo"),
	}
}

func (r *AdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	var a models.Admin
	err := r.client.DB().WithContext(ctx).First(&a, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFound("Admin not found or inactive")
		}
		return nil, fmt.Errorf("get admin by id: %w", err)
	}
	return &a, nil
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var a models.Admin
	err := r.client.DB().WithContext(ctx).First(&a, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFound("Admin not found or inactive")
		}
		return nil, fmt.Errorf("get admin by username: %w", err)
	}
	return &a, nil
}
