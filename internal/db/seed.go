package db

import (
	"golang.org/x/crypto/bcrypt"

	"wastetrack/internal/config"
	"wastetrack/internal/models"
)

// SeedAdmin creates the configured admin account if no admin exists yet.
// Safe to run on every startup.
func (c *Client) SeedAdmin(cfg config.AdminSeedConfig) error {
	var count int64
	if err := c.gorm.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		c.logger.Debug("admin account exists, seeding skipped")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), 10)
	if err != nil {
		return err
	}

	admin := models.Admin{
		Username:     cfg.Username,
		PasswordHash: string(hash),
		Name:         cfg.Name,
		IsActive:     true,
	}
	if err := c.gorm.Create(&admin).Error; err != nil {
		return err
	}

	c.logger.Info("admin account seeded", "username", cfg.Username)
	return nil
}
