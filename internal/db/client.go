package db

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"wastetrack/internal/config"
	"wastetrack/internal/logging"
	"wastetrack/internal/models"
)

// Client is the single process-wide database handle. It is opened once at
// startup and injected into repositories.
type Client struct {
	gorm   *gorm.DB
	logger logging.Logger
}

// NewClient opens a Postgres-backed gorm client, verifies connectivity and
// runs migrations.
func NewClient(ctx context.Context, cfg config.PostgresConfig, logger logging.Logger) (*Client, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.EffectiveDSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}

	c := New(gdb, logger)

	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if err := c.Migrate(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("db migrate: %w", err)
	}

	return c, nil
}

// New wraps an already-open gorm handle. Tests use this with SQLite.
func New(gdb *gorm.DB, logger logging.Logger) *Client {
	return &Client{
		gorm:   gdb,
		logger: logger.With("component", "db_client"),
	}
}

// DB returns the underlying gorm handle.
func (c *Client) DB() *gorm.DB {
	return c.gorm
}

// Migrate creates or updates the schema for all models.
func (c *Client) Migrate() error {
	return c.gorm.AutoMigrate(
		&models.Admin{},
		&models.Hospital{},
		&models.Driver{},
		&models.Pickup{},
		&models.PickupPhoto{},
	)
}

// Ping is used by health checks.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (c *Client) Close() error {
	sqlDB, err := c.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
