package db_test

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"wastetrack/internal/config"
	"wastetrack/internal/models"
	"wastetrack/internal/testutil"
)

func TestSeedAdminIdempotent(t *testing.T) {
	client := testutil.NewDB(t)
	cfg := config.AdminSeedConfig{Username: "admin", Password: "secret1", Name: "System Admin"}

	if err := client.SeedAdmin(cfg); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := client.SeedAdmin(cfg); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var admins []models.Admin
	if err := client.DB().Find(&admins).Error; err != nil {
		t.Fatalf("find admins: %v", err)
	}
	if len(admins) != 1 {
		t.Fatalf("expected 1 admin, got %d", len(admins))
	}
	a := admins[0]
	if a.Username != "admin" || !a.IsActive {
		t.Fatalf("unexpected admin: %+v", a)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}
