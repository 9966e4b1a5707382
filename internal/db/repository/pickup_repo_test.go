package repository

import (
	"context"
	"testing"
	"time"

	"wastetrack/internal/app/common"
	"wastetrack/internal/logging"
	"wastetrack/internal/models"
	"wastetrack/internal/testutil"
)

func seedAccounts(t *testing.T, ctx context.Context, hospitals *HospitalRepository, drivers *DriverRepository) (*models.Hospital, *models.Driver) {
	t.Helper()
	h := &models.Hospital{Code: "HOS001", Name: "Hospital", PasswordHash: "x", IsActive: true}
	if err := hospitals.Create(ctx, h); err != nil {
		t.Fatalf("create hospital: %v", err)
	}
	d := &models.Driver{Code: "DRV001", Name: "Driver", PasswordHash: "x", IsActive: true}
	if err := drivers.Create(ctx, d); err != nil {
		t.Fatalf("create driver: %v", err)
	}
	return h, d
}

func TestPickupRepositoryLifecycle(t *testing.T) {
	client := testutil.NewDB(t)
	logger := logging.NewNop()
	repo := NewPickupRepository(client, logger)
	hospitals := NewHospitalRepository(client, logger)
	drivers := NewDriverRepository(client, logger)
	ctx := context.Background()

	h, d := seedAccounts(t, ctx, hospitals, drivers)

	p := &models.Pickup{
		HospitalID:  h.ID,
		DriverID:    d.ID,
		WeightKg:    12.5,
		CollectedAt: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		Status:      models.StatusCollected,
	}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, name := range []string{"a.jpg", "b.jpg"} {
		photo := &models.PickupPhoto{PickupID: p.ID, FileName: name, MimeType: "image/jpeg", FileSize: 3}
		if err := repo.AddPhoto(ctx, photo); err != nil {
			t.Fatalf("add photo: %v", err)
		}
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Hospital == nil || got.Hospital.Code != "HOS001" {
		t.Fatalf("hospital not preloaded: %+v", got.Hospital)
	}
	if got.Driver == nil || got.Driver.Name != "Driver" {
		t.Fatalf("driver not preloaded: %+v", got.Driver)
	}
	if len(got.Photos) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(got.Photos))
	}

	byDriver, err := repo.ListByDriver(ctx, d.ID)
	if err != nil || len(byDriver) != 1 {
		t.Fatalf("list by driver: %v len=%d", err, len(byDriver))
	}
	byHospital, err := repo.ListByHospital(ctx, h.ID)
	if err != nil || len(byHospital) != 1 {
		t.Fatalf("list by hospital: %v len=%d", err, len(byHospital))
	}

	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, p.ID); !common.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	var photoRows int64
	if err := client.DB().Model(&models.PickupPhoto{}).Where("pickup_id = ?", p.ID).Count(&photoRows).Error; err != nil {
		t.Fatalf("count photo rows: %v", err)
	}
	if photoRows != 0 {
		t.Fatalf("photo rows survived pickup delete: %d", photoRows)
	}
}

func TestPickupRepositoryCounts(t *testing.T) {
	client := testutil.NewDB(t)
	logger := logging.NewNop()
	repo := NewPickupRepository(client, logger)
	hospitals := NewHospitalRepository(client, logger)
	drivers := NewDriverRepository(client, logger)
	ctx := context.Background()

	h, d := seedAccounts(t, ctx, hospitals, drivers)

	now := time.Now()
	rows := []struct {
		status string
		at     time.Time
	}{
		{models.StatusCollected, now},
		{models.StatusCollected, now.Add(-48 * time.Hour)},
		{models.StatusInTransit, now},
	}
	for _, row := range rows {
		p := &models.Pickup{HospitalID: h.ID, DriverID: d.ID, WeightKg: 1, CollectedAt: row.at, Status: row.status}
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if n, _ := repo.Count(ctx); n != 3 {
		t.Fatalf("count: %d", n)
	}
	if n, _ := repo.CountByStatus(ctx, models.StatusCollected); n != 2 {
		t.Fatalf("count collected: %d", n)
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if n, _ := repo.CountCollectedBetween(ctx, start, start.AddDate(0, 0, 1)); n != 2 {
		t.Fatalf("count today: %d", n)
	}

	recent, err := repo.Recent(ctx, 2)
	if err != nil || len(recent) != 2 {
		t.Fatalf("recent: %v len=%d", err, len(recent))
	}
	if recent[0].CollectedAt.Before(recent[1].CollectedAt) {
		t.Fatal("recent not ordered newest first")
	}
	if recent[0].Hospital == nil || recent[0].Driver == nil {
		t.Fatal("recent rows missing preloads")
	}
}

func TestPickupPhotoDelete(t *testing.T) {
	client := testutil.NewDB(t)
	logger := logging.NewNop()
	repo := NewPickupRepository(client, logger)
	hospitals := NewHospitalRepository(client, logger)
	drivers := NewDriverRepository(client, logger)
	ctx := context.Background()

	h, d := seedAccounts(t, ctx, hospitals, drivers)
	p := &models.Pickup{HospitalID: h.ID, DriverID: d.ID, WeightKg: 1, CollectedAt: time.Now(), Status: models.StatusDone}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}
	photo := &models.PickupPhoto{PickupID: p.ID, FileName: "a.jpg"}
	if err := repo.AddPhoto(ctx, photo); err != nil {
		t.Fatalf("add photo: %v", err)
	}

	got, err := repo.GetPhoto(ctx, photo.ID)
	if err != nil {
		t.Fatalf("get photo: %v", err)
	}
	if got.Pickup == nil || got.Pickup.DriverID != d.ID {
		t.Fatalf("pickup not preloaded on photo: %+v", got.Pickup)
	}

	if err := repo.DeletePhoto(ctx, photo.ID); err != nil {
		t.Fatalf("delete photo: %v", err)
	}
	if _, err := repo.GetPhoto(ctx, photo.ID); !common.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
