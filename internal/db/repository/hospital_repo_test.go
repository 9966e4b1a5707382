package repository

import (
	"context"
	"testing"

	"wastetrack/internal/app/common"
	"wastetrack/internal/logging"
	"wastetrack/internal/models"
	"wastetrack/internal/testutil"
)

func TestHospitalRepositoryCRUD(t *testing.T) {
	client := testutil.NewDB(t)
	repo := NewHospitalRepository(client, logging.NewNop())
	ctx := context.Background()

	h := &models.Hospital{Code: "HOS001", Name: "Test Hospital", PasswordHash: "x", IsActive: true}
	if err := repo.Create(ctx, h); err != nil {
		t.Fatalf("create: %v", err)
	}
	if h.ID == "" {
		t.Fatal("id not assigned on create")
	}

	got, err := repo.GetByCode(ctx, "HOS001")
	if err != nil || got.ID != h.ID {
		t.Fatalf("get by code: %v %+v", err, got)
	}

	if _, err := repo.GetByCode(ctx, "NOPE"); !common.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	got.Name = "Renamed"
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("save: %v", err)
	}
	again, _ := repo.GetByID(ctx, h.ID)
	if again.Name != "Renamed" {
		t.Fatalf("name not persisted: %+v", again)
	}

	if err := repo.Delete(ctx, h.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, h.ID); !common.IsNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestHospitalRepositoryPickupCounts(t *testing.T) {
	client := testutil.NewDB(t)
	repo := NewHospitalRepository(client, logging.NewNop())
	pickups := NewPickupRepository(client, logging.NewNop())
	drivers := NewDriverRepository(client, logging.NewNop())
	ctx := context.Background()

	h1 := &models.Hospital{Code: "HOS001", Name: "A", PasswordHash: "x", IsActive: true}
	h2 := &models.Hospital{Code: "HOS002", Name: "B", PasswordHash: "x", IsActive: false}
	for _, h := range []*models.Hospital{h1, h2} {
		if err := repo.Create(ctx, h); err != nil {
			t.Fatalf("create hospital: %v", err)
		}
	}
	d := &models.Driver{Code: "DRV001", Name: "D", PasswordHash: "x", IsActive: true}
	if err := drivers.Create(ctx, d); err != nil {
		t.Fatalf("create driver: %v", err)
	}
	for i := 0; i < 3; i++ {
		p := &models.Pickup{HospitalID: h1.ID, DriverID: d.ID, WeightKg: 1, Status: models.StatusCollected}
		if err := pickups.Create(ctx, p); err != nil {
			t.Fatalf("create pickup: %v", err)
		}
	}

	list, err := repo.ListWithPickupCounts(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}
	counts := map[string]int64{}
	for _, h := range list {
		counts[h.Code] = h.PickupCount
	}
	if counts["HOS001"] != 3 || counts["HOS002"] != 0 {
		t.Fatalf("unexpected counts: %v", counts)
	}

	n, err := repo.PickupCount(ctx, h1.ID)
	if err != nil || n != 3 {
		t.Fatalf("pickup count: %v %d", err, n)
	}

	active, err := repo.ListActive(ctx)
	if err != nil || len(active) != 1 || active[0].Code != "HOS001" {
		t.Fatalf("list active: %v %+v", err, active)
	}

	total, err := repo.CountActive(ctx)
	if err != nil || total != 1 {
		t.Fatalf("count active: %v %d", err, total)
	}
}
