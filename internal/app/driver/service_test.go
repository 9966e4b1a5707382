package driver

import (
	"context"
	"strings"
	"testing"
	"time"

	"wastetrack/internal/app/common"
	"wastetrack/internal/db/repository"
	"wastetrack/internal/logging"
	"wastetrack/internal/models"
	"wastetrack/internal/testutil"
)

func newService(t *testing.T) (Service, *repository.HospitalRepository, *repository.PickupRepository) {
	t.Helper()
	client := testutil.NewDB(t)
	logger := logging.NewNop()
	hospitals := repository.NewHospitalRepository(client, logger)
	pickups := repository.NewPickupRepository(client, logger)
	return NewService(repository.NewDriverRepository(client, logger), logger), hospitals, pickups
}

func TestDriverCreateAndDuplicate(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	account, err := svc.Create(ctx, CreateDriverInput{Code: "DRV001", Name: "Somchai", Password: "secret1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if account.Code != "DRV001" || !account.IsActive {
		t.Fatalf("unexpected account: %+v", account)
	}

	_, err = svc.Create(ctx, CreateDriverInput{Code: "DRV001", Name: "Other", Password: "x"})
	if !common.IsConflict(err) || err.Error() != "รหัสพนักงานนี้มีอยู่แล้ว" {
		t.Fatalf("expected duplicate conflict, got %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil || len(list) != 1 || list[0].Count.Pickups != 0 {
		t.Fatalf("list: %v %+v", err, list)
	}
}

func TestDriverLogin(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateDriverInput{Code: "DRV001", Name: "Somchai", Password: "secret1"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	account, err := svc.Login(ctx, "DRV001", "secret1")
	if err != nil || account.Name != "Somchai" {
		t.Fatalf("login: %v %+v", err, account)
	}

	_, err = svc.Login(ctx, "DRV999", "secret1")
	if !common.IsUnauthorized(err) || err.Error() != "ไม่พบรหัสพนักงานนี้" {
		t.Fatalf("expected unknown-code error, got %v", err)
	}
	if _, err := svc.Login(ctx, "DRV001", "wrong"); !common.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized for wrong password, got %v", err)
	}

	inactive := false
	if _, err := svc.Update(ctx, account.ID, UpdateDriverInput{Name: "Somchai", IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := svc.Login(ctx, "DRV001", "secret1"); !common.IsForbidden(err) {
		t.Fatalf("expected suspension error, got %v", err)
	}
}

func TestDriverUpdateRequiresName(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	account, err := svc.Create(ctx, CreateDriverInput{Code: "DRV001", Name: "Somchai", Password: "x"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Update(ctx, account.ID, UpdateDriverInput{})
	if !common.IsValidation(err) || err.Error() != "กรุณากรอกชื่อพนักงาน" {
		t.Fatalf("expected name-required error, got %v", err)
	}

	updated, err := svc.Update(ctx, account.ID, UpdateDriverInput{Name: "Somsak", Password: "new"})
	if err != nil || updated.Name != "Somsak" {
		t.Fatalf("update: %v %+v", err, updated)
	}
	if _, err := svc.Login(ctx, "DRV001", "new"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestDriverDeleteBlockedByPickups(t *testing.T) {
	svc, hospitals, pickups := newService(t)
	ctx := context.Background()

	account, err := svc.Create(ctx, CreateDriverInput{Code: "DRV001", Name: "Somchai", Password: "x"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	h := &models.Hospital{Code: "HOS001", Name: "H", PasswordHash: "x", IsActive: true}
	if err := hospitals.Create(ctx, h); err != nil {
		t.Fatalf("create hospital: %v", err)
	}
	p := &models.Pickup{HospitalID: h.ID, DriverID: account.ID, WeightKg: 1, CollectedAt: time.Now(), Status: models.StatusDone}
	if err := pickups.Create(ctx, p); err != nil {
		t.Fatalf("create pickup: %v", err)
	}

	err = svc.Delete(ctx, account.ID)
	if !common.IsConflict(err) || !strings.Contains(err.Error(), "ไม่สามารถลบพนักงานได้") {
		t.Fatalf("expected blocked delete, got %v", err)
	}

	if _, err := svc.Login(ctx, "DRV001", "x"); err != nil {
		t.Fatalf("driver removed despite block: %v", err)
	}
}
