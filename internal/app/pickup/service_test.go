package pickup

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
	"time"

	"wastetrack/internal/app/common"
	"wastetrack/internal/db/repository"
	"wastetrack/internal/logging"
	"wastetrack/internal/models"
	"wastetrack/internal/storage"
	"wastetrack/internal/testutil"
)

type fixture struct {
	svc       Service
	repo      *repository.PickupRepository
	uploadDir string
	hospital  *models.Hospital
	driverA   *models.Driver
	driverB   *models.Driver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	client := testutil.NewDB(t)
	logger := logging.NewNop()
	ctx := context.Background()

	hospitals := repository.NewHospitalRepository(client, logger)
	drivers := repository.NewDriverRepository(client, logger)
	pickups := repository.NewPickupRepository(client, logger)

	h := &models.Hospital{Code: "HOS001", Name: "Hospital", PasswordHash: "x", IsActive: true}
	if err := hospitals.Create(ctx, h); err != nil {
		t.Fatalf("create hospital: %v", err)
	}
	a := &models.Driver{Code: "DRV001", Name: "Driver A", PasswordHash: "x", IsActive: true}
	b := &models.Driver{Code: "DRV002", Name: "Driver B", PasswordHash: "x", IsActive: true}
	for _, d := range []*models.Driver{a, b} {
		if err := drivers.Create(ctx, d); err != nil {
			t.Fatalf("create driver: %v", err)
		}
	}

	dir := t.TempDir()
	svc := NewService(pickups, hospitals, storage.NewLocal(dir), NewNoopEvents(), logger)
	return &fixture{svc: svc, repo: pickups, uploadDir: dir, hospital: h, driverA: a, driverB: b}
}

func photoHeaders(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range names {
		fw, err := mw.CreateFormFile("photos", name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write([]byte("image-bytes")); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["photos"]
}

func (f *fixture) create(t *testing.T, driverID string, names ...string) *PickupDto {
	t.Helper()
	dto, err := f.svc.Create(context.Background(), CreatePickupInput{
		DriverID:     driverID,
		HospitalCode: "HOS001",
		WeightKg:     12.5,
		CollectedAt:  time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
		Status:       models.StatusCollected,
		Photos:       photoHeaders(t, names...),
	})
	if err != nil {
		t.Fatalf("create pickup: %v", err)
	}
	return dto
}

func TestCreatePickupWithPhotos(t *testing.T) {
	f := newFixture(t)

	dto := f.create(t, f.driverA.ID, "front.jpg", "back.jpg", "side.jpg")
	if dto.WeightKg != 12.5 {
		t.Fatalf("weight: %v", dto.WeightKg)
	}
	if dto.Hospital == nil || dto.Hospital.Code != "HOS001" {
		t.Fatalf("hospital ref: %+v", dto.Hospital)
	}
	if len(dto.Photos) != 3 {
		t.Fatalf("expected 3 photo rows, got %d", len(dto.Photos))
	}

	seen := make(map[string]bool)
	for _, p := range dto.Photos {
		if seen[p.FileName] {
			t.Fatalf("duplicate stored name %q", p.FileName)
		}
		seen[p.FileName] = true
		if _, err := os.Stat(filepath.Join(f.uploadDir, p.FileName)); err != nil {
			t.Fatalf("stored file missing: %v", err)
		}
	}
}

func TestCreatePickupUnknownHospital(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), CreatePickupInput{
		DriverID:     f.driverA.ID,
		HospitalCode: "HOS999",
		WeightKg:     1,
		CollectedAt:  time.Now(),
		Status:       models.StatusCollected,
	})
	if !common.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreatePickupRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, CreatePickupInput{
		DriverID: f.driverA.ID, HospitalCode: "HOS001",
		WeightKg: 0, CollectedAt: time.Now(), Status: models.StatusCollected,
	})
	if !common.IsValidation(err) {
		t.Fatalf("expected validation error for zero weight, got %v", err)
	}

	_, err = f.svc.Create(ctx, CreatePickupInput{
		DriverID: f.driverA.ID, HospitalCode: "HOS001",
		WeightKg: 1, CollectedAt: time.Now(), Status: "TELEPORTED",
	})
	if !common.IsValidation(err) {
		t.Fatalf("expected validation error for bad status, got %v", err)
	}
}

func TestUpdatePickupOwnership(t *testing.T) {
	f := newFixture(t)
	dto := f.create(t, f.driverA.ID)

	_, err := f.svc.Update(context.Background(), UpdatePickupInput{
		ID:           dto.ID,
		DriverID:     f.driverB.ID,
		HospitalCode: "HOS001",
		WeightKg:     5,
		CollectedAt:  time.Now(),
		Status:       models.StatusInTransit,
	})
	if !common.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err.Error() != "คุณไม่มีสิทธิ์แก้ไขรายการนี้" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	unchanged, gerr := f.svc.Get(context.Background(), dto.ID)
	if gerr != nil || unchanged.WeightKg != 12.5 {
		t.Fatalf("pickup mutated despite forbidden update: %v %+v", gerr, unchanged)
	}
}

func TestUpdatePickupAppendsPhotos(t *testing.T) {
	f := newFixture(t)
	dto := f.create(t, f.driverA.ID, "first.jpg")

	updated, err := f.svc.Update(context.Background(), UpdatePickupInput{
		ID:           dto.ID,
		DriverID:     f.driverA.ID,
		HospitalCode: "HOS001",
		WeightKg:     9.75,
		CollectedAt:  time.Now(),
		Status:       models.StatusInTransit,
		Note:         "half load",
		Photos:       photoHeaders(t, "second.jpg"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.WeightKg != 9.75 || updated.Status != models.StatusInTransit {
		t.Fatalf("fields not updated: %+v", updated)
	}
	if updated.Note == nil || *updated.Note != "half load" {
		t.Fatalf("note not updated: %v", updated.Note)
	}
	if len(updated.Photos) != 2 {
		t.Fatalf("expected photos appended, got %d", len(updated.Photos))
	}
}

func TestPatchPickup(t *testing.T) {
	f := newFixture(t)
	dto := f.create(t, f.driverA.ID)

	patched, err := f.svc.Patch(context.Background(), PatchPickupInput{
		ID:          dto.ID,
		DriverID:    f.driverA.ID,
		WeightKg:    3.25,
		CollectedAt: time.Date(2025, 2, 1, 8, 30, 0, 0, time.UTC),
		Status:      models.StatusIncinerated,
	})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if patched.WeightKg != 3.25 || patched.Status != models.StatusIncinerated {
		t.Fatalf("patch not applied: %+v", patched)
	}

	_, err = f.svc.Patch(context.Background(), PatchPickupInput{
		ID: dto.ID, DriverID: f.driverA.ID,
		WeightKg: 1, CollectedAt: time.Now(), Status: "nope",
	})
	if !common.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPatchPickupRejectsNonPositiveWeight(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dto := f.create(t, f.driverA.ID)

	for _, weight := range []float64{0, -5} {
		_, err := f.svc.Patch(ctx, PatchPickupInput{
			ID: dto.ID, DriverID: f.driverA.ID,
			WeightKg: weight, CollectedAt: time.Now(), Status: models.StatusCollected,
		})
		if !common.IsValidation(err) {
			t.Fatalf("weight %v: expected validation error, got %v", weight, err)
		}
		var ve common.ValidationError
		if !errors.As(err, &ve) || ve.Msg != "น้ำหนักต้องมากกว่า 0" {
			t.Fatalf("weight %v: unexpected message: %v", weight, err)
		}
	}

	got, err := f.svc.Get(ctx, dto.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.WeightKg != dto.WeightKg {
		t.Fatalf("weight mutated to %v", got.WeightKg)
	}
}

func TestDeletePickupOwnershipAndFiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dto := f.create(t, f.driverA.ID, "one.jpg", "two.jpg")

	err := f.svc.Delete(ctx, f.driverB.ID, dto.ID)
	if !common.IsForbidden(err) || err.Error() != "คุณไม่มีสิทธิ์ลบรายการนี้" {
		t.Fatalf("expected forbidden with exact message, got %v", err)
	}
	if _, err := f.svc.Get(ctx, dto.ID); err != nil {
		t.Fatalf("pickup deleted despite forbidden: %v", err)
	}

	// One file already gone from disk must not block the delete.
	if err := os.Remove(filepath.Join(f.uploadDir, dto.Photos[0].FileName)); err != nil {
		t.Fatalf("remove file: %v", err)
	}

	if err := f.svc.Delete(ctx, f.driverA.ID, dto.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.svc.Get(ctx, dto.ID); !common.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(f.uploadDir, dto.Photos[1].FileName)); !os.IsNotExist(err) {
		t.Fatalf("second file still on disk: %v", err)
	}
}

func TestDeletePhotoOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dto := f.create(t, f.driverA.ID, "pic.jpg")
	photoID := dto.Photos[0].ID

	err := f.svc.DeletePhoto(ctx, f.driverB.ID, photoID)
	if !common.IsForbidden(err) || err.Error() != "คุณไม่มีสิทธิ์ลบรูปภาพนี้" {
		t.Fatalf("expected forbidden with exact message, got %v", err)
	}

	if err := f.svc.DeletePhoto(ctx, f.driverA.ID, photoID); err != nil {
		t.Fatalf("delete photo: %v", err)
	}
	after, err := f.svc.Get(ctx, dto.ID)
	if err != nil || len(after.Photos) != 0 {
		t.Fatalf("photo row survived: %v %+v", err, after.Photos)
	}
}

func TestHospitalDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	now := time.Now()
	inputs := []struct {
		status string
		weight float64
		at     time.Time
	}{
		{models.StatusCollected, 2, now},
		{models.StatusInTransit, 3, now.Add(-72 * time.Hour)},
		{models.StatusCollected, 5, now.Add(-24 * time.Hour)},
	}
	for _, in := range inputs {
		if _, err := f.svc.Create(ctx, CreatePickupInput{
			DriverID:     f.driverA.ID,
			HospitalCode: "HOS001",
			WeightKg:     in.weight,
			CollectedAt:  in.at,
			Status:       in.status,
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	stats, items, err := f.svc.HospitalDashboard(ctx, f.hospital.ID)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if stats.TotalPickups != 3 || stats.CollectedStatus != 2 || stats.InTransitStatus != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.TotalWeight != 10 {
		t.Fatalf("total weight: %v", stats.TotalWeight)
	}
	if stats.TodayPickups != 1 {
		t.Fatalf("today pickups: %d", stats.TodayPickups)
	}
	if len(items) != 3 {
		t.Fatalf("items: %d", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].CollectedAt.Before(items[i].CollectedAt) {
			t.Fatal("items not newest first")
		}
	}
	if items[0].DriverName != "Driver A" {
		t.Fatalf("driver name: %q", items[0].DriverName)
	}
}
