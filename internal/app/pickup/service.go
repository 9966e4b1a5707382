package pickup

import (
	"context"
	"mime/multipart"
	"sort"
	"time"

	"wastetrack/internal/app/common"
	"wastetrack/internal/logging"
	"wastetrack/internal/models"
	"wastetrack/internal/storage"
)

// Repository is the persistence surface the service needs.
type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Pickup, error)
	ListByDriver(ctx context.Context, driverID string) ([]models.Pickup, error)
	ListByHospital(ctx context.Context, hospitalID string) ([]models.Pickup, error)
	Create(ctx context.Context, p *models.Pickup) error
	Save(ctx context.Context, p *models.Pickup) error
	Delete(ctx context.Context, id string) error
	AddPhoto(ctx context.Context, photo *models.PickupPhoto) error
	GetPhoto(ctx context.Context, id string) (*models.PickupPhoto, error)
	DeletePhoto(ctx context.Context, id string) error
}

// HospitalDirectory resolves the hospital code drivers submit on pickup forms.
type HospitalDirectory interface {
	GetByCode(ctx context.Context, code string) (*models.Hospital, error)
}

type Service interface {
	ListByDriver(ctx context.Context, driverID string) ([]PickupDto, error)
	Get(ctx context.Context, id string) (*PickupDto, error)
	Create(ctx context.Context, in CreatePickupInput) (*PickupDto, error)
	Update(ctx context.Context, in UpdatePickupInput) (*PickupDto, error)
	Patch(ctx context.Context, in PatchPickupInput) (*PickupDto, error)
	Delete(ctx context.Context, driverID, id string) error
	DeletePhoto(ctx context.Context, driverID, photoID string) error
	HospitalFeed(ctx context.Context, hospitalID string) ([]PickupDto, error)
	HospitalDashboard(ctx context.Context, hospitalID string) (*HospitalStats, []HospitalDashboardItem, error)
}

type service struct {
	repo      Repository
	hospitals HospitalDirectory
	store     storage.Storage
	events    Events
	logger    logging.Logger
}

func NewService(repo Repository, hospitals HospitalDirectory, store storage.Storage, events Events, logger logging.Logger) Service {
	return &service{
		repo:      repo,
		hospitals: hospitals,
		store:     store,
		events:    events,
		logger:    logger.With("component", "pickup_service"),
	}
}

func (s *service) ListByDriver(ctx context.Context, driverID string) ([]PickupDto, error) {
	list, err := s.repo.ListByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	return toDTOs(list), nil
}

func (s *service) Get(ctx context.Context, id string) (*PickupDto, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(p), nil
}

func (s *service) Create(ctx context.Context, in CreatePickupInput) (*PickupDto, error) {
	if in.WeightKg <= 0 {
		return nil, common.NewValidation("น้ำหนักต้องมากกว่า 0")
	}
	if !models.ValidStatus(in.Status) {
		return nil, common.NewValidation("Invalid status")
	}

	hospital, err := s.hospitals.GetByCode(ctx, in.HospitalCode)
	if err != nil {
		return nil, err
	}

	p := &models.Pickup{
		HospitalID:  hospital.ID,
		DriverID:    in.DriverID,
		WeightKg:    in.WeightKg,
		CollectedAt: in.CollectedAt,
		Status:      in.Status,
	}
	if in.Note != "" {
		note := in.Note
		p.Note = &note
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.attachPhotos(ctx, p.ID, in.Photos)

	created, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	dto := toDTO(created)

	if err := s.events.PickupCreated(ctx, dto); err != nil {
		s.logger.Error("publish pickup created event", "pickupId", p.ID, "error", err)
	}
	return dto, nil
}

func (s *service) Update(ctx context.Context, in UpdatePickupInput) (*PickupDto, error) {
	existing, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if existing.DriverID != in.DriverID {
		return nil, common.NewForbidden("คุณไม่มีสิทธิ์แก้ไขรายการนี้")
	}
	if in.WeightKg <= 0 {
		return nil, common.NewValidation("น้ำหนักต้องมากกว่า 0")
	}
	if !models.ValidStatus(in.Status) {
		return nil, common.NewValidation("Invalid status")
	}

	hospital, err := s.hospitals.GetByCode(ctx, in.HospitalCode)
	if err != nil {
		return nil, err
	}

	existing.HospitalID = hospital.ID
	existing.WeightKg = in.WeightKg
	existing.CollectedAt = in.CollectedAt
	existing.Status = in.Status
	if in.Note != "" {
		note := in.Note
		existing.Note = &note
	} else {
		existing.Note = nil
	}
	if err := s.repo.Save(ctx, existing); err != nil {
		return nil, err
	}

	s.attachPhotos(ctx, existing.ID, in.Photos)

	updated, err := s.repo.GetByID(ctx, existing.ID)
	if err != nil {
		return nil, err
	}
	dto := toDTO(updated)

	if err := s.events.PickupUpdated(ctx, dto); err != nil {
		s.logger.Error("publish pickup updated event", "pickupId", existing.ID, "error", err)
	}
	return dto, nil
}

func (s *service) Patch(ctx context.Context, in PatchPickupInput) (*PickupDto, error) {
	existing, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if existing.DriverID != in.DriverID {
		return nil, common.NewForbidden("คุณไม่มีสิทธิ์แก้ไขรายการนี้")
	}
	if in.WeightKg <= 0 {
		return nil, common.NewValidation("น้ำหนักต้องมากกว่า 0")
	}
	if !models.ValidStatus(in.Status) {
		return nil, common.NewValidation("Invalid status")
	}

	existing.WeightKg = in.WeightKg
	existing.CollectedAt = in.CollectedAt
	existing.Status = in.Status
	if in.Note != "" {
		note := in.Note
		existing.Note = &note
	} else {
		existing.Note = nil
	}
	if err := s.repo.Save(ctx, existing); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, existing.ID)
	if err != nil {
		return nil, err
	}
	dto := toDTO(updated)

	if err := s.events.PickupUpdated(ctx, dto); err != nil {
		s.logger.Error("publish pickup updated event", "pickupId", existing.ID, "error", err)
	}
	return dto, nil
}

func (s *service) Delete(ctx context.Context, driverID, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.DriverID != driverID {
		return common.NewForbidden("คุณไม่มีสิทธิ์ลบรายการนี้")
	}

	// Files go first, best effort. A missing file never blocks the delete.
	for _, photo := range existing.Photos {
		if err := s.store.Remove(ctx, photo.FileName); err != nil {
			s.logger.Error("remove pickup photo file", "fileName", photo.FileName, "error", err)
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.events.PickupDeleted(ctx, id); err != nil {
		s.logger.Error("publish pickup deleted event", "pickupId", id, "error", err)
	}
	return nil
}

func (s *service) DeletePhoto(ctx context.Context, driverID, photoID string) error {
	photo, err := s.repo.GetPhoto(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.Pickup == nil || photo.Pickup.DriverID != driverID {
		return common.NewForbidden("คุณไม่มีสิทธิ์ลบรูปภาพนี้")
	}

	if err := s.store.Remove(ctx, photo.FileName); err != nil {
		s.logger.Error("remove pickup photo file", "fileName", photo.FileName, "error", err)
	}
	return s.repo.DeletePhoto(ctx, photoID)
}

func (s *service) HospitalFeed(ctx context.Context, hospitalID string) ([]PickupDto, error) {
	list, err := s.repo.ListByHospital(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	return toDTOs(list), nil
}

func (s *service) HospitalDashboard(ctx context.Context, hospitalID string) (*HospitalStats, []HospitalDashboardItem, error) {
	list, err := s.repo.ListByHospital(ctx, hospitalID)
	if err != nil {
		return nil, nil, err
	}
	// The dashboard shows newest collections first, regardless of when the
	// rows were recorded.
	sort.Slice(list, func(i, j int) bool {
		return list[i].CollectedAt.After(list[j].CollectedAt)
	})

	stats := &HospitalStats{TotalPickups: len(list)}
	items := make([]HospitalDashboardItem, 0, len(list))
	today := time.Now()
	for _, p := range list {
		stats.TotalWeight += p.WeightKg
		switch p.Status {
		case models.StatusCollected:
			stats.CollectedStatus++
		case models.StatusInTransit:
			stats.InTransitStatus++
		}
		if sameDay(p.CollectedAt, today) {
			stats.TodayPickups++
		}

		item := HospitalDashboardItem{
			ID:          p.ID,
			CollectedAt: p.CollectedAt,
			WeightKg:    p.WeightKg,
			Status:      p.Status,
			Note:        p.Note,
			Photos:      make([]PhotoRef, 0, len(p.Photos)),
		}
		if p.Driver != nil {
			item.DriverName = p.Driver.Name
		}
		for _, photo := range p.Photos {
			item.Photos = append(item.Photos, PhotoRef{ID: photo.ID, FileName: photo.FileName})
		}
		items = append(items, item)
	}
	return stats, items, nil
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// attachPhotos stores each upload and records a photo row. A failure on one
// file is logged and skipped so the remaining files still go through.
func (s *service) attachPhotos(ctx context.Context, pickupID string, files []*multipart.FileHeader) {
	for _, fh := range files {
		if fh == nil || fh.Size == 0 {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			s.logger.Error("open uploaded photo", "name", fh.Filename, "error", err)
			continue
		}
		name, err := s.store.Save(ctx, fh.Filename, f)
		f.Close()
		if err != nil {
			s.logger.Error("store uploaded photo", "name", fh.Filename, "error", err)
			continue
		}
		photo := &models.PickupPhoto{
			PickupID: pickupID,
			FileName: name,
			MimeType: fh.Header.Get("Content-Type"),
			FileSize: fh.Size,
		}
		if err := s.repo.AddPhoto(ctx, photo); err != nil {
			s.logger.Error("record uploaded photo", "fileName", name, "error", err)
		}
	}
}
