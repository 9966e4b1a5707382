package admin

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/crypto/bcrypt"

	"wastetrack/internal/app/common"
	"wastetrack/internal/cache"
	"wastetrack/internal/logging"
	"wastetrack/internal/models"
)

const dashboardTTL = 30 * time.Second

type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
}

// PickupCounters feeds the dashboard aggregates.
type PickupCounters interface {
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountCollectedBetween(ctx context.Context, from, to time.Time) (int64, error)
	Recent(ctx context.Context, limit int) ([]models.Pickup, error)
}

type ActiveCounter interface {
	CountActive(ctx context.Context) (int64, error)
}

type AccountDto struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type RecentCollection struct {
	ID           string    `json:"id"`
	HospitalName string    `json:"hospitalName"`
	DriverName   string    `json:"driverName"`
	CollectedAt  time.Time `json:"collectedAt"`
	Weight       float64   `json:"weight"`
	Status       string    `json:"status"`
}

type DashboardStats struct {
	TotalCollections  int64              `json:"totalCollections"`
	TotalDrivers      int64              `json:"totalDrivers"`
	TotalHospitals    int64              `json:"totalHospitals"`
	TodayCollections  int64              `json:"todayCollections"`
	CollectedStatus   int64              `json:"collectedStatus"`
	InTransitStatus   int64              `json:"inTransitStatus"`
	RecentCollections []RecentCollection `json:"recentCollections"`
}

type Service interface {
	Login(ctx context.Context, username, password string) (*AccountDto, error)
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type service struct {
	repo      Repository
	pickups   PickupCounters
	hospitals ActiveCounter
	drivers   ActiveCounter
	dashCache cache.DashboardCache
	logger    logging.Logger
}

func NewService(repo Repository, pickups PickupCounters, hospitals, drivers ActiveCounter, dashCache cache.DashboardCache, logger logging.Logger) Service {
	return &service{
		repo:      repo,
		pickups:   pickups,
		hospitals: hospitals,
		drivers:   drivers,
		dashCache: dashCache,
		logger:    logger.With("component", "admin_service"),
	}
}

func (s *service) Login(ctx context.Context, username, password string) (*AccountDto, error) {
	a, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.NewUnauthorized("ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง")
		}
		return nil, err
	}
	if !a.IsActive {
		return nil, common.NewForbidden("บัญชีนี้ถูกระงับการใช้งาน")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, common.NewUnauthorized("ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง")
	}
	return &AccountDto{ID: a.ID, Username: a.Username, Name: a.Name}, nil
}

// Dashboard computes the admin aggregates. Results are cached briefly; cache
// failures only cost a recompute.
func (s *service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	if data, err := s.dashCache.Get(ctx); err != nil {
		s.logger.Error("dashboard cache get", "error", err)
	} else if data != nil {
		var stats DashboardStats
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := s.computeDashboard(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(stats); err == nil {
		if err := s.dashCache.Set(ctx, data, dashboardTTL); err != nil {
			s.logger.Error("dashboard cache set", "error", err)
		}
	}
	return stats, nil
}

func (s *service) computeDashboard(ctx context.Context) (*DashboardStats, error) {
	total, err := s.pickups.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalDrivers, err := s.drivers.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	totalHospitals, err := s.hospitals.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	collected, err := s.pickups.CountByStatus(ctx, models.StatusCollected)
	if err != nil {
		return nil, err
	}
	inTransit, err := s.pickups.CountByStatus(ctx, models.StatusInTransit)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.pickups.CountCollectedBetween(ctx, startOfDay, startOfDay.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	recent, err := s.pickups.Recent(ctx, 10)
	if err != nil {
		return nil, err
	}
	recentDTOs := make([]RecentCollection, 0, len(recent))
	for _, p := range recent {
		rc := RecentCollection{
			ID:          p.ID,
			CollectedAt: p.CollectedAt,
			Weight:      p.WeightKg,
			Status:      p.Status,
		}
		if p.Hospital != nil {
			rc.HospitalName = p.Hospital.Name
		}
		if p.Driver != nil {
			rc.DriverName = p.Driver.Name
		}
		recentDTOs = append(recentDTOs, rc)
	}

	return &DashboardStats{
		TotalCollections:  total,
		TotalDrivers:      totalDrivers,
		TotalHospitals:    totalHospitals,
		TodayCollections:  today,
		CollectedStatus:   collected,
		InTransitStatus:   inTransit,
		RecentCollections: recentDTOs,
	}, nil
}
