package driver

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"wastetrack/internal/app/common"
	"wastetrack/internal/logging"
	"wastetrack/internal/models"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Driver, error)
	GetByCode(ctx context.Context, code string) (*models.Driver, error)
	ListWithPickupCounts(ctx context.Context) ([]models.Driver, error)
	Create(ctx context.Context, d *models.Driver) error
	Save(ctx context.Context, d *models.Driver) error
	Delete(ctx context.Context, id string) error
	PickupCount(ctx context.Context, id string) (int64, error)
}

type Service interface {
	Login(ctx context.Context, code, password string) (*AccountDto, error)
	List(ctx context.Context) ([]DriverDto, error)
	Create(ctx context.Context, in CreateDriverInput) (*AccountDto, error)
	Update(ctx context.Context, id string, in UpdateDriverInput) (*AccountDto, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger logging.Logger
}

func NewService(repo Repository, logger logging.Logger) Service {
	return &service{repo: repo, logger: logger.With("component", "driver_service")}
}

func (s *service) Login(ctx context.Context, code, password string) (*AccountDto, error) {
	d, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.NewUnauthorized("ไม่พบรหัสพนักงานนี้")
		}
		return nil, err
	}
	if !d.IsActive {
		return nil, common.NewForbidden("บัญชีนี้ถูกระงับการใช้งาน")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(password)); err != nil {
		return nil, common.NewUnauthorized("รหัสหรือรหัสผ่านไม่ถูกต้อง")
	}
	return toAccountDTO(d), nil
}

func (s *service) List(ctx context.Context) ([]DriverDto, error) {
	drivers, err := s.repo.ListWithPickupCounts(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]DriverDto, 0, len(drivers))
	for i := range drivers {
		res = append(res, *toDTO(&drivers[i]))
	}
	return res, nil
}

func (s *service) Create(ctx context.Context, in CreateDriverInput) (*AccountDto, error) {
	if in.Code == "" || in.Name == "" || in.Password == "" {
		return nil, common.NewValidation("กรุณากรอกข้อมูลให้ครบถ้วน")
	}

	if _, err := s.repo.GetByCode(ctx, in.Code); err == nil {
		return nil, common.NewConflict("รหัสพนักงานนี้มีอยู่แล้ว")
	} else if !common.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	d := &models.Driver{
		Code:         in.Code,
		Name:         in.Name,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if in.IsActive != nil {
		d.IsActive = *in.IsActive
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	s.logger.Info("driver created", "driverId", d.ID, "code", d.Code)
	return toAccountDTO(d), nil
}

func (s *service) Update(ctx context.Context, id string, in UpdateDriverInput) (*AccountDto, error) {
	if in.Name == "" {
		return nil, common.NewValidation("กรุณากรอกชื่อพนักงาน")
	}

	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	d.Name = in.Name
	if in.IsActive != nil {
		d.IsActive = *in.IsActive
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		d.PasswordHash = string(hash)
	}

	if err := s.repo.Save(ctx, d); err != nil {
		return nil, err
	}
	return toAccountDTO(d), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	count, err := s.repo.PickupCount(ctx, d.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return common.NewConflict(fmt.Sprintf("ไม่สามารถลบพนักงานได้ เนื่องจากมีประวัติการเก็บขยะ %d รายการ\nกรุณาใช้ฟังก์ชัน \"ระงับ\" แทน", count))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("driver deleted", "driverId", id)
	return nil
}
