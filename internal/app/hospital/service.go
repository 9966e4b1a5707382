package hospital

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"wastetrack/internal/app/common"
	"wastetrack/internal/logging"
	"wastetrack/internal/models"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Hospital, error)
	GetByCode(ctx context.Context, code string) (*models.Hospital, error)
	ListWithPickupCounts(ctx context.Context) ([]models.Hospital, error)
	ListActive(ctx context.Context) ([]models.Hospital, error)
	Create(ctx context.Context, h *models.Hospital) error
	Save(ctx context.Context, h *models.Hospital) error
	Delete(ctx context.Context, id string) error
	PickupCount(ctx context.Context, id string) (int64, error)
}

type Service interface {
	Login(ctx context.Context, code, password string) (*AccountDto, error)
	List(ctx context.Context) ([]HospitalDto, error)
	ListActive(ctx context.Context) ([]OptionDto, error)
	Create(ctx context.Context, in CreateHospitalInput) (*AccountDto, error)
	Update(ctx context.Context, id string, in UpdateHospitalInput) (*AccountDto, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger logging.Logger
}

func NewService(repo Repository, logger logging.Logger) Service {
	return &service{repo: repo, logger: logger.With("component", "hospital_service")}
}

func (s *service) Login(ctx context.Context, code, password string) (*AccountDto, error) {
	h, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.NewUnauthorized("รหัสหรือรหัสผ่านไม่ถูกต้อง")
		}
		return nil, err
	}
	if !h.IsActive {
		return nil, common.NewForbidden("บัญชีนี้ถูกระงับการใช้งาน")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.PasswordHash), []byte(password)); err != nil {
		return nil, common.NewUnauthorized("รหัสหรือรหัสผ่านไม่ถูกต้อง")
	}
	return toAccountDTO(h), nil
}

func (s *service) List(ctx context.Context) ([]HospitalDto, error) {
	hospitals, err := s.repo.ListWithPickupCounts(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]HospitalDto, 0, len(hospitals))
	for i := range hospitals {
		res = append(res, *toDTO(&hospitals[i]))
	}
	return res, nil
}

func (s *service) ListActive(ctx context.Context) ([]OptionDto, error) {
	hospitals, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]OptionDto, 0, len(hospitals))
	for _, h := range hospitals {
		res = append(res, OptionDto{ID: h.ID, Code: h.Code, Name: h.Name})
	}
	return res, nil
}

func (s *service) Create(ctx context.Context, in CreateHospitalInput) (*AccountDto, error) {
	if in.Code == "" || in.Name == "" || in.Password == "" {
		return nil, common.NewValidation("กรุณากรอกข้อมูลให้ครบถ้วน")
	}

	if _, err := s.repo.GetByCode(ctx, in.Code); err == nil {
		return nil, common.NewConflict("รหัสโรงพยาบาลนี้มีอยู่แล้ว")
	} else if !common.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	h := &models.Hospital{
		Code:         in.Code,
		Name:         in.Name,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if in.IsActive != nil {
		h.IsActive = *in.IsActive
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	s.logger.Info("hospital created", "hospitalId", h.ID, "code", h.Code)
	return toAccountDTO(h), nil
}

func (s *service) Update(ctx context.Context, id string, in UpdateHospitalInput) (*AccountDto, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	touched := false
	if in.Name != "" {
		h.Name = in.Name
		touched = true
	}
	if in.IsActive != nil {
		h.IsActive = *in.IsActive
		touched = true
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		h.PasswordHash = string(hash)
		touched = true
	}
	if !touched {
		return nil, common.NewValidation("ไม่มีข้อมูลที่จะอัปเดต")
	}

	if err := s.repo.Save(ctx, h); err != nil {
		return nil, err
	}
	return toAccountDTO(h), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	count, err := s.repo.PickupCount(ctx, h.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return common.NewConflict(fmt.Sprintf("ไม่สามารถลบโรงพยาบาลได้ เนื่องจากมีประวัติการเก็บขยะ %d รายการ\nกรุณาใช้ฟังก์ชัน \"ระงับ\" แทน", count))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("hospital deleted", "hospitalId", id)
	return nil
}
