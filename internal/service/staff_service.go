package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/schoolworks/erp-engine/internal/dto"
	"github.com/schoolworks/erp-engine/internal/models"
	"github.com/schoolworks/erp-engine/internal/repository"
)

// ErrDuplicateStaffID indicates the chosen staff id already exists.
var ErrDuplicateStaffID = errors.New("staff id already exists")

// StaffService orchestrates the staffing flows.
type StaffService interface {
	Create(ctx context.Context, req dto.StaffCreateRequest) (models.Staff, error)
	List(ctx context.Context, req dto.StaffListRequest) ([]models.Staff, error)
	Delete(ctx context.Context, id uint) error
}

type staffService struct {
	repo      repository.StaffRepository
	allocator AllocatorService
	sessions  *SessionService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStaffService constructs the staff service.
func NewStaffService(repo repository.StaffRepository, allocator AllocatorService, sessions *SessionService, validate *validator.Validate, logger zerolog.Logger) StaffService {
	return &staffService{
		repo:      repo,
		allocator: allocator,
		sessions:  sessions,
		validator: validate,
		logger:    logger.With().Str("component", "staff_service").Logger(),
	}
}

func (s *staffService) Create(ctx context.Context, req dto.StaffCreateRequest) (models.Staff, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Staff{}, err
	}

	staffID := strings.TrimSpace(req.StaffID)
	if staffID == "" {
		allocated, err := s.allocator.NextStaffID(ctx)
		if err != nil {
			return models.Staff{}, err
		}
		staffID = allocated
	}

	staff := models.Staff{
		StaffID:       staffID,
		Name:          strings.TrimSpace(req.Name),
		Phone:         strings.TrimSpace(req.Phone),
		Email:         strings.TrimSpace(req.Email),
		Designation:   strings.TrimSpace(req.Designation),
		Qualification: req.Qualification,
		Department:    req.Department,
		JoiningDate:   req.JoiningDate,
		Salary:        req.Salary,
		Address:       req.Address,
		Session:       s.sessions.Current(),
	}

	if err := s.repo.Create(ctx, &staff); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return models.Staff{}, ErrDuplicateStaffID
		}
		return models.Staff{}, fmt.Errorf("failed to save staff: %w", err)
	}

	s.logger.Info().Str("staff_id", staff.StaffID).Msg("staff member added")
	return staff, nil
}

func (s *staffService) List(ctx context.Context, req dto.StaffListRequest) ([]models.Staff, error) {
	return s.repo.List(ctx, repository.StaffFilter{
		Session: s.sessions.Current(),
		Search:  strings.TrimSpace(req.Search),
	})
}

func (s *staffService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
