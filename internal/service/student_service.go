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

// ErrDuplicateStudentNumber indicates the chosen student number already
// exists; the caller recovers by regenerating.
var ErrDuplicateStudentNumber = errors.New("student number already exists")

// StudentService orchestrates the enrollment flows.
type StudentService interface {
	Create(ctx context.Context, req dto.StudentCreateRequest) (models.Student, error)
	List(ctx context.Context, req dto.StudentListRequest) ([]models.Student, error)
	Delete(ctx context.Context, id uint) error
}

type studentService struct {
	repo      repository.StudentRepository
	allocator AllocatorService
	sessions  *SessionService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo repository.StudentRepository, allocator AllocatorService, sessions *SessionService, validate *validator.Validate, logger zerolog.Logger) StudentService {
	return &studentService{
		repo:      repo,
		allocator: allocator,
		sessions:  sessions,
		validator: validate,
		logger:    logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) Create(ctx context.Context, req dto.StudentCreateRequest) (models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Student{}, err
	}

	number := strings.TrimSpace(req.StudentNumber)
	if number == "" {
		allocated, err := s.allocator.NextStudentNumber(ctx)
		if err != nil {
			return models.Student{}, err
		}
		number = allocated
	}

	student := models.Student{
		StudentNumber: number,
		FullName:      strings.TrimSpace(req.FullName),
		RollNumber:    strings.TrimSpace(req.RollNumber),
		Class:         req.Class,
		Section:       req.Section,
		ParentName:    strings.TrimSpace(req.ParentName),
		Gender:        req.Gender,
		DOB:           req.DOB,
		ParentNumber:  strings.TrimSpace(req.ParentNumber),
		Address:       req.Address,
		Session:       s.sessions.Current(),
	}

	if err := s.repo.Create(ctx, &student); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return models.Student{}, ErrDuplicateStudentNumber
		}
		return models.Student{}, fmt.Errorf("failed to save student: %w", err)
	}

	s.logger.Info().Str("student_number", student.StudentNumber).Msg("student added")
	return student, nil
}

func (s *studentService) List(ctx context.Context, req dto.StudentListRequest) ([]models.Student, error) {
	return s.repo.List(ctx, repository.StudentFilter{
		Session: s.sessions.Current(),
		Search:  strings.TrimSpace(req.Search),
		Class:   req.Class,
		Section: req.Section,
	})
}

// Delete removes the row without touching dependent attendance or fee rows;
// those keep their student_number and simply stop resolving.
func (s *studentService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
