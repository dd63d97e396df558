package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/schoolworks/erp-engine/internal/dto"
	"github.com/schoolworks/erp-engine/internal/repository"
)

// Setting keys for school identity and the remembered login.
const (
	SettingSchoolName    = "school_name"
	SettingSchoolAddress = "school_address"
	SettingSchoolEmail   = "school_email"
	SettingRememberMe    = "remember_me"
	SettingSavedUsername = "saved_username"
	SettingSavedPassword = "saved_password"
)

const defaultSchoolName = "School ERP"

// SettingsService manages school identity and the remembered login
// credentials. Passwords are stored as bcrypt hashes.
type SettingsService interface {
	EnsureDefaults(ctx context.Context) error
	SchoolInfo(ctx context.Context) (dto.SchoolInfo, error)
	UpdateSchoolInfo(ctx context.Context, info dto.SchoolInfo) error
	SaveCredentials(ctx context.Context, username, password string) error
	ForgetCredentials(ctx context.Context) error
	VerifyLogin(ctx context.Context, username, password string) (bool, error)
}

type settingsService struct {
	repo   repository.SettingRepository
	logger zerolog.Logger
}

// NewSettingsService constructs the settings service.
func NewSettingsService(repo repository.SettingRepository, logger zerolog.Logger) SettingsService {
	return &settingsService{
		repo:   repo,
		logger: logger.With().Str("component", "settings_service").Logger(),
	}
}

// EnsureDefaults seeds the well-known keys that the rest of the engine
// expects to exist, without overwriting stored values.
func (s *settingsService) EnsureDefaults(ctx context.Context) error {
	defaults := map[string]string{
		SettingSchoolName:    defaultSchoolName,
		SettingSchoolAddress: "",
		SettingSchoolEmail:   "",
		SettingRememberMe:    "false",
		SettingSavedUsername: "",
		SettingSavedPassword: "",
	}

	for key, value := range defaults {
		_, ok, err := s.repo.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to read setting %s: %w", key, err)
		}
		if ok {
			continue
		}
		if err := s.repo.Set(ctx, key, value); err != nil {
			return fmt.Errorf("failed to seed setting %s: %w", key, err)
		}
	}
	return nil
}

func (s *settingsService) SchoolInfo(ctx context.Context) (dto.SchoolInfo, error) {
	name, _, err := s.repo.Get(ctx, SettingSchoolName)
	if err != nil {
		return dto.SchoolInfo{}, err
	}
	address, _, err := s.repo.Get(ctx, SettingSchoolAddress)
	if err != nil {
		return dto.SchoolInfo{}, err
	}
	email, _, err := s.repo.Get(ctx, SettingSchoolEmail)
	if err != nil {
		return dto.SchoolInfo{}, err
	}

	return dto.SchoolInfo{Name: name, Address: address, Email: email}, nil
}

func (s *settingsService) UpdateSchoolInfo(ctx context.Context, info dto.SchoolInfo) error {
	if err := s.repo.Set(ctx, SettingSchoolName, info.Name); err != nil {
		return err
	}
	if err := s.repo.Set(ctx, SettingSchoolAddress, info.Address); err != nil {
		return err
	}
	return s.repo.Set(ctx, SettingSchoolEmail, info.Email)
}

func (s *settingsService) SaveCredentials(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.Set(ctx, SettingSavedUsername, username); err != nil {
		return err
	}
	if err := s.repo.Set(ctx, SettingSavedPassword, string(hash)); err != nil {
		return err
	}
	return s.repo.Set(ctx, SettingRememberMe, "true")
}

func (s *settingsService) ForgetCredentials(ctx context.Context) error {
	if err := s.repo.Set(ctx, SettingSavedUsername, ""); err != nil {
		return err
	}
	if err := s.repo.Set(ctx, SettingSavedPassword, ""); err != nil {
		return err
	}
	return s.repo.Set(ctx, SettingRememberMe, "false")
}

// VerifyLogin compares the given credentials against the remembered pair.
// It reports false, not an error, when nothing is remembered or the
// comparison fails.
func (s *settingsService) VerifyLogin(ctx context.Context, username, password string) (bool, error) {
	savedUser, _, err := s.repo.Get(ctx, SettingSavedUsername)
	if err != nil {
		return false, err
	}
	savedHash, _, err := s.repo.Get(ctx, SettingSavedPassword)
	if err != nil {
		return false, err
	}

	if savedUser == "" || savedHash == "" || savedUser != username {
		return false, nil
	}

	err = bcrypt.CompareHashAndPassword([]byte(savedHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
