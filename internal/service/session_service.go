package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/schoolworks/erp-engine/internal/repository"
)

// DefaultSession is used when no last_session setting has been persisted yet.
const DefaultSession = "2024-25"

const settingLastSession = "last_session"

// ErrEmptySession rejects a switch to a blank session tag.
var ErrEmptySession = errors.New("session must not be empty")

// SessionService holds the active academic session. It is initialized from
// the persisted last_session setting, and every switch is persisted back.
// Switching never deletes or migrates rows; it only changes which rows
// session-scoped queries surface.
type SessionService struct {
	mu       sync.RWMutex
	settings repository.SettingRepository
	current  string
	logger   zerolog.Logger
}

// NewSessionService loads the active session from settings, falling back to
// the given default (or DefaultSession when that is blank too).
func NewSessionService(ctx context.Context, settings repository.SettingRepository, fallback string, logger zerolog.Logger) (*SessionService, error) {
	if fallback == "" {
		fallback = DefaultSession
	}

	value, ok, err := settings.Get(ctx, settingLastSession)
	if err != nil {
		return nil, fmt.Errorf("failed to load last session: %w", err)
	}
	if !ok || value == "" {
		value = fallback
	}

	return &SessionService{
		settings: settings,
		current:  value,
		logger:   logger.With().Str("component", "session_service").Logger(),
	}, nil
}

// Current returns the active session tag.
func (s *SessionService) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Switch makes the given session active and persists it as last_session.
func (s *SessionService) Switch(ctx context.Context, session string) error {
	if session == "" {
		return ErrEmptySession
	}

	if err := s.settings.Set(ctx, settingLastSession, session); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.mu.Lock()
	s.current = session
	s.mu.Unlock()

	s.logger.Info().Str("session", session).Msg("active session switched")
	return nil
}
