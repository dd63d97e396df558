package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionServiceDefaults(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, DefaultSession, env.sessions.Current())

	custom, err := NewSessionService(context.Background(), env.settingsR, "2026-27", env.logger)
	require.NoError(t, err)
	require.Equal(t, "2026-27", custom.Current())
}

func TestSessionServiceSwitchPersists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.sessions.Switch(ctx, "2025-26"))
	require.Equal(t, "2025-26", env.sessions.Current())

	// A new instance over the same store resumes the persisted session.
	reloaded, err := NewSessionService(ctx, env.settingsR, "", env.logger)
	require.NoError(t, err)
	require.Equal(t, "2025-26", reloaded.Current())
}

func TestSessionServiceRejectsEmptyTag(t *testing.T) {
	env := newTestEnv(t)
	err := env.sessions.Switch(context.Background(), "")
	require.ErrorIs(t, err, ErrEmptySession)
	require.Equal(t, DefaultSession, env.sessions.Current())
}
