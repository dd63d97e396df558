package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSettingRepositoryGetMissingKey(t *testing.T) {
	repo := NewSettingRepository(setupTestDB(t))

	value, ok, err := repo.Get(context.Background(), "school_name")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, value)
}

func TestSettingRepositorySetOverwrites(t *testing.T) {
	repo := NewSettingRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "school_name", "Sunrise Public School"))
	require.NoError(t, repo.Set(ctx, "school_name", "Sunrise Public School, Pune"))

	value, ok, err := repo.Get(ctx, "school_name")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Sunrise Public School, Pune", value)
}
