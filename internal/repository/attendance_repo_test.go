package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schoolworks/erp-engine/internal/models"
)

func newAttendanceRecord(studentNumber, month, year, session string, present int) models.AttendanceRecord {
	return models.AttendanceRecord{
		StudentNumber: studentNumber,
		Class:         "5",
		Section:       "A",
		Month:         month,
		Year:          year,
		WorkingDays:   20,
		DaysPresent:   present,
		Percentage:    float64(present) / 20 * 100,
		Session:       session,
	}
}

func TestAttendanceRepositoryUpsertByKey(t *testing.T) {
	repo := NewAttendanceRepository(setupTestDB(t))
	ctx := context.Background()

	record := newAttendanceRecord("STU000001", "April", "2025", "2024-25", 15)
	require.NoError(t, repo.UpsertByKey(ctx, &record))

	corrected := newAttendanceRecord("STU000001", "April", "2025", "2024-25", 18)
	require.NoError(t, repo.UpsertByKey(ctx, &corrected))
	require.Equal(t, record.ID, corrected.ID)

	rows, err := repo.List(ctx, AttendanceFilter{Session: "2024-25", Month: "April", Year: "2025"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 18, rows[0].DaysPresent)

	// A different month for the same student is a new row.
	may := newAttendanceRecord("STU000001", "May", "2025", "2024-25", 10)
	require.NoError(t, repo.UpsertByKey(ctx, &may))

	all, err := repo.List(ctx, AttendanceFilter{Session: "2024-25"})
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestAttendanceRepositoryAverages(t *testing.T) {
	repo := NewAttendanceRepository(setupTestDB(t))
	ctx := context.Background()

	_, ok, err := repo.AverageForMonth(ctx, "2024-25", "April", "2025")
	require.NoError(t, err)
	require.False(t, ok)

	a := newAttendanceRecord("STU000001", "April", "2025", "2024-25", 20)
	b := newAttendanceRecord("STU000002", "April", "2025", "2024-25", 10)
	c := newAttendanceRecord("STU000003", "May", "2025", "2024-25", 20)
	require.NoError(t, repo.Create(ctx, &a))
	require.NoError(t, repo.Create(ctx, &b))
	require.NoError(t, repo.Create(ctx, &c))

	avg, ok, err := repo.AverageForMonth(ctx, "2024-25", "April", "2025")
	require.NoError(t, err)
	require.True(t, ok)
	require.InDelta(t, 75, avg, 0.001)

	sessionAvg, err := repo.AverageForSession(ctx, "2024-25")
	require.NoError(t, err)
	require.InDelta(t, (100.0+50+100)/3, sessionAvg, 0.001)
}
