package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schoolworks/erp-engine/internal/dto"
)

func newAttendanceServiceUnderTest(env *testEnv) AttendanceService {
	return NewAttendanceService(env.attendance, env.students, env.sessions, env.validate, env.logger)
}

func TestAttendanceServiceSaveSheetSkipsUnknownStudents(t *testing.T) {
	env := newTestEnv(t)
	svc := newAttendanceServiceUnderTest(env)
	ctx := context.Background()

	env.addStudent(t, "STU000001", "Asha Verma", "5", "A", DefaultSession)

	sheet := dto.AttendanceSheet{
		Class:       "5",
		Section:     "A",
		Month:       "April",
		Year:        "2025",
		WorkingDays: 20,
		Entries: []dto.AttendanceEntry{
			{StudentNumber: "STU000001", DaysPresent: 15},
			{StudentNumber: "STU999999", DaysPresent: 10},
		},
	}

	saved, err := svc.SaveSheet(ctx, sheet)
	require.NoError(t, err)
	require.Equal(t, 1, saved)

	rows, err := svc.ListForMonth(ctx, "April", "2025")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "STU000001", rows[0].StudentNumber)
	require.InDelta(t, 75, rows[0].Percentage, 0.001)
}

func TestAttendanceServiceResaveUpdatesInPlace(t *testing.T) {
	env := newTestEnv(t)
	svc := newAttendanceServiceUnderTest(env)
	ctx := context.Background()

	env.addStudent(t, "STU000001", "Asha Verma", "5", "A", DefaultSession)

	sheet := dto.AttendanceSheet{
		Class:       "5",
		Section:     "A",
		Month:       "April",
		Year:        "2025",
		WorkingDays: 20,
		Entries:     []dto.AttendanceEntry{{StudentNumber: "STU000001", DaysPresent: 12}},
	}
	_, err := svc.SaveSheet(ctx, sheet)
	require.NoError(t, err)

	sheet.Entries[0].DaysPresent = 18
	saved, err := svc.SaveSheet(ctx, sheet)
	require.NoError(t, err)
	require.Equal(t, 1, saved)

	rows, err := svc.ListForMonth(ctx, "April", "2025")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 18, rows[0].DaysPresent)
	require.InDelta(t, 90, rows[0].Percentage, 0.001)
}

func TestAttendanceServiceSheetAverage(t *testing.T) {
	env := newTestEnv(t)
	svc := newAttendanceServiceUnderTest(env)

	sheet := dto.AttendanceSheet{
		Class:       "5",
		Section:     "A",
		Month:       "April",
		Year:        "2025",
		WorkingDays: 20,
		Entries: []dto.AttendanceEntry{
			{StudentNumber: "STU000001", DaysPresent: 20},
			{StudentNumber: "STU000002", DaysPresent: 10},
		},
	}
	require.InDelta(t, 75, svc.SheetAverage(context.Background(), sheet), 0.001)

	// A sheet with no working days averages to zero rather than erroring.
	sheet.WorkingDays = 0
	require.Zero(t, svc.SheetAverage(context.Background(), sheet))
}

func TestAttendanceServiceValidatesSheet(t *testing.T) {
	env := newTestEnv(t)
	svc := newAttendanceServiceUnderTest(env)

	_, err := svc.SaveSheet(context.Background(), dto.AttendanceSheet{Month: "April"})
	require.Error(t, err)
}
