package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTotalFee(t *testing.T) {
	require.Zero(t, TotalFee(FeeComponents{}))

	total := TotalFee(FeeComponents{
		Tuition:     1000,
		Lab:         150,
		Sport:       100,
		Computer:    200,
		Maintenance: 50,
		Exam:        250,
		Late:        25,
	})
	require.InDelta(t, 1775, total, 0.001)
}

func TestAttendancePercentage(t *testing.T) {
	require.Zero(t, AttendancePercentage(10, 0))
	require.Zero(t, AttendancePercentage(10, -5))
	require.InDelta(t, 75, AttendancePercentage(15, 20), 0.001)
	require.InDelta(t, 100, AttendancePercentage(20, 20), 0.001)
	// Presence above working days is stored as-is, not clamped.
	require.InDelta(t, 110, AttendancePercentage(22, 20), 0.001)
}

func TestAttendanceStatusBands(t *testing.T) {
	require.Equal(t, AttendanceStatusPoor, AttendanceStatus(0))
	require.Equal(t, AttendanceStatusPoor, AttendanceStatus(49.9))
	require.Equal(t, AttendanceStatusAverage, AttendanceStatus(50))
	require.Equal(t, AttendanceStatusAverage, AttendanceStatus(74.9))
	require.Equal(t, AttendanceStatusGood, AttendanceStatus(75))
	require.Equal(t, AttendanceStatusGood, AttendanceStatus(100))
}

func TestClassAverage(t *testing.T) {
	require.Zero(t, ClassAverage(nil))
	require.InDelta(t, 60, ClassAverage([]float64{40, 60, 80}), 0.001)
}

func TestAmountToWords(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "Zero"},
		{7, "Seven"},
		{13, "Thirteen"},
		{40, "Forty"},
		{99, "Ninety Nine"},
		{100, "One Hundred"},
		{256, "Two Hundred Fifty Six"},
		{1000, "One Thousand"},
		{1500, "One Thousand Five Hundred"},
		{25750, "Twenty Five Thousand Seven Hundred Fifty"},
		{99999, "Ninety Nine Thousand Nine Hundred Ninety Nine"},
		// The fractional part never reaches the words.
		{1500.75, "One Thousand Five Hundred"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, AmountToWords(tc.amount), "amount %v", tc.amount)
	}

	// Beyond the Thousand vocabulary the raw figure is printed instead.
	require.Equal(t, "Amount: 100000.00", AmountToWords(100000))
	require.Equal(t, "Amount: 123456.50", AmountToWords(123456.50))
}
