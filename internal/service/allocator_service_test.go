package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schoolworks/erp-engine/internal/models"
)

func TestAllocatorStudentNumbersCountAcrossSessions(t *testing.T) {
	env := newTestEnv(t)
	allocator := NewAllocatorService(env.students, env.staff, env.fees, env.logger)
	ctx := context.Background()

	number, err := allocator.NextStudentNumber(ctx)
	require.NoError(t, err)
	require.Equal(t, "STU000001", number)

	env.addStudent(t, "STU000001", "Asha Verma", "5", "A", "2024-25")
	env.addStudent(t, "STU000002", "Rahul Nair", "5", "A", "2025-26")

	// Allocation counts every session, so numbers keep growing after a
	// session switch.
	number, err = allocator.NextStudentNumber(ctx)
	require.NoError(t, err)
	require.Equal(t, "STU000003", number)
}

func TestAllocatorStaffIDs(t *testing.T) {
	env := newTestEnv(t)
	allocator := NewAllocatorService(env.students, env.staff, env.fees, env.logger)
	ctx := context.Background()

	id, err := allocator.NextStaffID(ctx)
	require.NoError(t, err)
	require.Equal(t, "STF000001", id)

	env.addStaff(t, "STF000001", "Meena Iyer", "2024-25")

	id, err = allocator.NextStaffID(ctx)
	require.NoError(t, err)
	require.Equal(t, "STF000002", id)
}

func TestAllocatorReceiptNumbersUseMax(t *testing.T) {
	env := newTestEnv(t)
	allocator := NewAllocatorService(env.students, env.staff, env.fees, env.logger)
	ctx := context.Background()

	receipt, err := allocator.NextReceiptNumber(ctx)
	require.NoError(t, err)
	require.Equal(t, "REC000001", receipt)

	for _, number := range []string{"REC000001", "REC000005", "RECBROKEN"} {
		payment := models.FeePayment{ReceiptNumber: number, StudentNumber: "STU000001", Session: "2024-25"}
		require.NoError(t, env.fees.Insert(ctx, &payment))
	}

	// Gaps are not reused and a malformed suffix is ignored.
	receipt, err = allocator.NextReceiptNumber(ctx)
	require.NoError(t, err)
	require.Equal(t, "REC000006", receipt)
}
