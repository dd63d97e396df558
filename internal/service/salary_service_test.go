package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schoolworks/erp-engine/internal/dto"
)

func newSalaryServiceUnderTest(env *testEnv) SalaryService {
	return NewSalaryService(env.salaries, env.staff, env.settings, env.sessions, env.validate, env.logger)
}

func TestSalaryServiceRecordPayment(t *testing.T) {
	env := newTestEnv(t)
	svc := newSalaryServiceUnderTest(env)
	ctx := context.Background()

	env.addStaff(t, "STF000001", "Meena Iyer", DefaultSession)

	req := dto.SalaryPaymentRequest{
		StaffID:     "STF000001",
		Amount:      30000,
		PaymentDate: "2025-04-30",
		Month:       "April",
		Year:        "2025",
	}

	payment, err := svc.RecordPayment(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "Meena Iyer", payment.StaffName)
	require.Equal(t, DefaultSession, payment.Session)

	// Paying twice for the same month appends a second row.
	_, err = svc.RecordPayment(ctx, req)
	require.NoError(t, err)

	history, err := svc.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
}

func TestSalaryServiceRecordPaymentUnknownStaff(t *testing.T) {
	env := newTestEnv(t)
	svc := newSalaryServiceUnderTest(env)

	_, err := svc.RecordPayment(context.Background(), dto.SalaryPaymentRequest{
		StaffID:     "STF999999",
		Amount:      30000,
		PaymentDate: "2025-04-30",
		Month:       "April",
		Year:        "2025",
	})
	require.ErrorIs(t, err, ErrStaffNotFound)
}

func TestSalaryServiceReceipt(t *testing.T) {
	env := newTestEnv(t)
	svc := newSalaryServiceUnderTest(env)
	ctx := context.Background()

	env.addStaff(t, "STF000001", "Meena Iyer", DefaultSession)

	payment, err := svc.RecordPayment(ctx, dto.SalaryPaymentRequest{
		StaffID:     "STF000001",
		Amount:      30000,
		PaymentDate: "2025-04-30",
		Month:       "April",
		Year:        "2025",
	})
	require.NoError(t, err)

	receipt, err := svc.Receipt(ctx, payment)
	require.NoError(t, err)
	require.Equal(t, "Thirty Thousand", receipt.AmountInWords)
}
