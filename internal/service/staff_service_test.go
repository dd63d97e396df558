package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schoolworks/erp-engine/internal/dto"
)

func newStaffServiceUnderTest(env *testEnv) StaffService {
	allocator := NewAllocatorService(env.students, env.staff, env.fees, env.logger)
	return NewStaffService(env.staff, allocator, env.sessions, env.validate, env.logger)
}

func validStaffRequest(name string) dto.StaffCreateRequest {
	return dto.StaffCreateRequest{
		Name:        name,
		Phone:       "9000000000",
		Designation: "Teacher",
		Salary:      30000,
	}
}

func TestStaffServiceCreateAllocatesID(t *testing.T) {
	env := newTestEnv(t)
	svc := newStaffServiceUnderTest(env)
	ctx := context.Background()

	member, err := svc.Create(ctx, validStaffRequest("Meena Iyer"))
	require.NoError(t, err)
	require.Equal(t, "STF000001", member.StaffID)
	require.Equal(t, DefaultSession, member.Session)
}

func TestStaffServiceCreateRejectsDuplicateID(t *testing.T) {
	env := newTestEnv(t)
	svc := newStaffServiceUnderTest(env)
	ctx := context.Background()

	req := validStaffRequest("Meena Iyer")
	req.StaffID = "STF000009"
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	again := validStaffRequest("Suresh Rao")
	again.StaffID = "STF000009"
	_, err = svc.Create(ctx, again)
	require.ErrorIs(t, err, ErrDuplicateStaffID)
}

func TestStaffServiceCreateRejectsNegativeSalary(t *testing.T) {
	env := newTestEnv(t)
	svc := newStaffServiceUnderTest(env)

	req := validStaffRequest("Meena Iyer")
	req.Salary = -1
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
}
