package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/schoolworks/erp-engine/internal/dto"
)

func newStudentServiceUnderTest(env *testEnv) StudentService {
	allocator := NewAllocatorService(env.students, env.staff, env.fees, env.logger)
	return NewStudentService(env.students, allocator, env.sessions, env.validate, env.logger)
}

func validStudentRequest(name string) dto.StudentCreateRequest {
	return dto.StudentCreateRequest{
		FullName:     name,
		RollNumber:   "7",
		Class:        "5",
		Section:      "A",
		ParentName:   "Parent of " + name,
		ParentNumber: "9000000000",
		Address:      "12 Lake View Road",
	}
}

func TestStudentServiceCreateAllocatesNumber(t *testing.T) {
	env := newTestEnv(t)
	svc := newStudentServiceUnderTest(env)
	ctx := context.Background()

	student, err := svc.Create(ctx, validStudentRequest("Asha Verma"))
	require.NoError(t, err)
	require.Equal(t, "STU000001", student.StudentNumber)
	require.Equal(t, DefaultSession, student.Session)

	second, err := svc.Create(ctx, validStudentRequest("Rahul Nair"))
	require.NoError(t, err)
	require.Equal(t, "STU000002", second.StudentNumber)
}

func TestStudentServiceCreateRejectsDuplicateNumber(t *testing.T) {
	env := newTestEnv(t)
	svc := newStudentServiceUnderTest(env)
	ctx := context.Background()

	req := validStudentRequest("Asha Verma")
	req.StudentNumber = "STU000042"
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	again := validStudentRequest("Rahul Nair")
	again.StudentNumber = "STU000042"
	_, err = svc.Create(ctx, again)
	require.ErrorIs(t, err, ErrDuplicateStudentNumber)
}

func TestStudentServiceCreateValidatesRequired(t *testing.T) {
	env := newTestEnv(t)
	svc := newStudentServiceUnderTest(env)

	req := validStudentRequest("Asha Verma")
	req.ParentNumber = ""
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
}

func TestStudentServiceListScopesToActiveSession(t *testing.T) {
	env := newTestEnv(t)
	svc := newStudentServiceUnderTest(env)
	ctx := context.Background()

	_, err := svc.Create(ctx, validStudentRequest("Asha Verma"))
	require.NoError(t, err)

	require.NoError(t, env.sessions.Switch(ctx, "2025-26"))
	_, err = svc.Create(ctx, validStudentRequest("Rahul Nair"))
	require.NoError(t, err)

	current, err := svc.List(ctx, dto.StudentListRequest{})
	require.NoError(t, err)
	require.Len(t, current, 1)
	require.Equal(t, "Rahul Nair", current[0].FullName)

	// The earlier session's rows are untouched, just out of scope.
	require.NoError(t, env.sessions.Switch(ctx, DefaultSession))
	previous, err := svc.List(ctx, dto.StudentListRequest{})
	require.NoError(t, err)
	require.Len(t, previous, 1)
	require.Equal(t, "Asha Verma", previous[0].FullName)
}
