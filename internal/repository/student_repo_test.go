package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/schoolworks/erp-engine/internal/models"
)

func newStudent(number, name, session string) models.Student {
	return models.Student{
		StudentNumber: number,
		FullName:      name,
		RollNumber:    "1",
		Class:         "5",
		Section:       "A",
		ParentName:    "Parent",
		Session:       session,
	}
}

func TestStudentRepositoryCreateDuplicateNumber(t *testing.T) {
	repo := NewStudentRepository(setupTestDB(t))
	ctx := context.Background()

	first := newStudent("STU000001", "Asha Verma", "2024-25")
	require.NoError(t, repo.Create(ctx, &first))

	// Same natural key in a different session still collides.
	second := newStudent("STU000001", "Someone Else", "2025-26")
	err := repo.Create(ctx, &second)
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestStudentRepositoryUpsertByNumber(t *testing.T) {
	repo := NewStudentRepository(setupTestDB(t))
	ctx := context.Background()

	original := newStudent("STU000001", "Asha Verma", "2024-25")
	require.NoError(t, repo.UpsertByNumber(ctx, &original))

	updated := newStudent("STU000001", "Asha V.", "2024-25")
	updated.Class = "6"
	require.NoError(t, repo.UpsertByNumber(ctx, &updated))

	// The existing row was replaced in place, not duplicated.
	require.Equal(t, original.ID, updated.ID)

	count, err := repo.CountAll(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	stored, err := repo.GetByNumber(ctx, "STU000001")
	require.NoError(t, err)
	require.Equal(t, "Asha V.", stored.FullName)
	require.Equal(t, "6", stored.Class)
}

func TestStudentRepositoryListFilters(t *testing.T) {
	repo := NewStudentRepository(setupTestDB(t))
	ctx := context.Background()

	rows := []models.Student{
		newStudent("STU000001", "Asha Verma", "2024-25"),
		newStudent("STU000002", "Rahul Nair", "2024-25"),
		newStudent("STU000003", "Asha Pillai", "2025-26"),
	}
	for i := range rows {
		require.NoError(t, repo.Create(ctx, &rows[i]))
	}

	scoped, err := repo.List(ctx, StudentFilter{Session: "2024-25"})
	require.NoError(t, err)
	require.Len(t, scoped, 2)

	all, err := repo.List(ctx, StudentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	// Search is case-insensitive and matches name or number.
	byName, err := repo.List(ctx, StudentFilter{Session: "2024-25", Search: "asha"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	require.Equal(t, "STU000001", byName[0].StudentNumber)

	byNumber, err := repo.List(ctx, StudentFilter{Search: "stu000002"})
	require.NoError(t, err)
	require.Len(t, byNumber, 1)
	require.Equal(t, "Rahul Nair", byNumber[0].FullName)
}

func TestStudentRepositoryCountsAndDeleteAll(t *testing.T) {
	repo := NewStudentRepository(setupTestDB(t))
	ctx := context.Background()

	a := newStudent("STU000001", "Asha Verma", "2024-25")
	b := newStudent("STU000002", "Rahul Nair", "2025-26")
	require.NoError(t, repo.Create(ctx, &a))
	require.NoError(t, repo.Create(ctx, &b))

	total, err := repo.CountAll(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	scoped, err := repo.CountBySession(ctx, "2024-25")
	require.NoError(t, err)
	require.EqualValues(t, 1, scoped)

	require.NoError(t, repo.DeleteAll(ctx))
	total, err = repo.CountAll(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, total)

	_, err = repo.GetByNumber(ctx, "STU000001")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
