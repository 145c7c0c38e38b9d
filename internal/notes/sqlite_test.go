package notes

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weekboard/internal/db"
	"weekboard/internal/week"
)

func newSQLiteRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	ctx := context.Background()

	sqlDB, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "data", "notes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	repo := NewSQLiteRepo(sqlDB)
	require.NoError(t, repo.Migrate(ctx))
	require.NoError(t, repo.Migrate(ctx), "migrate is idempotent")
	return repo
}

func TestSQLiteRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	owner := "prof-ramirez"
	n := &Note{
		Title: "Lectura", Content: "cap. 4", Day: week.Thursday, Category: CategoryTask,
		Color: ColorBlue, WeekOffset: 2, Repeat: true, Position: 3, OwnerRef: &owner,
	}
	require.NoError(t, repo.Insert(ctx, n))
	require.NotEmpty(t, n.ID)

	got, err := repo.FindByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, n.Title, got.Title)
	assert.Equal(t, week.Thursday, got.Day)
	assert.Equal(t, ColorBlue, got.Color)
	assert.True(t, got.Repeat)
	require.NotNil(t, got.OwnerRef)
	assert.Equal(t, owner, *got.OwnerRef)
	assert.True(t, n.CreatedAt.Equal(got.CreatedAt))

	day, pos := week.Friday, 0
	updated, err := repo.Update(ctx, n.ID, Patch{Day: &day, Position: &pos})
	require.NoError(t, err)
	assert.Equal(t, week.Friday, updated.Day)
	assert.Equal(t, "cap. 4", updated.Content)

	require.NoError(t, repo.Delete(ctx, n.ID))
	_, err = repo.FindByID(ctx, n.ID)
	assert.ErrorIs(t, err, ErrNoteNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, n.ID), ErrNoteNotFound)

	_, err = repo.Update(ctx, n.ID, Patch{Day: &day})
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestSQLiteRepo_ListByWeekKeepsInsertOrder(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	for _, title := range []string{"uno", "dos", "tres"} {
		require.NoError(t, repo.Insert(ctx, &Note{Title: title, Content: "x", Day: week.Monday, Category: CategoryTask, Color: ColorDefault}))
	}
	require.NoError(t, repo.Insert(ctx, &Note{Title: "otra semana", Content: "x", Day: week.Monday, Category: CategoryTask, Color: ColorDefault, WeekOffset: -1}))

	list, err := repo.ListByWeek(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"uno", "dos", "tres"}, []string{list[0].Title, list[1].Title, list[2].Title})
	assert.Nil(t, list[0].OwnerRef)

	empty, err := repo.ListByWeek(ctx, 9)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestSQLiteRepo_BacksService(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newSQLiteRepo(t))

	a, err := svc.Create(ctx, CreateNoteInput{Title: "a", Content: "x", Day: "monday", Category: "task", Position: 0})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateNoteInput{Title: "b", Content: "x", Day: "monday", Category: "task", Position: 1})
	require.NoError(t, err)

	_, moved, err := svc.Move(ctx, a.ID, MoveInput{Day: "monday", Index: 5})
	require.NoError(t, err)
	require.True(t, moved)

	b, err := svc.Board(ctx, 0)
	require.NoError(t, err)
	notes := b.Bucket(week.Monday).Notes
	require.Len(t, notes, 2)
	assert.Equal(t, "b", notes[0].Title)
	assert.Equal(t, "a", notes[1].Title)
}
