package notes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weekboard/internal/week"
)

// spyRepo counts writes and can inject failures into a MemoryRepo.
type spyRepo struct {
	*MemoryRepo
	updates   int
	deleteErr error
}

func (r *spyRepo) Update(ctx context.Context, id string, p Patch) (*Note, error) {
	r.updates++
	return r.MemoryRepo.Update(ctx, id, p)
}

func (r *spyRepo) Delete(ctx context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	return r.MemoryRepo.Delete(ctx, id)
}

var fixedNow = time.Date(2026, time.October, 21, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *spyRepo) {
	t.Helper()
	repo := &spyRepo{MemoryRepo: NewMemoryRepo()}
	svc := NewService(repo)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func mustCreate(t *testing.T, svc *Service, in CreateNoteInput) *Note {
	t.Helper()
	n, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	return n
}

func TestService_CreateAssignsFreshIDs(t *testing.T) {
	svc, _ := newTestService(t)

	a := mustCreate(t, svc, validInput())
	b := mustCreate(t, svc, validInput())

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, fixedNow, a.CreatedAt)
}

func TestService_CreateInvalid(t *testing.T) {
	svc, _ := newTestService(t)

	in := validInput()
	in.Category = "party"
	_, err := svc.Create(context.Background(), in)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("category"))

	notes, err := svc.ListWeek(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, notes, "nothing stored on validation failure")
}

func TestService_UpdatePreservesOmittedFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	in := validInput()
	in.Color = "green"
	in.Repeat = true
	created := mustCreate(t, svc, in)

	title := "Math HW (ch. 3)"
	updated, err := svc.Update(ctx, created.ID, UpdateNoteInput{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, title, updated.Title)
	assert.Equal(t, "p.12", updated.Content)
	assert.Equal(t, ColorGreen, updated.Color)
	assert.True(t, updated.Repeat)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestService_UpdateErrors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	title := "x"
	_, err := svc.Update(ctx, "missing", UpdateNoteInput{Title: &title})
	assert.ErrorIs(t, err, ErrNoteNotFound)

	created := mustCreate(t, svc, validInput())
	bad := "caturday"
	_, err = svc.Update(ctx, created.ID, UpdateNoteInput{Day: &bad})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("day"))
}

func TestService_DeleteThenGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	created := mustCreate(t, svc, validInput())

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err := svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNoteNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNoteNotFound)
}

func TestService_DeleteStorageFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("backend error", func(t *testing.T) {
		svc, repo := newTestService(t)
		created := mustCreate(t, svc, validInput())
		repo.deleteErr = storageErr("delete note", errors.New("disk full"))

		err := svc.Delete(ctx, created.ID)
		assert.ErrorIs(t, err, ErrStorage)
		assert.NotErrorIs(t, err, ErrNoteNotFound)
	})

	t.Run("note vanishes after the existence check", func(t *testing.T) {
		svc, repo := newTestService(t)
		created := mustCreate(t, svc, validInput())
		repo.deleteErr = ErrNoteNotFound

		err := svc.Delete(ctx, created.ID)
		assert.ErrorIs(t, err, ErrStorage)
		assert.NotErrorIs(t, err, ErrNoteNotFound)
	})
}

func TestService_Board(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, in := range []CreateNoteInput{
		{Title: "c", Content: "x", Day: "monday", Category: "task", Position: 3},
		{Title: "a", Content: "x", Day: "monday", Category: "task", Position: 1},
		{Title: "b", Content: "x", Day: "monday", Category: "birthday", Position: 2},
		{Title: "next", Content: "x", Day: "monday", Category: "task", WeekOffset: 1},
		{Title: "sat", Content: "x", Day: "saturday", Category: "celebration"},
	} {
		mustCreate(t, svc, in)
	}

	b, err := svc.Board(ctx, 0)
	require.NoError(t, err)

	assert.Equal(t, "Octubre 19 - 23, 2026", b.Week.Label)
	var titles []string
	for _, n := range b.Bucket(week.Monday).Notes {
		titles = append(titles, n.Title)
	}
	assert.Equal(t, []string{"a", "b", "c"}, titles)
	assert.True(t, b.HasEvents(week.Saturday))
	assert.False(t, b.HasEvents(week.Sunday))
	assert.Equal(t, time.Date(2026, time.October, 24, 0, 0, 0, 0, time.UTC), b.Bucket(week.Saturday).Date)
}

func TestService_MoveNoOpSkipsWrite(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	first := mustCreate(t, svc, CreateNoteInput{Title: "a", Content: "x", Day: "monday", Category: "task", Position: 0})
	second := mustCreate(t, svc, CreateNoteInput{Title: "b", Content: "x", Day: "monday", Category: "task", Position: 7})

	got, moved, err := svc.Move(ctx, second.ID, MoveInput{Day: "monday", Index: 1})
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, 7, got.Position)
	assert.Zero(t, repo.updates)

	got, moved, err = svc.Move(ctx, first.ID, MoveInput{Day: "wednesday", Index: 0})
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, week.Wednesday, got.Day)
	assert.Equal(t, 1, repo.updates)
}

func TestService_MoveErrors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	created := mustCreate(t, svc, validInput())

	_, _, err := svc.Move(ctx, "missing", MoveInput{Day: "monday"})
	assert.ErrorIs(t, err, ErrNoteNotFound)

	_, _, err = svc.Move(ctx, created.ID, MoveInput{Day: "someday", Index: -2})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("day"))
	assert.True(t, verr.Has("index"))
}

func TestService_CreateListUpdateScenario(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created := mustCreate(t, svc, CreateNoteInput{
		Title: "Math HW", Content: "p.12", Day: "monday", Category: "task", WeekOffset: 0,
	})

	b, err := svc.Board(ctx, 0)
	require.NoError(t, err)
	monday := b.Bucket(week.Monday).Notes
	require.Len(t, monday, 1)
	assert.Equal(t, "Math HW", monday[0].Title)

	day, pos := "tuesday", 0
	_, err = svc.Update(ctx, created.ID, UpdateNoteInput{Day: &day, Position: &pos})
	require.NoError(t, err)

	b, err = svc.Board(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, b.Bucket(week.Monday).Notes)
	tuesday := b.Bucket(week.Tuesday).Notes
	require.Len(t, tuesday, 1)
	assert.Equal(t, created.ID, tuesday[0].ID)
	assert.Equal(t, 0, tuesday[0].Position)
}

func TestService_RenderMarkdown(t *testing.T) {
	svc, _ := newTestService(t)
	assert.Equal(t, "<p><strong>due</strong> friday</p>\n", svc.RenderMarkdown("**due** friday"))
}
