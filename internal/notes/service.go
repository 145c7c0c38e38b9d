package notes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yuin/goldmark"

	"weekboard/internal/week"
)

type Service struct {
	repo Repository
	md   goldmark.Markdown
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		md:   goldmark.New(),
		now:  time.Now,
	}
}

// Create validates and stores a new note
func (s *Service) Create(ctx context.Context, input CreateNoteInput) (*Note, error) {
	note, err := validateCreate(input)
	if err != nil {
		return nil, err
	}
	note.CreatedAt = s.now()

	if err := s.repo.Insert(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Get retrieves a note by ID
func (s *Service) Get(ctx context.Context, id string) (*Note, error) {
	return s.repo.FindByID(ctx, id)
}

// ListWeek returns the notes stored for a week offset, unordered
func (s *Service) ListWeek(ctx context.Context, weekOffset int) ([]*Note, error) {
	return s.repo.ListByWeek(ctx, weekOffset)
}

// Week resolves a week offset against the service clock
func (s *Service) Week(weekOffset int) week.Info {
	return week.Resolve(weekOffset, s.now())
}

// Board returns the week with its notes grouped by day and ordered by position
func (s *Service) Board(ctx context.Context, weekOffset int) (*Board, error) {
	notes, err := s.repo.ListByWeek(ctx, weekOffset)
	if err != nil {
		return nil, err
	}

	info := s.Week(weekOffset)
	buckets := GroupByDay(notes)

	b := &Board{Week: info}
	for i, d := range week.Days {
		b.Days[i] = DayBucket{Day: d, Date: info.Days[i].Date, Notes: buckets[d]}
	}
	return b, nil
}

// Update applies a partial update; omitted fields keep their stored values
func (s *Service) Update(ctx context.Context, id string, input UpdateNoteInput) (*Note, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	patch, err := validatePatch(input)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, patch)
}

// Move places a note at index within day. It reports whether anything was
// written; dropping a note back onto its own slot is a no-op.
func (s *Service) Move(ctx context.Context, id string, input MoveInput) (*Note, bool, error) {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	notes, err := s.repo.ListByWeek(ctx, note.WeekOffset)
	if err != nil {
		return nil, false, err
	}

	plan, err := PlanMove(GroupByDay(notes), id, week.Day(input.Day), input.Index)
	if errors.Is(err, ErrNoteNotFound) {
		// The note exists but sits on a day outside the board; treat the drop as a plain placement.
		plan, err = MovePlan{Day: week.Day(input.Day), Position: input.Index}, nil
	}
	if err != nil {
		return nil, false, err
	}
	if plan.NoOp {
		return note, false, nil
	}

	updated, err := s.repo.Update(ctx, id, plan.Patch())
	if err != nil {
		return nil, false, err
	}
	return updated, true, nil
}

// Delete removes a note permanently
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	err := s.repo.Delete(ctx, id)
	if errors.Is(err, ErrNoteNotFound) {
		return fmt.Errorf("%w: note %s vanished during delete", ErrStorage, id)
	}
	return err
}

// RenderMarkdown converts markdown content to HTML
func (s *Service) RenderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(content), &buf); err != nil {
		return content // Return raw content on error
	}
	return buf.String()
}
