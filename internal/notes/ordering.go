package notes

import (
	"cmp"
	"fmt"
	"slices"

	"weekboard/internal/week"
)

// Buckets holds the notes of one week partitioned by day, each ordered by position.
type Buckets map[week.Day][]*Note

// GroupByDay partitions notes into the seven day buckets and orders each bucket
// by ascending position. Notes on an unknown day are dropped. The sort is stable,
// so notes sharing a position keep their fetch order.
func GroupByDay(notes []*Note) Buckets {
	b := make(Buckets, len(week.Days))
	for _, d := range week.Days {
		b[d] = []*Note{}
	}
	for _, n := range notes {
		if !n.Day.Valid() {
			continue
		}
		b[n.Day] = append(b[n.Day], n)
	}
	for _, d := range week.Days {
		slices.SortStableFunc(b[d], func(x, y *Note) int {
			return cmp.Compare(x.Position, y.Position)
		})
	}
	return b
}

// Locate returns the day and index of the note with the given id.
func (b Buckets) Locate(id string) (week.Day, int, bool) {
	for _, d := range week.Days {
		for i, n := range b[d] {
			if n.ID == id {
				return d, i, true
			}
		}
	}
	return "", 0, false
}

// MovePlan is the persisted outcome of a drag-and-drop.
type MovePlan struct {
	NoOp     bool
	Day      week.Day
	Position int
}

// Patch converts the plan to a repository update.
func (p MovePlan) Patch() Patch {
	day, pos := p.Day, p.Position
	return Patch{Day: &day, Position: &pos}
}

// PlanMove computes where a dragged note lands. The target index is the 0-based
// slot in the target day after the note is lifted out. Only the moved note gets
// a new position; the others keep theirs and order is recovered by sorting.
func PlanMove(b Buckets, id string, target week.Day, index int) (MovePlan, error) {
	verr := &ValidationError{}
	if !target.Valid() {
		verr.add("day", fmt.Sprintf("day must be one of: %s", joinDays()))
	}
	if index < 0 {
		verr.add("index", "index must be at least 0")
	}
	if err := verr.orNil(); err != nil {
		return MovePlan{}, err
	}

	day, at, ok := b.Locate(id)
	if !ok {
		return MovePlan{}, ErrNoteNotFound
	}
	if day == target && at == index {
		return MovePlan{NoOp: true, Day: day, Position: b[day][at].Position}, nil
	}
	return MovePlan{Day: target, Position: index}, nil
}
