// Package board holds the per-view state of a week board: which week is shown,
// which weekend days are visible and what is selected.
package board

import (
	"net/url"
	"strconv"

	"weekboard/internal/week"
)

// State is the mutable view state of one board. It is passed explicitly to
// whatever renders or navigates the board.
type State struct {
	WeekOffset     int
	ShowSaturday   bool
	ShowSunday     bool
	SelectedNoteID string
	ShareLink      string
}

func (s *State) SetWeekOffset(offset int) { s.WeekOffset = offset }

func (s *State) NextWeek() { s.WeekOffset++ }

func (s *State) PrevWeek() { s.WeekOffset-- }

func (s *State) CurrentWeek() { s.WeekOffset = 0 }

func (s *State) SetShowSaturday(show bool) { s.ShowSaturday = show }

func (s *State) SetShowSunday(show bool) { s.ShowSunday = show }

func (s *State) ToggleSaturday() { s.ShowSaturday = !s.ShowSaturday }

func (s *State) ToggleSunday() { s.ShowSunday = !s.ShowSunday }

func (s *State) Select(noteID string) { s.SelectedNoteID = noteID }

func (s *State) ClearSelection() { s.SelectedNoteID = "" }

func (s *State) SetShareLink(link string) { s.ShareLink = link }

// VisibleDays returns Monday to Friday plus the weekend days switched on.
// It only filters presentation; grouping and stored notes are unaffected.
func (s State) VisibleDays() []week.Day {
	days := make([]week.Day, 0, len(week.Days))
	for _, d := range week.Days {
		switch d {
		case week.Saturday:
			if !s.ShowSaturday {
				continue
			}
		case week.Sunday:
			if !s.ShowSunday {
				continue
			}
		}
		days = append(days, d)
	}
	return days
}

// Query encodes the state as request parameters.
func (s State) Query() url.Values {
	q := url.Values{}
	q.Set("weekOffset", strconv.Itoa(s.WeekOffset))
	if s.ShowSaturday {
		q.Set("sat", "1")
	}
	if s.ShowSunday {
		q.Set("sun", "1")
	}
	return q
}

// FromQuery builds a State from request parameters. Missing or unparsable
// values fall back to the current week with the weekend hidden.
func FromQuery(q url.Values) State {
	return State{
		WeekOffset:     ParseOffset(q.Get("weekOffset")),
		ShowSaturday:   parseFlag(q.Get("sat")),
		ShowSunday:     parseFlag(q.Get("sun")),
		SelectedNoteID: q.Get("note"),
	}
}

// ParseOffset parses a week offset, defaulting to 0. The whole value must be
// a base-10 integer: "3abc" and "1.5" are rejected rather than truncated.
// Results are clamped to ±week.MaxOffset.
func ParseOffset(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return max(-week.MaxOffset, min(v, week.MaxOffset))
}

func parseFlag(s string) bool {
	v, err := strconv.ParseBool(s)
	return err == nil && v
}
