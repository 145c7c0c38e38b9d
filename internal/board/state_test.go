package board

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"weekboard/internal/week"
)

func TestVisibleDays(t *testing.T) {
	weekdays := []week.Day{week.Monday, week.Tuesday, week.Wednesday, week.Thursday, week.Friday}

	var s State
	assert.Equal(t, weekdays, s.VisibleDays())

	s.ToggleSaturday()
	assert.Equal(t, append(append([]week.Day{}, weekdays...), week.Saturday), s.VisibleDays())

	s.ToggleSunday()
	assert.Equal(t, week.Days[:], s.VisibleDays())

	s.SetShowSaturday(false)
	assert.Equal(t, append(append([]week.Day{}, weekdays...), week.Sunday), s.VisibleDays())
}

func TestNavigation(t *testing.T) {
	var s State
	s.NextWeek()
	s.NextWeek()
	assert.Equal(t, 2, s.WeekOffset)

	s.PrevWeek()
	s.PrevWeek()
	s.PrevWeek()
	assert.Equal(t, -1, s.WeekOffset)

	s.CurrentWeek()
	assert.Equal(t, 0, s.WeekOffset)

	s.Select("n1")
	assert.Equal(t, "n1", s.SelectedNoteID)
	s.ClearSelection()
	assert.Empty(t, s.SelectedNoteID)
}

func TestFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  State
	}{
		{"empty", "", State{}},
		{"offset", "weekOffset=-3", State{WeekOffset: -3}},
		{"unparsable offset", "weekOffset=abc", State{}},
		{"trailing garbage offset", "weekOffset=3abc", State{}},
		{"fractional offset", "weekOffset=1.5", State{}},
		{"huge offset", "weekOffset=99999999999999999999", State{}},
		{"clamped offset", "weekOffset=-9000000000000000000", State{WeekOffset: -week.MaxOffset}},
		{"weekend", "weekOffset=1&sat=1&sun=true", State{WeekOffset: 1, ShowSaturday: true, ShowSunday: true}},
		{"bad flag", "sat=maybe", State{}},
		{"selected", "note=xyz", State{SelectedNoteID: "xyz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, FromQuery(q))
		})
	}
}

func TestParseOffset(t *testing.T) {
	assert.Equal(t, 3, ParseOffset("3"))
	assert.Equal(t, -2, ParseOffset("-2"))
	assert.Equal(t, 0, ParseOffset(""))
	assert.Equal(t, 0, ParseOffset("3abc"))
	assert.Equal(t, 0, ParseOffset("1.5"))
	assert.Equal(t, week.MaxOffset, ParseOffset("9000000000000000000"))
}

func TestQueryRoundTrip(t *testing.T) {
	s := State{WeekOffset: 4, ShowSunday: true}

	assert.Equal(t, s, FromQuery(s.Query()))
}
