package week

import (
	"fmt"
	"time"
)

// Day is one of the seven day-of-week symbols a note can be placed on.
type Day string

const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
	Sunday    Day = "sunday"
)

// Days lists the day symbols in calendar order, Monday first.
var Days = [7]Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

type dayMeta struct {
	index  int
	label  string
	accent string
}

var dayTable = map[Day]dayMeta{
	Monday:    {0, "Lunes", "#4285F4"},
	Tuesday:   {1, "Martes", "#4285F4"},
	Wednesday: {2, "Miércoles", "#4285F4"},
	Thursday:  {3, "Jueves", "#4285F4"},
	Friday:    {4, "Viernes", "#4285F4"},
	Saturday:  {5, "Sábado", "#FBBC05"},
	Sunday:    {6, "Domingo", "#FBBC05"},
}

var monthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// ParseDay reports whether s names a day symbol.
func ParseDay(s string) (Day, bool) {
	d := Day(s)
	_, ok := dayTable[d]
	return d, ok
}

// Valid reports whether d is one of the seven day symbols.
func (d Day) Valid() bool {
	_, ok := dayTable[d]
	return ok
}

// Index returns the 0-based position of d in the week, or -1 for unknown days.
func (d Day) Index() int {
	m, ok := dayTable[d]
	if !ok {
		return -1
	}
	return m.index
}

// Weekend reports whether d is Saturday or Sunday.
func (d Day) Weekend() bool {
	return d == Saturday || d == Sunday
}

// Label returns the display name for d.
func (d Day) Label() string {
	return dayTable[d].label
}

// Accent returns the header color for d.
func (d Day) Accent() string {
	return dayTable[d].accent
}

// MonthName returns the display name for m.
func MonthName(m time.Month) string {
	return monthNames[m-1]
}

// DayDate pairs a day symbol with its concrete calendar date.
type DayDate struct {
	Day  Day       `json:"day"`
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// Info is the derived description of one calendar week.
// It is recomputed on every request and never stored.
type Info struct {
	Offset int        `json:"weekOffset"`
	Start  time.Time  `json:"startDate"`
	End    time.Time  `json:"endDate"`
	Label  string     `json:"label"`
	Days   [7]DayDate `json:"days"`
}

// Date returns the calendar date of d within the week.
func (w Info) Date(d Day) time.Time {
	i := d.Index()
	if i < 0 {
		return time.Time{}
	}
	return w.Days[i].Date
}

// MaxOffset bounds the week offset so the day arithmetic stays inside the
// range time.Date can represent.
const MaxOffset = 1 << 40

// Resolve maps a week offset to the concrete week relative to now.
// Offset 0 is the week containing now; Start is its Monday and End its Friday.
// Offsets beyond ±MaxOffset are clamped.
func Resolve(offset int, now time.Time) Info {
	offset = max(-MaxOffset, min(offset, MaxOffset))

	y, m, d := now.Date()
	loc := now.Location()

	back := int(now.Weekday()) - int(time.Monday)
	if now.Weekday() == time.Sunday {
		back = 6
	}

	// time.Date normalises out-of-range days, which handles month and year rollover.
	start := time.Date(y, m, d-back+offset*7, 0, 0, 0, 0, loc)
	info := Info{
		Offset: offset,
		Start:  start,
		End:    addDays(start, 4),
	}
	for i, day := range Days {
		info.Days[i] = DayDate{Day: day, Name: day.Label(), Date: addDays(start, i)}
	}
	info.Label = label(info.Start, info.End)
	return info
}

func addDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

func label(start, end time.Time) string {
	if start.Month() == end.Month() {
		return fmt.Sprintf("%s %d - %d, %d", MonthName(start.Month()), start.Day(), end.Day(), start.Year())
	}
	return fmt.Sprintf("%s %d - %s %d, %d",
		MonthName(start.Month()), start.Day(),
		MonthName(end.Month()), end.Day(),
		start.Year())
}
