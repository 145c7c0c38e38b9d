package models

// NoteView represents a note card for template rendering
type NoteView struct {
	ID             string
	Title          string
	ContentHTML    string // rendered markdown
	Image          string
	CategoryLabel  string
	CategoryAccent string
	Background     string
	Border         string
	Text           string
	Position       int
}

// DayView represents one day column
type DayView struct {
	Day       string
	Name      string
	DateLabel string
	Accent    string
	Notes     []NoteView
}

// BoardView represents a week board page
type BoardView struct {
	Label      string
	WeekOffset int
	Days       []DayView
	ReadOnly   bool

	ShowSaturday      bool
	ShowSunday        bool
	HasSaturdayEvents bool
	HasSundayEvents   bool

	PrevURL     string
	NextURL     string
	CurrentURL  string
	SaturdayURL string
	SundayURL   string
}
