package notes

import (
	"time"

	"weekboard/internal/week"
)

// Note is a short card placed on one day of one week.
type Note struct {
	ID         string    `bson:"_id" json:"id"`
	Title      string    `bson:"title" json:"title"`
	Content    string    `bson:"content" json:"content"`
	Day        week.Day  `bson:"day" json:"day"`
	Category   Category  `bson:"category" json:"category"`
	Color      Color     `bson:"color" json:"color"`
	Image      string    `bson:"image,omitempty" json:"image,omitempty"` // data URI
	WeekOffset int       `bson:"week_offset" json:"weekOffset"`
	Repeat     bool      `bson:"repeat" json:"repeat"`
	Position   int       `bson:"position" json:"position"`
	OwnerRef   *string   `bson:"owner_ref,omitempty" json:"ownerRef,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
}

// Category classifies a note. The set is fixed.
type Category string

const (
	CategoryTask         Category = "task"
	CategoryPresentation Category = "presentation"
	CategoryCelebration  Category = "celebration"
	CategoryBirthday     Category = "birthday"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryTask, CategoryPresentation, CategoryCelebration, CategoryBirthday}

// CategoryMeta is the static display data for a category.
type CategoryMeta struct {
	Label  string
	Accent string
}

var categoryTable = map[Category]CategoryMeta{
	CategoryTask:         {Label: "Tarea", Accent: "#dc2626"},
	CategoryPresentation: {Label: "Exposición", Accent: "#2563eb"},
	CategoryCelebration:  {Label: "Celebración", Accent: "#9333ea"},
	CategoryBirthday:     {Label: "Cumpleaños", Accent: "#f59e0b"},
}

func (c Category) Valid() bool {
	_, ok := categoryTable[c]
	return ok
}

// Meta returns the display data for c. Unknown categories get a neutral gray.
func (c Category) Meta() CategoryMeta {
	if m, ok := categoryTable[c]; ok {
		return m
	}
	return CategoryMeta{Label: string(c), Accent: "#4b5563"}
}

// Color is the cosmetic card color of a note.
type Color string

const (
	ColorDefault Color = "default"
	ColorRed     Color = "red"
	ColorGreen   Color = "green"
	ColorBlue    Color = "blue"
	ColorYellow  Color = "yellow"
	ColorPurple  Color = "purple"
	ColorPink    Color = "pink"
	ColorOrange  Color = "orange"
)

// Colors lists every note color.
var Colors = []Color{ColorDefault, ColorRed, ColorGreen, ColorBlue, ColorYellow, ColorPurple, ColorPink, ColorOrange}

// ColorMeta holds the CSS colors used to paint a card.
type ColorMeta struct {
	Background string
	Border     string
	Text       string
}

var colorTable = map[Color]ColorMeta{
	ColorDefault: {"#ffffff", "#e5e7eb", "#1f2937"},
	ColorRed:     {"#fef2f2", "#fecaca", "#991b1b"},
	ColorGreen:   {"#f0fdf4", "#bbf7d0", "#166534"},
	ColorBlue:    {"#eff6ff", "#bfdbfe", "#1e40af"},
	ColorYellow:  {"#fffbeb", "#fde68a", "#92400e"},
	ColorPurple:  {"#faf5ff", "#e9d5ff", "#6b21a8"},
	ColorPink:    {"#fdf2f8", "#fbcfe8", "#9d174d"},
	ColorOrange:  {"#fff7ed", "#fed7aa", "#9a3412"},
}

func (c Color) Valid() bool {
	_, ok := colorTable[c]
	return ok
}

// Meta returns the CSS colors for c, falling back to the default card.
func (c Color) Meta() ColorMeta {
	if m, ok := colorTable[c]; ok {
		return m
	}
	return colorTable[ColorDefault]
}

// CreateNoteInput is the input for creating a note.
// Enumerated fields are plain strings so invalid values reach validation.
type CreateNoteInput struct {
	Title      string  `json:"title" validate:"required"`
	Content    string  `json:"content" validate:"required"`
	Day        string  `json:"day" validate:"required,weekday"`
	Category   string  `json:"category" validate:"required,category"`
	Color      string  `json:"color" validate:"omitempty,notecolor"`
	Image      string  `json:"image"`
	WeekOffset int     `json:"weekOffset"`
	Repeat     bool    `json:"repeat"`
	Position   int     `json:"position" validate:"min=0"`
	OwnerRef   *string `json:"ownerRef"`
}

// UpdateNoteInput is a partial update. Nil fields are left untouched.
type UpdateNoteInput struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Day        *string `json:"day"`
	Category   *string `json:"category"`
	Color      *string `json:"color"`
	Image      *string `json:"image"`
	WeekOffset *int    `json:"weekOffset"`
	Repeat     *bool   `json:"repeat"`
	Position   *int    `json:"position"`
	OwnerRef   *string `json:"ownerRef"`
}

// Patch is a validated partial update handed to a Repository.
type Patch struct {
	Title      *string
	Content    *string
	Day        *week.Day
	Category   *Category
	Color      *Color
	Image      *string
	WeekOffset *int
	Repeat     *bool
	Position   *int
	OwnerRef   *string
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p == Patch{}
}

// Apply merges the present fields of p into n.
func (p Patch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Day != nil {
		n.Day = *p.Day
	}
	if p.Category != nil {
		n.Category = *p.Category
	}
	if p.Color != nil {
		n.Color = *p.Color
	}
	if p.Image != nil {
		n.Image = *p.Image
	}
	if p.WeekOffset != nil {
		n.WeekOffset = *p.WeekOffset
	}
	if p.Repeat != nil {
		n.Repeat = *p.Repeat
	}
	if p.Position != nil {
		n.Position = *p.Position
	}
	if p.OwnerRef != nil {
		ref := *p.OwnerRef
		n.OwnerRef = &ref
	}
}

// MoveInput is a drag-and-drop request: put the note at Index within Day.
type MoveInput struct {
	Day   string `json:"day"`
	Index int    `json:"index"`
}

// DayBucket is the ordered sequence of notes on one day of a board.
type DayBucket struct {
	Day   week.Day  `json:"day"`
	Date  time.Time `json:"date"`
	Notes []*Note   `json:"notes"`
}

// Board is one resolved week with its notes grouped and ordered per day.
type Board struct {
	Week week.Info    `json:"week"`
	Days [7]DayBucket `json:"days"`
}

// Bucket returns the bucket for d.
func (b *Board) Bucket(d week.Day) *DayBucket {
	i := d.Index()
	if i < 0 {
		return nil
	}
	return &b.Days[i]
}

// HasEvents reports whether day d holds at least one note.
func (b *Board) HasEvents(d week.Day) bool {
	bucket := b.Bucket(d)
	return bucket != nil && len(bucket.Notes) > 0
}
