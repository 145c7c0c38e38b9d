package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weekboard/internal/week"
)

func validInput() CreateNoteInput {
	return CreateNoteInput{
		Title:    "Math HW",
		Content:  "p.12",
		Day:      "monday",
		Category: "task",
	}
}

func TestValidateCreate_Defaults(t *testing.T) {
	n, err := validateCreate(validInput())
	require.NoError(t, err)
	assert.Equal(t, ColorDefault, n.Color)
	assert.Equal(t, week.Monday, n.Day)
	assert.Equal(t, CategoryTask, n.Category)
	assert.Empty(t, n.ID)
}

func TestValidateCreate_ReportsEveryField(t *testing.T) {
	_, err := validateCreate(CreateNoteInput{
		Day:      "someday",
		Category: "party",
		Color:    "mauve",
		Position: -1,
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{"title", "content", "day", "category", "color", "position"} {
		assert.True(t, verr.Has(field), field)
	}
	assert.Contains(t, verr.Error(), "category must be one of: task, presentation, celebration, birthday")
	assert.Contains(t, verr.Error(), "title is required")
}

func TestValidateCreate_OnlyBadCategory(t *testing.T) {
	in := validInput()
	in.Category = "party"

	_, err := validateCreate(in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "category", verr.Fields[0].Field)
}

func TestValidatePatch(t *testing.T) {
	empty, bad, day, pos := "", "blue-ish", "friday", 2

	p, err := validatePatch(UpdateNoteInput{Day: &day, Position: &pos})
	require.NoError(t, err)
	require.NotNil(t, p.Day)
	assert.Equal(t, week.Friday, *p.Day)
	assert.Nil(t, p.Title)

	_, err = validatePatch(UpdateNoteInput{Title: &empty, Color: &bad})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("title"))
	assert.True(t, verr.Has("color"))

	p, err = validatePatch(UpdateNoteInput{})
	require.NoError(t, err)
	assert.True(t, p.Empty())
}
