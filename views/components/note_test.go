package components

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weekboard/views/models"
)

func render(t *testing.T, days []models.DayView, readOnly bool) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, NoteCardList(days, readOnly).Render(context.Background(), &sb))
	return sb.String()
}

func TestNoteCardList(t *testing.T) {
	days := []models.DayView{
		{Day: "monday", Name: "Lunes", DateLabel: "19 de Octubre", Notes: []models.NoteView{
			{ID: "n1", Title: "<script>", ContentHTML: "<p>ok</p>", Image: "data:image/png;base64,AAAA", Background: "#ffffff", Border: "#e5e7eb", Text: "#1f2937"},
			{ID: "n2", Title: "sin imagen", Image: "javascript:alert(1)"},
		}},
		{Day: "tuesday", Name: "Martes", DateLabel: "20 de Octubre"},
	}

	html := render(t, days, false)
	assert.Contains(t, html, `data-cols="2"`)
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "<p>ok</p>")
	assert.Equal(t, 1, strings.Count(html, "<img"))
	assert.Equal(t, 2, strings.Count(html, `draggable="true"`))
	assert.Equal(t, 1, strings.Count(html, "Sin actividades"))
	assert.Contains(t, html, `style="background:#ffffff;border-left-color:#e5e7eb;color:#1f2937;"`)

	assert.NotContains(t, render(t, days, true), "draggable")
}
