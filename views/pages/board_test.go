package pages

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weekboard/views/models"
)

func renderPage(t *testing.T, b models.BoardView) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, BoardPage(b).Render(context.Background(), &sb))
	return sb.String()
}

func TestBoardPage(t *testing.T) {
	b := models.BoardView{
		Label:             "Octubre 19 - 23, 2026",
		WeekOffset:        0,
		Days:              []models.DayView{{Day: "monday", Name: "Lunes"}},
		HasSaturdayEvents: true,
		ShowSunday:        true,
		PrevURL:           "/?weekOffset=-1",
		NextURL:           "/?weekOffset=1",
		CurrentURL:        "/?weekOffset=0",
		SaturdayURL:       "/?sat=1&weekOffset=0",
		SundayURL:         "/?weekOffset=0",
	}

	html := renderPage(t, b)
	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
	assert.Contains(t, html, "<title>Calendario semanal</title>")
	assert.Contains(t, html, "<h1>Octubre 19 - 23, 2026</h1>")
	assert.Contains(t, html, `href="/?sat=1&amp;weekOffset=0" data-on="false" data-has-events="true">Sábado</a>`)
	assert.Contains(t, html, `data-on="true" data-has-events="false">Domingo</a>`)
	assert.Contains(t, html, `id="share"`)
	assert.Contains(t, html, "/static/board.js")
	assert.Contains(t, html, `data-day="monday"`)

	b.ReadOnly = true
	html = renderPage(t, b)
	assert.Contains(t, html, "<title>Calendario compartido</title>")
	assert.Contains(t, html, `data-readonly="true"`)
	assert.NotContains(t, html, `id="share"`)
	assert.NotContains(t, html, "/static/board.js")
}

func TestBoardPage_UnsafeNavigationURL(t *testing.T) {
	html := renderPage(t, models.BoardView{PrevURL: "javascript:alert(1)"})
	assert.Contains(t, html, `href="about:invalid#TemplFailedSanitizationURL"`)
}

func TestBoardFragment(t *testing.T) {
	var sb strings.Builder
	b := models.BoardView{Days: []models.DayView{{Day: "friday"}, {Day: "saturday"}}}
	require.NoError(t, BoardFragment(b).Render(context.Background(), &sb))

	assert.True(t, strings.HasPrefix(sb.String(), `<div id="board" class="board" data-cols="2">`))
	assert.NotContains(t, sb.String(), "<html")
}
