package share

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMint_BuildsViewURL(t *testing.T) {
	m := NewMinter("https://board.example/")
	m.newID = func() string { return "abc" }

	link := m.Mint()

	assert.Equal(t, "share-abc", link.ID)
	assert.Equal(t, "https://board.example/view?id=share-abc", link.URL)
	assert.False(t, link.CreatedAt.IsZero())
}

func TestMint_UniqueLinks(t *testing.T) {
	m := NewMinter("http://localhost:7521")

	seen := map[string]bool{}
	for range 50 {
		link := m.Mint()
		require.False(t, seen[link.ID], "duplicate id %s", link.ID)
		seen[link.ID] = true

		u, err := url.Parse(link.URL)
		require.NoError(t, err)
		assert.Equal(t, "/view", u.Path)
		assert.True(t, strings.HasPrefix(u.Query().Get("id"), "share-"))
	}
}
