// Package share mints links to the read-only board view.
//
// Nothing is stored when a link is minted. The id only labels the link; the
// view it opens renders the live board, not a snapshot of what was shared.
package share

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Link is a shareable board URL.
type Link struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

type Minter struct {
	baseURL string
	newID   func() string
	now     func() time.Time
}

// NewMinter returns a Minter producing links under baseURL, e.g. "https://board.example".
func NewMinter(baseURL string) *Minter {
	return &Minter{
		baseURL: strings.TrimRight(baseURL, "/"),
		newID:   uuid.NewString,
		now:     time.Now,
	}
}

// Mint returns a fresh link to the /view page.
func (m *Minter) Mint() Link {
	id := "share-" + m.newID()
	q := url.Values{}
	q.Set("id", id)
	return Link{
		ID:        id,
		URL:       m.baseURL + "/view?" + q.Encode(),
		CreatedAt: m.now(),
	}
}
