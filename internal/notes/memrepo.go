package notes

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo keeps notes in process memory. Used for local runs and tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	notes map[string]*Note
	order []string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{notes: make(map[string]*Note)}
}

func (r *MemoryRepo) Insert(_ context.Context, n *Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n.ID = uuid.NewString()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	r.notes[n.ID] = clone(n)
	r.order = append(r.order, n.ID)
	return nil
}

func (r *MemoryRepo) FindByID(_ context.Context, id string) (*Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.notes[id]
	if !ok {
		return nil, ErrNoteNotFound
	}
	return clone(n), nil
}

func (r *MemoryRepo) ListByWeek(_ context.Context, weekOffset int) ([]*Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*Note{}
	for _, id := range r.order {
		if n := r.notes[id]; n.WeekOffset == weekOffset {
			out = append(out, clone(n))
		}
	}
	return out, nil
}

func (r *MemoryRepo) Update(_ context.Context, id string, p Patch) (*Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[id]
	if !ok {
		return nil, ErrNoteNotFound
	}
	updated := clone(n)
	p.Apply(updated)
	r.notes[id] = updated
	return clone(updated), nil
}

func (r *MemoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[id]; !ok {
		return ErrNoteNotFound
	}
	delete(r.notes, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func clone(n *Note) *Note {
	c := *n
	if n.OwnerRef != nil {
		ref := *n.OwnerRef
		c.OwnerRef = &ref
	}
	return &c
}
