package notes

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"weekboard/internal/board"
	"weekboard/internal/share"
	"weekboard/internal/week"
	"weekboard/views/models"
	"weekboard/views/pages"
)

// multipart overhead allowed on top of the image itself
const formSlack = 1 << 20

type Handler struct {
	svc    *Service
	shares *share.Minter
	log    *slog.Logger
}

func NewHandler(svc *Service, shares *share.Minter, log *slog.Logger) *Handler {
	return &Handler{svc: svc, shares: shares, log: log}
}

// RegisterRoutes mounts the REST API and the board pages on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// REST API endpoints
	mux.HandleFunc("GET /api/notes", h.ListNotes)
	mux.HandleFunc("POST /api/notes", h.CreateNote)
	mux.HandleFunc("POST /api/notes/with-image", h.CreateNoteWithImage)
	mux.HandleFunc("GET /api/notes/{id}", h.GetNote)
	mux.HandleFunc("PATCH /api/notes/{id}", h.UpdateNote)
	mux.HandleFunc("DELETE /api/notes/{id}", h.DeleteNote)
	mux.HandleFunc("POST /api/notes/{id}/move", h.MoveNote)
	mux.HandleFunc("GET /api/board", h.GetBoard)
	mux.HandleFunc("GET /api/week", h.GetWeek)
	mux.HandleFunc("POST /api/share", h.CreateShareLink)

	// Web UI
	mux.HandleFunc("GET /{$}", h.BoardPage)
	mux.HandleFunc("GET /view", h.SharedBoardPage)
	mux.HandleFunc("GET /fragments/board", h.BoardFragment)
}

// --- REST API Handlers ---

// ListNotes handles GET /api/notes
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	offset := board.ParseOffset(r.URL.Query().Get("weekOffset"))

	notes, err := h.svc.ListWeek(r.Context(), offset)
	if err != nil {
		h.serviceError(w, err, "list notes")
		return
	}

	h.jsonResponse(w, notes, http.StatusOK)
}

// GetNote handles GET /api/notes/{id}
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.serviceError(w, err, "get note")
		return
	}

	h.jsonResponse(w, note, http.StatusOK)
}

// CreateNote handles POST /api/notes
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var input CreateNoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	note, err := h.svc.Create(r.Context(), input)
	if err != nil {
		h.serviceError(w, err, "create note")
		return
	}

	h.log.Info("note created", "id", note.ID, "day", note.Day, "weekOffset", note.WeekOffset)
	h.jsonResponse(w, note, http.StatusCreated)
}

// CreateNoteWithImage handles POST /api/notes/with-image. The body is multipart
// with the image file under "image" and the note JSON under "noteData".
func (h *Handler) CreateNoteWithImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxImageBytes+formSlack)
	if err := r.ParseMultipartForm(formSlack); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || r.ContentLength > MaxImageBytes+formSlack {
			h.jsonError(w, "image exceeds 5MB limit", http.StatusRequestEntityTooLarge)
			return
		}
		h.jsonError(w, "invalid multipart body", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile("image")
	if err != nil {
		h.jsonError(w, "no image provided", http.StatusBadRequest)
		return
	}
	defer file.Close()

	image, err := EncodeImage(file, MaxImageBytes)
	if errors.Is(err, ErrImageTooLarge) {
		h.jsonError(w, "image exceeds 5MB limit", http.StatusRequestEntityTooLarge)
		return
	}
	if err != nil {
		h.log.Error("failed to read image", "error", err)
		h.jsonError(w, "invalid image", http.StatusBadRequest)
		return
	}

	var input CreateNoteInput
	if err := json.Unmarshal([]byte(r.FormValue("noteData")), &input); err != nil {
		h.jsonError(w, "invalid noteData JSON", http.StatusBadRequest)
		return
	}
	input.Image = image

	note, err := h.svc.Create(r.Context(), input)
	if err != nil {
		h.serviceError(w, err, "create note with image")
		return
	}

	h.log.Info("note created", "id", note.ID, "day", note.Day, "weekOffset", note.WeekOffset, "image", true)
	h.jsonResponse(w, note, http.StatusCreated)
}

// UpdateNote handles PATCH /api/notes/{id}
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var input UpdateNoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	note, err := h.svc.Update(r.Context(), r.PathValue("id"), input)
	if err != nil {
		h.serviceError(w, err, "update note")
		return
	}

	h.jsonResponse(w, note, http.StatusOK)
}

// MoveNote handles POST /api/notes/{id}/move
func (h *Handler) MoveNote(w http.ResponseWriter, r *http.Request) {
	var input MoveInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	note, moved, err := h.svc.Move(r.Context(), r.PathValue("id"), input)
	if err != nil {
		h.serviceError(w, err, "move note")
		return
	}

	h.jsonResponse(w, map[string]any{"note": note, "moved": moved}, http.StatusOK)
}

// DeleteNote handles DELETE /api/notes/{id}
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.serviceError(w, err, "delete note")
		return
	}

	h.log.Info("note deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// GetBoard handles GET /api/board
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Board(r.Context(), board.ParseOffset(r.URL.Query().Get("weekOffset")))
	if err != nil {
		h.serviceError(w, err, "load board")
		return
	}

	h.jsonResponse(w, b, http.StatusOK)
}

// GetWeek handles GET /api/week
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, h.svc.Week(board.ParseOffset(r.URL.Query().Get("weekOffset"))), http.StatusOK)
}

// CreateShareLink handles POST /api/share
func (h *Handler) CreateShareLink(w http.ResponseWriter, r *http.Request) {
	link := h.shares.Mint()
	h.log.Info("share link minted", "id", link.ID)
	h.jsonResponse(w, link, http.StatusCreated)
}

// --- Helper methods ---

func (h *Handler) serviceError(w http.ResponseWriter, err error, action string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		h.jsonResponse(w, map[string]any{"error": "validation error", "fields": verr.Fields}, http.StatusBadRequest)
	case errors.Is(err, ErrNoteNotFound):
		h.jsonError(w, "note not found", http.StatusNotFound)
	default:
		h.log.Error("failed to "+action, "error", err)
		h.jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *Handler) jsonResponse(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// --- View model converters ---

func (h *Handler) noteToView(n *Note) models.NoteView {
	cat := n.Category.Meta()
	col := n.Color.Meta()
	return models.NoteView{
		ID:             n.ID,
		Title:          n.Title,
		ContentHTML:    h.svc.RenderMarkdown(n.Content),
		Image:          n.Image,
		CategoryLabel:  cat.Label,
		CategoryAccent: cat.Accent,
		Background:     col.Background,
		Border:         col.Border,
		Text:           col.Text,
		Position:       n.Position,
	}
}

func (h *Handler) boardToView(b *Board, state board.State, path string, readOnly bool) models.BoardView {
	days := state.VisibleDays()
	view := models.BoardView{
		Label:             b.Week.Label,
		WeekOffset:        b.Week.Offset,
		Days:              make([]models.DayView, 0, len(days)),
		ReadOnly:          readOnly,
		ShowSaturday:      state.ShowSaturday,
		ShowSunday:        state.ShowSunday,
		HasSaturdayEvents: b.HasEvents(week.Saturday),
		HasSundayEvents:   b.HasEvents(week.Sunday),
	}

	for _, d := range days {
		bucket := b.Bucket(d)
		dv := models.DayView{
			Day:       string(d),
			Name:      d.Label(),
			DateLabel: fmt.Sprintf("%d de %s", bucket.Date.Day(), week.MonthName(bucket.Date.Month())),
			Accent:    d.Accent(),
			Notes:     make([]models.NoteView, len(bucket.Notes)),
		}
		for i, n := range bucket.Notes {
			dv.Notes[i] = h.noteToView(n)
		}
		view.Days = append(view.Days, dv)
	}

	link := func(mutate func(*board.State)) string {
		s := state
		mutate(&s)
		return path + "?" + s.Query().Encode()
	}
	view.PrevURL = link(func(s *board.State) { s.PrevWeek() })
	view.NextURL = link(func(s *board.State) { s.NextWeek() })
	view.CurrentURL = link(func(s *board.State) { s.CurrentWeek() })
	view.SaturdayURL = link(func(s *board.State) { s.ToggleSaturday() })
	view.SundayURL = link(func(s *board.State) { s.ToggleSunday() })
	return view
}

// --- Web Handlers ---

func (h *Handler) renderBoard(w http.ResponseWriter, r *http.Request, path string, readOnly, fragment bool) {
	state := board.FromQuery(r.URL.Query())

	b, err := h.svc.Board(r.Context(), state.WeekOffset)
	if err != nil {
		h.log.Error("failed to load board", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	view := h.boardToView(b, state, path, readOnly)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := pages.BoardPage(view)
	if fragment {
		page = pages.BoardFragment(view)
	}
	if err := page.Render(r.Context(), w); err != nil {
		h.log.Error("failed to render board", "error", err)
	}
}

// BoardPage handles GET /
func (h *Handler) BoardPage(w http.ResponseWriter, r *http.Request) {
	h.renderBoard(w, r, "/", false, false)
}

// SharedBoardPage handles GET /view. The share id is not resolved to any
// stored snapshot; the page always shows the live board.
func (h *Handler) SharedBoardPage(w http.ResponseWriter, r *http.Request) {
	h.log.Debug("shared board opened", "id", r.URL.Query().Get("id"))
	h.renderBoard(w, r, "/view", true, false)
}

// BoardFragment handles GET /fragments/board (partial refresh after a move)
func (h *Handler) BoardFragment(w http.ResponseWriter, r *http.Request) {
	h.renderBoard(w, r, "/", false, true)
}
