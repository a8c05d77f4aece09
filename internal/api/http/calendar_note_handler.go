package http

import (
	"encoding/json"
	"net/http"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/service"
)

type CalendarNoteHandler struct {
	notes service.CalendarNoteService
}

func NewCalendarNoteHandler(notes service.CalendarNoteService) *CalendarNoteHandler {
	return &CalendarNoteHandler{notes: notes}
}

func (h *CalendarNoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var note domain.CalendarNote
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.notes.CreateNote(r.Context(), &note); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, note)
}

func (h *CalendarNoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	note, err := h.notes.GetNote(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, note)
}

// List returns notes in the [from, to] range; defaults to the current month.
func (h *CalendarNoteHandler) List(w http.ResponseWriter, r *http.Request) {
	fromPtr, ok := queryDate(w, r, "from")
	if !ok {
		return
	}
	toPtr, ok := queryDate(w, r, "to")
	if !ok {
		return
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Second)
	if fromPtr != nil {
		from = *fromPtr
	}
	if toPtr != nil {
		to = *toPtr
	}

	notes, err := h.notes.ListNotes(r.Context(), from, to)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, notes)
}

func (h *CalendarNoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var note domain.CalendarNote
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	note.ID = id
	if err := h.notes.UpdateNote(r.Context(), &note); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, note)
}

func (h *CalendarNoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.notes.DeleteNote(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
