package service

import (
	"context"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type calendarNoteService struct {
	store repository.Store
}

func NewCalendarNoteService(store repository.Store) CalendarNoteService {
	return &calendarNoteService{store: store}
}

func (s *calendarNoteService) CreateNote(ctx context.Context, note *domain.CalendarNote) error {
	if note.Note == "" {
		return domain.Validationf("note text is required")
	}
	if note.NoteDate.IsZero() {
		return domain.Validationf("note_date is required")
	}
	return s.store.CalendarNotes().Create(ctx, note)
}

func (s *calendarNoteService) GetNote(ctx context.Context, id int64) (*domain.CalendarNote, error) {
	return s.store.CalendarNotes().GetByID(ctx, id)
}

func (s *calendarNoteService) UpdateNote(ctx context.Context, note *domain.CalendarNote) error {
	if note.Note == "" {
		return domain.Validationf("note text is required")
	}
	return s.store.CalendarNotes().Update(ctx, note)
}

func (s *calendarNoteService) DeleteNote(ctx context.Context, id int64) error {
	return s.store.CalendarNotes().Delete(ctx, id)
}

func (s *calendarNoteService) ListNotes(ctx context.Context, from, to time.Time) ([]domain.CalendarNote, error) {
	if to.Before(from) {
		return nil, domain.Validationf("range end is before range start")
	}
	return s.store.CalendarNotes().ListByRange(ctx, from, to)
}
