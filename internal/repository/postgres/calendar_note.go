package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/repository"
)

type calendarNoteRepository struct {
	db DBTX
}

func NewCalendarNoteRepository(db DBTX) repository.CalendarNoteRepository {
	return &calendarNoteRepository{db: db}
}

func (r *calendarNoteRepository) Create(ctx context.Context, n *domain.CalendarNote) error {
	query := `INSERT INTO calendar_notes (note_date, note, color, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, n.NoteDate, n.Note, n.Color, now, now).Scan(&n.ID)
}

func (r *calendarNoteRepository) GetByID(ctx context.Context, id int64) (*domain.CalendarNote, error) {
	n := &domain.CalendarNote{}
	query := `SELECT id, note_date, note, color, created_on, updated_on FROM calendar_notes WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&n.ID, &n.NoteDate, &n.Note, &n.Color,
		&n.CreatedOn, &n.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *calendarNoteRepository) Update(ctx context.Context, n *domain.CalendarNote) error {
	query := `UPDATE calendar_notes SET note_date=$1, note=$2, color=$3, updated_on=$4 WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, n.NoteDate, n.Note, n.Color, time.Now(), n.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *calendarNoteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM calendar_notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *calendarNoteRepository) ListByRange(ctx context.Context, from, to time.Time) ([]domain.CalendarNote, error) {
	query := `SELECT id, note_date, note, color, created_on, updated_on
	          FROM calendar_notes WHERE note_date >= $1 AND note_date <= $2 ORDER BY note_date ASC`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.CalendarNote
	for rows.Next() {
		var n domain.CalendarNote
		if err := rows.Scan(&n.ID, &n.NoteDate, &n.Note, &n.Color, &n.CreatedOn, &n.UpdatedOn); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
