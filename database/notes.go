package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"oruma/models"
	"oruma/validator"

	"github.com/jmoiron/sqlx"
)

// NoteStore persists notes. Each note belongs to a contact; the schema
// rejects notes for unknown contacts and removes notes with their contact.
type NoteStore struct {
	handle    *Handle
	validator *validator.Validator
	logger    *slog.Logger
	cfg       storeConfig
}

func NewNoteStore(h *Handle, v *validator.Validator, logger *slog.Logger, opts ...StoreOption) *NoteStore {
	if v == nil {
		v = validator.New()
	}
	return &NoteStore{
		handle:    h,
		validator: v,
		logger:    loggerOrDefault(logger),
		cfg:       newStoreConfig(opts),
	}
}

// Create inserts a note. Fails with ErrUnknownContact if the contact does not exist.
func (s *NoteStore) Create(input models.NoteInput) (*models.Note, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	db, err := s.handle.DB()
	if err != nil {
		return nil, err
	}

	note := input.Note(s.cfg.timestamp())
	result, err := db.Exec(`
		INSERT INTO notes (userId, category, content, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?)
	`, note.UserID, string(note.Category), note.Content,
		formatTimestamp(note.CreatedAt), formatTimestamp(note.UpdatedAt))
	if err != nil {
		err = classify(err)
		if errors.Is(err, ErrUnknownContact) {
			s.logger.Warn("note rejected for unknown contact", "userId", note.UserID)
		}
		return nil, fmt.Errorf("failed to insert note: %w", err)
	}

	note.ID, err = result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// GetAll returns every note of every contact
func (s *NoteStore) GetAll() ([]models.Note, error) {
	db, err := s.handle.DB()
	if err != nil {
		return nil, err
	}

	var rows []noteRow
	if err := sqlx.Select(db, &rows, `SELECT `+noteColumns+` FROM notes ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	return notesFromRows(rows)
}

// GetByID returns nil when no note has the id
func (s *NoteStore) GetByID(id int64) (*models.Note, error) {
	db, err := s.handle.DB()
	if err != nil {
		return nil, err
	}
	return getNote(db, id)
}

func getNote(q sqlx.Queryer, id int64) (*models.Note, error) {
	var row noteRow
	err := sqlx.Get(q, &row, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query note: %w", err)
	}

	note, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// GetByUserID returns the notes of one contact, most recent first
func (s *NoteStore) GetByUserID(userID int64) ([]models.Note, error) {
	db, err := s.handle.DB()
	if err != nil {
		return nil, err
	}

	var rows []noteRow
	err = sqlx.Select(db, &rows, `
		SELECT `+noteColumns+`
		FROM notes
		WHERE userId = ?
		ORDER BY createdAt DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes for contact %d: %w", userID, err)
	}
	return notesFromRows(rows)
}

// GetByCategory returns the notes of one category, most recent first
func (s *NoteStore) GetByCategory(category models.NoteCategory) ([]models.Note, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	db, err := s.handle.DB()
	if err != nil {
		return nil, err
	}

	var rows []noteRow
	err = sqlx.Select(db, &rows, `
		SELECT `+noteColumns+`
		FROM notes
		WHERE category = ?
		ORDER BY createdAt DESC, id DESC
	`, string(category))
	if err != nil {
		return nil, fmt.Errorf("failed to query notes by category: %w", err)
	}
	return notesFromRows(rows)
}

// CountByUserID returns how many notes a contact owns
func (s *NoteStore) CountByUserID(userID int64) (int, error) {
	db, err := s.handle.DB()
	if err != nil {
		return 0, err
	}

	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM notes WHERE userId = ?`, userID); err != nil {
		return 0, fmt.Errorf("failed to count notes for contact %d: %w", userID, err)
	}
	return count, nil
}

// Update applies a partial update. Returns false when the note does not exist.
func (s *NoteStore) Update(id int64, patch models.NotePatch) (bool, error) {
	if err := s.validator.Validate(patch); err != nil {
		return false, err
	}

	db, err := s.handle.DB()
	if err != nil {
		return false, err
	}

	tx, err := db.Beginx()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := getNote(tx, id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	updated := patch.Apply(*existing, s.cfg.timestamp())
	_, err = tx.Exec(`
		UPDATE notes SET
			category = ?,
			content = ?,
			updatedAt = ?
		WHERE id = ?
	`, string(updated.Category), updated.Content, formatTimestamp(updated.UpdatedAt), id)
	if err != nil {
		return false, fmt.Errorf("failed to update note: %w", classify(err))
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

// Delete removes one note. Returns false when the note does not exist.
func (s *NoteStore) Delete(id int64) (bool, error) {
	db, err := s.handle.DB()
	if err != nil {
		return false, err
	}

	result, err := db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete note: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
