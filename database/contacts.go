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

// ContactStore persists contacts
type ContactStore struct {
	handle    *Handle
	validator *validator.Validator
	logger    *slog.Logger
	cfg       storeConfig
}

func NewContactStore(h *Handle, v *validator.Validator, logger *slog.Logger, opts ...StoreOption) *ContactStore {
	if v == nil {
		v = validator.New()
	}
	return &ContactStore{
		handle:    h,
		validator: v,
		logger:    loggerOrDefault(logger),
		cfg:       newStoreConfig(opts),
	}
}

// Create inserts a contact. A missing native ID is replaced by a generated one.
func (s *ContactStore) Create(input models.ContactInput) (*models.Contact, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	db, err := s.handle.DB()
	if err != nil {
		return nil, err
	}

	contact := input.Contact(s.cfg.timestamp())
	id, err := insertContact(db, contact)
	if err != nil {
		return nil, err
	}

	contact.ID = id
	return &contact, nil
}

func insertContact(exec sqlx.Execer, c models.Contact) (int64, error) {
	result, err := exec.Exec(`
		INSERT INTO contacts (nativeID, firstName, lastName, category, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?)
	`, contactArgs(c)...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert contact: %w", classify(err))
	}
	return result.LastInsertId()
}

// GetAll returns every contact in storage order
func (s *ContactStore) GetAll() ([]models.Contact, error) {
	db, err := s.handle.DB()
	if err != nil {
		return nil, err
	}

	var rows []contactRow
	if err := sqlx.Select(db, &rows, `SELECT `+contactColumns+` FROM contacts ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	return contactsFromRows(rows)
}

// GetByCategory returns the contacts of one category sorted like the contact list.
// ALL is the catch-all filter and returns every contact.
func (s *ContactStore) GetByCategory(category models.ContactCategory) ([]models.Contact, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	db, err := s.handle.DB()
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + contactColumns + ` FROM contacts`
	var args []any
	if category != models.ContactCategoryAll {
		query += ` WHERE category = ?`
		args = append(args, string(category))
	}
	query += ` ORDER BY lastName ASC, firstName ASC, id ASC`

	var rows []contactRow
	if err := sqlx.Select(db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query contacts by category: %w", err)
	}
	return contactsFromRows(rows)
}

// GetAllWithNoteCounts returns every contact with the number of notes it owns,
// sorted by last name then first name. Contacts without notes report zero.
func (s *ContactStore) GetAllWithNoteCounts() ([]models.ContactWithNoteCount, error) {
	db, err := s.handle.DB()
	if err != nil {
		return nil, err
	}

	var rows []contactCountRow
	err = sqlx.Select(db, &rows, `
		SELECT c.id, c.nativeID, c.firstName, c.lastName, c.category, c.createdAt, c.updatedAt,
		       COUNT(n.id) AS noteCount
		FROM contacts c
		LEFT JOIN notes n ON n.userId = c.id
		GROUP BY c.id
		ORDER BY c.lastName ASC, c.firstName ASC, c.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact note counts: %w", err)
	}

	result := make([]models.ContactWithNoteCount, 0, len(rows))
	for i := range rows {
		c, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, nil
}

// GetByID returns nil when no contact has the id
func (s *ContactStore) GetByID(id int64) (*models.Contact, error) {
	db, err := s.handle.DB()
	if err != nil {
		return nil, err
	}
	return getContact(db, "id", id)
}

// GetByNativeID returns nil when no contact has the native id
func (s *ContactStore) GetByNativeID(nativeID string) (*models.Contact, error) {
	db, err := s.handle.DB()
	if err != nil {
		return nil, err
	}
	return getContact(db, "nativeID", nativeID)
}

// getContact looks a contact up by one of its unique columns
func getContact(q sqlx.Queryer, column string, value any) (*models.Contact, error) {
	var row contactRow
	err := sqlx.Get(q, &row, `SELECT `+contactColumns+` FROM contacts WHERE `+column+` = ?`, value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query contact: %w", err)
	}

	contact, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// Update applies a partial update. Fields left nil in the patch keep their
// stored value. Returns false when the contact does not exist.
func (s *ContactStore) Update(id int64, patch models.ContactPatch) (bool, error) {
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

	existing, err := getContact(tx, "id", id)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	updated := patch.Apply(*existing, s.cfg.timestamp())
	_, err = tx.Exec(`
		UPDATE contacts SET
			nativeID = ?,
			firstName = ?,
			lastName = ?,
			category = ?,
			updatedAt = ?
		WHERE id = ?
	`, updated.NativeID, updated.FirstName, updated.LastName, string(updated.Category),
		formatTimestamp(updated.UpdatedAt), id)
	if err != nil {
		return false, fmt.Errorf("failed to update contact: %w", classify(err))
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

// Delete removes a contact; its notes go with it through the cascade.
// Returns false when the contact does not exist.
func (s *ContactStore) Delete(id int64) (bool, error) {
	db, err := s.handle.DB()
	if err != nil {
		return false, err
	}

	result, err := db.Exec(`DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete contact: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// BatchSave inserts every record whose native ID is not stored yet and skips
// the rest, all in one transaction. It returns the number of inserted rows.
// On failure nothing is stored and the error wraps ErrBatchFailed.
func (s *ContactStore) BatchSave(inputs []models.ContactInput) (int, error) {
	if len(inputs) == 0 {
		return 0, nil
	}

	for i, input := range inputs {
		if err := s.validator.Validate(input); err != nil {
			return 0, fmt.Errorf("%w: record %d: %w", ErrBatchFailed, i, err)
		}
	}

	db, err := s.handle.DB()
	if err != nil {
		return 0, err
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to begin transaction: %w", ErrBatchFailed, err)
	}
	s.logger.Debug("batch save started", "records", len(inputs))

	now := s.cfg.timestamp()
	inserted := 0
	for _, input := range inputs {
		contact := input.Contact(now)

		existing, err := getContact(tx, "nativeID", contact.NativeID)
		if err != nil {
			return 0, s.rollback(tx, err)
		}
		if existing != nil {
			continue
		}

		if _, err := insertContact(tx, contact); err != nil {
			return 0, s.rollback(tx, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, s.rollback(tx, fmt.Errorf("failed to commit transaction: %w", err))
	}

	s.logger.Info("batch save committed",
		"records", len(inputs),
		"inserted", inserted,
		"skipped", len(inputs)-inserted,
	)
	return inserted, nil
}

func (s *ContactStore) rollback(tx *sqlx.Tx, cause error) error {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		s.logger.Error("batch save rollback failed", "error", err)
	}
	s.logger.Warn("batch save rolled back", "error", cause)
	return fmt.Errorf("%w: %w", ErrBatchFailed, cause)
}
