package database

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"oruma/models"
)

// timestampLayout is the stored ISO-8601 form. Fixed width keeps string order equal to time order.
const timestampLayout = "2006-01-02T15:04:05.000Z"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// parseTimestamp reads the stored layout, falling back to RFC 3339 and
// SQLite's CURRENT_TIMESTAMP form for rows written by other tools
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{timestampLayout, time.RFC3339Nano, time.DateTime} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// parseNoteCount coerces the aggregate column to a non-negative integer.
// The driver may hand back an integer, a float, text, or NULL.
func parseNoteCount(v any) int {
	var n int64
	switch val := v.(type) {
	case int64:
		n = val
	case int:
		n = int64(val)
	case float64:
		n = int64(val)
	case []byte:
		n = parseCountText(string(val))
	case string:
		n = parseCountText(val)
	default:
		return 0
	}
	if n < 0 {
		return 0
	}
	return int(n)
}

func parseCountText(s string) int64 {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}

// contactColumns MUST match the db tags of contactRow
const contactColumns = `id, nativeID, firstName, lastName, category, createdAt, updatedAt`

// contactRow holds a contacts row as stored
type contactRow struct {
	ID        int64  `db:"id"`
	NativeID  string `db:"nativeID"`
	FirstName string `db:"firstName"`
	LastName  string `db:"lastName"`
	Category  string `db:"category"`
	CreatedAt string `db:"createdAt"`
	UpdatedAt string `db:"updatedAt"`
}

func (r *contactRow) toModel() (models.Contact, error) {
	createdAt, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return models.Contact{}, fmt.Errorf("contact %d createdAt: %w", r.ID, err)
	}
	updatedAt, err := parseTimestamp(r.UpdatedAt)
	if err != nil {
		return models.Contact{}, fmt.Errorf("contact %d updatedAt: %w", r.ID, err)
	}

	return models.Contact{
		ID:        r.ID,
		NativeID:  r.NativeID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Category:  models.ContactCategory(r.Category),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// contactCountRow is a contact joined with its note aggregate
type contactCountRow struct {
	contactRow
	NoteCount any `db:"noteCount"`
}

func (r *contactCountRow) toModel() (models.ContactWithNoteCount, error) {
	contact, err := r.contactRow.toModel()
	if err != nil {
		return models.ContactWithNoteCount{}, err
	}
	return models.ContactWithNoteCount{
		Contact:   contact,
		NoteCount: parseNoteCount(r.NoteCount),
	}, nil
}

// contactArgs returns nativeID, firstName, lastName, category, createdAt, updatedAt
func contactArgs(c models.Contact) []any {
	return []any{
		c.NativeID,
		c.FirstName,
		c.LastName,
		string(c.Category),
		formatTimestamp(c.CreatedAt),
		formatTimestamp(c.UpdatedAt),
	}
}

// noteColumns MUST match the db tags of noteRow
const noteColumns = `id, userId, category, content, createdAt, updatedAt`

type noteRow struct {
	ID        int64  `db:"id"`
	UserID    int64  `db:"userId"`
	Category  string `db:"category"`
	Content   string `db:"content"`
	CreatedAt string `db:"createdAt"`
	UpdatedAt string `db:"updatedAt"`
}

func (r *noteRow) toModel() (models.Note, error) {
	createdAt, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return models.Note{}, fmt.Errorf("note %d createdAt: %w", r.ID, err)
	}
	updatedAt, err := parseTimestamp(r.UpdatedAt)
	if err != nil {
		return models.Note{}, fmt.Errorf("note %d updatedAt: %w", r.ID, err)
	}

	return models.Note{
		ID:        r.ID,
		UserID:    r.UserID,
		Category:  models.NoteCategory(r.Category),
		Content:   r.Content,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func contactsFromRows(rows []contactRow) ([]models.Contact, error) {
	contacts := make([]models.Contact, 0, len(rows))
	for i := range rows {
		c, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

func notesFromRows(rows []noteRow) ([]models.Note, error) {
	notes := make([]models.Note, 0, len(rows))
	for i := range rows {
		n, err := rows[i].toModel()
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}
