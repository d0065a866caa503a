package models

import (
	"fmt"
	"time"
)

// NoteCategory classifies the content of a note
type NoteCategory string

const (
	NoteCategoryMusic    NoteCategory = "MUSIC"
	NoteCategoryPersonal NoteCategory = "PERSONAL"
	NoteCategoryGift     NoteCategory = "GIFT"
	NoteCategoryHobbies  NoteCategory = "HOBBIES"
	NoteCategoryNews     NoteCategory = "NEWS"
	NoteCategoryOthers   NoteCategory = "OTHERS"
	NoteCategoryWork     NoteCategory = "WORK"
)

var NoteCategories = []NoteCategory{
	NoteCategoryMusic,
	NoteCategoryPersonal,
	NoteCategoryGift,
	NoteCategoryHobbies,
	NoteCategoryNews,
	NoteCategoryOthers,
	NoteCategoryWork,
}

// Valid reports whether c is one of the known note categories
func (c NoteCategory) Valid() bool {
	for _, known := range NoteCategories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseNoteCategory converts a raw string into a NoteCategory.
// Notes have no default category, so an empty string is rejected.
func ParseNoteCategory(s string) (NoteCategory, error) {
	c := NoteCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown note category %q", s)
	}
	return c, nil
}

// Note is a free-form note attached to a contact.
// UserID references the owning contact's ID.
type Note struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"userId"`
	Category  NoteCategory `json:"category"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// NoteInput carries the fields accepted when creating a note.
// UserID is checked by the foreign key, not here.
type NoteInput struct {
	UserID   int64        `json:"userId"`
	Category NoteCategory `json:"category" validate:"required,notecategory"`
	Content  string       `json:"content" validate:"required"`
}

// Note builds the record to insert
func (in NoteInput) Note(now time.Time) Note {
	return Note{
		UserID:    in.UserID,
		Category:  in.Category,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NotePatch is a partial note update. Nil fields keep their stored value.
type NotePatch struct {
	Content  *string       `json:"content,omitempty" validate:"omitnil,min=1"`
	Category *NoteCategory `json:"category,omitempty" validate:"omitnil,notecategory"`
}

func (p NotePatch) IsEmpty() bool {
	return p.Content == nil && p.Category == nil
}

// Apply merges the patch over an existing note and stamps the update time
func (p NotePatch) Apply(n Note, now time.Time) Note {
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Category != nil {
		n.Category = *p.Category
	}
	n.UpdatedAt = laterOf(now, n.UpdatedAt)
	return n
}
