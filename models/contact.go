package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ContactCategory groups contacts in the contact list
type ContactCategory string

const (
	ContactCategoryAll    ContactCategory = "ALL"
	ContactCategoryFriend ContactCategory = "FRIEND"
	ContactCategoryWork   ContactCategory = "WORK"
	ContactCategoryFamily ContactCategory = "FAMILY"
)

// ContactCategories lists every accepted contact category, in picker order
var ContactCategories = []ContactCategory{
	ContactCategoryAll,
	ContactCategoryFriend,
	ContactCategoryWork,
	ContactCategoryFamily,
}

// Valid reports whether c is one of the known contact categories
func (c ContactCategory) Valid() bool {
	switch c {
	case ContactCategoryAll, ContactCategoryFriend, ContactCategoryWork, ContactCategoryFamily:
		return true
	}
	return false
}

// ParseContactCategory converts a raw string into a ContactCategory.
// An empty string yields the default category.
func ParseContactCategory(s string) (ContactCategory, error) {
	if s == "" {
		return ContactCategoryAll, nil
	}
	c := ContactCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown contact category %q", s)
	}
	return c, nil
}

type Contact struct {
	ID        int64           `json:"id"`
	NativeID  string          `json:"nativeID"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Category  ContactCategory `json:"category"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ContactWithNoteCount is the contact list row: a contact plus the number of notes it owns
type ContactWithNoteCount struct {
	Contact
	NoteCount int `json:"noteCount"`
}

// ContactInput carries the fields accepted when creating a contact.
// NativeID and Category are optional.
type ContactInput struct {
	NativeID  string          `json:"nativeID" yaml:"nativeID" validate:"omitempty,nativeid"`
	FirstName string          `json:"firstName" yaml:"firstName" validate:"required"`
	LastName  string          `json:"lastName" yaml:"lastName"`
	Category  ContactCategory `json:"category" yaml:"category" validate:"omitempty,contactcategory"`
}

// Contact builds the record to insert, generating a surrogate native ID
// and defaulting the category when they are missing
func (in ContactInput) Contact(now time.Time) Contact {
	nativeID := in.NativeID
	if nativeID == "" {
		nativeID = uuid.NewString()
	}
	category := in.Category
	if category == "" {
		category = ContactCategoryAll
	}
	return Contact{
		NativeID:  nativeID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ContactPatch is a partial contact update. Nil fields keep their stored value.
type ContactPatch struct {
	NativeID  *string          `json:"nativeID,omitempty" validate:"omitnil,nativeid"`
	FirstName *string          `json:"firstName,omitempty" validate:"omitnil,min=1"`
	LastName  *string          `json:"lastName,omitempty"`
	Category  *ContactCategory `json:"category,omitempty" validate:"omitnil,contactcategory"`
}

// IsEmpty reports whether the patch changes no field
func (p ContactPatch) IsEmpty() bool {
	return p.NativeID == nil && p.FirstName == nil && p.LastName == nil && p.Category == nil
}

// Apply merges the patch over an existing contact and stamps the update time.
// ID and CreatedAt are never touched. UpdatedAt never moves backwards.
func (p ContactPatch) Apply(c Contact, now time.Time) Contact {
	if p.NativeID != nil {
		c.NativeID = *p.NativeID
	}
	if p.FirstName != nil {
		c.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		c.LastName = *p.LastName
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	c.UpdatedAt = laterOf(now, c.UpdatedAt)
	return c
}

// DeviceContact is one entry read from the device address book
type DeviceContact struct {
	NativeID  string `json:"nativeID" yaml:"nativeID"`
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
}

func laterOf(now, prev time.Time) time.Time {
	if now.Before(prev) {
		return prev
	}
	return now
}
