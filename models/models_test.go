package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestParseContactCategory(t *testing.T) {
	tests := []struct {
		input     string
		want      ContactCategory
		wantError bool
	}{
		{input: "", want: ContactCategoryAll},
		{input: "ALL", want: ContactCategoryAll},
		{input: "FRIEND", want: ContactCategoryFriend},
		{input: "WORK", want: ContactCategoryWork},
		{input: "FAMILY", want: ContactCategoryFamily},
		{input: "family", wantError: true},
		{input: "COLLEAGUE", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseContactCategory(tt.input)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNoteCategory(t *testing.T) {
	for _, c := range NoteCategories {
		got, err := ParseNoteCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseNoteCategory("")
	assert.Error(t, err, "notes have no default category")

	_, err = ParseNoteCategory("RECIPES")
	assert.Error(t, err)
}

func TestContactInput_Contact(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("keeps provided fields", func(t *testing.T) {
		c := ContactInput{
			NativeID:  "native-1",
			FirstName: "Alice",
			LastName:  "Alpha",
			Category:  ContactCategoryFamily,
		}.Contact(now)

		assert.Equal(t, "native-1", c.NativeID)
		assert.Equal(t, "Alice", c.FirstName)
		assert.Equal(t, "Alpha", c.LastName)
		assert.Equal(t, ContactCategoryFamily, c.Category)
		assert.Equal(t, now, c.CreatedAt)
		assert.Equal(t, now, c.UpdatedAt)
	})

	t.Run("fills defaults", func(t *testing.T) {
		first := ContactInput{FirstName: "Jane"}.Contact(now)
		second := ContactInput{FirstName: "Jane"}.Contact(now)

		assert.Equal(t, ContactCategoryAll, first.Category)
		_, err := uuid.Parse(first.NativeID)
		assert.NoError(t, err, "surrogate native id should be a uuid")
		assert.NotEqual(t, first.NativeID, second.NativeID)
	})
}

func TestContactPatch_Apply(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	existing := Contact{
		ID:        7,
		NativeID:  "native-123",
		FirstName: "John",
		LastName:  "Doe",
		Category:  ContactCategoryFriend,
		CreatedAt: created,
		UpdatedAt: created,
	}
	later := created.Add(time.Hour)

	tests := []struct {
		name  string
		patch ContactPatch
		want  Contact
	}{
		{
			name:  "empty patch only touches updatedAt",
			patch: ContactPatch{},
			want:  Contact{ID: 7, NativeID: "native-123", FirstName: "John", LastName: "Doe", Category: ContactCategoryFriend, CreatedAt: created, UpdatedAt: later},
		},
		{
			name:  "first name only",
			patch: ContactPatch{FirstName: ptr("Johnny")},
			want:  Contact{ID: 7, NativeID: "native-123", FirstName: "Johnny", LastName: "Doe", Category: ContactCategoryFriend, CreatedAt: created, UpdatedAt: later},
		},
		{
			name:  "last name cleared explicitly",
			patch: ContactPatch{LastName: ptr("")},
			want:  Contact{ID: 7, NativeID: "native-123", FirstName: "John", LastName: "", Category: ContactCategoryFriend, CreatedAt: created, UpdatedAt: later},
		},
		{
			name: "every field",
			patch: ContactPatch{
				NativeID:  ptr("native-updated-456"),
				FirstName: ptr("Johnathan"),
				LastName:  ptr("Doelicious"),
				Category:  ptr(ContactCategoryFamily),
			},
			want: Contact{ID: 7, NativeID: "native-updated-456", FirstName: "Johnathan", LastName: "Doelicious", Category: ContactCategoryFamily, CreatedAt: created, UpdatedAt: later},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.patch.Apply(existing, later))
		})
	}

	t.Run("updatedAt never moves backwards", func(t *testing.T) {
		got := ContactPatch{}.Apply(existing, created.Add(-time.Minute))
		assert.Equal(t, created, got.UpdatedAt)
	})
}

func TestNotePatch_Apply(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	existing := Note{ID: 3, UserID: 1, Category: NoteCategoryWork, Content: "old text", CreatedAt: created, UpdatedAt: created}
	later := created.Add(time.Second)

	got := NotePatch{Content: ptr("new text")}.Apply(existing, later)
	assert.Equal(t, "new text", got.Content)
	assert.Equal(t, NoteCategoryWork, got.Category)
	assert.Equal(t, later, got.UpdatedAt)
	assert.Equal(t, created, got.CreatedAt)

	got = NotePatch{Category: ptr(NoteCategoryGift)}.Apply(existing, later)
	assert.Equal(t, "old text", got.Content)
	assert.Equal(t, NoteCategoryGift, got.Category)

	assert.True(t, NotePatch{}.IsEmpty())
	assert.False(t, NotePatch{Content: ptr("")}.IsEmpty())
}
