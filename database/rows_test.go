package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNoteCount(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  int
	}{
		{name: "integer", input: int64(5), want: 5},
		{name: "int", input: 3, want: 3},
		{name: "float", input: float64(2), want: 2},
		{name: "text", input: "5", want: 5},
		{name: "padded text", input: " 7 ", want: 7},
		{name: "bytes", input: []byte("12"), want: 12},
		{name: "decimal text", input: "4.0", want: 4},
		{name: "nil", input: nil, want: 0},
		{name: "garbage text", input: "many", want: 0},
		{name: "empty text", input: "", want: 0},
		{name: "negative", input: int64(-1), want: 0},
		{name: "unsupported type", input: true, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseNoteCount(tt.input))
		})
	}
}

func TestTimestamps(t *testing.T) {
	ts := time.Date(2025, 6, 7, 8, 9, 10, 0, time.UTC)
	assert.Equal(t, "2025-06-07T08:09:10.000Z", formatTimestamp(ts))

	local := time.Date(2025, 6, 7, 10, 9, 10, 500_000_000, time.FixedZone("CEST", 2*60*60))
	assert.Equal(t, "2025-06-07T08:09:10.500Z", formatTimestamp(local))

	for _, raw := range []string{"2025-06-07T08:09:10.000Z", "2025-06-07T08:09:10Z", "2025-06-07 08:09:10"} {
		t.Run(raw, func(t *testing.T) {
			parsed, err := parseTimestamp(raw)
			require.NoError(t, err)
			assert.True(t, parsed.Equal(ts), "got %v", parsed)
		})
	}

	_, err := parseTimestamp("yesterday")
	assert.Error(t, err)

	// Fixed width keeps lexical order equal to time order
	earlier := formatTimestamp(ts)
	later := formatTimestamp(ts.Add(990 * time.Millisecond))
	assert.Less(t, earlier, later)
}

func TestContactCountRow_ToModel(t *testing.T) {
	row := contactCountRow{
		contactRow: contactRow{
			ID:        1,
			NativeID:  "n1",
			FirstName: "Alice",
			LastName:  "A",
			Category:  "FRIEND",
			CreatedAt: "2025-01-01T00:00:00.000Z",
			UpdatedAt: "2025-01-01T00:00:00.000Z",
		},
		NoteCount: "2",
	}

	got, err := row.toModel()
	require.NoError(t, err)
	assert.Equal(t, 2, got.NoteCount)
	assert.Equal(t, "Alice", got.FirstName)

	row.NoteCount = nil
	got, err = row.toModel()
	require.NoError(t, err)
	assert.Equal(t, 0, got.NoteCount)

	row.CreatedAt = "not a time"
	_, err = row.toModel()
	assert.Error(t, err)
}
