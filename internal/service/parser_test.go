package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseQuestDraft(t *testing.T) {
	t.Run("title and description only uses defaults", func(t *testing.T) {
		draft, err := ParseQuestDraft("Find the flag\nLocate the hidden flag in the park", "")
		assert.NoError(t, err)
		assert.Equal(t, "Find the flag", draft.Title)
		assert.Equal(t, "Locate the hidden flag in the park", draft.Description)
		assert.Equal(t, 10, draft.Points)
		assert.Nil(t, draft.Deadline)
	})

	t.Run("single line is malformed", func(t *testing.T) {
		draft, err := ParseQuestDraft("Just a title", "")
		assert.Nil(t, draft)
		assert.ErrorIs(t, err, ErrMalformedQuestText)
	})

	t.Run("blank lines do not count", func(t *testing.T) {
		draft, err := ParseQuestDraft("Title\n\n   \n", "")
		assert.Nil(t, draft)
		assert.ErrorIs(t, err, ErrMalformedQuestText)
	})

	t.Run("deadline literal is preserved", func(t *testing.T) {
		draft, err := ParseQuestDraft("T\nD\nDeadline: 2025-01-15 10:30", "")
		assert.NoError(t, err)
		expected := time.Date(2025, 1, 15, 10, 30, 0, 0, time.Local)
		assert.NotNil(t, draft.Deadline)
		assert.True(t, expected.Equal(*draft.Deadline))
	})

	t.Run("garbage deadline aborts the parse", func(t *testing.T) {
		draft, err := ParseQuestDraft("T\nD\nDeadline: garbage", "")
		assert.Nil(t, draft)
		assert.ErrorIs(t, err, ErrInvalidDeadline)
	})

	t.Run("points override", func(t *testing.T) {
		draft, err := ParseQuestDraft("T\nD\nPoints: 25", "")
		assert.NoError(t, err)
		assert.Equal(t, 25, draft.Points)
	})

	t.Run("garbage points aborts the parse", func(t *testing.T) {
		draft, err := ParseQuestDraft("T\nD\nPoints: lots", "")
		assert.Nil(t, draft)
		assert.ErrorIs(t, err, ErrInvalidPoints)
	})

	t.Run("negative points rejected", func(t *testing.T) {
		draft, err := ParseQuestDraft("T\nD\nPoints: -5", "")
		assert.Nil(t, draft)
		assert.ErrorIs(t, err, ErrInvalidPoints)
	})

	t.Run("annotations in any order", func(t *testing.T) {
		draft, err := ParseQuestDraft("T\nD\nPoints: 5\nDeadline: 2025-06-01 09:00", "")
		assert.NoError(t, err)
		assert.Equal(t, 5, draft.Points)
		assert.NotNil(t, draft.Deadline)
	})

	t.Run("image ref carried onto draft", func(t *testing.T) {
		draft, err := ParseQuestDraft("T\nD", "https://example.com/photo.jpg")
		assert.NoError(t, err)
		assert.Equal(t, "https://example.com/photo.jpg", draft.ImageURL)
	})
}

func TestExtractQuestReference(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{name: "hash prefixed code", text: "Here is #ABC123 done", expected: "ABC123"},
		{name: "bare code", text: "finished Q482913KX2 today", expected: "Q482913KX2"},
		{name: "trailing punctuation stripped", text: "done with #Q123456ABC!", expected: "Q123456ABC"},
		{name: "no code", text: "no code here", expected: ""},
		{name: "too short", text: "got AB done", expected: ""},
		{name: "lowercase does not match", text: "abc123 is not a code", expected: ""},
		{name: "first of several wins", text: "#AAA111 and #BBB222", expected: "AAA111"},
		{name: "empty text", text: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractQuestReference(tt.text))
		})
	}
}
