package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCallback(t *testing.T) {
	tests := []struct {
		name            string
		data            string
		expectedAction  string
		expectedPayload string
	}{
		{name: "confirm", data: "confirm_quest", expectedAction: "confirm_quest", expectedPayload: ""},
		{name: "cancel", data: "cancel_quest", expectedAction: "cancel_quest", expectedPayload: ""},
		{name: "view", data: "view_quests", expectedAction: "view_quests", expectedPayload: ""},
		{name: "create", data: "create_quest", expectedAction: "create_quest", expectedPayload: ""},
		{name: "approve carries id", data: "approve_S123456ABC", expectedAction: "approve", expectedPayload: "S123456ABC"},
		{name: "deny carries id", data: "deny_S123456ABC", expectedAction: "deny", expectedPayload: "S123456ABC"},
		{name: "payload keeps later delimiters", data: "approve_S_WITH_UNDERSCORES", expectedAction: "approve", expectedPayload: "S_WITH_UNDERSCORES"},
		{name: "no payload", data: "approve", expectedAction: "approve", expectedPayload: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, payload := splitCallback(tt.data)
			assert.Equal(t, tt.expectedAction, action)
			assert.Equal(t, tt.expectedPayload, payload)
		})
	}
}

func TestFormatQuestCreatedUsesPersistedFields(t *testing.T) {
	quest := questFixture()
	text := formatQuestCreated(quest)

	assert.Contains(t, text, "Code: Q123456ABC")
	assert.Contains(t, text, "Points: 15")
	assert.Contains(t, text, "Title: Find the flag")
}
