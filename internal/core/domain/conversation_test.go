package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConversation() *Conversation {
	return &Conversation{
		ExternalID: "conv-123",
		Source:     "chatgpt",
		Title:      "Test Conversation",
		UpdatedAt:  time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
		Messages: []Message{
			{Role: RoleUser, Content: "Hello"},
			{Role: RoleAssistant, Content: "Hi there"},
		},
	}
}

func TestConversationValidate(t *testing.T) {
	t.Run("valid conversation passes", func(t *testing.T) {
		require.NoError(t, validConversation().Validate())
	})

	t.Run("missing external id fails", func(t *testing.T) {
		conv := validConversation()
		conv.ExternalID = ""
		err := conv.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing source fails", func(t *testing.T) {
		conv := validConversation()
		conv.Source = ""
		assert.ErrorIs(t, conv.Validate(), ErrInvalidInput)
	})

	t.Run("invalid role fails", func(t *testing.T) {
		conv := validConversation()
		conv.Messages[0].Role = "robot"
		assert.ErrorIs(t, conv.Validate(), ErrInvalidInput)
	})

	t.Run("empty message content fails", func(t *testing.T) {
		conv := validConversation()
		conv.Messages[1].Content = ""
		assert.ErrorIs(t, conv.Validate(), ErrInvalidInput)
	})

	t.Run("no messages is allowed", func(t *testing.T) {
		conv := validConversation()
		conv.Messages = nil
		assert.NoError(t, conv.Validate())
	})
}

func TestConversationFullText(t *testing.T) {
	conv := validConversation()
	assert.Equal(t, "user: Hello\nassistant: Hi there", conv.FullText())

	conv.Messages = nil
	assert.Equal(t, "", conv.FullText())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAssistant.Valid())
	assert.True(t, RoleSystem.Valid())
	assert.False(t, Role("robot").Valid())
	assert.False(t, Role("").Valid())
}
