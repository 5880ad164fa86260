package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMessage_TrimsAndDefaults(t *testing.T) {
	msg, err := NewMessage("conv-1", "user-1", "  hello there  ", "")
	require.NoError(t, err)
	require.Equal(t, "hello there", msg.Content)
	require.Equal(t, DefaultMessageType, msg.MessageType)
	require.Equal(t, "conv-1", msg.ConversationID)
	require.Equal(t, "user-1", msg.SenderID)
}

func TestNewMessage_KeepsExplicitType(t *testing.T) {
	msg, err := NewMessage("conv-1", "user-1", "pic", "image")
	require.NoError(t, err)
	require.Equal(t, "image", msg.MessageType)
}

func TestNewMessage_RejectsEmptyContent(t *testing.T) {
	_, err := NewMessage("conv-1", "user-1", "", "")
	require.ErrorIs(t, err, ErrEmptyMessage)

	_, err = NewMessage("conv-1", "user-1", "   \t\n ", "")
	require.ErrorIs(t, err, ErrEmptyMessage)
}

func TestNewMessage_RequiresConversationAndSender(t *testing.T) {
	_, err := NewMessage("", "user-1", "hi", "")
	require.ErrorIs(t, err, ErrInvalidConversation)

	_, err = NewMessage("conv-1", "", "hi", "")
	require.ErrorIs(t, err, ErrInvalidConversation)
}
