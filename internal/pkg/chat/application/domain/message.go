package chat

import (
	"strings"
	"time"
)

// DefaultMessageType is applied when the sender does not tag the message.
const DefaultMessageType = "text"

// Message is an immutable log entry in a conversation. Content may carry
// rich-text markup that the server treats as opaque text. IsRead and IsEdited
// are stored but never mutated after insert; no behavior is built on them.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Content        string    `json:"content"`
	MessageType    string    `json:"messageType"`
	IsRead         bool      `json:"isRead"`
	IsEdited       bool      `json:"isEdited"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewMessage validates and normalizes an outgoing message. Content must be
// non-empty after trimming; the type tag defaults to "text".
func NewMessage(conversationID, senderID, content, messageType string) (*Message, error) {
	if conversationID == "" || senderID == "" {
		return nil, ErrInvalidConversation
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	messageType = strings.TrimSpace(messageType)
	if messageType == "" {
		messageType = DefaultMessageType
	}

	return &Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		MessageType:    messageType,
	}, nil
}
