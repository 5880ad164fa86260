package chat

import "errors"

// Domain-level errors for chat behaviors.
var (
	ErrInvalidConversation  = errors.New("chat: conversation and sender ids are required")
	ErrConversationNotFound = errors.New("chat: conversation not found")
	ErrNotParticipant       = errors.New("chat: user is not a participant in the conversation")
	ErrEmptyMessage         = errors.New("chat: message content is empty")
	ErrSelfConversation     = errors.New("chat: cannot open a conversation with yourself")
	ErrNotFriends           = errors.New("chat: users are not connected")
	ErrUserNotFound         = errors.New("chat: user not found")
	ErrEmailTaken           = errors.New("chat: email already registered")
)
