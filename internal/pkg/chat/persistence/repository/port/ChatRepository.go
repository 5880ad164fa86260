package repository

import (
	"context"
	"time"

	chat "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/domain"
)

// ChatRepository defines persistence operations for conversations,
// participants and messages. Adapters must honor these contracts:
//
//   - GetOrCreateDirectConversation creates the conversation row and both
//     participant rows as one atomic unit, and returns the same id for the
//     same unordered pair regardless of argument order or concurrent calls.
//   - SaveMessage inserts the message and bumps the owning conversation's
//     updated_at in one transaction.
//   - MarkRead never moves last_read_at backwards and is a silent no-op when
//     the user is not a participant.
type ChatRepository interface {
	GetOrCreateDirectConversation(ctx context.Context, userA, userB string) (id string, created bool, err error)

	// GetConversation returns the hydrated conversation or
	// chat.ErrConversationNotFound.
	GetConversation(ctx context.Context, id string) (*chat.ConversationDetail, error)

	// ListUserConversations returns every conversation the user participates
	// in, newest activity first, with participants and last message hydrated.
	ListUserConversations(ctx context.Context, userID string) ([]chat.ConversationSummary, error)

	ListParticipantIDs(ctx context.Context, conversationID string) ([]string, error)
	IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)

	MarkRead(ctx context.Context, conversationID, userID string, readAt time.Time) error

	SaveMessage(ctx context.Context, m chat.Message) (*chat.Message, error)

	// ListMessages returns up to limit messages newest-first, skipping offset.
	ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]chat.Message, error)
}
