package usecase

import (
	"context"
	"time"

	chat "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/domain"
)

// Notifier receives post-commit push notifications. Implementations must be
// best-effort: they never return errors and never block the committing
// request path beyond an in-memory fan-out.
//
// The hub-backed implementation lives in the presentation layer; use cases
// accept a nil Notifier and skip pushes.
type Notifier interface {
	// MessageCreated fires after a message commits: the conversation room
	// gets the message, each participant's personal room gets a
	// conversation-updated notification.
	MessageCreated(m chat.Message, participantIDs []string)

	// ConversationRead fires after a read marker advances.
	ConversationRead(conversationID, userID string, readAt time.Time)
}

// FriendChecker answers whether two users are connected in the social graph.
type FriendChecker interface {
	AreFriends(ctx context.Context, userA, userB string) (bool, error)
}
