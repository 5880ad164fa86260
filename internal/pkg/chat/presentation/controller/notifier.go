package controller

import (
	"time"

	"github.com/bhavin-bhuva/vibesync/internal/infrastructure/realtime"
	chat "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/domain"
	"github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/usecase"
)

// HubNotifier adapts the realtime hub to the use cases' Notifier port. All
// pushes are best-effort; the hub logs and absorbs delivery failures.
type HubNotifier struct {
	Hub *realtime.Hub
}

func NewHubNotifier(hub *realtime.Hub) *HubNotifier {
	return &HubNotifier{Hub: hub}
}

var _ usecase.Notifier = (*HubNotifier)(nil)

func (n *HubNotifier) MessageCreated(m chat.Message, participantIDs []string) {
	n.Hub.EmitNewMessage(m.ConversationID, m)
	n.Hub.EmitConversationUpdated(participantIDs, realtime.ConversationUpdate{
		ConversationID: m.ConversationID,
		LastMessage:    m,
		Unread:         true,
	})
}

func (n *HubNotifier) ConversationRead(conversationID, userID string, readAt time.Time) {
	n.Hub.EmitConversationRead(realtime.ReadReceipt{
		ConversationID: conversationID,
		UserID:         userID,
		ReadAt:         readAt,
	})
}
