package usecase

import (
	"context"
	"fmt"

	chat "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/domain"
	repository "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/persistence/repository/port"
)

// SendMessageInput carries the data needed to send a new message. The
// boundary has already verified the sender is a participant.
type SendMessageInput struct {
	ConversationID string
	SenderID       string
	Content        string
	MessageType    string
}

// SendMessageUseCase persists a message (message insert + conversation
// activity bump, one transaction) and then pushes the realtime events. The
// persisted state is the source of truth; a failed push is absorbed by the
// notifier and never fails the send.
type SendMessageUseCase struct {
	Repo     repository.ChatRepository
	Notifier Notifier
}

func NewSendMessageUseCase(repo repository.ChatRepository, notifier Notifier) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo, Notifier: notifier}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*chat.Message, error) {
	msg, err := chat.NewMessage(in.ConversationID, in.SenderID, in.Content, in.MessageType)
	if err != nil {
		return nil, err
	}

	saved, err := uc.Repo.SaveMessage(ctx, *msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Notifier != nil {
		// Participant ids drive the personal-room notifications. If the
		// lookup fails the room push still happens with what we have.
		participantIDs, _ := uc.Repo.ListParticipantIDs(ctx, saved.ConversationID)
		uc.Notifier.MessageCreated(*saved, participantIDs)
	}
	return saved, nil
}
