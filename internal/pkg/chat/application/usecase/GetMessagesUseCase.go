package usecase

import (
	"context"
	"fmt"

	chat "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/domain"
	repository "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/persistence/repository/port"
)

// GetMessagesInput carries parameters to page through a conversation's
// history. Offset pagination can skew when sends interleave between pages;
// accepted for bounded conversational history.
type GetMessagesInput struct {
	ConversationID string
	Limit          int
	Offset         int
}

// GetMessagesUseCase fetches messages newest-first. Pure read.
type GetMessagesUseCase struct {
	Repo repository.ChatRepository
}

func NewGetMessagesUseCase(repo repository.ChatRepository) *GetMessagesUseCase {
	return &GetMessagesUseCase{Repo: repo}
}

func (uc *GetMessagesUseCase) Execute(ctx context.Context, in GetMessagesInput) ([]chat.Message, error) {
	if in.ConversationID == "" {
		return nil, fmt.Errorf("conversation_id is required")
	}
	msgs, err := uc.Repo.ListMessages(ctx, in.ConversationID, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
