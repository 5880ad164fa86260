package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/domain"
	repository "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/persistence/repository/port"
)

// GetConversationUseCase fetches one conversation with hydrated participants.
// Membership authorization stays at the boundary: callers decide what the
// requesting user may see.
type GetConversationUseCase struct {
	Repo repository.ChatRepository
}

func NewGetConversationUseCase(repo repository.ChatRepository) *GetConversationUseCase {
	return &GetConversationUseCase{Repo: repo}
}

func (uc *GetConversationUseCase) Execute(ctx context.Context, conversationID string) (*chat.ConversationDetail, error) {
	if conversationID == "" {
		return nil, fmt.Errorf("conversation_id is required")
	}
	detail, err := uc.Repo.GetConversation(ctx, conversationID)
	if errors.Is(err, chat.ErrConversationNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return detail, nil
}
