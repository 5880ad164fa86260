package usecase

import (
	"context"
	"fmt"

	chat "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/domain"
	repository "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/persistence/repository/port"
)

// ListConversationsUseCase returns every conversation the user participates
// in, most recently active first, with display fields computed for the viewer.
type ListConversationsUseCase struct {
	Repo repository.ChatRepository
}

func NewListConversationsUseCase(repo repository.ChatRepository) *ListConversationsUseCase {
	return &ListConversationsUseCase{Repo: repo}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, userID string) ([]chat.ConversationSummary, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	summaries, err := uc.Repo.ListUserConversations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	for i := range summaries {
		summaries[i].Enrich(userID)
	}
	return summaries, nil
}
