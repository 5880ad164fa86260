package usecase

import (
	"context"
	"fmt"

	chat "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/domain"
	repository "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/persistence/repository/port"
)

// CreateConversationInput carries the two sides of a direct conversation.
type CreateConversationInput struct {
	UserID       string
	TargetUserID string
}

// CreateConversationUseCase finds or creates the one direct conversation
// between two connected users and returns it fully hydrated.
type CreateConversationUseCase struct {
	Repo   repository.ChatRepository
	Social FriendChecker
}

func NewCreateConversationUseCase(repo repository.ChatRepository, social FriendChecker) *CreateConversationUseCase {
	return &CreateConversationUseCase{Repo: repo, Social: social}
}

func (uc *CreateConversationUseCase) Execute(ctx context.Context, in CreateConversationInput) (*chat.ConversationDetail, error) {
	if in.UserID == "" || in.TargetUserID == "" {
		return nil, fmt.Errorf("user_id and target_user_id are required")
	}
	if in.UserID == in.TargetUserID {
		return nil, chat.ErrSelfConversation
	}

	if uc.Social != nil {
		connected, err := uc.Social.AreFriends(ctx, in.UserID, in.TargetUserID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if !connected {
			return nil, chat.ErrNotFriends
		}
	}

	id, _, err := uc.Repo.GetOrCreateDirectConversation(ctx, in.UserID, in.TargetUserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	detail, err := uc.Repo.GetConversation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return detail, nil
}
