package usecase

import (
	"context"
	"fmt"
	"time"

	repository "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/persistence/repository/port"
)

// MarkReadInput identifies whose read marker in which conversation advances.
type MarkReadInput struct {
	ConversationID string
	UserID         string
}

// MarkReadUseCase stamps the caller's last-read marker with the current time
// and pushes a read receipt to the conversation room after the write commits.
// Idempotent; a non-participant caller is a silent no-op at the store.
type MarkReadUseCase struct {
	Repo     repository.ChatRepository
	Notifier Notifier

	// Clock supplies the read stamp; nil means time.Now. The store clamps
	// the marker so a stale stamp can never move it backwards.
	Clock func() time.Time
}

func NewMarkReadUseCase(repo repository.ChatRepository, notifier Notifier) *MarkReadUseCase {
	return &MarkReadUseCase{Repo: repo, Notifier: notifier}
}

func (uc *MarkReadUseCase) Execute(ctx context.Context, in MarkReadInput) (time.Time, error) {
	if in.ConversationID == "" || in.UserID == "" {
		return time.Time{}, fmt.Errorf("conversation_id and user_id are required")
	}

	now := time.Now
	if uc.Clock != nil {
		now = uc.Clock
	}
	readAt := now().UTC()
	if err := uc.Repo.MarkRead(ctx, in.ConversationID, in.UserID, readAt); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Notifier != nil {
		uc.Notifier.ConversationRead(in.ConversationID, in.UserID, readAt)
	}
	return readAt, nil
}
