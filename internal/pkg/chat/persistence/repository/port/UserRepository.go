package repository

import (
	"context"
	"time"

	chat "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/domain"
)

// UserRepository defines persistence operations for identity records.
// Password hashes are confined to this layer: FindByEmail returns the hash
// for credential checks, everything else works with chat.User only.
type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash, friendCode string) (*chat.User, error)
	FindByID(ctx context.Context, id string) (*chat.User, error)
	FindByEmail(ctx context.Context, email string) (*chat.User, string, error)
	FindByFriendCode(ctx context.Context, code string) (*chat.User, error)
	UpdateProfile(ctx context.Context, id string, name, status, avatar *string) (*chat.User, error)

	// SetOnline flips the online flag and stamps last_seen.
	SetOnline(ctx context.Context, id string, online bool, seenAt time.Time) error

	// ListOnlineIDs returns the ids of users currently flagged online, for
	// presence reconciliation.
	ListOnlineIDs(ctx context.Context) ([]string, error)
}
