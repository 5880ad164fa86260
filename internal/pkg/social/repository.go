package social

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/domain"
)

// Friend request lifecycle states.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

var ErrRequestNotFound = errors.New("social: friend request not found")

// FriendRequest is a pending/settled invitation between two users.
type FriendRequest struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// FriendRepository persists the social graph: requests plus reciprocal
// friendship rows.
type FriendRepository interface {
	CreateRequest(ctx context.Context, senderID, receiverID string) (*FriendRequest, error)
	GetRequest(ctx context.Context, id string) (*FriendRequest, error)
	ListIncomingRequests(ctx context.Context, userID string) ([]FriendRequest, error)
	PendingRequestExists(ctx context.Context, userA, userB string) (bool, error)

	// AcceptRequest settles the request and inserts both friendship rows in
	// one transaction.
	AcceptRequest(ctx context.Context, id string) error
	DeclineRequest(ctx context.Context, id string) error

	AreFriends(ctx context.Context, userA, userB string) (bool, error)
	ListFriends(ctx context.Context, userID string) ([]chat.User, error)

	// RemoveFriendship deletes both directions of the friendship and reports
	// whether anything was removed.
	RemoveFriendship(ctx context.Context, userA, userB string) (bool, error)
}

type PgFriendRepository struct {
	pool *pgxpool.Pool
}

func NewPgFriendRepository(pool *pgxpool.Pool) *PgFriendRepository {
	return &PgFriendRepository{pool: pool}
}

var _ FriendRepository = (*PgFriendRepository)(nil)

func (r *PgFriendRepository) CreateRequest(ctx context.Context, senderID, receiverID string) (*FriendRequest, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO friend_requests (sender_id, receiver_id)
		VALUES ($1::uuid, $2::uuid)
		RETURNING id::text, sender_id::text, receiver_id::text, status, created_at, updated_at
	`, senderID, receiverID)
	return scanRequest(row)
}

func (r *PgFriendRepository) GetRequest(ctx context.Context, id string) (*FriendRequest, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id::text, sender_id::text, receiver_id::text, status, created_at, updated_at
		FROM friend_requests WHERE id = $1::uuid
	`, id)
	return scanRequest(row)
}

func (r *PgFriendRepository) ListIncomingRequests(ctx context.Context, userID string) ([]FriendRequest, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, sender_id::text, receiver_id::text, status, created_at, updated_at
		FROM friend_requests
		WHERE receiver_id = $1::uuid AND status = 'pending'
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []FriendRequest
	for rows.Next() {
		var fr FriendRequest
		if err := rows.Scan(&fr.ID, &fr.SenderID, &fr.ReceiverID, &fr.Status, &fr.CreatedAt, &fr.UpdatedAt); err != nil {
			return nil, err
		}
		reqs = append(reqs, fr)
	}
	return reqs, rows.Err()
}

func (r *PgFriendRepository) PendingRequestExists(ctx context.Context, userA, userB string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM friend_requests
			WHERE status = 'pending'
			  AND ((sender_id = $1::uuid AND receiver_id = $2::uuid)
			    OR (sender_id = $2::uuid AND receiver_id = $1::uuid))
		)
	`, userA, userB).Scan(&exists)
	return exists, err
}

func (r *PgFriendRepository) AcceptRequest(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var senderID, receiverID string
	err = tx.QueryRow(ctx, `
		UPDATE friend_requests
		SET status = 'accepted', updated_at = now()
		WHERE id = $1::uuid AND status = 'pending'
		RETURNING sender_id::text, receiver_id::text
	`, id).Scan(&senderID, &receiverID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrRequestNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO friendships (user_id, friend_id)
		VALUES ($1::uuid, $2::uuid), ($2::uuid, $1::uuid)
		ON CONFLICT (user_id, friend_id) DO NOTHING
	`, senderID, receiverID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PgFriendRepository) DeclineRequest(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `
		UPDATE friend_requests
		SET status = 'declined', updated_at = now()
		WHERE id = $1::uuid AND status = 'pending'
	`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (r *PgFriendRepository) AreFriends(ctx context.Context, userA, userB string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM friendships WHERE user_id = $1::uuid AND friend_id = $2::uuid
		)
	`, userA, userB).Scan(&exists)
	return exists, err
}

func (r *PgFriendRepository) RemoveFriendship(ctx context.Context, userA, userB string) (bool, error) {
	ct, err := r.pool.Exec(ctx, `
		DELETE FROM friendships
		WHERE (user_id = $1::uuid AND friend_id = $2::uuid)
		   OR (user_id = $2::uuid AND friend_id = $1::uuid)
	`, userA, userB)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *PgFriendRepository) ListFriends(ctx context.Context, userID string) ([]chat.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id::text, u.name, u.email, u.friend_code, u.avatar, u.status,
		       u.online, u.last_seen, u.created_at, u.updated_at
		FROM friendships f
		JOIN users u ON u.id = f.friend_id
		WHERE f.user_id = $1::uuid
		ORDER BY u.name
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var friends []chat.User
	for rows.Next() {
		var u chat.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.FriendCode, &u.Avatar, &u.Status,
			&u.Online, &u.LastSeen, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		friends = append(friends, u)
	}
	return friends, rows.Err()
}

func scanRequest(row pgx.Row) (*FriendRequest, error) {
	var fr FriendRequest
	err := row.Scan(&fr.ID, &fr.SenderID, &fr.ReceiverID, &fr.Status, &fr.CreatedAt, &fr.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &fr, nil
}
