package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/domain"
)

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

// GetOrCreateDirectConversation finds or creates the single direct
// conversation between the two users. The pair_key unique index makes the
// insert race-safe: whichever transaction loses the conflict reads the
// winner's row instead.
func (r *PgChatRepository) GetOrCreateDirectConversation(ctx context.Context, userA, userB string) (string, bool, error) {
	if r == nil || r.pool == nil {
		return "", false, errors.New("PgChatRepository: nil pool")
	}
	pairKey := chat.PairKey(userA, userB)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", false, err
	}
	defer tx.Rollback(ctx)

	var id string
	err = tx.QueryRow(ctx, `
		INSERT INTO conversations (is_group, pair_key)
		VALUES (false, $1)
		ON CONFLICT (pair_key) WHERE is_group = false AND pair_key IS NOT NULL DO NOTHING
		RETURNING id::text
	`, pairKey).Scan(&id)

	if errors.Is(err, pgx.ErrNoRows) {
		// Lost the race or the conversation already existed.
		if err := tx.QueryRow(ctx,
			`SELECT id::text FROM conversations WHERE pair_key = $1 AND is_group = false`,
			pairKey,
		).Scan(&id); err != nil {
			return "", false, err
		}
		return id, false, tx.Commit(ctx)
	}
	if err != nil {
		return "", false, err
	}

	// New conversation: both participant rows commit with it or not at all.
	if _, err := tx.Exec(ctx, `
		INSERT INTO conversation_participants (conversation_id, user_id)
		VALUES ($1::uuid, $2::uuid), ($1::uuid, $3::uuid)
	`, id, userA, userB); err != nil {
		return "", false, err
	}

	return id, true, tx.Commit(ctx)
}

func (r *PgChatRepository) GetConversation(ctx context.Context, id string) (*chat.ConversationDetail, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}

	var detail chat.ConversationDetail
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, is_group, name, created_at, updated_at
		FROM conversations
		WHERE id = $1::uuid
	`, id).Scan(&detail.ID, &detail.IsGroup, &detail.Name, &detail.CreatedAt, &detail.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, chat.ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}

	participants, err := r.listParticipants(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Participants = participants
	return &detail, nil
}

func (r *PgChatRepository) ListUserConversations(ctx context.Context, userID string) ([]chat.ConversationSummary, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}

	rows, err := r.pool.Query(ctx, `
		SELECT c.id::text, c.is_group, c.name, c.created_at, c.updated_at
		FROM conversations c
		JOIN conversation_participants cp ON cp.conversation_id = c.id
		WHERE cp.user_id = $1::uuid
		ORDER BY c.updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []chat.ConversationSummary
	for rows.Next() {
		var s chat.ConversationSummary
		if err := rows.Scan(&s.ID, &s.IsGroup, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}

	for i := range summaries {
		participants, err := r.listParticipants(ctx, summaries[i].ID)
		if err != nil {
			return nil, err
		}
		summaries[i].Participants = participants

		var content string
		err = r.pool.QueryRow(ctx, `
			SELECT content FROM messages
			WHERE conversation_id = $1::uuid
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		`, summaries[i].ID).Scan(&content)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			// empty conversation
		case err != nil:
			return nil, err
		default:
			summaries[i].LastMessage = &content
		}
	}
	return summaries, nil
}

func (r *PgChatRepository) ListParticipantIDs(ctx context.Context, conversationID string) ([]string, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx,
		`SELECT user_id::text FROM conversation_participants WHERE conversation_id = $1::uuid`,
		conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PgChatRepository) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgChatRepository: nil pool")
	}
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM conversation_participants
			WHERE conversation_id = $1::uuid AND user_id = $2::uuid
		)
	`, conversationID, userID).Scan(&exists)
	return exists, err
}

// MarkRead advances the caller's read marker, never moving it backwards.
// Zero rows affected means the user is not a participant; per contract that
// is a silent no-op.
func (r *PgChatRepository) MarkRead(ctx context.Context, conversationID, userID string, readAt time.Time) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE conversation_participants
		SET last_read_at = GREATEST(COALESCE(last_read_at, 'epoch'::timestamptz), $3)
		WHERE conversation_id = $1::uuid AND user_id = $2::uuid
	`, conversationID, userID, readAt)
	return err
}

// SaveMessage inserts the message and bumps the conversation's updated_at to
// the message's created_at inside one transaction.
func (r *PgChatRepository) SaveMessage(ctx context.Context, m chat.Message) (*chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var saved chat.Message
	err = tx.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, sender_id, content, message_type)
		VALUES ($1::uuid, $2::uuid, $3, $4)
		RETURNING id::text, conversation_id::text, sender_id::text, content,
		          message_type, is_read, is_edited, created_at, updated_at
	`, m.ConversationID, m.SenderID, m.Content, m.MessageType).Scan(
		&saved.ID, &saved.ConversationID, &saved.SenderID, &saved.Content,
		&saved.MessageType, &saved.IsRead, &saved.IsEdited, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE conversations SET updated_at = $2 WHERE id = $1::uuid`,
		saved.ConversationID, saved.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *PgChatRepository) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, conversation_id::text, sender_id::text, content,
		       message_type, is_read, is_edited, created_at, updated_at
		FROM messages
		WHERE conversation_id = $1::uuid
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, conversationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content,
			&m.MessageType, &m.IsRead, &m.IsEdited, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *PgChatRepository) listParticipants(ctx context.Context, conversationID string) ([]chat.Participant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id::text, u.name, u.avatar, u.online, cp.joined_at, cp.last_read_at
		FROM conversation_participants cp
		JOIN users u ON u.id = cp.user_id
		WHERE cp.conversation_id = $1::uuid
		ORDER BY cp.joined_at
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []chat.Participant
	for rows.Next() {
		var p chat.Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.Avatar, &p.Online, &p.JoinedAt, &p.LastReadAt); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}
