package adapter

// These tests run against a real database because the properties they cover
// live in SQL: transactional rollback of conversation creation and the
// GREATEST clamp on read markers. Set TEST_DATABASE_URL to enable them.

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/bhavin-bhuva/vibesync/internal/infrastructure/database"
	chat "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, database.EnsureSchema(ctx, pool))
	return pool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	var id string
	err := pool.QueryRow(context.Background(), `
		INSERT INTO users (name, email, password, friend_code)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text
	`, "test user", uuid.NewString()+"@example.com", "x", uuid.NewString()[:17]).Scan(&id)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1::uuid`, id)
	})
	return id
}

func TestPgGetOrCreateDirectConversation_Atomic(t *testing.T) {
	pool := testPool(t)
	repo := NewPgChatRepository(pool)
	ctx := context.Background()

	// Participant ids with no users row behind them make the participant
	// insert fail after the conversation row is already in the transaction.
	ghostA := uuid.NewString()
	ghostB := uuid.NewString()

	_, _, err := repo.GetOrCreateDirectConversation(ctx, ghostA, ghostB)
	require.Error(t, err)

	// The rollback must leave no trace of the conversation.
	var count int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT count(*) FROM conversations WHERE pair_key = $1`,
		chat.PairKey(ghostA, ghostB),
	).Scan(&count))
	require.Zero(t, count)
}

func TestPgGetOrCreateDirectConversation_ReusesPair(t *testing.T) {
	pool := testPool(t)
	repo := NewPgChatRepository(pool)
	ctx := context.Background()

	userA := createTestUser(t, pool)
	userB := createTestUser(t, pool)
	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DELETE FROM conversations WHERE pair_key = $1`, chat.PairKey(userA, userB))
	})

	first, created, err := repo.GetOrCreateDirectConversation(ctx, userA, userB)
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := repo.GetOrCreateDirectConversation(ctx, userB, userA)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first, second)

	detail, err := repo.GetConversation(ctx, first)
	require.NoError(t, err)
	require.Len(t, detail.Participants, 2)
}

func TestPgMarkRead_NeverMovesBackwards(t *testing.T) {
	pool := testPool(t)
	repo := NewPgChatRepository(pool)
	ctx := context.Background()

	userA := createTestUser(t, pool)
	userB := createTestUser(t, pool)
	convID, _, err := repo.GetOrCreateDirectConversation(ctx, userA, userB)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DELETE FROM conversations WHERE id = $1::uuid`, convID)
	})

	// Microsecond precision survives the timestamptz round trip.
	fresh := time.Now().UTC().Truncate(time.Microsecond)
	stale := fresh.Add(-time.Minute)

	require.NoError(t, repo.MarkRead(ctx, convID, userA, fresh))
	require.NoError(t, repo.MarkRead(ctx, convID, userA, stale))

	detail, err := repo.GetConversation(ctx, convID)
	require.NoError(t, err)
	for _, p := range detail.Participants {
		if p.ID != userA {
			continue
		}
		require.NotNil(t, p.LastReadAt)
		require.True(t, p.LastReadAt.Equal(fresh), "marker regressed to %v", p.LastReadAt)
	}

	// Marking as a non-participant is a silent no-op.
	require.NoError(t, repo.MarkRead(ctx, convID, uuid.NewString(), fresh))
}
