package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema holds the idempotent DDL for all tables. Conversations carry a
// deterministic pair_key (least:greatest of the two participant ids) so that a
// direct conversation between two users is unique at the store level, no matter
// how many find-or-create calls race.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

	`CREATE TABLE IF NOT EXISTS users (
		id           uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		name         varchar(255) NOT NULL,
		email        varchar(255) NOT NULL UNIQUE,
		password     varchar(255) NOT NULL,
		friend_code  varchar(17)  NOT NULL UNIQUE,
		avatar       varchar(500),
		status       varchar(500) DEFAULT 'Hey there! I am using VibeSync',
		online       boolean      NOT NULL DEFAULT false,
		last_seen    timestamptz,
		created_at   timestamptz  NOT NULL DEFAULT now(),
		updated_at   timestamptz  NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS conversations (
		id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		is_group   boolean     NOT NULL DEFAULT false,
		name       varchar(255),
		pair_key   text,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS conversations_pair_key_idx
		ON conversations (pair_key) WHERE is_group = false AND pair_key IS NOT NULL`,

	`CREATE TABLE IF NOT EXISTS conversation_participants (
		conversation_id uuid NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
		user_id         uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		joined_at       timestamptz NOT NULL DEFAULT now(),
		last_read_at    timestamptz,
		PRIMARY KEY (conversation_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS messages (
		id              uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		conversation_id uuid NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
		sender_id       uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		content         text NOT NULL,
		message_type    varchar(50) NOT NULL DEFAULT 'text',
		is_read         boolean     NOT NULL DEFAULT false,
		is_edited       boolean     NOT NULL DEFAULT false,
		created_at      timestamptz NOT NULL DEFAULT now(),
		updated_at      timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE INDEX IF NOT EXISTS messages_conversation_created_idx
		ON messages (conversation_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS friend_requests (
		id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		sender_id   uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		receiver_id uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		status      varchar(20) NOT NULL DEFAULT 'pending',
		created_at  timestamptz NOT NULL DEFAULT now(),
		updated_at  timestamptz NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS friendships (
		id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id    uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		friend_id  uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at timestamptz NOT NULL DEFAULT now(),
		UNIQUE (user_id, friend_id)
	)`,
}

// EnsureSchema applies the DDL statements in order. Safe to run on every boot.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: ensure schema: %w", err)
		}
	}
	return nil
}
