package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/domain"
)

const userColumns = `id::text, name, email, friend_code, avatar, status, online, last_seen, created_at, updated_at`

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) Create(ctx context.Context, name, email, passwordHash, friendCode string) (*chat.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password, friend_code)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		name, email, passwordHash, friendCode)
	u, err := scanUser(row)
	if err != nil {
		// Two registrations racing on the same email both pass the lookup;
		// the unique index decides, and the loser gets a conflict, not a 500.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == "users_email_key" {
			return nil, chat.ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (r *PgUserRepository) FindByID(ctx context.Context, id string) (*chat.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1::uuid`, id)
	return scanUser(row)
}

func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (*chat.User, string, error) {
	if r == nil || r.pool == nil {
		return nil, "", errors.New("PgUserRepository: nil pool")
	}
	var (
		u    chat.User
		hash string
	)
	err := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+`, password FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.FriendCode, &u.Avatar, &u.Status,
		&u.Online, &u.LastSeen, &u.CreatedAt, &u.UpdatedAt, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", chat.ErrUserNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return &u, hash, nil
}

func (r *PgUserRepository) FindByFriendCode(ctx context.Context, code string) (*chat.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE friend_code = $1`, code)
	return scanUser(row)
}

func (r *PgUserRepository) UpdateProfile(ctx context.Context, id string, name, status, avatar *string) (*chat.User, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET name       = COALESCE($2, name),
		    status     = COALESCE($3, status),
		    avatar     = COALESCE($4, avatar),
		    updated_at = now()
		WHERE id = $1::uuid
		RETURNING `+userColumns,
		id, name, status, avatar)
	return scanUser(row)
}

func (r *PgUserRepository) SetOnline(ctx context.Context, id string, online bool, seenAt time.Time) error {
	if r == nil || r.pool == nil {
		return errors.New("PgUserRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET online = $2, last_seen = $3 WHERE id = $1::uuid`,
		id, online, seenAt)
	return err
}

func (r *PgUserRepository) ListOnlineIDs(ctx context.Context) ([]string, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgUserRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, `SELECT id::text FROM users WHERE online = true`)
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

func scanUser(row pgx.Row) (*chat.User, error) {
	var u chat.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.FriendCode, &u.Avatar, &u.Status,
		&u.Online, &u.LastSeen, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, chat.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
