package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	chat "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/domain"
)

// memUserRepo is an in-memory UserRepository for service tests.
type memUserRepo struct {
	nextID  int
	byEmail map[string]*storedUser
	byCode  map[string]*storedUser

	createErr error
}

type storedUser struct {
	user chat.User
	hash string
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		byEmail: make(map[string]*storedUser),
		byCode:  make(map[string]*storedUser),
	}
}

func (r *memUserRepo) Create(_ context.Context, name, email, passwordHash, friendCode string) (*chat.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	stored := &storedUser{
		user: chat.User{
			ID:         fmt.Sprintf("user-%d", r.nextID),
			Name:       name,
			Email:      email,
			FriendCode: friendCode,
		},
		hash: passwordHash,
	}
	r.byEmail[email] = stored
	r.byCode[friendCode] = stored
	u := stored.user
	return &u, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*chat.User, error) {
	for _, stored := range r.byEmail {
		if stored.user.ID == id {
			u := stored.user
			return &u, nil
		}
	}
	return nil, chat.ErrUserNotFound
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*chat.User, string, error) {
	stored, ok := r.byEmail[email]
	if !ok {
		return nil, "", chat.ErrUserNotFound
	}
	u := stored.user
	return &u, stored.hash, nil
}

func (r *memUserRepo) FindByFriendCode(_ context.Context, code string) (*chat.User, error) {
	stored, ok := r.byCode[code]
	if !ok {
		return nil, chat.ErrUserNotFound
	}
	u := stored.user
	return &u, nil
}

func (r *memUserRepo) UpdateProfile(_ context.Context, id string, name, status, avatar *string) (*chat.User, error) {
	for _, stored := range r.byEmail {
		if stored.user.ID != id {
			continue
		}
		if name != nil {
			stored.user.Name = *name
		}
		if status != nil {
			stored.user.Status = status
		}
		if avatar != nil {
			stored.user.Avatar = avatar
		}
		u := stored.user
		return &u, nil
	}
	return nil, chat.ErrUserNotFound
}

func (r *memUserRepo) SetOnline(_ context.Context, id string, online bool, seenAt time.Time) error {
	for _, stored := range r.byEmail {
		if stored.user.ID == id {
			stored.user.Online = online
			stored.user.LastSeen = &seenAt
			return nil
		}
	}
	return nil
}

func (r *memUserRepo) ListOnlineIDs(context.Context) ([]string, error) {
	var ids []string
	for _, stored := range r.byEmail {
		if stored.user.Online {
			ids = append(ids, stored.user.ID)
		}
	}
	return ids, nil
}

func newTestAuthService() (*Service, *memUserRepo) {
	repo := newMemUserRepo()
	return NewService(repo, NewTokenProvider("test-secret", time.Hour)), repo
}

func TestRegister_CreatesUserWithTokenAndFriendCode(t *testing.T) {
	svc, _ := newTestAuthService()

	user, token, err := svc.Register(context.Background(), "Ada", "ada@example.com", "correct horse battery")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Regexp(t, friendCodePattern, user.FriendCode)
	require.NotEmpty(t, token)

	identity, err := svc.Tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, identity.UserID)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "correct horse battery")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "Second Ada", "ada@example.com", "another password")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_MapsInsertRaceToEmailTaken(t *testing.T) {
	svc, repo := newTestAuthService()

	// The email looks free at lookup time, but a concurrent registration
	// takes it before our insert lands. The store reports the unique
	// violation as chat.ErrEmailTaken; callers see a conflict, not a 500.
	repo.createErr = chat.ErrEmailTaken

	_, _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "correct horse battery")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_NeverStoresPlaintextPassword(t *testing.T) {
	svc, repo := newTestAuthService()

	_, _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "correct horse battery")
	require.NoError(t, err)

	_, hash, err := repo.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery", hash)
	require.True(t, CheckPassword("correct horse battery", hash))
}

func TestLogin_VerifiesCredentials(t *testing.T) {
	svc, _ := newTestAuthService()

	registered, _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "correct horse battery")
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "ada@example.com", "correct horse battery")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
	require.NotEmpty(t, token)
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "correct horse battery")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "ada@example.com", "wrong password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email maps to the same error so callers can't probe accounts.
	_, _, err = svc.Login(context.Background(), "nobody@example.com", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
