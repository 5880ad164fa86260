package auth

import (
	"context"
	"errors"
	"fmt"

	chat "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/domain"
	repository "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/persistence/repository/port"
)

var (
	ErrEmailTaken         = errors.New("auth: email already registered")
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
)

// Service implements registration and login on top of the user store.
type Service struct {
	Users  repository.UserRepository
	Tokens *TokenProvider
}

func NewService(users repository.UserRepository, tokens *TokenProvider) *Service {
	return &Service{Users: users, Tokens: tokens}
}

// Register creates a user with a hashed password and a unique friend code,
// and returns the user with a fresh access token.
func (s *Service) Register(ctx context.Context, name, email, password string) (*chat.User, string, error) {
	if _, _, err := s.Users.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, chat.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	code, err := s.uniqueFriendCode(ctx)
	if err != nil {
		return nil, "", err
	}

	user, err := s.Users.Create(ctx, name, email, hash, code)
	if errors.Is(err, chat.ErrEmailTaken) {
		// A concurrent registration won the insert race after our lookup.
		return nil, "", ErrEmailTaken
	}
	if err != nil {
		return nil, "", err
	}

	token, err := s.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh access token.
func (s *Service) Login(ctx context.Context, email, password string) (*chat.User, string, error) {
	user, hash, err := s.Users.FindByEmail(ctx, email)
	if errors.Is(err, chat.ErrUserNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if !CheckPassword(password, hash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *Service) uniqueFriendCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code := GenerateFriendCode()
		_, err := s.Users.FindByFriendCode(ctx, code)
		if errors.Is(err, chat.ErrUserNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("auth: could not generate a unique friend code")
}
