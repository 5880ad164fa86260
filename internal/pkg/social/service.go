package social

import (
	"context"
	"errors"

	chat "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/domain"
	repository "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/persistence/repository/port"
)

var (
	ErrSelfRequest    = errors.New("social: cannot add yourself")
	ErrAlreadyFriends = errors.New("social: already friends")
	ErrRequestPending = errors.New("social: a request is already pending")
	ErrNotReceiver    = errors.New("social: request is not addressed to this user")
)

// Service is the social-graph collaborator: friend codes in, friendships out.
// Its AreFriends method is what the conversation use case consults before
// opening a direct thread.
type Service struct {
	Friends FriendRepository
	Users   repository.UserRepository
}

func NewService(friends FriendRepository, users repository.UserRepository) *Service {
	return &Service{Friends: friends, Users: users}
}

// SendRequest resolves the friend code and files a pending request.
func (s *Service) SendRequest(ctx context.Context, userID, friendCode string) (*FriendRequest, error) {
	target, err := s.Users.FindByFriendCode(ctx, friendCode)
	if err != nil {
		return nil, err
	}
	if target.ID == userID {
		return nil, ErrSelfRequest
	}

	if friends, err := s.Friends.AreFriends(ctx, userID, target.ID); err != nil {
		return nil, err
	} else if friends {
		return nil, ErrAlreadyFriends
	}

	if pending, err := s.Friends.PendingRequestExists(ctx, userID, target.ID); err != nil {
		return nil, err
	} else if pending {
		return nil, ErrRequestPending
	}

	return s.Friends.CreateRequest(ctx, userID, target.ID)
}

// Accept settles a pending request addressed to userID.
func (s *Service) Accept(ctx context.Context, requestID, userID string) error {
	req, err := s.Friends.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.ReceiverID != userID {
		return ErrNotReceiver
	}
	return s.Friends.AcceptRequest(ctx, requestID)
}

// Decline settles a pending request addressed to userID.
func (s *Service) Decline(ctx context.Context, requestID, userID string) error {
	req, err := s.Friends.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.ReceiverID != userID {
		return ErrNotReceiver
	}
	return s.Friends.DeclineRequest(ctx, requestID)
}

// RemoveFriend severs the friendship in both directions.
func (s *Service) RemoveFriend(ctx context.Context, userID, friendID string) error {
	removed, err := s.Friends.RemoveFriendship(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if !removed {
		return chat.ErrNotFriends
	}
	return nil
}

// ListFriends returns the user's friends.
func (s *Service) ListFriends(ctx context.Context, userID string) ([]chat.User, error) {
	return s.Friends.ListFriends(ctx, userID)
}

// ListIncomingRequests returns pending requests addressed to the user.
func (s *Service) ListIncomingRequests(ctx context.Context, userID string) ([]FriendRequest, error) {
	return s.Friends.ListIncomingRequests(ctx, userID)
}

// AreFriends answers connectivity for the chat core.
func (s *Service) AreFriends(ctx context.Context, userA, userB string) (bool, error) {
	return s.Friends.AreFriends(ctx, userA, userB)
}
