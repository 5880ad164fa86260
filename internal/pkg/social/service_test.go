package social

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	chat "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/domain"
)

// memFriendRepo is an in-memory FriendRepository.
type memFriendRepo struct {
	nextID   int
	requests map[string]*FriendRequest
	friends  map[string]struct{}
}

func newMemFriendRepo() *memFriendRepo {
	return &memFriendRepo{
		requests: make(map[string]*FriendRequest),
		friends:  make(map[string]struct{}),
	}
}

func pairKey(a, b string) string {
	if a < b {
		return a + ":" + b
	}
	return b + ":" + a
}

func (r *memFriendRepo) CreateRequest(_ context.Context, senderID, receiverID string) (*FriendRequest, error) {
	r.nextID++
	req := &FriendRequest{
		ID:         fmt.Sprintf("req-%d", r.nextID),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	r.requests[req.ID] = req
	return req, nil
}

func (r *memFriendRepo) GetRequest(_ context.Context, id string) (*FriendRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	copied := *req
	return &copied, nil
}

func (r *memFriendRepo) ListIncomingRequests(_ context.Context, userID string) ([]FriendRequest, error) {
	var out []FriendRequest
	for _, req := range r.requests {
		if req.ReceiverID == userID && req.Status == StatusPending {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *memFriendRepo) PendingRequestExists(_ context.Context, userA, userB string) (bool, error) {
	for _, req := range r.requests {
		if req.Status != StatusPending {
			continue
		}
		if pairKey(req.SenderID, req.ReceiverID) == pairKey(userA, userB) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memFriendRepo) AcceptRequest(_ context.Context, id string) error {
	req, ok := r.requests[id]
	if !ok || req.Status != StatusPending {
		return ErrRequestNotFound
	}
	req.Status = StatusAccepted
	r.friends[pairKey(req.SenderID, req.ReceiverID)] = struct{}{}
	return nil
}

func (r *memFriendRepo) DeclineRequest(_ context.Context, id string) error {
	req, ok := r.requests[id]
	if !ok || req.Status != StatusPending {
		return ErrRequestNotFound
	}
	req.Status = StatusDeclined
	return nil
}

func (r *memFriendRepo) AreFriends(_ context.Context, userA, userB string) (bool, error) {
	_, ok := r.friends[pairKey(userA, userB)]
	return ok, nil
}

func (r *memFriendRepo) ListFriends(context.Context, string) ([]chat.User, error) {
	return nil, nil
}

func (r *memFriendRepo) RemoveFriendship(_ context.Context, userA, userB string) (bool, error) {
	key := pairKey(userA, userB)
	if _, ok := r.friends[key]; !ok {
		return false, nil
	}
	delete(r.friends, key)
	return true, nil
}

// codeUserRepo resolves friend codes for the service; the other
// UserRepository methods are never reached by these tests.
type codeUserRepo struct {
	byCode map[string]*chat.User
}

func (r *codeUserRepo) FindByFriendCode(_ context.Context, code string) (*chat.User, error) {
	u, ok := r.byCode[code]
	if !ok {
		return nil, chat.ErrUserNotFound
	}
	return u, nil
}

func (r *codeUserRepo) Create(context.Context, string, string, string, string) (*chat.User, error) {
	return nil, nil
}
func (r *codeUserRepo) FindByID(context.Context, string) (*chat.User, error) { return nil, nil }
func (r *codeUserRepo) FindByEmail(context.Context, string) (*chat.User, string, error) {
	return nil, "", nil
}
func (r *codeUserRepo) UpdateProfile(context.Context, string, *string, *string, *string) (*chat.User, error) {
	return nil, nil
}
func (r *codeUserRepo) SetOnline(context.Context, string, bool, time.Time) error { return nil }
func (r *codeUserRepo) ListOnlineIDs(context.Context) ([]string, error)          { return nil, nil }

func newTestSocialService() (*Service, *memFriendRepo) {
	friends := newMemFriendRepo()
	users := &codeUserRepo{byCode: map[string]*chat.User{
		"AAAAA-BBBBB-CCCCC": {ID: "target", Name: "Target"},
		"SELF1-SELF2-SELF3": {ID: "sender", Name: "Sender"},
	}}
	return NewService(friends, users), friends
}

func TestSendRequest_CreatesPending(t *testing.T) {
	svc, _ := newTestSocialService()

	req, err := svc.SendRequest(context.Background(), "sender", "AAAAA-BBBBB-CCCCC")
	require.NoError(t, err)
	require.Equal(t, "sender", req.SenderID)
	require.Equal(t, "target", req.ReceiverID)
	require.Equal(t, StatusPending, req.Status)
}

func TestSendRequest_Rejections(t *testing.T) {
	svc, repo := newTestSocialService()
	ctx := context.Background()

	_, err := svc.SendRequest(ctx, "sender", "NOSUC-HCODE-HERE1")
	require.ErrorIs(t, err, chat.ErrUserNotFound)

	_, err = svc.SendRequest(ctx, "sender", "SELF1-SELF2-SELF3")
	require.ErrorIs(t, err, ErrSelfRequest)

	_, err = svc.SendRequest(ctx, "sender", "AAAAA-BBBBB-CCCCC")
	require.NoError(t, err)
	_, err = svc.SendRequest(ctx, "sender", "AAAAA-BBBBB-CCCCC")
	require.ErrorIs(t, err, ErrRequestPending)

	repo.friends[pairKey("sender", "target")] = struct{}{}
	_, err = svc.SendRequest(ctx, "sender", "AAAAA-BBBBB-CCCCC")
	require.ErrorIs(t, err, ErrAlreadyFriends)
}

func TestAccept_OnlyReceiverAndMakesFriends(t *testing.T) {
	svc, _ := newTestSocialService()
	ctx := context.Background()

	req, err := svc.SendRequest(ctx, "sender", "AAAAA-BBBBB-CCCCC")
	require.NoError(t, err)

	require.ErrorIs(t, svc.Accept(ctx, req.ID, "sender"), ErrNotReceiver)

	require.NoError(t, svc.Accept(ctx, req.ID, "target"))

	// Friendship is symmetric.
	friends, err := svc.AreFriends(ctx, "sender", "target")
	require.NoError(t, err)
	require.True(t, friends)
	friends, err = svc.AreFriends(ctx, "target", "sender")
	require.NoError(t, err)
	require.True(t, friends)
}

func TestRemoveFriend_SeversBothDirections(t *testing.T) {
	svc, repo := newTestSocialService()
	ctx := context.Background()

	repo.friends[pairKey("sender", "target")] = struct{}{}

	require.NoError(t, svc.RemoveFriend(ctx, "sender", "target"))

	friends, err := svc.AreFriends(ctx, "target", "sender")
	require.NoError(t, err)
	require.False(t, friends)

	// Removing an already-severed (or never-existing) friendship reports it.
	require.ErrorIs(t, svc.RemoveFriend(ctx, "sender", "target"), chat.ErrNotFriends)
	require.ErrorIs(t, svc.RemoveFriend(ctx, "sender", "stranger"), chat.ErrNotFriends)

	// A fresh request can rebuild the friendship afterwards.
	req, err := svc.SendRequest(ctx, "sender", "AAAAA-BBBBB-CCCCC")
	require.NoError(t, err)
	require.NoError(t, svc.Accept(ctx, req.ID, "target"))
	friends, err = svc.AreFriends(ctx, "sender", "target")
	require.NoError(t, err)
	require.True(t, friends)
}

func TestDecline_SettlesWithoutFriendship(t *testing.T) {
	svc, repo := newTestSocialService()
	ctx := context.Background()

	req, err := svc.SendRequest(ctx, "sender", "AAAAA-BBBBB-CCCCC")
	require.NoError(t, err)

	require.ErrorIs(t, svc.Decline(ctx, req.ID, "sender"), ErrNotReceiver)
	require.NoError(t, svc.Decline(ctx, req.ID, "target"))
	require.Equal(t, StatusDeclined, repo.requests[req.ID].Status)

	friends, err := svc.AreFriends(ctx, "sender", "target")
	require.NoError(t, err)
	require.False(t, friends)

	// A declined request no longer blocks a new one.
	_, err = svc.SendRequest(ctx, "sender", "AAAAA-BBBBB-CCCCC")
	require.NoError(t, err)
}
