package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	chat "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/domain"
	repository "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/persistence/repository/port"
)

// pathConversationID extracts and validates the :id path parameter. On a
// missing or malformed id it writes the 400 response and returns false.
func pathConversationID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "conversation id must be a valid uuid")
		return "", false
	}
	return id, true
}

// requireParticipant is the boundary access check shared by the message
// endpoints: 404 when the conversation does not exist, 403 when the caller is
// not a member. A zero status means access is granted.
func requireParticipant(ctx context.Context, repo repository.ChatRepository, conversationID, userID string) (status int, code, msg string) {
	detail, err := repo.GetConversation(ctx, conversationID)
	if errors.Is(err, chat.ErrConversationNotFound) {
		return http.StatusNotFound, "NOT_FOUND", "conversation not found"
	}
	if err != nil {
		return http.StatusInternalServerError, "INTERNAL", "something went wrong"
	}
	if !detail.HasParticipant(userID) {
		return http.StatusForbidden, "FORBIDDEN", "access denied"
	}
	return 0, "", ""
}
