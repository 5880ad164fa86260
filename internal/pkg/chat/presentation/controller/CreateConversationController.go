package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bhavin-bhuva/vibesync/internal/pkg/auth"
	chat "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/domain"
	"github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/usecase"
	"github.com/bhavin-bhuva/vibesync/internal/pkg/chat/persistence/repository/adapter"
)

// CreateConversationController handles find-or-create for direct
// conversations (one controller per endpoint).
type CreateConversationController struct {
	UC *usecase.CreateConversationUseCase
}

func NewCreateConversationController(pool *pgxpool.Pool, social usecase.FriendChecker) *CreateConversationController {
	repo := adapter.NewPgChatRepository(pool)
	return &CreateConversationController{UC: usecase.NewCreateConversationUseCase(repo, social)}
}

type createConversationRequest struct {
	UserID string `json:"userId" binding:"required,uuid"`
}

func (h *CreateConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createConversationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		detail, err := h.UC.Execute(ctx, usecase.CreateConversationInput{
			UserID:       auth.UserID(c),
			TargetUserID: req.UserID,
		})
		if errors.Is(err, chat.ErrSelfConversation) {
			fail(c, http.StatusBadRequest, "INVALID_OPERATION", "cannot create conversation with yourself")
			return
		}
		if errors.Is(err, chat.ErrNotFriends) {
			fail(c, http.StatusForbidden, "FORBIDDEN", "you are not connected with this user")
			return
		}
		if err != nil {
			failFromUseCase(c, err)
			return
		}
		ok(c, http.StatusOK, detail)
	}
}
