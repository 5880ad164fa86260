package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bhavin-bhuva/vibesync/internal/pkg/auth"
	"github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/usecase"
	"github.com/bhavin-bhuva/vibesync/internal/pkg/chat/persistence/repository/adapter"
	repository "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/persistence/repository/port"
)

// MarkReadController advances the caller's read marker and pushes the read
// receipt into the conversation room.
type MarkReadController struct {
	UC   *usecase.MarkReadUseCase
	Repo repository.ChatRepository
}

func NewMarkReadController(pool *pgxpool.Pool, notifier usecase.Notifier) *MarkReadController {
	repo := adapter.NewPgChatRepository(pool)
	return &MarkReadController{
		UC:   usecase.NewMarkReadUseCase(repo, notifier),
		Repo: repo,
	}
}

func (h *MarkReadController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID, valid := pathConversationID(c)
		if !valid {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		callerID := auth.UserID(c)
		isMember, err := h.Repo.IsParticipant(ctx, conversationID, callerID)
		if err != nil {
			failInternal(c)
			return
		}
		if !isMember {
			fail(c, http.StatusForbidden, "FORBIDDEN", "access denied")
			return
		}

		readAt, err := h.UC.Execute(ctx, usecase.MarkReadInput{
			ConversationID: conversationID,
			UserID:         callerID,
		})
		if err != nil {
			failFromUseCase(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"conversationId": conversationID, "readAt": readAt})
	}
}
