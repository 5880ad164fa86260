package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bhavin-bhuva/vibesync/internal/pkg/auth"
	"github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/usecase"
	"github.com/bhavin-bhuva/vibesync/internal/pkg/chat/persistence/repository/adapter"
	repository "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/persistence/repository/port"
)

// GetMessagesController pages through a conversation's history; participants
// only.
type GetMessagesController struct {
	UC   *usecase.GetMessagesUseCase
	Repo repository.ChatRepository
}

func NewGetMessagesController(pool *pgxpool.Pool) *GetMessagesController {
	repo := adapter.NewPgChatRepository(pool)
	return &GetMessagesController{
		UC:   usecase.NewGetMessagesUseCase(repo),
		Repo: repo,
	}
}

func (h *GetMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID, valid := pathConversationID(c)
		if !valid {
			return
		}

		// Defaults
		limit := 50
		offset := 0
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}
		if v := c.Query("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				offset = n
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if status, code, msg := requireParticipant(ctx, h.Repo, conversationID, auth.UserID(c)); status != 0 {
			fail(c, status, code, msg)
			return
		}

		msgs, err := h.UC.Execute(ctx, usecase.GetMessagesInput{
			ConversationID: conversationID,
			Limit:          limit,
			Offset:         offset,
		})
		if err != nil {
			failFromUseCase(c, err)
			return
		}
		ok(c, http.StatusOK, msgs)
	}
}
