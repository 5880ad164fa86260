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

// GetConversationController fetches one conversation; only participants may
// see it.
type GetConversationController struct {
	UC *usecase.GetConversationUseCase
}

func NewGetConversationController(pool *pgxpool.Pool) *GetConversationController {
	repo := adapter.NewPgChatRepository(pool)
	return &GetConversationController{UC: usecase.NewGetConversationUseCase(repo)}
}

func (h *GetConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID, valid := pathConversationID(c)
		if !valid {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		detail, err := h.UC.Execute(ctx, conversationID)
		if errors.Is(err, chat.ErrConversationNotFound) {
			fail(c, http.StatusNotFound, "NOT_FOUND", "conversation not found")
			return
		}
		if err != nil {
			failFromUseCase(c, err)
			return
		}
		if !detail.HasParticipant(auth.UserID(c)) {
			fail(c, http.StatusForbidden, "FORBIDDEN", "access denied")
			return
		}
		ok(c, http.StatusOK, detail)
	}
}
