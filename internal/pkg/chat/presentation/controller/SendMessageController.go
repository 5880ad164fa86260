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
	repository "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/persistence/repository/port"
)

// SendMessageController handles the send-message endpoint only (one
// controller per endpoint). The persisted write is transactional; the
// realtime push rides on the use case's notifier and never fails the request.
type SendMessageController struct {
	UC   *usecase.SendMessageUseCase
	Repo repository.ChatRepository
}

func NewSendMessageController(pool *pgxpool.Pool, notifier usecase.Notifier) *SendMessageController {
	repo := adapter.NewPgChatRepository(pool)
	return &SendMessageController{
		UC:   usecase.NewSendMessageUseCase(repo, notifier),
		Repo: repo,
	}
}

// sendMessageRequest is the DTO for the HTTP request body
type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
	Type    string `json:"type"`
}

func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID, valid := pathConversationID(c)
		if !valid {
			return
		}

		var req sendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if status, code, msg := requireParticipant(ctx, h.Repo, conversationID, auth.UserID(c)); status != 0 {
			fail(c, status, code, msg)
			return
		}

		msg, err := h.UC.Execute(ctx, usecase.SendMessageInput{
			ConversationID: conversationID,
			SenderID:       auth.UserID(c),
			Content:        req.Content,
			MessageType:    req.Type,
		})
		if errors.Is(err, chat.ErrEmptyMessage) {
			fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "message content is required")
			return
		}
		if err != nil {
			failFromUseCase(c, err)
			return
		}
		ok(c, http.StatusCreated, msg)
	}
}
