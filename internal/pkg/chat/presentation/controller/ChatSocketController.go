package controller

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bhavin-bhuva/vibesync/internal/infrastructure/realtime"
	"github.com/bhavin-bhuva/vibesync/internal/pkg/auth"
	chat "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/domain"
	"github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/usecase"
	"github.com/bhavin-bhuva/vibesync/internal/pkg/chat/persistence/repository/adapter"
	repository "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/persistence/repository/port"
	"github.com/bhavin-bhuva/vibesync/internal/pkg/presence"
)

// ChatSocketController owns the websocket endpoint: it authenticates the
// handshake, flips the user's online flag, attaches the connection to the hub
// (which doubles as the user's personal room) and processes room commands
// until the transport closes.
type ChatSocketController struct {
	hub      *realtime.Hub
	verifier auth.Verifier
	users    repository.UserRepository
	tracker  *presence.Tracker
	joinUC   *usecase.JoinConversationUseCase
	logger   *slog.Logger

	inflightTimeout time.Duration
}

func NewChatSocketController(pool *pgxpool.Pool, hub *realtime.Hub, verifier auth.Verifier, tracker *presence.Tracker, logger *slog.Logger) *ChatSocketController {
	repo := adapter.NewPgChatRepository(pool)
	return &ChatSocketController{
		hub:             hub,
		verifier:        verifier,
		users:           adapter.NewPgUserRepository(pool),
		tracker:         tracker,
		joinUC:          usecase.NewJoinConversationUseCase(repo),
		logger:          logger,
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Browser origin policy is handled by the deployment proxy.
		return true
	},
}

// Client -> server commands.
const (
	frameJoinConversation  = "join_conversation"
	frameLeaveConversation = "leave_conversation"
)

type inboundFrame struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversationId,omitempty"`
}

type outboundFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

const defaultReadTimeout = 60 * time.Second

// Handle upgrades the connection and serves it until the client disconnects.
// Authentication failures reject the socket before it reaches the hub.
func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = bearerFromHeader(c.GetHeader("Authorization"))
		}
		identity, err := ctl.verifier.Verify(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHENTICATED", "message": "missing or invalid token"},
			})
			return
		}
		userID := identity.UserID

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; nothing more to do.
			return
		}

		ctl.setOnline(userID, true)

		conn := realtime.NewConnection(userID, ws)
		ctl.hub.Attach(conn)
		defer func() {
			ctl.hub.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
			ctl.setOnline(userID, false)
		}()

		ws.SetReadLimit(1 << 20) // 1MB payload cap
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			ctl.heartbeat(userID)
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		ctl.reply(conn, outboundFrame{Event: "connected"})

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
					errors.Is(err, websocket.ErrCloseSent) {
					return
				}
				ctl.replyError(conn, "read_error", err.Error())
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch frame.Type {
			case frameJoinConversation:
				ctl.handleJoin(c, conn, frame)
			case frameLeaveConversation:
				ctl.handleLeave(conn, frame)
			default:
				ctl.replyError(conn, "unsupported_type", "unknown frame type")
			}
		}
	}
}

// handleJoin subscribes the session to a conversation room after verifying
// the user actually belongs to that conversation.
func (ctl *ChatSocketController) handleJoin(c *gin.Context, conn *realtime.Connection, frame inboundFrame) {
	if frame.ConversationID == "" {
		ctl.replyError(conn, "bad_request", "conversationId is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	err := ctl.joinUC.Execute(ctx, usecase.JoinConversationInput{
		ConversationID: frame.ConversationID,
		UserID:         conn.UserID,
	})
	if errors.Is(err, chat.ErrNotParticipant) {
		ctl.replyError(conn, "forbidden", "not a participant of this conversation")
		return
	}
	if err != nil {
		ctl.replyError(conn, "internal_error", "could not join conversation")
		return
	}

	ctl.hub.Join(frame.ConversationID, conn)
	ctl.reply(conn, outboundFrame{Event: "joined_conversation", Data: gin.H{"conversationId": frame.ConversationID}})
}

func (ctl *ChatSocketController) handleLeave(conn *realtime.Connection, frame inboundFrame) {
	if frame.ConversationID == "" {
		ctl.replyError(conn, "bad_request", "conversationId is required")
		return
	}
	ctl.hub.Leave(frame.ConversationID, conn)
	ctl.reply(conn, outboundFrame{Event: "left_conversation", Data: gin.H{"conversationId": frame.ConversationID}})
}

// setOnline flips the persisted flag and the heartbeat, best-effort. A failed
// write is logged and never tears down the socket.
func (ctl *ChatSocketController) setOnline(userID string, online bool) {
	ctx, cancel := context.WithTimeout(context.Background(), ctl.inflightTimeout)
	defer cancel()

	if err := ctl.users.SetOnline(ctx, userID, online, time.Now().UTC()); err != nil {
		ctl.logger.Warn("online flag update failed", "user", userID, "online", online, "error", err)
	}
	if online {
		ctl.heartbeat(userID)
	} else if err := ctl.tracker.Forget(ctx, userID); err != nil {
		ctl.logger.Warn("presence forget failed", "user", userID, "error", err)
	}
}

func (ctl *ChatSocketController) heartbeat(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), ctl.inflightTimeout)
	defer cancel()
	if err := ctl.tracker.Touch(ctx, userID); err != nil {
		ctl.logger.Warn("presence heartbeat failed", "user", userID, "error", err)
	}
}

func (ctl *ChatSocketController) reply(conn *realtime.Connection, frame outboundFrame) {
	if payload, err := json.Marshal(frame); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *ChatSocketController) replyError(conn *realtime.Connection, code, msg string) {
	ctl.reply(conn, outboundFrame{Event: "error", Data: gin.H{"code": code, "message": msg}})
}

func bearerFromHeader(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
