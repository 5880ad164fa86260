package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bhavin-bhuva/vibesync/internal/infrastructure/realtime"
	"github.com/bhavin-bhuva/vibesync/internal/pkg/auth"
	"github.com/bhavin-bhuva/vibesync/internal/pkg/chat/application/usecase"
	"github.com/bhavin-bhuva/vibesync/internal/pkg/chat/presentation/controller"
	"github.com/bhavin-bhuva/vibesync/internal/pkg/presence"
)

// RegisterRoutes registers conversation and messaging endpoints under the
// given router group. It constructs per-endpoint controllers and binds them
// directly to routes. All routes assume the auth middleware already ran.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, hub *realtime.Hub, friends usecase.FriendChecker) {
	notifier := controller.NewHubNotifier(hub)

	listCtl := controller.NewListConversationsController(pool)
	createCtl := controller.NewCreateConversationController(pool, friends)
	getCtl := controller.NewGetConversationController(pool)
	markReadCtl := controller.NewMarkReadController(pool, notifier)
	sendMsgCtl := controller.NewSendMessageController(pool, notifier)
	getMsgCtl := controller.NewGetMessagesController(pool)

	// GET /api/v1/conversations -> list the caller's conversations
	g.GET("/conversations", listCtl.Handle())

	// POST /api/v1/conversations -> find or create a direct conversation
	g.POST("/conversations", createCtl.Handle())

	// GET /api/v1/conversations/:id -> fetch one conversation
	g.GET("/conversations/:id", getCtl.Handle())

	// PUT /api/v1/conversations/:id/read -> mark as read
	g.PUT("/conversations/:id/read", markReadCtl.Handle())

	// POST /api/v1/conversations/:id/messages -> send a message
	g.POST("/conversations/:id/messages", sendMsgCtl.Handle())

	// GET /api/v1/conversations/:id/messages -> fetch message page
	g.GET("/conversations/:id/messages", getMsgCtl.Handle())
}

// RegisterSocketRoute registers the realtime websocket endpoint. The socket
// authenticates itself from the handshake, so it sits outside the auth
// middleware group.
func RegisterSocketRoute(g *gin.RouterGroup, pool *pgxpool.Pool, hub *realtime.Hub, verifier auth.Verifier, tracker *presence.Tracker, logger *slog.Logger) {
	socketCtl := controller.NewChatSocketController(pool, hub, verifier, tracker, logger)

	// GET /api/v1/ws -> websocket endpoint for realtime events
	g.GET("/ws", socketCtl.Handle())
}
