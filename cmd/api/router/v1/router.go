package v1

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bhavin-bhuva/vibesync/internal/infrastructure/realtime"
	"github.com/bhavin-bhuva/vibesync/internal/pkg/auth"
	"github.com/bhavin-bhuva/vibesync/internal/pkg/chat/persistence/repository/adapter"
	chathttp "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/presentation/http"
	"github.com/bhavin-bhuva/vibesync/internal/pkg/presence"
	"github.com/bhavin-bhuva/vibesync/internal/pkg/social"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1.
func RegisterRoutes(r *gin.Engine, pool *pgxpool.Pool, hub *realtime.Hub, tokens *auth.TokenProvider, tracker *presence.Tracker, logger *slog.Logger) {
	users := adapter.NewPgUserRepository(pool)

	authService := auth.NewService(users, tokens)
	authCtl := auth.NewController(authService, users)

	socialService := social.NewService(social.NewPgFriendRepository(pool), users)
	socialCtl := social.NewController(socialService)

	v1 := r.Group("/api/v1")

	// Account endpoints are reachable without a token.
	v1.POST("/auth/register", authCtl.Register())
	v1.POST("/auth/login", authCtl.Login())

	// The websocket authenticates its own handshake, so it stays outside the
	// middleware group.
	chathttp.RegisterSocketRoute(v1, pool, hub, tokens, tracker, logger)

	authed := v1.Group("", auth.RequireAuth(tokens))

	authed.POST("/auth/refresh", authCtl.Refresh())

	authed.GET("/users/me", authCtl.Me())
	authed.PUT("/users/me", authCtl.UpdateMe())

	authed.GET("/friends", socialCtl.ListFriends())
	authed.DELETE("/friends/:id", socialCtl.RemoveFriend())
	authed.GET("/friends/requests", socialCtl.ListRequests())
	authed.POST("/friends/requests", socialCtl.SendRequest())
	authed.POST("/friends/requests/:id/accept", socialCtl.Accept())
	authed.POST("/friends/requests/:id/decline", socialCtl.Decline())

	chathttp.RegisterRoutes(authed, pool, hub, socialService)
}
