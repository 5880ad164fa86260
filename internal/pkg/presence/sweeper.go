package presence

import (
	"context"
	"log/slog"
	"time"

	qport "github.com/bhavin-bhuva/vibesync/internal/infrastructure/queue/port"
	repository "github.com/bhavin-bhuva/vibesync/internal/pkg/chat/persistence/repository/port"
)

// SweepTaskType is the queue task name for presence reconciliation.
const SweepTaskType = "presence:sweep"

// RegisterSweepTask binds the sweep handler: every user flagged online in the
// store but without a live heartbeat is marked offline with last_seen stamped.
// Covers sockets that vanished without the disconnect write running.
func RegisterSweepTask(srv qport.Server, tracker *Tracker, users repository.UserRepository, logger *slog.Logger) {
	srv.Register(SweepTaskType, func(ctx context.Context, _ qport.Task) error {
		ids, err := users.ListOnlineIDs(ctx)
		if err != nil {
			return err
		}

		swept := 0
		for _, id := range ids {
			alive, err := tracker.Alive(ctx, id)
			if err != nil {
				logger.Warn("presence check failed", "user", id, "error", err)
				continue
			}
			if alive {
				continue
			}
			if err := users.SetOnline(ctx, id, false, time.Now().UTC()); err != nil {
				logger.Warn("mark offline failed", "user", id, "error", err)
				continue
			}
			swept++
		}
		if swept > 0 {
			logger.Info("presence sweep", "checked", len(ids), "marked_offline", swept)
		}
		return nil
	})
}

// StartSweepLoop enqueues a sweep task every interval until the context is
// canceled. UniqueTTL keeps overlapping API replicas from piling up tasks.
func StartSweepLoop(ctx context.Context, client qport.Client, interval time.Duration, logger *slog.Logger) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_, err := client.Enqueue(ctx,
					qport.Task{Type: SweepTaskType},
					qport.EnqueueOption{Queue: "presence", MaxRetry: 1, UniqueTTL: interval},
				)
				if err != nil {
					logger.Warn("enqueue presence sweep failed", "error", err)
				}
			}
		}
	}()
}
