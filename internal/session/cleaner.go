package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StartCleaner removes expired sessions with interval until ctx is done.
func (m *Manager) StartCleaner(ctx context.Context, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := m.purge(time.Now()); removed > 0 {
					log.Info("cleaned expired sessions", zap.Int("removed", removed))
				}
			}
		}
	}()
}
