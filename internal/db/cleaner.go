package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartStaleCartCleaner periodically removes cart lines untouched for
// longer than retention.
func StartStaleCartCleaner(
	ctx context.Context,
	conn *sql.DB,
	interval time.Duration,
	retention time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-retention)
				res, err := conn.ExecContext(ctx, `
                    DELETE FROM cart_items
                     WHERE updated_at < $1
                `, cutoff)
				if err != nil {
					log.Error("failed to clean stale cart lines", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("cleaned stale cart lines", zap.Int64("removed", rows))
				}
			}
		}
	}()
}
