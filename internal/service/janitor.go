package service

import (
	"context"
	"time"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/logger"
)

// RunJanitor calls Cleanup with the configured TTL every interval until ctx is done.
// A non-positive interval returns immediately.
func RunJanitor(ctx context.Context, svc DocumentService, interval time.Duration, log *logger.Logger) {
	if interval <= 0 {
		return
	}
	log = log.With("component", "janitor")
	log.Info("janitor_started", "interval_sec", int(interval.Seconds()))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("janitor_stopped")
			return
		case <-ticker.C:
			n, err := svc.Cleanup(ctx, 0)
			if err != nil {
				log.Error("janitor_run_failed", "deleted", n, "error", err.Error())
				continue
			}
			if n > 0 {
				log.Info("janitor_run", "deleted", n)
			}
		}
	}
}
