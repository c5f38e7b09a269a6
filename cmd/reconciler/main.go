package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"maaziride/internal/config"
	"maaziride/internal/logging"
	"maaziride/internal/mirror"
	"maaziride/internal/queue"
)

// The reconciler drains mirror-sync tasks queued when an in-request mirror
// update failed, and re-applies the authoritative role/verified pair to
// the external identity provider. Failed tasks stay on the queue.
func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer logger.Sync()

	mq, err := queue.Dial(cfg.AMQPURL)
	if err != nil {
		logger.Fatal("rabbitmq connect", zap.Error(err))
	}
	defer mq.Close()

	mirrorClient := mirror.NewClient(cfg.MirrorBaseURL, cfg.MirrorAPIKey)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("reconciler started")
	err = mq.ConsumeMirrorSync(ctx, func(ctx context.Context, task queue.MirrorSyncTask) error {
		md := mirror.Metadata{Role: task.Role, Verified: task.Verified}
		if err := mirrorClient.SetMetadata(ctx, task.PrincipalID, md); err != nil {
			logger.Warn("mirror reconciliation failed, will retry",
				zap.String("principal_id", task.PrincipalID),
				zap.Error(err),
			)
			return err
		}
		logger.Info("mirror reconciled", zap.String("principal_id", task.PrincipalID))
		return nil
	})
	if err != nil && err != context.Canceled {
		logger.Fatal("consume", zap.Error(err))
	}
}
