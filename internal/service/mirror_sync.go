package service

import (
	"context"

	"go.uber.org/zap"

	"maaziride/internal/mirror"
	"maaziride/internal/model"
	"maaziride/internal/queue"
)

// syncMirror pushes the authoritative role/verified pair to the external
// identity mirror. A failure is never fatal: the identity record already
// holds the truth, so the failure is logged as a warning and a
// reconciliation task is enqueued for out-of-band retry. Returns whether
// the mirror is in sync.
func syncMirror(ctx context.Context, log *zap.Logger, store mirror.Store, tasks queue.Publisher, user *model.User) bool {
	md := mirror.Metadata{Role: string(user.Role), Verified: user.IsVerified}
	if err := store.SetMetadata(ctx, user.ID.String(), md); err != nil {
		log.Warn("mirror sync failed",
			zap.String("principal_id", user.ID.String()),
			zap.String("role", string(user.Role)),
			zap.Bool("verified", user.IsVerified),
			zap.Error(err),
		)
		if tasks != nil {
			task := queue.MirrorSyncTask{
				PrincipalID: user.ID.String(),
				Role:        string(user.Role),
				Verified:    user.IsVerified,
			}
			if err := tasks.PublishMirrorSync(ctx, task); err != nil {
				log.Warn("enqueue mirror reconciliation failed",
					zap.String("principal_id", user.ID.String()),
					zap.Error(err),
				)
			}
		}
		return false
	}
	return true
}
