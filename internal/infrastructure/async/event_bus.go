package async

import (
	"context"

	"go.uber.org/zap"

	"activityservice/internal/domain"
)

// AuditBus records domain events off the request path. Provisioning
// mutations publish here; events land in the structured log.
type AuditBus struct {
	pool *WorkerPool
	log  *zap.Logger
}

var _ domain.EventBus = (*AuditBus)(nil)

func NewAuditBus(ctx context.Context, poolSize int, log *zap.Logger) *AuditBus {
	return &AuditBus{
		pool: NewWorkerPool(ctx, poolSize, log),
		log:  log,
	}
}

func (b *AuditBus) Publish(ctx context.Context, e domain.Event) {
	b.pool.Submit(func(_ context.Context) {
		b.log.Info("audit_event",
			zap.String("type", e.Type),
			zap.Any("payload", e.Payload),
		)
	})
}

func (b *AuditBus) Close() {
	b.pool.Shutdown()
}
