package service

import (
	"context"

	mq "github.com/helioworks/artvault/internal/infra/queue"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// publishEvent pushes a catalog event onto the pipeline queue. Events are
// best effort; a broken broker never fails the originating write.
func publishEvent(ctx context.Context, conn *amqp.Connection, queue string, log *zap.Logger, event string, payload map[string]any) {
	if conn == nil {
		return
	}
	p, err := mq.NewPublisher(conn, queue, log)
	if err != nil {
		log.Sugar().Warnw("create event publisher", "event", event, "err", err)
		return
	}
	defer p.Close()
	payload["event"] = event
	if err := p.PublishJSON(ctx, payload); err != nil {
		log.Sugar().Warnw("publish event", "event", event, "err", err)
	}
}
