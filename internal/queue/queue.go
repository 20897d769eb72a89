package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rewardstack/staking-engine/internal/config"
	"github.com/rewardstack/staking-engine/internal/observability/metrics"
	"github.com/rewardstack/staking-engine/internal/observability/tracing"
	"github.com/rewardstack/staking-engine/internal/types"
	"github.com/rs/zerolog/log"
)

const exchangeKind = "topic"

// RewardHandler processes one reward event. Errors that are retryable put the
// message back on the queue, other errors drop it.
type RewardHandler func(ctx context.Context, event *RewardEarnedEvent) error

type QueueManager struct {
	cfg  *config.QueueConfig
	conn *amqp.Connection
	// amqp channels are not safe for concurrent publishing
	publishMu sync.Mutex
	publishCh *amqp.Channel
	consumeCh *amqp.Channel
	wg        sync.WaitGroup
}

func NewQueueManager(cfg *config.QueueConfig) (*QueueManager, error) {
	conn, err := amqp.Dial(cfg.AmqpURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to queue: %w", err)
	}

	qm := &QueueManager{cfg: cfg, conn: conn}
	if err := qm.setup(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return qm, nil
}

func (qm *QueueManager) setup() error {
	var err error
	qm.publishCh, err = qm.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open publish channel: %w", err)
	}
	if err := qm.publishCh.ExchangeDeclare(qm.cfg.EventExchange, exchangeKind, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", qm.cfg.EventExchange, err)
	}

	qm.consumeCh, err = qm.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open consume channel: %w", err)
	}
	if _, err := qm.consumeCh.QueueDeclare(qm.cfg.RewardQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", qm.cfg.RewardQueue, err)
	}

	return qm.consumeCh.Qos(qm.cfg.PrefetchCount, 0, false)
}

// Start exists to satisfy the event consumer contract, channels are opened
// by NewQueueManager.
func (qm *QueueManager) Start() error {
	if qm.conn.IsClosed() {
		return fmt.Errorf("queue connection is closed")
	}
	return nil
}

func (qm *QueueManager) PushPositionEvent(ctx context.Context, ev *PositionEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal position event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, qm.cfg.QueueProcessingTimeout)
	defer cancel()

	qm.publishMu.Lock()
	defer qm.publishMu.Unlock()

	err = qm.publishCh.PublishWithContext(ctx, qm.cfg.EventExchange, ev.EventType.RoutingKey(), false, false, amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		MessageId:     ev.RequestID,
		CorrelationId: tracing.TraceID(ctx),
		Timestamp:     ev.OccurredAt,
		Body:          body,
	})
	if err != nil {
		metrics.RecordQueuePublishError()
		return fmt.Errorf("failed to publish %s event: %w", ev.EventType, err)
	}

	return nil
}

// StartRewardConsumer consumes reward events until ctx is cancelled. It
// returns once the consumer is registered.
func (qm *QueueManager) StartRewardConsumer(ctx context.Context, handler RewardHandler) error {
	deliveries, err := qm.consumeCh.ConsumeWithContext(ctx, qm.cfg.RewardQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume %s: %w", qm.cfg.RewardQueue, err)
	}

	qm.wg.Add(1)
	go func() {
		defer qm.wg.Done()
		for delivery := range deliveries {
			qm.handleDelivery(ctx, delivery, handler)
		}
		log.Info().Str("queue", qm.cfg.RewardQueue).Msg("Reward consumer stopped")
	}()

	return nil
}

func (qm *QueueManager) handleDelivery(ctx context.Context, delivery amqp.Delivery, handler RewardHandler) {
	startTime := time.Now()
	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	err := processDelivery(ctx, delivery.Body, qm.cfg.QueueProcessingTimeout, handler)
	metrics.RecordQueueProcessingDuration(time.Since(startTime), qm.cfg.RewardQueue, err != nil)

	if err == nil {
		if ackErr := delivery.Ack(false); ackErr != nil {
			log.Error().Err(ackErr).Msg("failed to ack reward event")
		}
		return
	}

	requeue := isRetryable(err) && !delivery.Redelivered
	log.Error().Err(err).Bool("requeue", requeue).Msg("failed to process reward event")
	if nackErr := delivery.Nack(false, requeue); nackErr != nil {
		log.Error().Err(nackErr).Msg("failed to nack reward event")
	}
}

func processDelivery(ctx context.Context, body []byte, timeout time.Duration, handler RewardHandler) error {
	var event RewardEarnedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return types.NewValidationError("malformed reward event: %v", err)
	}
	if err := event.Validate(); err != nil {
		return types.NewValidationError("invalid reward event: %v", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return handler(ctx, &event)
}

// isRetryable treats untyped failures as infrastructure errors worth one
// more delivery.
func isRetryable(err error) bool {
	typed := types.AsError(err)
	if typed == nil {
		return true
	}
	return typed.Retryable() || typed.ErrorCode == types.InternalServiceError
}

func (qm *QueueManager) Ping(ctx context.Context) error {
	if qm.conn.IsClosed() {
		return fmt.Errorf("queue connection is closed")
	}
	return nil
}

// Stop gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (qm *QueueManager) Stop() error {
	log.Info().Msg("Shutting down queue manager")

	if qm.consumeCh != nil {
		_ = qm.consumeCh.Close()
	}
	qm.wg.Wait()
	if qm.publishCh != nil {
		_ = qm.publishCh.Close()
	}
	return qm.conn.Close()
}
