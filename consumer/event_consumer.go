package consumer

import (
	"context"

	"github.com/rewardstack/staking-engine/internal/queue"
)

//go:generate mockery --name=EventConsumer --output=../tests/mocks --outpkg=mocks --filename=mock_event_consumer.go

// EventConsumer receives position lifecycle events after their unit of work
// committed.
type EventConsumer interface {
	Start() error
	PushPositionEvent(ctx context.Context, ev *queue.PositionEvent) error
	Stop() error
}

// NoopConsumer drops every event. It is used when no queue is configured.
type NoopConsumer struct{}

func (NoopConsumer) Start() error { return nil }

func (NoopConsumer) PushPositionEvent(context.Context, *queue.PositionEvent) error { return nil }

func (NoopConsumer) Stop() error { return nil }
