package e2etest

import (
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rewardstack/staking-engine/e2etest/container"
	"github.com/rewardstack/staking-engine/internal/clients/ledger"
	"github.com/rewardstack/staking-engine/internal/config"
	"github.com/rewardstack/staking-engine/internal/db/memdb"
	"github.com/rewardstack/staking-engine/internal/queue"
	"github.com/rewardstack/staking-engine/internal/services"
	"github.com/stretchr/testify/require"
)

var (
	eventuallyWaitTimeOut = 30 * time.Second
	eventuallyPollTime    = 250 * time.Millisecond
)

type TestManager struct {
	Config       *config.Config
	Store        *memdb.Store
	Service      *services.Service
	QueueManager *queue.QueueManager
	// raw connection used to publish rewards and observe position events
	conn   *amqp.Connection
	events <-chan amqp.Delivery
}

// StartManager runs a broker, wires the service to it and subscribes to
// every position event.
func StartManager(t *testing.T) *TestManager {
	t.Helper()

	broker := container.StartRabbitMQ(t)
	cfg := defaultConfig(broker)

	qm, err := queue.NewQueueManager(cfg.Queue)
	require.NoError(t, err)
	require.NoError(t, qm.Start())

	store := memdb.New()
	svc := services.NewService(cfg, store, ledger.NewStoreLedger(store), qm)

	conn, err := amqp.Dial(broker.URL())
	require.NoError(t, err)
	ch, err := conn.Channel()
	require.NoError(t, err)
	observer, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(observer.Name, "position.*", cfg.Queue.EventExchange, false, nil))
	events, err := ch.Consume(observer.Name, "", true, true, false, false, nil)
	require.NoError(t, err)

	ctx := t.Context()
	require.NoError(t, qm.StartRewardConsumer(ctx, svc.HandleRewardEvent))

	tm := &TestManager{
		Config:       cfg,
		Store:        store,
		Service:      svc,
		QueueManager: qm,
		conn:         conn,
		events:       events,
	}
	t.Cleanup(tm.Stop)

	return tm
}

func defaultConfig(broker *container.Broker) *config.Config {
	return &config.Config{
		Db: config.DbConfig{Type: config.DbTypeMemory},
		Queue: &config.QueueConfig{
			Url:                    broker.Host,
			QueueUser:              broker.User,
			QueuePassword:          broker.Password,
			RewardQueue:            "reward-earned",
			EventExchange:          "staking-events",
			QueueProcessingTimeout: 5 * time.Second,
			PrefetchCount:          1,
		},
		Poller: config.PollerConfig{
			AccrualChunkSize:   10,
			AccrualConcurrency: 2,
		},
		Staking: config.DefaultStakingConfig(),
	}
}

// PublishReward sends a reward straight to the reward queue.
func (tm *TestManager) PublishReward(t *testing.T, event *queue.RewardEarnedEvent) {
	t.Helper()

	body, err := json.Marshal(event)
	require.NoError(t, err)

	ch, err := tm.conn.Channel()
	require.NoError(t, err)
	defer ch.Close()

	err = ch.PublishWithContext(t.Context(), "", tm.Config.Queue.RewardQueue, false, false, amqp.Publishing{
		ContentType: "application/json",
		MessageId:   event.RequestID,
		Body:        body,
	})
	require.NoError(t, err)
}

// NextPositionEvent waits for the next published position event.
func (tm *TestManager) NextPositionEvent(t *testing.T) (string, *queue.PositionEvent) {
	t.Helper()

	select {
	case delivery := <-tm.events:
		var event queue.PositionEvent
		require.NoError(t, json.Unmarshal(delivery.Body, &event))
		return delivery.RoutingKey, &event
	case <-time.After(eventuallyWaitTimeOut):
		t.Fatal("no position event received")
		return "", nil
	}
}

func (tm *TestManager) Stop() {
	_ = tm.conn.Close()
	_ = tm.QueueManager.Stop()
}
