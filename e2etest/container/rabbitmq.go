package container

import (
	"fmt"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rewardstack/staking-engine/pkg"
	"github.com/rewardstack/staking-engine/testutil"
	"github.com/stretchr/testify/require"
)

const (
	rabbitRepository = "rabbitmq"
	rabbitUser       = "user"
	rabbitPassword   = "password"
)

// Broker is a running rabbitmq container.
type Broker struct {
	Host     string
	User     string
	Password string
}

// StartRabbitMQ runs a broker for the lifetime of the test.
func StartRabbitMQ(t *testing.T) *Broker {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       "rabbitmq-e2e-" + testutil.RandomSuffix(4),
		Repository: rabbitRepository,
		Tag:        pkg.Getenv("RABBITMQ_TEST_VERSION", "3.13-alpine"),
		Env: []string{
			"RABBITMQ_DEFAULT_USER=" + rabbitUser,
			"RABBITMQ_DEFAULT_PASS=" + rabbitPassword,
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("failed to purge rabbitmq container: %v", err)
		}
	})

	broker := &Broker{
		Host:     "localhost:" + resource.GetPort("5672/tcp"),
		User:     rabbitUser,
		Password: rabbitPassword,
	}

	err = pool.Retry(func() error {
		conn, err := amqp.Dial(broker.URL())
		if err != nil {
			return err
		}
		return conn.Close()
	})
	require.NoError(t, err, "rabbitmq did not become ready")

	return broker
}

func (b *Broker) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s/", b.User, b.Password, b.Host)
}
