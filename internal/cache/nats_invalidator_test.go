package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNATSInvalidator(t *testing.T) {
	url := os.Getenv("TEST_NATS_URL")
	if url == "" {
		t.Skip("TEST_NATS_URL не задан, пропускаем тест NATS")
	}

	subject := "test.invalidation." + time.Now().Format("150405.000000")
	a, err := NewNATSInvalidator(&InvalidatorConfig{NATSURL: url, Subject: subject}, "")
	require.NoError(t, err)
	defer a.Close()
	b, err := NewNATSInvalidator(&InvalidatorConfig{NATSURL: url, Subject: subject}, "")
	require.NoError(t, err)
	defer b.Close()
	require.NotEqual(t, a.NodeID(), b.NodeID())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan string, 4)
	own := make(chan string, 4)
	require.NoError(t, b.SubscribeInvalidations(ctx, func(key string) error {
		received <- key
		return nil
	}))
	require.NoError(t, a.SubscribeInvalidations(ctx, func(key string) error {
		own <- key
		return nil
	}))

	require.NoError(t, a.PublishInvalidation(ctx, "prefab:house"))

	select {
	case key := <-received:
		assert.Equal(t, "prefab:house", key)
	case <-time.After(5 * time.Second):
		t.Fatal("Уведомление не доставлено другому узлу")
	}

	select {
	case key := <-own:
		t.Fatalf("Узел получил собственное уведомление: %s", key)
	case <-time.After(200 * time.Millisecond):
	}
}
