package gateway_nats

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocab/gocab/internal/pkg/constants"
	"github.com/gocab/gocab/internal/pkg/models"
	natspkg "github.com/gocab/gocab/internal/pkg/nats"
)

var testNatsURL = "nats://127.0.0.1:8369"

func TestMain(m *testing.M) {
	opts := natsserver.DefaultTestOptions
	opts.Port = 8369
	testNatsServer := natsserver.RunServer(&opts)
	code := m.Run()
	testNatsServer.Shutdown()
	os.Exit(code)
}

func subscribeOnce(t *testing.T, subject string) (*natspkg.Client, chan *nats.Msg) {
	t.Helper()
	client, err := natspkg.NewClient(testNatsURL)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	received := make(chan *nats.Msg, 1)
	_, err = client.Subscribe(subject, func(msg *nats.Msg) {
		received <- msg
	})
	require.NoError(t, err)
	return client, received
}

func TestPublishLocationUpdate(t *testing.T) {
	client, received := subscribeOnce(t, constants.SubjectLocationUpdate)
	gw := NewNATSGateway(client)

	update := &models.LocationUpdate{
		CaptainID: "captain-1",
		Latitude:  28.7000,
		Longitude: 77.1000,
		Timestamp: time.Now().UTC(),
	}
	require.NoError(t, gw.PublishLocationUpdate(context.Background(), update))

	select {
	case msg := <-received:
		var got models.LocationUpdate
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, "captain-1", got.CaptainID)
		assert.Equal(t, 28.7000, got.Latitude)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for location update")
	}
}

func TestPublishAvailability_SubjectPerDirection(t *testing.T) {
	client, availableCh := subscribeOnce(t, constants.SubjectCaptainAvailable)
	_, unavailableCh := subscribeOnce(t, constants.SubjectCaptainUnavailable)
	gw := NewNATSGateway(client)

	require.NoError(t, gw.PublishAvailability(context.Background(), &models.AvailabilityUpdate{
		CaptainID: "captain-1",
		Available: true,
	}))
	require.NoError(t, gw.PublishAvailability(context.Background(), &models.AvailabilityUpdate{
		CaptainID: "captain-1",
		Available: false,
	}))

	select {
	case msg := <-availableCh:
		var got models.AvailabilityUpdate
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.True(t, got.Available)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for available event")
	}

	select {
	case msg := <-unavailableCh:
		var got models.AvailabilityUpdate
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.False(t, got.Available)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for unavailable event")
	}
}
