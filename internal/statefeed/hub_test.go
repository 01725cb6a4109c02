package statefeed

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(hub *Hub, buf int) *Client {
	return &Client{
		hub:        hub,
		send:       make(chan []byte, buf),
		remoteAddr: "test",
		logger:     testLogger(),
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestHubBroadcastReachesClients(t *testing.T) {
	hub := NewHub(testLogger(), HubConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	a := newTestClient(hub, 4)
	b := newTestClient(hub, 4)
	hub.register <- a
	hub.register <- b
	waitFor(t, func() bool { return hub.ClientCount() == 2 })

	hub.BroadcastBytes([]byte(`{"type":"playback_changed"}`))

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.send:
			if string(msg) != `{"type":"playback_changed"}` {
				t.Fatalf("message = %s", msg)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("client did not receive broadcast")
		}
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub(testLogger(), HubConfig{SendBuf: 1})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	slow := newTestClient(hub, 1)
	hub.register <- slow
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	// First fill the buffer, then overflow it.
	hub.BroadcastBytes([]byte(`1`))
	hub.BroadcastBytes([]byte(`2`))

	waitFor(t, func() bool { return hub.ClientCount() == 0 })
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub(testLogger(), HubConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	c := newTestClient(hub, 4)
	hub.register <- c
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.unregister <- c
	waitFor(t, func() bool { return hub.ClientCount() == 0 })

	// Send channel must be closed so writePump exits.
	select {
	case _, ok := <-c.send:
		if ok {
			t.Fatal("expected closed send channel")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}
}

func TestHubShutdownDisconnectsAll(t *testing.T) {
	hub := NewHub(testLogger(), HubConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	c := newTestClient(hub, 4)
	hub.register <- c
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	cancel()
	waitFor(t, func() bool { return hub.ClientCount() == 0 })
}
