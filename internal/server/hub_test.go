package server

import (
	"testing"
	"time"
)

func runTestHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub()
	go h.Run()
	return h
}

func waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func TestSendAfterClientDropped(t *testing.T) {
	h := runTestHub(t)
	defer h.Stop()

	c := newClient(h, nil, func(*Client, Envelope) {})
	h.register <- c
	waitFor(t, func() bool { return h.ClientCount() == 1 }, "registration")

	h.unregister <- c
	waitFor(t, c.isClosed, "unregister to close the client")

	// A connect-then-drop leaves the handshake about to push the roster
	// to a client the hub already dropped; the event must be discarded,
	// not panic on the closed channel.
	c.Send(EventAgentsUpdate, nil)

	if c.trySend([]byte("late")) {
		t.Error("trySend accepted data for a dropped client")
	}
}

func TestStopDropsAllClients(t *testing.T) {
	h := runTestHub(t)

	c1 := newClient(h, nil, func(*Client, Envelope) {})
	c2 := newClient(h, nil, func(*Client, Envelope) {})
	h.register <- c1
	h.register <- c2
	waitFor(t, func() bool { return h.ClientCount() == 2 }, "registrations")

	h.Stop()
	waitFor(t, func() bool { return c1.isClosed() && c2.isClosed() }, "shutdown to close clients")

	// Late sends during shutdown are discarded.
	c1.Send(EventNewMessage, nil)
	c2.Send(EventNewMessage, nil)
}

func TestUnregisterTwice(t *testing.T) {
	h := runTestHub(t)
	defer h.Stop()

	c := newClient(h, nil, func(*Client, Envelope) {})
	h.register <- c
	waitFor(t, func() bool { return h.ClientCount() == 1 }, "registration")

	h.unregister <- c
	h.unregister <- c
	waitFor(t, c.isClosed, "unregister to close the client")

	if h.ClientCount() != 0 {
		t.Errorf("clients = %d, want 0", h.ClientCount())
	}
}
