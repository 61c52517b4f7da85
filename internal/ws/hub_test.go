package ws

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBroadcastSkipsClosedClient(t *testing.T) {
	h := NewHub()
	c := &Client{Send: make(chan []byte, 1)}
	h.Register(c)
	c.Close()

	// a broadcast that snapshotted the client before it closed must not
	// panic on the closed channel
	assert.NotPanics(t, func() {
		c.deliver([]byte(`{"kind":"update"}`))
	})
	assert.Zero(t, h.ClientCount())
}

func TestBroadcastDuringConcurrentClose(t *testing.T) {
	h := NewHub()
	clients := make([]*Client, 50)
	for i := range clients {
		clients[i] = &Client{Send: make(chan []byte, 4)}
		h.Register(clients[i])
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			h.BroadcastAll(map[string]int{"seq": i})
		}
	}()
	go func() {
		defer wg.Done()
		for _, c := range clients {
			c.Close()
		}
	}()
	wg.Wait()
	assert.Zero(t, h.ClientCount())
}

func TestBroadcastDropsWhenBufferFull(t *testing.T) {
	h := NewHub()
	c := &Client{Send: make(chan []byte, 1)}
	h.Register(c)

	h.BroadcastAll("first")
	h.BroadcastAll("second") // dropped, buffer full
	assert.Len(t, c.Send, 1)
}
