// Package realtime fans events out to websocket clients, optionally across instances via Redis.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"cityfix-be/metrics"
)

var (
	ErrQueueFull = errors.New("realtime: outbound queue full")
	ErrStopped   = errors.New("realtime: hub stopped")
)

const (
	outboundQueue = 1024
	sendBuffer    = 256
)

// IssueChannel is the channel clients join to follow one issue.
func IssueChannel(issueID string) string {
	return "issue_" + issueID
}

// frame is what clients receive.
type frame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

func encodeFrame(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(frame{Event: event, Data: payload})
	if err != nil {
		return nil, fmt.Errorf("encode %s frame: %w", event, err)
	}
	return data, nil
}

// delivery targets every client when channel is empty.
type delivery struct {
	channel string
	frame   []byte
}

type membership struct {
	client  *Client
	channel string
	join    bool
}

// Hub owns the connected clients and their channel membership. All of that state belongs to the
// Run goroutine; everything else talks to it over channels.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	membership chan membership
	outbound   chan delivery
	inspect    chan func()
	done       chan struct{}
	metrics    *metrics.Metrics

	clients  map[*Client]map[string]struct{}
	channels map[string]map[*Client]struct{}
}

func NewHub(m *metrics.Metrics) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		membership: make(chan membership, sendBuffer),
		outbound:   make(chan delivery, outboundQueue),
		inspect:    make(chan func()),
		done:       make(chan struct{}),
		metrics:    m,
		clients:    make(map[*Client]map[string]struct{}),
		channels:   make(map[string]map[*Client]struct{}),
	}
}

// Run processes hub traffic until ctx is cancelled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for c := range h.clients {
			h.remove(c)
		}
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = make(map[string]struct{})
			h.metrics.ClientConnected()
			log.Printf("[realtime] client connected: %s", c.ID)
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.remove(c)
				log.Printf("[realtime] client disconnected: %s", c.ID)
			}
		case m := <-h.membership:
			h.applyMembership(m)
		case d := <-h.outbound:
			h.deliver(d)
		case fn := <-h.inspect:
			fn()
		}
	}
}

func (h *Hub) applyMembership(m membership) {
	joined, ok := h.clients[m.client]
	if !ok {
		return
	}
	if m.join {
		joined[m.channel] = struct{}{}
		members := h.channels[m.channel]
		if members == nil {
			members = make(map[*Client]struct{})
			h.channels[m.channel] = members
		}
		members[m.client] = struct{}{}
		return
	}
	delete(joined, m.channel)
	h.leave(m.client, m.channel)
}

func (h *Hub) leave(c *Client, channel string) {
	members := h.channels[channel]
	delete(members, c)
	if len(members) == 0 {
		delete(h.channels, channel)
	}
}

// remove drops a client from every channel and closes its send buffer, which ends its write pump.
func (h *Hub) remove(c *Client) {
	for channel := range h.clients[c] {
		h.leave(c, channel)
	}
	delete(h.clients, c)
	close(c.send)
	h.metrics.ClientDisconnected()
}

func (h *Hub) deliver(d delivery) {
	if d.channel == "" {
		for c := range h.clients {
			h.send(c, d.frame)
		}
		return
	}
	for c := range h.channels[d.channel] {
		h.send(c, d.frame)
	}
}

// send never blocks: a client that cannot keep up is dropped.
func (h *Hub) send(c *Client, f []byte) {
	select {
	case c.send <- f:
	default:
		log.Printf("[realtime] dropping slow client %s", c.ID)
		h.remove(c)
	}
}

func (h *Hub) enqueue(d delivery) error {
	select {
	case <-h.done:
		return ErrStopped
	default:
	}
	select {
	case h.outbound <- d:
		return nil
	default:
		return ErrQueueFull
	}
}

// Broadcast queues an event for every connected client.
func (h *Hub) Broadcast(event string, payload any) error {
	f, err := encodeFrame(event, payload)
	if err != nil {
		return err
	}
	return h.enqueue(delivery{frame: f})
}

// BroadcastTo queues an event for the members of one channel.
func (h *Hub) BroadcastTo(channel, event string, payload any) error {
	f, err := encodeFrame(event, payload)
	if err != nil {
		return err
	}
	return h.enqueue(delivery{channel: channel, frame: f})
}

func (h *Hub) join(c *Client, channel string) {
	h.changeMembership(membership{client: c, channel: channel, join: true})
}

func (h *Hub) leaveChannel(c *Client, channel string) {
	h.changeMembership(membership{client: c, channel: channel})
}

func (h *Hub) changeMembership(m membership) {
	select {
	case h.membership <- m:
	case <-h.done:
	}
}

// query runs fn on the hub goroutine and waits for it. It reports false once the hub has stopped.
func (h *Hub) query(fn func()) bool {
	finished := make(chan struct{})
	select {
	case h.inspect <- func() { fn(); close(finished) }:
		<-finished
		return true
	case <-h.done:
		return false
	}
}

// ClientCount is the number of connected clients.
func (h *Hub) ClientCount() int {
	n := 0
	h.query(func() { n = len(h.clients) })
	return n
}

// ChannelSize is the number of clients that joined channel.
func (h *Hub) ChannelSize(channel string) int {
	n := 0
	h.query(func() { n = len(h.channels[channel]) })
	return n
}
