package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	RelayChannel   = "cityfix:realtime"
	publishTimeout = 2 * time.Second
)

// envelope is the cross-instance message. Channel is empty for global events.
type envelope struct {
	Channel string          `json:"channel,omitempty"`
	Event   string          `json:"event"`
	Data    json.RawMessage `json:"data"`
}

// RedisRelay publishes events to Redis so every instance, this one included, delivers them to its
// own hub's clients. Publishers only enqueue; the loop started by Start talks to Redis.
type RedisRelay struct {
	client  *redis.Client
	channel string
	local   *Hub
	queue   chan []byte
}

func NewRedisRelay(client *redis.Client, local *Hub) *RedisRelay {
	return &RedisRelay{
		client:  client,
		channel: RelayChannel,
		local:   local,
		queue:   make(chan []byte, outboundQueue),
	}
}

func (r *RedisRelay) Broadcast(event string, payload any) error {
	return r.publish("", event, payload)
}

func (r *RedisRelay) BroadcastTo(channel, event string, payload any) error {
	return r.publish(channel, event, payload)
}

func (r *RedisRelay) publish(channel, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", event, err)
	}
	msg, err := json.Marshal(envelope{Channel: channel, Event: event, Data: data})
	if err != nil {
		return err
	}

	select {
	case r.queue <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

func (r *RedisRelay) publishLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-r.queue:
			pctx, cancel := context.WithTimeout(ctx, publishTimeout)
			err := r.client.Publish(pctx, r.channel, msg).Err()
			cancel()
			if err != nil {
				log.Printf("[realtime] redis publish failed: %v", err)
			}
		}
	}
}

// Start subscribes, then publishes and relays in the background until ctx is cancelled. It returns
// once the subscription is confirmed.
func (r *RedisRelay) Start(ctx context.Context) error {
	pubsub := r.client.Subscribe(ctx, r.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}
	go r.publishLoop(ctx)

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				r.relay(msg.Payload)
			}
		}
	}()
	return nil
}

func (r *RedisRelay) relay(payload string) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		log.Printf("[realtime] error unmarshalling relayed message: %v", err)
		return
	}
	f, err := encodeFrame(env.Event, env.Data)
	if err != nil {
		log.Printf("[realtime] %v", err)
		return
	}
	if err := r.local.enqueue(delivery{channel: env.Channel, frame: f}); err != nil {
		log.Printf("[realtime] failed to relay %s locally: %v", env.Event, err)
	}
}
