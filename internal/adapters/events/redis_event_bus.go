package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/providers"
	redisclient "github.com/zatekoja/tourism-directory/backend/internal/infrastructure/clients/redis"
)

// listenerBacklog is how many events a slow listener may fall behind before
// further events are dropped for it
const listenerBacklog = 100

// ErrBusClosed is returned by Subscribe once Close has been called
var ErrBusClosed = errors.New("event bus is closed")

type listener chan *entities.DirectoryEvent

// topic is one redis channel shared by every local listener of it
type topic struct {
	name      string
	pubsub    *redis.PubSub
	listeners map[listener]struct{}
}

// RedisEventBus fans directory events out over Redis Pub/Sub. Each process
// holds at most one redis subscription per channel, however many listeners.
type RedisEventBus struct {
	client *redisclient.Client

	mu     sync.Mutex
	topics map[string]*topic
	closed bool
}

// NewRedisEventBus creates a new Redis-based event bus
func NewRedisEventBus(client *redisclient.Client) providers.EventBus {
	return &RedisEventBus{
		client: client,
		topics: make(map[string]*topic),
	}
}

// Publish sends a directory event to every subscriber of channel, in any process
func (b *RedisEventBus) Publish(ctx context.Context, channel string, event *entities.DirectoryEvent) error {
	if event == nil || !event.Resource.Valid() {
		return fmt.Errorf("refusing to publish malformed directory event on %s", channel)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal directory event: %w", err)
	}
	if err := b.client.Client().Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish directory event: %w", err)
	}

	log.Debug().
		Str("channel", channel).
		Str("event_id", event.ID).
		Str("resource", string(event.Resource)).
		Msg("Published directory event")
	return nil
}

// Subscribe returns a stream of events on channel. The stream is closed when
// ctx ends, on Unsubscribe, or on Close.
func (b *RedisEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.DirectoryEvent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBusClosed
	}

	t, ok := b.topics[channel]
	if !ok {
		pubsub := b.client.Client().Subscribe(context.Background(), channel)
		// Wait for the confirmation so events published right after Subscribe are not missed
		if _, err := pubsub.Receive(ctx); err != nil {
			_ = pubsub.Close()
			return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
		}
		t = &topic{name: channel, pubsub: pubsub, listeners: make(map[listener]struct{})}
		b.topics[channel] = t
		go b.relay(t)
	}

	l := make(listener, listenerBacklog)
	t.listeners[l] = struct{}{}
	log.Info().Str("channel", channel).Int("listeners", len(t.listeners)).Msg("Subscribed to directory events")

	go func() {
		<-ctx.Done()
		b.detach(t, l)
	}()

	return l, nil
}

// relay decodes redis messages for one topic and hands them to its listeners
func (b *RedisEventBus) relay(t *topic) {
	defer b.retire(t)

	for msg := range t.pubsub.Channel() {
		var event entities.DirectoryEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil || !event.Resource.Valid() {
			log.Warn().Err(err).Str("channel", t.name).Msg("Dropping malformed directory event")
			continue
		}
		b.deliver(t, &event)
	}
}

func (b *RedisEventBus) deliver(t *topic, event *entities.DirectoryEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for l := range t.listeners {
		select {
		case l <- event:
		default:
			log.Warn().Str("channel", t.name).Str("event_id", event.ID).Msg("Listener backlog full, dropping directory event")
		}
	}
}

// detach removes one listener and releases the redis subscription with the last one
func (b *RedisEventBus) detach(t *topic, l listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := t.listeners[l]; !ok {
		return
	}
	delete(t.listeners, l)
	close(l)

	if len(t.listeners) == 0 && b.topics[t.name] == t {
		delete(b.topics, t.name)
		_ = t.pubsub.Close()
		log.Info().Str("channel", t.name).Msg("Released directory event subscription")
	}
}

// retire closes whatever listeners remain once a topic's redis stream ends
func (b *RedisEventBus) retire(t *topic) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.topics[t.name] == t {
		delete(b.topics, t.name)
	}
	closeListeners(t)
}

// takeTopics removes and returns topics under the lock, closing their listeners
func (b *RedisEventBus) takeTopics(names ...string) []*topic {
	b.mu.Lock()
	defer b.mu.Unlock()

	var taken []*topic
	for _, name := range names {
		if t, ok := b.topics[name]; ok {
			delete(b.topics, name)
			closeListeners(t)
			taken = append(taken, t)
		}
	}
	return taken
}

func closeListeners(t *topic) {
	for l := range t.listeners {
		delete(t.listeners, l)
		close(l)
	}
}

func closeTopics(topics []*topic) error {
	var errs []error
	for _, t := range topics {
		if err := t.pubsub.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close subscription %s: %w", t.name, err))
		}
	}
	return errors.Join(errs...)
}

// Unsubscribe ends every local stream on channel
func (b *RedisEventBus) Unsubscribe(ctx context.Context, channel string) error {
	if err := closeTopics(b.takeTopics(channel)); err != nil {
		return err
	}
	log.Info().Str("channel", channel).Msg("Unsubscribed from directory events")
	return nil
}

// Close ends every stream; later Subscribe calls fail with ErrBusClosed
func (b *RedisEventBus) Close() error {
	b.mu.Lock()
	b.closed = true
	names := make([]string, 0, len(b.topics))
	for name := range b.topics {
		names = append(names, name)
	}
	b.mu.Unlock()

	if err := closeTopics(b.takeTopics(names...)); err != nil {
		return fmt.Errorf("errors closing event bus: %w", err)
	}
	log.Info().Msg("Event bus closed")
	return nil
}
