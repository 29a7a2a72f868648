package notify

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"storefront/internal/core"
	applog "storefront/internal/log"
)

const (
	defaultHubBuffer = 16
	writeTimeout     = 5 * time.Second
)

// Hub streams notifications to websocket subscribers grouped by topic
// (one topic per browser session). Publishing never blocks: a subscriber
// whose buffer is full misses the notification.
type Hub struct {
	mu      sync.RWMutex
	topics  map[string]map[*subscriber]struct{}
	bufSize int
	closed  bool
	logger  *applog.Logger
}

type subscriber struct {
	ch chan core.Notification
}

// NewHub creates a hub with per-subscriber buffers of bufSize.
func NewHub(bufSize int, logger *applog.Logger) *Hub {
	if bufSize < 1 {
		bufSize = defaultHubBuffer
	}
	if logger == nil {
		logger = applog.Discard()
	}
	return &Hub{
		topics:  make(map[string]map[*subscriber]struct{}),
		bufSize: bufSize,
		logger:  logger.WithComponent(applog.ComponentNotify),
	}
}

// Subscribe registers a buffered channel on topic. The returned cancel
// function unregisters it and closes the channel.
func (h *Hub) Subscribe(topic string) (<-chan core.Notification, func()) {
	sub := &subscriber{ch: make(chan core.Notification, h.bufSize)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(sub.ch)
		return sub.ch, func() {}
	}
	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[*subscriber]struct{})
		h.topics[topic] = subs
	}
	subs[sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if subs, ok := h.topics[topic]; ok {
				if _, ok := subs[sub]; ok {
					delete(subs, sub)
					close(sub.ch)
				}
				if len(subs) == 0 {
					delete(h.topics, topic)
				}
			}
		})
	}
}

// Publish sends n to every subscriber of topic without waiting.
func (h *Hub) Publish(topic string, n core.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.topics[topic] {
		select {
		case sub.ch <- n:
		default:
			h.logger.Warn("Subscriber buffer full, dropping notification",
				applog.FieldSessionID, topic,
				applog.FieldNotifyKind, string(n.Kind))
		}
	}
}

// Subscribers returns how many subscribers topic has.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Topic returns a Notifier that publishes to topic.
func (h *Hub) Topic(topic string) Notifier {
	return Func(func(_ context.Context, n core.Notification) {
		h.Publish(topic, n)
	})
}

// Close disconnects every subscriber. Later subscriptions receive a closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for topic, subs := range h.topics {
		for sub := range subs {
			close(sub.ch)
		}
		delete(h.topics, topic)
	}
}

// Stream upgrades the request to a websocket and forwards topic's
// notifications as JSON until the client leaves, ctx ends or the hub closes.
func (h *Hub) Stream(w http.ResponseWriter, r *http.Request, topic string) error {
	ch, cancel := h.Subscribe(topic)
	defer cancel()

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return err
	}
	defer conn.CloseNow()

	// Client messages are ignored; CloseRead cancels ctx when the peer goes away.
	ctx := conn.CloseRead(r.Context())

	for {
		select {
		case n, ok := <-ch:
			if !ok {
				return conn.Close(websocket.StatusGoingAway, "server shutting down")
			}
			if err := writeNotification(ctx, conn, n); err != nil {
				if errors.Is(err, context.Canceled) || websocket.CloseStatus(err) != -1 {
					return nil
				}
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func writeNotification(ctx context.Context, conn *websocket.Conn, n core.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, n)
}
