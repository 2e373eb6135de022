package broadcast

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/cardtable/holdem-go/internal/model"
)

const (
	// subscriberBufferSize bounds each subscriber's event buffer; a
	// subscriber that falls further behind than this skips ahead
	subscriberBufferSize = 128
)

var (
	// ErrSlowSubscriber is returned by Recv when events were dropped
	// because the subscriber fell behind; the next Recv resumes normally
	ErrSlowSubscriber = errors.New("broadcast: subscriber lagged, events dropped")

	// ErrClosed is returned by Recv once the broadcaster has shut down
	ErrClosed = errors.New("broadcast: closed")
)

// Broadcaster multicasts server events to every subscriber.
//
// Publishing never blocks: each subscriber has its own bounded buffer, and
// when a buffer is full the event is counted as dropped for that subscriber
// alone. Delivery of every historical event is not guaranteed, only the
// latest state trending forward.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[*Subscription]struct{}
	closed      bool
	logger      *slog.Logger
}

// New creates a Broadcaster
func New(logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[*Subscription]struct{}),
		logger:      logger.With(slog.String("component", "broadcast")),
	}
}

// Subscribe registers a new subscriber and returns its subscription.
// Subscribing after Close returns an already-closed subscription.
func (b *Broadcaster) Subscribe() *Subscription {
	sub := &Subscription{
		ch:          make(chan model.ServerEvent, subscriberBufferSize),
		broadcaster: b,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(sub.ch)
		return sub
	}
	b.subscribers[sub] = struct{}{}
	return sub
}

// Publish fans the event out to every subscriber without blocking.
// Subscribers with full buffers have the event counted against them and
// will observe ErrSlowSubscriber on their next receive.
func (b *Broadcaster) Publish(event model.ServerEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}

	dropped := 0
	for sub := range b.subscribers {
		select {
		case sub.ch <- event:
		default:
			sub.mu.Lock()
			sub.dropped++
			sub.mu.Unlock()
			dropped++
		}
	}

	if dropped > 0 {
		b.logger.Warn("event dropped for slow subscribers",
			slog.String("event_type", string(event.Type)),
			slog.Int("dropped", dropped))
	}
}

// Close shuts down the broadcaster; all subscribers observe ErrClosed once
// they drain their buffers
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subscribers {
		close(sub.ch)
		delete(b.subscribers, sub)
	}
	b.logger.Info("broadcaster closed")
}

// SubscriberCount returns the number of live subscriptions
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

func (b *Broadcaster) unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subscribers[sub]; ok {
		delete(b.subscribers, sub)
		close(sub.ch)
	}
}

// Subscription is one subscriber's view of the broadcast stream
type Subscription struct {
	ch          chan model.ServerEvent
	broadcaster *Broadcaster

	mu      sync.Mutex
	dropped uint64
}

// Events exposes the subscription's buffered event channel for use in
// select loops. After a receive, callers should check Lagged to learn
// whether events were skipped before the one received.
func (s *Subscription) Events() <-chan model.ServerEvent {
	return s.ch
}

// Lagged returns the number of events dropped since the last call and
// resets the counter
func (s *Subscription) Lagged() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.dropped
	s.dropped = 0
	return n
}

// Recv blocks for the next event. It returns ErrSlowSubscriber (with no
// event consumed) if events were dropped since the previous call, and
// ErrClosed once the broadcaster shuts down.
func (s *Subscription) Recv() (model.ServerEvent, error) {
	if n := s.Lagged(); n > 0 {
		return model.ServerEvent{}, ErrSlowSubscriber
	}
	event, ok := <-s.ch
	if !ok {
		return model.ServerEvent{}, ErrClosed
	}
	return event, nil
}

// Unsubscribe removes the subscription from the broadcaster
func (s *Subscription) Unsubscribe() {
	s.broadcaster.unsubscribe(s)
}
