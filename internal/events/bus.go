package events

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrBusClosed is returned by SendEvent after Close
var ErrBusClosed = errors.New("event bus is closed")

// AllBoards subscribes to events from every board
const AllBoards = 0

const subscriberBuffer = 32

type subscriber struct {
	boardID int
	ch      chan Event
}

// Bus fans events out to in-process subscribers. Delivery never blocks the
// publisher: a subscriber whose buffer is full misses the event and the drop
// is counted.
type Bus struct {
	mu      sync.RWMutex
	subs    map[int]*subscriber
	nextID  int
	seq     int64
	closed  bool
	metrics *Metrics
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		subs:    make(map[int]*subscriber),
		metrics: NewMetrics(),
	}
}

// Subscribe returns a channel receiving events for boardID (AllBoards for
// every board) and a function that cancels the subscription.
func (b *Bus) Subscribe(boardID int) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = &subscriber{boardID: boardID, ch: ch}
	b.metrics.SetSubscribers(int32(len(b.subs)))

	var once sync.Once
	return ch, func() {
		once.Do(func() { b.unsubscribe(id) })
	}
}

func (b *Bus) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub, ok := b.subs[id]
	if !ok {
		return
	}
	delete(b.subs, id)
	close(sub.ch)
	b.metrics.SetSubscribers(int32(len(b.subs)))
}

// SendEvent stamps the event with a sequence id and delivers it to every
// matching subscriber.
func (b *Bus) SendEvent(event Event) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBusClosed
	}
	b.seq++
	event.SequenceID = b.seq
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	b.mu.Unlock()

	b.metrics.IncPublished()

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		if sub.boardID != AllBoards && sub.boardID != event.BoardID {
			continue
		}
		select {
		case sub.ch <- event:
			b.metrics.IncDelivered()
		default:
			b.metrics.IncDropped()
			slog.Warn("dropping event for slow subscriber",
				"event_type", event.Type,
				"board_id", event.BoardID,
				"sequence_id", event.SequenceID)
		}
	}
	return nil
}

// Close closes every subscription channel. Further sends fail with ErrBusClosed.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for id, sub := range b.subs {
		close(sub.ch)
		delete(b.subs, id)
	}
	b.metrics.SetSubscribers(0)
	return nil
}

// Metrics returns the bus counters
func (b *Bus) Metrics() *Metrics {
	return b.metrics
}
