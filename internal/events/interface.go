package events

// EventPublisher is what services depend on to announce committed changes.
type EventPublisher interface {
	// SendEvent hands an event to the publisher without blocking on subscribers
	SendEvent(event Event) error
}

// Compile-time verification that *Bus implements EventPublisher
var _ EventPublisher = (*Bus)(nil)
