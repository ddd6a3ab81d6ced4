package session

import "sync"

// Sink receives events from a Loop. It lets the loop publish without
// depending on a transport.
type Sink interface {
	// Send delivers an event. Must not block.
	Send(evt Event)

	// Done closes when the receiving side goes away.
	Done() <-chan struct{}
}

// ChannelSink is a Sink backed by a buffered channel.
type ChannelSink struct {
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelSink creates a sink holding up to bufferSize undelivered events.
func NewChannelSink(bufferSize int) *ChannelSink {
	if bufferSize < 1 {
		bufferSize = 64
	}
	return &ChannelSink{
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// Send queues an event. When the buffer is full the oldest event is dropped.
func (s *ChannelSink) Send(evt Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- evt:
		default:
		}
	}
}

// Events returns the channel to read events from.
func (s *ChannelSink) Events() <-chan Event {
	return s.events
}

// Done returns the done channel.
func (s *ChannelSink) Done() <-chan struct{} {
	return s.done
}

// Close marks the sink as gone. Safe to call multiple times.
func (s *ChannelSink) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}
