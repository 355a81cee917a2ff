package session

import "sync"

// Feed is a buffered, one-way channel from the session owner to a consumer.
// Send never blocks: when the buffer is full the oldest value is dropped, so
// a slow consumer sees the most recent values and never stalls the owner.
type Feed[T any] struct {
	ch       chan T
	done     chan struct{}
	doneOnce sync.Once
}

// NewFeed creates a feed buffering up to size values.
func NewFeed[T any](size int) *Feed[T] {
	if size < 1 {
		size = 16
	}
	return &Feed[T]{
		ch:   make(chan T, size),
		done: make(chan struct{}),
	}
}

// Send delivers v, dropping the oldest buffered value if needed.
func (f *Feed[T]) Send(v T) {
	select {
	case <-f.done:
		return
	default:
	}

	select {
	case f.ch <- v:
	default:
		select {
		case <-f.ch:
		default:
		}
		select {
		case f.ch <- v:
		default:
		}
	}
}

// C returns the channel to receive from.
func (f *Feed[T]) C() <-chan T {
	return f.ch
}

// Done returns a channel closed by Close.
func (f *Feed[T]) Done() <-chan struct{} {
	return f.done
}

// Close stops delivery. Safe to call multiple times.
func (f *Feed[T]) Close() {
	f.doneOnce.Do(func() {
		close(f.done)
	})
}
