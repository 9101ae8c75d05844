package dispatch

import "sync"

const DefaultCapacity = 100

// Buffer is a bounded FIFO owned by a single consumer. When full, pushing
// evicts the oldest entry, so the producer never blocks on a slow reader.
type Buffer[T any] struct {
	mu    sync.Mutex
	items []T
	cap   int
}

func newBuffer[T any](capacity int) *Buffer[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer[T]{
		items: make([]T, 0, capacity),
		cap:   capacity,
	}
}

func (b *Buffer[T]) push(v T) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	dropped := false
	if len(b.items) >= b.cap {
		copy(b.items, b.items[1:])
		b.items = b.items[:len(b.items)-1]
		dropped = true
	}
	b.items = append(b.items, v)

	return dropped
}

// Poll removes and returns the oldest buffered value, reporting false when
// the buffer is empty.
func (b *Buffer[T]) Poll() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var zero T
	if len(b.items) == 0 {
		return zero, false
	}

	v := b.items[0]
	b.items[0] = zero
	b.items = b.items[1:]

	return v, true
}

func (b *Buffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.items)
}

// Dispatcher copies every dispatched value into each registered buffer.
// With no registered buffers the value is silently discarded.
type Dispatcher[T any] struct {
	mu      sync.Mutex
	buffers []*Buffer[T]
	cap     int
}

func NewDispatcher[T any](capacity int) *Dispatcher[T] {
	return &Dispatcher[T]{cap: capacity}
}

func (d *Dispatcher[T]) Register() *Buffer[T] {
	b := newBuffer[T](d.cap)

	d.mu.Lock()
	d.buffers = append(d.buffers, b)
	d.mu.Unlock()

	return b
}

func (d *Dispatcher[T]) Unregister(b *Buffer[T]) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, cur := range d.buffers {
		if cur == b {
			d.buffers = append(d.buffers[:i], d.buffers[i+1:]...)
			return
		}
	}
}

// Dispatch fans v out to all registered buffers and returns how many
// buffers had to evict their oldest entry to take it.
func (d *Dispatcher[T]) Dispatch(v T) int {
	d.mu.Lock()
	buffers := make([]*Buffer[T], len(d.buffers))
	copy(buffers, d.buffers)
	d.mu.Unlock()

	dropped := 0
	for _, b := range buffers {
		if b.push(v) {
			dropped++
		}
	}

	return dropped
}

func (d *Dispatcher[T]) Readers() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.buffers)
}
