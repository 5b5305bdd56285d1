package drawing

import (
	"fmt"
	"sync"
	"time"
)

// ChangeKind says why a redraw is requested.
type ChangeKind int

const (
	ChangeForceRefresh ChangeKind = iota
	ChangeScroll
	ChangeHover
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeForceRefresh:
		return "force-refresh"
	case ChangeScroll:
		return "scroll"
	case ChangeHover:
		return "hover"
	}
	return fmt.Sprintf("change(%d)", int(k))
}

// ChangeSender says what produced the change.
type ChangeSender int

const (
	SenderProgrammatic ChangeSender = iota
	SenderDrag
	SenderHover
)

func (s ChangeSender) String() string {
	switch s {
	case SenderProgrammatic:
		return "programmatic"
	case SenderDrag:
		return "drag"
	case SenderHover:
		return "hover"
	}
	return fmt.Sprintf("sender(%d)", int(s))
}

// Event is a "please redraw now" notification.
type Event struct {
	Kind   ChangeKind
	Sender ChangeSender
	At     time.Time
}

// Feed is a notification stream that replays its latest value to new
// subscribers. Callbacks run synchronously on the emitting goroutine.
type Feed[T any] struct {
	mu     sync.Mutex
	subs   []feedSub[T]
	nextID int
	last   T
	has    bool
}

type feedSub[T any] struct {
	id int
	fn func(T)
}

// Subscribe registers fn and, if a value was emitted before, calls it with
// that value right away. The returned cancel func unsubscribes; calling it
// more than once is harmless.
func (f *Feed[T]) Subscribe(fn func(T)) (cancel func()) {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs = append(f.subs, feedSub[T]{id: id, fn: fn})
	last, has := f.last, f.has
	f.mu.Unlock()
	if has {
		fn(last)
	}
	return func() { f.unsubscribe(id) }
}

func (f *Feed[T]) unsubscribe(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.subs {
		if s.id == id {
			f.subs = append(f.subs[:i:i], f.subs[i+1:]...)
			return
		}
	}
}

// Emit stores v as the latest value and delivers it to every subscriber in
// subscription order.
func (f *Feed[T]) Emit(v T) {
	f.mu.Lock()
	f.last, f.has = v, true
	subs := append([]feedSub[T](nil), f.subs...)
	f.mu.Unlock()
	for _, s := range subs {
		s.fn(v)
	}
}

// Latest returns the last emitted value.
func (f *Feed[T]) Latest() (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last, f.has
}

// Len is the number of live subscriptions.
func (f *Feed[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
