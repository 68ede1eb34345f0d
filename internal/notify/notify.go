// ABOUTME: Notification bus carrying beeps and transient messages to the host
// ABOUTME: Commands publish; the interactive and script modes subscribe

package notify

import (
	"fmt"
	"sync"
)

// Kind classifies a notice.
type Kind int

const (
	// Message is informational text for the echo area.
	Message Kind = iota
	// Beep signals a command that had nothing to do.
	Beep
	// Error reports a failed command.
	Error
)

func (k Kind) String() string {
	switch k {
	case Beep:
		return "beep"
	case Error:
		return "error"
	default:
		return "message"
	}
}

// Notice is one notification.
type Notice struct {
	Kind Kind
	Text string
}

// Handler receives notices.
type Handler func(Notice)

type subscription struct {
	id      int
	handler Handler
}

// Bus delivers notices to subscribers in subscription order.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	nextID int
}

// New creates a bus with no subscribers.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers a handler and returns an unsubscribe function.
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscription{id: id, handler: h})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish sends n to every handler. Handlers run synchronously outside
// the lock so they may publish or unsubscribe.
func (b *Bus) Publish(n Notice) {
	b.mu.RLock()
	snapshot := make([]Handler, len(b.subs))
	for i, s := range b.subs {
		snapshot[i] = s.handler
	}
	b.mu.RUnlock()

	for _, h := range snapshot {
		h(n)
	}
}

// Messagef publishes a formatted Message.
func (b *Bus) Messagef(format string, args ...any) {
	b.Publish(Notice{Kind: Message, Text: fmt.Sprintf(format, args...)})
}

// Beep publishes a Beep with an optional explanation.
func (b *Bus) Beep(text string) {
	b.Publish(Notice{Kind: Beep, Text: text})
}

// Errorf publishes a formatted Error.
func (b *Bus) Errorf(format string, args ...any) {
	b.Publish(Notice{Kind: Error, Text: fmt.Sprintf(format, args...)})
}

// Count returns the number of subscribers.
func (b *Bus) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Recorder collects notices; handy for batch output and tests.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

// Handle appends n. Pass it to Subscribe.
func (r *Recorder) Handle(n Notice) {
	r.mu.Lock()
	r.notices = append(r.notices, n)
	r.mu.Unlock()
}

// Notices returns a copy of everything recorded.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Last returns the most recent notice.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

// Reset discards recorded notices.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.notices = nil
	r.mu.Unlock()
}
