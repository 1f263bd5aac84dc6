package events

import (
	"log/slog"
	"sync"
	"time"
)

// Kind names a mutation.
type Kind string

const (
	UserCreated       Kind = "user.created"
	UserUpdated       Kind = "user.updated"
	CourseCreated     Kind = "course.created"
	CourseEnrolled    Kind = "course.enrolled"
	ExamCreated       Kind = "exam.created"
	SubmissionCreated Kind = "submission.created"
	SessionCreated    Kind = "session.created"
	SessionJoined     Kind = "session.joined"
	MessageCreated    Kind = "message.created"
)

// Event is published after a mutation has been applied. IDs lists the
// affected entity ids, primary entity first (course.enrolled carries
// courseID, studentID).
type Event struct {
	Kind Kind      `json:"kind"`
	IDs  []string  `json:"ids"`
	At   time.Time `json:"at"`
}

type Handler func(Event)

// Bus fans events out to subscribers synchronously, in subscription order.
type Bus struct {
	mu     sync.RWMutex
	next   int
	subs   map[int]Handler
	order  []int
	logger *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{subs: map[int]Handler{}, logger: logger}
}

// Subscribe registers h and returns a func that removes it again.
func (b *Bus) Subscribe(h Handler) (cancel func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = h
	b.order = append(b.order, id)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			for i, v := range b.order {
				if v == id {
					b.order = append(b.order[:i], b.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		handlers = append(handlers, b.subs[id])
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		b.deliver(h, e)
	}
}

func (b *Bus) deliver(h Handler, e Event) {
	defer func() {
		if p := recover(); p != nil {
			b.logger.Error("event handler panicked", "kind", e.Kind, "panic", p)
		}
	}()
	h(e)
}
