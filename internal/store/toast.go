package store

import (
	"time"

	"github.com/google/uuid"
)

// ToastKind classifies a toast for display.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
	ToastWarning ToastKind = "warning"
)

// Toast is one transient notification.
type Toast struct {
	ID       string
	Message  string
	Kind     ToastKind
	Duration time.Duration
}

// Toasts is the notification queue: one writer (the UI flow that completed
// an operation), many readers.
type Toasts struct {
	queue *Value[[]Toast]
}

// NewToasts builds an empty queue.
func NewToasts() *Toasts {
	return &Toasts{queue: NewValue([]Toast{})}
}

// Show enqueues a toast and returns its id.
func (t *Toasts) Show(message string, kind ToastKind, duration time.Duration) string {
	toast := Toast{ID: uuid.NewString(), Message: message, Kind: kind, Duration: duration}
	t.queue.Set(append(t.queue.Get(), toast))
	return toast.ID
}

// Success enqueues a success toast with the default duration.
func (t *Toasts) Success(message string) string {
	return t.Show(message, ToastSuccess, 4*time.Second)
}

// Error enqueues an error toast; errors linger a little longer.
func (t *Toasts) Error(message string) string {
	return t.Show(message, ToastError, 5*time.Second)
}

// Info enqueues an info toast.
func (t *Toasts) Info(message string) string {
	return t.Show(message, ToastInfo, 4*time.Second)
}

// Warning enqueues a warning toast.
func (t *Toasts) Warning(message string) string {
	return t.Show(message, ToastWarning, 4500*time.Millisecond)
}

// Dismiss removes a toast by id; unknown ids are ignored.
func (t *Toasts) Dismiss(id string) {
	current := t.queue.Get()
	next := make([]Toast, 0, len(current))
	for _, toast := range current {
		if toast.ID != id {
			next = append(next, toast)
		}
	}
	t.queue.Set(next)
}

// Active returns a snapshot of the queue.
func (t *Toasts) Active() []Toast { return t.queue.Get() }

// Subscribe registers for queue changes.
func (t *Toasts) Subscribe(fn func([]Toast)) func() {
	return t.queue.Subscribe(fn)
}
