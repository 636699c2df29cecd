package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind selects the styling of a toast.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Toast is one ephemeral message.
type Toast struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notifier keeps the currently visible toasts and dismisses each one after
// its TTL.
type Notifier struct {
	mu       sync.Mutex
	ttl      time.Duration
	toasts   []Toast
	changeCh chan struct{}
}

// New creates a Notifier whose toasts live for ttl.
func New(ttl time.Duration) *Notifier {
	return &Notifier{
		ttl:      ttl,
		toasts:   []Toast{},
		changeCh: make(chan struct{}, 1),
	}
}

// ChangeCh receives a value whenever the set of toasts changes.
func (n *Notifier) ChangeCh() <-chan struct{} { return n.changeCh }

func (n *Notifier) notifyChange() {
	select {
	case n.changeCh <- struct{}{}:
	default:
	}
}

// Show adds a toast and schedules its dismissal.
func (n *Notifier) Show(kind Kind, message string) Toast {
	t := Toast{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	n.mu.Lock()
	n.toasts = append(n.toasts, t)
	n.mu.Unlock()
	n.notifyChange()

	if kind == KindError {
		slog.Warn("Toast", "message", message, "component", "Notify")
	} else {
		slog.Debug("Toast", "kind", string(kind), "message", message, "component", "Notify")
	}

	time.AfterFunc(n.ttl, func() { n.Dismiss(t.ID) })
	return t
}

// Info shows an informational toast.
func (n *Notifier) Info(message string) Toast { return n.Show(KindInfo, message) }

// Success shows a success toast.
func (n *Notifier) Success(message string) Toast { return n.Show(KindSuccess, message) }

// Error shows an error toast.
func (n *Notifier) Error(message string) Toast { return n.Show(KindError, message) }

// Dismiss removes a toast. Unknown IDs are ignored.
func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	removed := false
	for i, t := range n.toasts {
		if t.ID == id {
			n.toasts = append(n.toasts[:i:i], n.toasts[i+1:]...)
			removed = true
			break
		}
	}
	n.mu.Unlock()
	if removed {
		n.notifyChange()
	}
}

// Active returns a copy of the visible toasts, oldest first.
func (n *Notifier) Active() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Toast, len(n.toasts))
	copy(out, n.toasts)
	return out
}
