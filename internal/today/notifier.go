package today

import "sync"

// Notifier fans out change notifications to registered callbacks. The
// broadcast is synchronous and fire-and-forget: callbacks carry no payload,
// receive no ordering guarantee relative to each other, and cannot cancel
// or acknowledge the notification.
type Notifier struct {
	mu        sync.RWMutex
	callbacks []func()
}

// NewNotifier creates an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// OnChange registers a callback invoked on every broadcast. Registration
// is append-only; callbacks live for the lifetime of the Notifier.
func (n *Notifier) OnChange(cb func()) {
	if cb == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.callbacks = append(n.callbacks, cb)
}

// Broadcast invokes every registered callback once, in registration order.
func (n *Notifier) Broadcast() {
	n.mu.RLock()
	cbs := make([]func(), len(n.callbacks))
	copy(cbs, n.callbacks)
	n.mu.RUnlock()

	for _, cb := range cbs {
		cb()
	}
}
