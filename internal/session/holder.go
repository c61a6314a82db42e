// Package session keeps the process-wide view of who is signed in.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/goddivor/Orinu-hub/internal/domain"
)

// Observer receives every state the holder moves to, in order.
// Observers run synchronously and must not trigger a sign-in or sign-out themselves.
type Observer func(state domain.SessionState)

// Holder tracks the current session from provider notifications.
// It is created once at startup and passed to whatever needs it.
type Holder struct {
	source domain.SessionSource
	logger *slog.Logger

	mu          sync.RWMutex
	state       domain.SessionState
	started     bool
	unsubscribe func()
	observers   map[uint64]Observer
	nextID      uint64

	// notifyMu serializes state changes with their delivery to observers.
	notifyMu  sync.Mutex
	ready     chan struct{}
	readyOnce sync.Once
	closeOnce sync.Once
}

// NewHolder creates an uninitialized holder. Call Start to begin tracking.
func NewHolder(source domain.SessionSource, logger *slog.Logger) *Holder {
	return &Holder{
		source:    source,
		logger:    logger.With("component", "session_holder"),
		state:     domain.SessionState{Status: domain.SessionUninitialized},
		observers: make(map[uint64]Observer),
		ready:     make(chan struct{}),
	}
}

// Start enters the loading state and subscribes to provider session changes.
// Only the first call subscribes.
func (h *Holder) Start(ctx context.Context) error {
	h.mu.Lock()
	if h.started {
		h.mu.Unlock()
		return domain.ErrAlreadyStarted
	}
	h.started = true
	h.mu.Unlock()

	h.apply(domain.SessionState{Status: domain.SessionLoading})

	unsubscribe := h.source.SubscribeSession(h.onProviderChange)

	h.mu.Lock()
	h.unsubscribe = unsubscribe
	h.mu.Unlock()

	h.logger.DebugContext(ctx, "session subscription started")
	return nil
}

// Current returns a snapshot of the session state.
func (h *Holder) Current() domain.SessionState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Subscribe registers an observer and returns the function that removes it.
func (h *Holder) Subscribe(observer Observer) (unsubscribe func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.observers[id] = observer
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.observers, id)
			h.mu.Unlock()
		})
	}
}

// WaitReady blocks until the first provider notification has been applied.
func (h *Holder) WaitReady(ctx context.Context) (domain.SessionState, error) {
	select {
	case <-h.ready:
		return h.Current(), nil
	case <-ctx.Done():
		return h.Current(), ctx.Err()
	}
}

// Logout signs out through the provider. The resulting notification moves
// the holder to the anonymous state.
func (h *Holder) Logout(ctx context.Context) error {
	h.mu.RLock()
	started := h.started
	h.mu.RUnlock()
	if !started {
		return domain.ErrNotStarted
	}

	if err := h.source.SignOut(ctx); err != nil {
		h.logger.ErrorContext(ctx, "logout failed", "error", err)
		return domain.TranslateProviderError(err, domain.MsgLogoutFailed)
	}
	return nil
}

// Close releases the provider subscription. It is safe to call more than once.
func (h *Holder) Close() {
	h.closeOnce.Do(func() {
		h.mu.Lock()
		unsubscribe := h.unsubscribe
		h.unsubscribe = nil
		h.mu.Unlock()

		if unsubscribe != nil {
			unsubscribe()
		}
	})
}

func (h *Holder) onProviderChange(identity *domain.Identity) {
	h.apply(domain.StateFor(identity))
	h.readyOnce.Do(func() { close(h.ready) })
}

func (h *Holder) apply(state domain.SessionState) {
	h.notifyMu.Lock()
	defer h.notifyMu.Unlock()

	h.mu.Lock()
	h.state = state
	observers := make([]Observer, 0, len(h.observers))
	for _, o := range h.observers {
		observers = append(observers, o)
	}
	h.mu.Unlock()

	h.logger.Debug("session state changed", "status", state.Status.String())

	for _, o := range observers {
		o(state)
	}
}
