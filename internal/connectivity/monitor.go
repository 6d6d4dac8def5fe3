package connectivity

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/adonay-express/orderflow/internal/domain/model"
)

// ErrUnavailable marks probe failures caused by the store being unreachable.
// Probes wrap it so the monitor can tell connectivity loss apart from other
// subscription errors, which are logged and otherwise ignored.
var ErrUnavailable = errors.New("store unavailable")

// ProbeEvent is one observation from the sentinel subscription. Err set means
// the subscription reported an error; otherwise FromCache tells whether the
// snapshot was served locally or confirmed by the server.
type ProbeEvent struct {
	FromCache bool
	Err       error
}

// Probe watches a sentinel key at the remote store and reports whether reads
// against it are confirmed by the server.
type Probe interface {
	Watch(ctx context.Context, sentinel string) (<-chan ProbeEvent, error)
}

// Monitor merges the local network signal with sentinel probe observations
// into a single tri-state connectivity signal. Observers are notified on
// edges only: setting the current state again is a no-op.
type Monitor struct {
	probe  Probe
	logger *slog.Logger

	mu        sync.Mutex
	state     model.ConnectivityState
	observers map[int]func(model.ConnectivityState)
	nextID    int
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewMonitor constructs a monitor in the online state.
func NewMonitor(probe Probe, logger *slog.Logger) *Monitor {
	return &Monitor{
		probe:     probe,
		logger:    logger,
		state:     model.ConnectivityOnline,
		observers: make(map[int]func(model.ConnectivityState)),
	}
}

// State returns the last known connectivity state.
func (m *Monitor) State() model.ConnectivityState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// OnChange registers an observer. The observer is invoked immediately with
// the current state and afterwards on every state change. The returned
// function unregisters it.
func (m *Monitor) OnChange(fn func(model.ConnectivityState)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.observers[id] = fn
	current := m.state
	m.mu.Unlock()

	fn(current)

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.observers, id)
	}
}

// NativeOffline records that the local network stack went down. This is the
// highest-priority signal: the state becomes offline unconditionally.
func (m *Monitor) NativeOffline() {
	m.set(model.ConnectivityOffline)
}

// NativeOnline records that the local network stack recovered. The sentinel
// subscription has not confirmed the store yet, so the state is only
// reconnecting until a server-confirmed snapshot arrives.
func (m *Monitor) NativeOnline() {
	m.set(model.ConnectivityReconnecting)
}

// StartMonitoring begins watching the sentinel key. Any previously active
// watch is cancelled first; one sentinel subscription is active at a time.
func (m *Monitor) StartMonitoring(ctx context.Context, sentinel string) error {
	m.StopMonitoring()

	watchCtx, cancel := context.WithCancel(ctx)
	events, err := m.probe.Watch(watchCtx, sentinel)
	if err != nil {
		cancel()
		return err
	}

	m.mu.Lock()
	m.cancel = cancel
	m.mu.Unlock()

	m.wg.Add(1)
	go m.consume(events)
	return nil
}

// StopMonitoring cancels the active sentinel watch. The last known state is
// left in place; it is not reset to online.
func (m *Monitor) StopMonitoring() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

func (m *Monitor) consume(events <-chan ProbeEvent) {
	defer m.wg.Done()
	for ev := range events {
		m.handle(ev)
	}
}

func (m *Monitor) handle(ev ProbeEvent) {
	if ev.Err != nil {
		if errors.Is(ev.Err, ErrUnavailable) {
			m.set(model.ConnectivityOffline)
			return
		}
		// Transient or permission errors must not be mistaken for
		// connectivity loss.
		m.logger.Error("sentinel watch error", slog.String("error", ev.Err.Error()))
		return
	}

	if ev.FromCache {
		// A cached snapshot means we are trying to reconnect, but a native
		// offline signal wins.
		m.mu.Lock()
		offline := m.state == model.ConnectivityOffline
		m.mu.Unlock()
		if !offline {
			m.set(model.ConnectivityReconnecting)
		}
		return
	}

	m.set(model.ConnectivityOnline)
}

func (m *Monitor) set(state model.ConnectivityState) {
	m.mu.Lock()
	if m.state == state {
		m.mu.Unlock()
		return
	}
	m.state = state
	observers := make([]func(model.ConnectivityState), 0, len(m.observers))
	for _, fn := range m.observers {
		observers = append(observers, fn)
	}
	m.mu.Unlock()

	for _, fn := range observers {
		fn(state)
	}
}
