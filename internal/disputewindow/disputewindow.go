// Package disputewindow schedules the timeout that lets a channel be
// closed via channel.FinishPartial when a counterparty stops responding.
// All "timeout" semantics live here, outside the core (per the core's
// purely sequential, no-I/O contract) — this package is the host-side
// clock that eventually calls into it.
package disputewindow

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Window tracks the single outstanding deadline for a channel awaiting its
// counterparty's next action. Only one deadline is ever armed at a time:
// arming a new one cancels whatever was pending.
type Window struct {
	clock    quartz.Clock
	logger   *log.Logger
	timeout  time.Duration
	onExpiry func()

	mu    sync.Mutex
	timer *quartz.Timer
}

// New builds a Window. clock is the injected time collaborator —
// production callers pass quartz.NewReal(), tests pass quartz.NewMock(t)
// and advance it explicitly.
func New(clock quartz.Clock, logger *log.Logger, timeout time.Duration) *Window {
	return &Window{
		clock:   clock,
		logger:  logger.WithPrefix("disputewindow"),
		timeout: timeout,
	}
}

// Arm (re)starts the deadline: if the counterparty does not call Reset
// before timeout elapses, onExpiry runs exactly once, on its own
// goroutine, via the underlying clock.
func (w *Window) Arm(onExpiry func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.onExpiry = onExpiry
	w.timer = w.clock.AfterFunc(w.timeout, func() {
		w.logger.Warn("dispute window expired, forcing partial resolution")
		onExpiry()
	})
}

// Reset cancels the pending deadline, called whenever a valid next action
// arrives from the counterparty in time.
func (w *Window) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Stop disarms the window, e.g. once a hand has reached a natural
// conclusion and no further dispute is possible. It behaves exactly like
// Reset: a later Arm starts a new deadline.
func (w *Window) Stop() {
	w.Reset()
}
