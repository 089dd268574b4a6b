package disputewindow

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestArmFiresAfterTimeout(t *testing.T) {
	mockClock := quartz.NewMock(t)
	w := New(mockClock, discardLogger(), 30*time.Second)

	var fired atomic.Bool
	w.Arm(func() { fired.Store(true) })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	mockClock.Advance(30 * time.Second).MustWait(ctx)

	if !fired.Load() {
		t.Error("onExpiry did not fire after the window elapsed")
	}
}

func TestResetCancelsPendingExpiry(t *testing.T) {
	mockClock := quartz.NewMock(t)
	w := New(mockClock, discardLogger(), 30*time.Second)

	var fired atomic.Bool
	w.Arm(func() { fired.Store(true) })
	w.Reset()

	// Advancing past the original deadline must not fire the cancelled timer.
	mockClock.Advance(time.Minute)
	time.Sleep(10 * time.Millisecond)

	if fired.Load() {
		t.Error("onExpiry fired despite Reset being called before the deadline")
	}
}

func TestArmReplacesPriorDeadline(t *testing.T) {
	mockClock := quartz.NewMock(t)
	w := New(mockClock, discardLogger(), 30*time.Second)

	var firstFired, secondFired atomic.Bool
	w.Arm(func() { firstFired.Store(true) })
	w.Arm(func() { secondFired.Store(true) })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	mockClock.Advance(30 * time.Second).MustWait(ctx)

	if firstFired.Load() {
		t.Error("the superseded callback fired")
	}
	if !secondFired.Load() {
		t.Error("the replacement callback did not fire")
	}
}
