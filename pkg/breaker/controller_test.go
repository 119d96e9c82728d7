package breaker

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/borgmon/break-reminder/pkg/models"
	"github.com/borgmon/break-reminder/pkg/store"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventLoop serializes dispatched work the way the Fyne main loop does
type eventLoop struct {
	mu sync.Mutex
}

func (l *eventLoop) Do(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn()
}

type fakeView struct {
	visible        bool
	shows          int
	hides          int
	countdown      string
	snoozeLabel    string
	snoozeEnabled  bool
	dismissLabel   string
	dismissEnabled bool
}

func (v *fakeView) ShowOverlay() {
	v.visible = true
	v.shows++
}

func (v *fakeView) HideOverlay() {
	v.visible = false
	v.hides++
}

func (v *fakeView) SetCountdown(text string) {
	v.countdown = text
}

func (v *fakeView) SetSnooze(label string, enabled bool) {
	v.snoozeLabel = label
	v.snoozeEnabled = enabled
}

func (v *fakeView) SetDismiss(label string, enabled bool) {
	v.dismissLabel = label
	v.dismissEnabled = enabled
}

type fakeChime struct {
	plays int
	stops int
}

func (c *fakeChime) Play() { c.plays++ }
func (c *fakeChime) Stop() { c.stops++ }

// countingStore records writes going through to the real file store
type countingStore struct {
	*store.SnoozeStore
	saves   int
	saveErr error
}

func (s *countingStore) Save(count int) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.SnoozeStore.Save(count)
}

type harness struct {
	t       *testing.T
	loop    *eventLoop
	clock   *clockwork.FakeClock
	store   *countingStore
	view    *fakeView
	chime   *fakeChime
	changes []State
	c       *Controller
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	clock := clockwork.NewFakeClockAt(time.Date(2026, time.October, 15, 9, 0, 0, 0, time.Local))
	h := &harness{
		t:     t,
		loop:  &eventLoop{},
		clock: clock,
		store: &countingStore{SnoozeStore: store.NewSnoozeStore(filepath.Join(t.TempDir(), store.StateFileName), clock)},
		view:  &fakeView{},
		chime: &fakeChime{},
	}
	h.c = NewController(Options{
		Clock:    clock,
		Store:    h.store,
		View:     h.view,
		Dispatch: h.loop.Do,
		Chime:    h.chime,
		OnChange: func(s State) {
			h.changes = append(h.changes, s)
		},
	})
	t.Cleanup(func() {
		h.do(h.c.Shutdown)
	})
	return h
}

func (h *harness) do(fn func()) {
	h.loop.Do(fn)
}

func (h *harness) eventually(cond func() bool, msg string) {
	h.t.Helper()
	require.Eventually(h.t, func() bool {
		var ok bool
		h.do(func() { ok = cond() })
		return ok
	}, time.Second, time.Millisecond, msg)
}

func (h *harness) show() {
	h.do(func() { h.c.Show(TriggerManual) })
}

func (h *harness) snooze() error {
	var err error
	h.do(func() { err = h.c.Snooze() })
	return err
}

func (h *harness) close() error {
	var err error
	h.do(func() { err = h.c.RequestClose() })
	return err
}

func (h *harness) ticks(n int) {
	h.do(func() {
		for i := 0; i < n; i++ {
			h.c.Tick()
		}
	})
}

func TestShowOnFreshInstall(t *testing.T) {
	h := newHarness(t)
	h.show()

	assert.Equal(t, StateShowing, h.c.State())
	assert.Equal(t, CountdownSeconds, h.c.Remaining())
	assert.NotEmpty(t, h.c.SessionID())

	assert.True(t, h.view.visible)
	assert.Equal(t, "2:00", h.view.countdown)
	assert.Equal(t, "Snooze (1 hour) (3 left today)", h.view.snoozeLabel)
	assert.True(t, h.view.snoozeEnabled)
	assert.Equal(t, "Quit (Available after timer)", h.view.dismissLabel)
	assert.False(t, h.view.dismissEnabled)
	assert.Equal(t, 1, h.chime.plays)
	assert.Equal(t, []State{StateShowing}, h.changes)
}

func TestCountdownReachesZero(t *testing.T) {
	h := newHarness(t)
	h.show()

	h.ticks(CountdownSeconds - 1)
	assert.Equal(t, 1, h.c.Remaining())
	assert.Equal(t, "0:01", h.view.countdown)
	assert.False(t, h.view.dismissEnabled)

	h.ticks(1)
	assert.Equal(t, 0, h.c.Remaining())
	assert.Equal(t, "0:00", h.view.countdown)
	assert.True(t, h.view.dismissEnabled)
	assert.Equal(t, "Quit Break Screen", h.view.dismissLabel)

	h.ticks(5)
	assert.Equal(t, 0, h.c.Remaining(), "countdown must not go negative")
	assert.Equal(t, "0:00", h.view.countdown)
}

func TestCloseRejectedUntilCountdownEnds(t *testing.T) {
	h := newHarness(t)
	h.show()

	for remaining := CountdownSeconds; remaining > 0; remaining-- {
		err := h.close()
		require.ErrorIs(t, err, ErrBreakNotOver, "remaining %d", remaining)
		require.Equal(t, StateShowing, h.c.State())
		require.True(t, h.view.visible)
		h.ticks(1)
	}

	require.NoError(t, h.close())
	assert.Equal(t, StateHidden, h.c.State())
	assert.False(t, h.view.visible)
	assert.Equal(t, 1, h.view.hides)
	assert.Equal(t, 1, h.chime.stops)
	assert.Equal(t, []State{StateShowing, StateShowing, StateHidden}, h.changes)

	// Closing an overlay that is already hidden does nothing
	require.NoError(t, h.close())
	assert.Equal(t, 1, h.view.hides)
}

func TestCountdownDrivenByClock(t *testing.T) {
	h := newHarness(t)
	h.show()

	for i := 1; i <= 5; i++ {
		h.clock.Advance(time.Second)
		want := CountdownSeconds - i
		h.eventually(func() bool { return h.c.Remaining() == want }, "countdown tick")
	}
	assert.Equal(t, "1:55", h.view.countdown)
}

func TestReShowRestartsCountdown(t *testing.T) {
	h := newHarness(t)
	h.show()
	h.ticks(10)
	staleGen := h.c.countdownGen

	h.show()
	assert.Equal(t, CountdownSeconds, h.c.Remaining())
	assert.Equal(t, "2:00", h.view.countdown)
	assert.Equal(t, 1, h.chime.plays, "chime plays once per appearance")

	h.do(func() { h.c.tick(staleGen) })
	assert.Equal(t, CountdownSeconds, h.c.Remaining(), "stale tick must be ignored")
}

func TestSnoozeScenario(t *testing.T) {
	h := newHarness(t)
	h.show()

	for used := 1; used <= models.MaxSnoozesPerDay; used++ {
		require.NoError(t, h.snooze())
		assert.Equal(t, StateSnoozed, h.c.State())
		assert.False(t, h.view.visible)
		assert.Equal(t, h.clock.Now().Add(time.Hour), h.c.SnoozedUntil())
		assert.Equal(t, used, h.store.Load())
		assert.Equal(t, used, h.store.saves)

		h.clock.Advance(SnoozeDuration)
		h.eventually(func() bool { return h.c.State() == StateShowing }, "snooze expiry re-shows the overlay")

		left := models.MaxSnoozesPerDay - used
		assert.Equal(t, SnoozeLabel(left), h.view.snoozeLabel)
		assert.Equal(t, left > 0, h.view.snoozeEnabled)
		assert.True(t, h.c.SnoozedUntil().IsZero())
	}
	assert.Equal(t, "Snooze (1 hour) (0 left today)", h.view.snoozeLabel)

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, h.snooze(), ErrSnoozeLimitReached)
	}
	assert.Equal(t, StateShowing, h.c.State())
	assert.True(t, h.view.visible)
	assert.Equal(t, models.MaxSnoozesPerDay, h.store.saves, "no writes once the limit is reached")
	assert.Equal(t, models.MaxSnoozesPerDay, h.store.Load())
}

func TestSnoozeDoesNotFireEarly(t *testing.T) {
	h := newHarness(t)
	h.show()
	require.NoError(t, h.snooze())

	h.clock.Advance(SnoozeDuration - time.Second)
	assert.Never(t, func() bool {
		var s State
		h.do(func() { s = h.c.State() })
		return s != StateSnoozed
	}, 50*time.Millisecond, 5*time.Millisecond)

	h.clock.Advance(time.Second)
	h.eventually(func() bool { return h.c.State() == StateShowing }, "snooze expiry")
}

func TestSnoozeWhenNotShowing(t *testing.T) {
	h := newHarness(t)

	assert.ErrorIs(t, h.snooze(), ErrNotShowing)
	assert.Equal(t, 0, h.store.saves)
	assert.Equal(t, StateHidden, h.c.State())
}

func TestSnoozeSaveFailureStillSnoozes(t *testing.T) {
	h := newHarness(t)
	h.store.saveErr = errors.New("disk full")
	h.show()

	require.NoError(t, h.snooze())
	assert.Equal(t, StateSnoozed, h.c.State())
	assert.False(t, h.view.visible)
	assert.Equal(t, 0, h.store.Load())

	h.clock.Advance(SnoozeDuration)
	h.eventually(func() bool { return h.c.State() == StateShowing }, "re-show after failed save")
	assert.Equal(t, SnoozeLabel(3), h.view.snoozeLabel)
}

func TestSnoozeCountResetsOnNewDay(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.store.SnoozeStore.Save(models.MaxSnoozesPerDay))

	h.show()
	assert.False(t, h.view.snoozeEnabled)
	assert.Equal(t, 0, h.c.SnoozesLeft())

	h.do(h.c.Shutdown)
	h.clock.Advance(24 * time.Hour)

	h.show()
	assert.True(t, h.view.snoozeEnabled)
	assert.Equal(t, "Snooze (1 hour) (3 left today)", h.view.snoozeLabel)
	require.NoError(t, h.snooze())
	assert.Equal(t, 1, h.store.Load())
}

func TestManualShowSupersedesSnooze(t *testing.T) {
	h := newHarness(t)
	h.show()
	require.NoError(t, h.snooze())

	h.show()
	assert.Equal(t, StateShowing, h.c.State())
	assert.Equal(t, SnoozeLabel(2), h.view.snoozeLabel)

	h.ticks(CountdownSeconds)
	require.NoError(t, h.close())

	h.clock.Advance(SnoozeDuration)
	assert.Never(t, func() bool {
		var s State
		h.do(func() { s = h.c.State() })
		return s != StateHidden
	}, 50*time.Millisecond, 5*time.Millisecond)
}

func TestShutdownStopsCountdown(t *testing.T) {
	h := newHarness(t)
	h.show()
	h.do(h.c.Shutdown)

	h.clock.Advance(time.Second)
	assert.Never(t, func() bool {
		var remaining int
		h.do(func() { remaining = h.c.Remaining() })
		return remaining != CountdownSeconds
	}, 50*time.Millisecond, 5*time.Millisecond)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Hidden", StateHidden.String())
	assert.Equal(t, "Showing", StateShowing.String())
	assert.Equal(t, "Snoozed", StateSnoozed.String())
	assert.Equal(t, "Unknown", State(42).String())
}
