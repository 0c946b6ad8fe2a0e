package display

import (
	"testing"
	"time"

	"github.com/ClassroomPrayers/calendar"
	"github.com/stretchr/testify/assert"
)

func TestToasterAutoDismiss(t *testing.T) {
	toaster := NewToaster(50 * time.Millisecond)
	defer toaster.Stop()

	toaster.Show("settings saved")
	assert.True(t, toaster.Current().Visible)
	assert.Equal(t, "settings saved", toaster.Current().Message)

	time.Sleep(120 * time.Millisecond)
	assert.False(t, toaster.Current().Visible)
}

func TestToasterReplacementCancelsPriorTimer(t *testing.T) {
	toaster := NewToaster(200 * time.Millisecond)
	defer toaster.Stop()

	toaster.Show("first")
	time.Sleep(100 * time.Millisecond)
	toaster.Show("second")

	// past the first notice's dismissal time; its timer was cancelled, so
	// the second notice must still be visible
	time.Sleep(150 * time.Millisecond)
	current := toaster.Current()
	assert.True(t, current.Visible)
	assert.Equal(t, "second", current.Message)

	// only the second notice's dismissal fires
	time.Sleep(150 * time.Millisecond)
	assert.False(t, toaster.Current().Visible)
}

func TestToasterReplacementAtDismissalBoundary(t *testing.T) {
	const duration = 20 * time.Millisecond

	toaster := NewToaster(duration)
	defer toaster.Stop()

	// replace exactly when the first notice's timer fires: even when the
	// first dismissal has already left the timer and is waiting on the
	// lock, it must not take down the second notice
	for i := 0; i < 25; i++ {
		toaster.Show("first")
		time.Sleep(duration)
		toaster.Show("second")
		shown := time.Now()

		time.Sleep(2 * time.Millisecond)
		current := toaster.Current()
		if time.Since(shown) >= duration {
			continue // overslept past the second notice's own dismissal
		}
		assert.True(t, current.Visible, "iteration %d", i)
		assert.Equal(t, "second", current.Message, "iteration %d", i)
	}
}

func TestBoardSelectionFollowsClock(t *testing.T) {
	board := NewBoard()
	defer board.Stop()

	board.now = func() time.Time { return time.Date(2026, 1, 7, 9, 0, 0, 0, time.Local) }
	board.Refresh()
	snap := board.Snapshot()
	assert.Equal(t, calendar.Wednesday, snap.Selection.Weekday)
	assert.Equal(t, calendar.Morning, snap.Selection.TimeOfDay)
	assert.Equal(t, "Memorare", snap.Selection.Prayer.Title)

	board.now = func() time.Time { return time.Date(2026, 1, 7, 13, 0, 0, 0, time.Local) }
	board.Refresh()
	snap = board.Snapshot()
	assert.Equal(t, calendar.Afternoon, snap.Selection.TimeOfDay)
	assert.Equal(t, "Hail Mary", snap.Selection.Prayer.Title)
}

func TestBoardPushedUpdates(t *testing.T) {
	board := NewBoard()
	defer board.Stop()

	assert.Nil(t, board.Snapshot().Weather)

	board.SetGlobalCount(1234)
	board.SetWeather(Weather{Current: 72, High: 80, Low: 55})
	board.Announce("new intention added")

	snap := board.Snapshot()
	assert.Equal(t, int64(1234), snap.GlobalCount)
	assert.Equal(t, 72, snap.Weather.Current)
	assert.True(t, snap.Toast.Visible)
}

func TestBoardStartStop(t *testing.T) {
	board := NewBoard()
	board.Start(10 * time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	board.Stop()
	// idempotent
	board.Stop()
}
