// Package display assembles the classroom board state: the current content
// selection, the school-wide counter, the weather readout, and the active
// notice. All state transitions happen on discrete events (a tick, a pushed
// remote update, a user action) under one lock.
package display

import (
	"sync"
	"time"

	"github.com/ClassroomPrayers/catalog"
)

// TickInterval is how often the board re-derives its content selection.
const TickInterval = time.Second

// Weather is the board's readout from the forecast collaborator.
type Weather struct {
	Current int `json:"current"`
	High    int `json:"high"`
	Low     int `json:"low"`
}

// Snapshot is everything the kiosk renders for one moment.
type Snapshot struct {
	Time        time.Time         `json:"time"`
	Selection   catalog.Selection `json:"selection"`
	GlobalCount int64             `json:"globalCount"`
	Weather     *Weather          `json:"weather"`
	Toast       Toast             `json:"toast"`
}

// Board owns the live display state. Selection is re-derived on every tick;
// it only actually changes at the noon and midnight bucket boundaries, so
// the recomputation is cheap and idempotent.
type Board struct {
	mu          sync.Mutex
	now         func() time.Time
	selection   catalog.Selection
	globalCount int64
	weather     *Weather
	toaster     *Toaster

	ticker *time.Ticker
	stop   chan struct{}
}

func NewBoard() *Board {
	b := &Board{
		now:     time.Now,
		toaster: NewToaster(DefaultToastDuration),
	}
	b.Refresh()
	return b
}

// Start re-derives the selection on a fixed tick until Stop.
func (b *Board) Start(interval time.Duration) {
	b.mu.Lock()
	if b.ticker != nil {
		b.mu.Unlock()
		return
	}
	b.ticker = time.NewTicker(interval)
	b.stop = make(chan struct{})
	ticker, stop := b.ticker, b.stop
	b.mu.Unlock()

	go func() {
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				b.Refresh()
			}
		}
	}()
}

// Stop cancels the tick loop and any pending toast timer.
func (b *Board) Stop() {
	b.mu.Lock()
	if b.ticker != nil {
		b.ticker.Stop()
		close(b.stop)
		b.ticker = nil
	}
	b.mu.Unlock()
	b.toaster.Stop()
}

// Refresh recomputes the content selection from the wall clock.
func (b *Board) Refresh() {
	b.mu.Lock()
	b.selection = catalog.Select(b.now())
	b.mu.Unlock()
}

// SetGlobalCount applies a pushed counter update.
func (b *Board) SetGlobalCount(n int64) {
	b.mu.Lock()
	b.globalCount = n
	b.mu.Unlock()
}

// SetWeather applies a fresh forecast reading. Failed fetches never call
// this, so the prior value stays on the board.
func (b *Board) SetWeather(w Weather) {
	b.mu.Lock()
	b.weather = &w
	b.mu.Unlock()
}

// Announce shows a transient notice on the board.
func (b *Board) Announce(message string) {
	b.toaster.Show(message)
}

func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot{
		Time:        b.now(),
		Selection:   b.selection,
		GlobalCount: b.globalCount,
		Weather:     b.weather,
		Toast:       b.toaster.Current(),
	}
}
