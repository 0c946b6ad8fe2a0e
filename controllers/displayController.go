package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ClassroomPrayers/display"
	"github.com/ClassroomPrayers/feed"
	"github.com/ClassroomPrayers/gateway"
	"github.com/ClassroomPrayers/initializers"
	"github.com/ClassroomPrayers/services"
)

var (
	board           *display.Board
	intentionWindow *feed.Window
	displayCancels  []gateway.CancelFunc
)

// InitDisplay wires the board to its live inputs: the selection tick, the
// global counter subscription, and the bounded intentions query.
func InitDisplay() error {
	board = display.NewBoard()

	cancelCounter, err := services.GetCounterService().Watch(board.SetGlobalCount)
	if err != nil {
		return err
	}

	window, cancelWindow, err := feed.Watch(initializers.Store, feed.WindowSize)
	if err != nil {
		cancelCounter()
		return err
	}
	intentionWindow = window
	displayCancels = []gateway.CancelFunc{cancelCounter, cancelWindow}

	board.Start(display.TickInterval)
	log.Println("Display board initialized")
	return nil
}

// ShutdownDisplay tears down the board's timers and subscriptions.
func ShutdownDisplay() {
	for _, cancel := range displayCancels {
		cancel()
	}
	displayCancels = nil
	if board != nil {
		board.Stop()
	}
}

// GetDisplay returns the kiosk snapshot: current prayer and saint, global
// counter, weather, and any active notice. Unauthenticated.
func GetDisplay(c *gin.Context) {
	if board == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Display is not ready"})
		return
	}

	snapshot := board.Snapshot()
	if ws := services.GetWeatherService(); ws != nil {
		if weather, ok := ws.Current(); ok {
			snapshot.Weather = &weather
		}
	}

	c.JSON(200, snapshot)
}
