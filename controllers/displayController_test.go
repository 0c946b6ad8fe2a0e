package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ClassroomPrayers/display"
	"github.com/ClassroomPrayers/services"
)

func TestGetDisplayNotReady(t *testing.T) {
	prev := board
	board = nil
	defer func() { board = prev }()

	c, w := SetupTestContext()
	c.Request = httptest.NewRequest("GET", "/display", nil)

	GetDisplay(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetDisplaySnapshot(t *testing.T) {
	store, cleanup := SetupTestStore(t)
	defer cleanup()
	defer setupFeed(t, store)()

	board.SetGlobalCount(42)
	board.Announce("Welcome back")

	c, w := SetupTestContext()
	c.Request = httptest.NewRequest("GET", "/display", nil)

	GetDisplay(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var snapshot display.Snapshot
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, int64(42), snapshot.GlobalCount)
	assert.NotEmpty(t, snapshot.Selection.Prayer.Title)
	assert.NotEmpty(t, snapshot.Selection.Saint)
	assert.True(t, snapshot.Toast.Visible)
	assert.Equal(t, "Welcome back", snapshot.Toast.Message)
}

func TestInitDisplayFollowsCounter(t *testing.T) {
	store, cleanup := SetupTestStore(t)
	defer cleanup()
	services.InitCounterService(store)

	prevBoard, prevWindow := board, intentionWindow
	defer func() { board, intentionWindow = prevBoard, prevWindow }()

	assert.NoError(t, InitDisplay())
	defer ShutdownDisplay()

	assert.NoError(t, services.GetCounterService().RecordAmen(context.Background()))
	assert.NoError(t, services.GetCounterService().RecordAmen(context.Background()))

	assert.Equal(t, int64(2), board.Snapshot().GlobalCount)
}
