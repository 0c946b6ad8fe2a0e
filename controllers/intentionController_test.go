package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ClassroomPrayers/display"
	"github.com/ClassroomPrayers/feed"
	"github.com/ClassroomPrayers/gateway"
	"github.com/ClassroomPrayers/models"
)

// setupFeed points the package's board and intention window at the test
// store, mirroring what InitDisplay does without the ticker.
func setupFeed(t *testing.T, store *gateway.Memory) func() {
	t.Helper()

	prevBoard, prevWindow := board, intentionWindow
	board = display.NewBoard()

	window, cancel, err := feed.Watch(store, feed.WindowSize)
	assert.NoError(t, err)
	intentionWindow = window

	return func() {
		cancel()
		board, intentionWindow = prevBoard, prevWindow
	}
}

func TestCreateIntention(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		expectError    bool
	}{
		{
			name:           "successful submission",
			requestBody:    models.IntentionCreate{Text: "For my grandmother's health"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "text at the limit",
			requestBody:    models.IntentionCreate{Text: strings.Repeat("a", feed.MaxTextLength)},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "empty text",
			requestBody:    models.IntentionCreate{Text: "   "},
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
		{
			name:           "text over the limit",
			requestBody:    models.IntentionCreate{Text: strings.Repeat("a", feed.MaxTextLength+1)},
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
		{
			name:           "invalid JSON",
			requestBody:    "{invalid json}",
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := SetupTestStore(t)
			defer cleanup()
			defer setupFeed(t, store)()

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockIdentity())

			var jsonData []byte
			if str, ok := tt.requestBody.(string); ok {
				jsonData = []byte(str)
			} else {
				jsonData, _ = json.Marshal(tt.requestBody)
			}
			c.Request = httptest.NewRequest("POST", "/intentions", bytes.NewBuffer(jsonData))
			c.Request.Header.Set("Content-Type", "application/json")

			CreateIntention(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)

			if tt.expectError {
				assert.NotNil(t, response["error"])
				assert.Empty(t, intentionWindow.Records())
				return
			}

			assert.NotEmpty(t, response["id"])

			// the live window picked up the new record
			records := intentionWindow.Records()
			if assert.Len(t, records, 1) {
				assert.Equal(t, "uid-1", records[0].AuthorUID)
				assert.Equal(t, "Ms. Rivera", records[0].AuthorName)
			}

			// submission raises the board notice
			toast := board.Snapshot().Toast
			assert.True(t, toast.Visible)
			assert.Equal(t, "New prayer intention added", toast.Message)
		})
	}
}

func TestGetIntentionsNotReady(t *testing.T) {
	prev := intentionWindow
	intentionWindow = nil
	defer func() { intentionWindow = prev }()

	c, w := SetupTestContext()
	c.Request = httptest.NewRequest("GET", "/intentions", nil)

	GetIntentions(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetIntentionsNewestFirst(t *testing.T) {
	store, cleanup := SetupTestStore(t)
	defer cleanup()
	defer setupFeed(t, store)()

	author := MockIdentity()
	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		_, err := feed.Submit(context.Background(), store, &author, text)
		assert.NoError(t, err)
	}

	c, w := SetupTestContext()
	c.Request = httptest.NewRequest("GET", "/intentions", nil)

	GetIntentions(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Intentions []struct {
			models.IntentionRecord
			DisplayTime string `json:"displayTime"`
		} `json:"intentions"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	if assert.Len(t, response.Intentions, 3) {
		assert.Equal(t, "third", response.Intentions[0].Text)
		assert.Equal(t, "first", response.Intentions[2].Text)
		assert.NotEmpty(t, response.Intentions[0].DisplayTime)
	}
}

func TestDeleteIntention(t *testing.T) {
	tests := []struct {
		name           string
		identity       models.Identity
		expectedStatus int
		expectRemoved  bool
	}{
		{
			name:           "admin removes",
			identity:       MockAdminIdentity(),
			expectedStatus: http.StatusOK,
			expectRemoved:  true,
		},
		{
			name:           "non-admin forbidden",
			identity:       MockIdentity(),
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := SetupTestStore(t)
			defer cleanup()
			defer setupFeed(t, store)()

			author := MockIdentity()
			id, err := feed.Submit(context.Background(), store, &author, "please pray")
			assert.NoError(t, err)

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, tt.identity)
			c.Request = httptest.NewRequest("DELETE", "/intentions/"+id, nil)
			c.Params = []gin.Param{{Key: "intention_id", Value: id}}

			DeleteIntention(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			records := intentionWindow.Records()
			if tt.expectRemoved {
				assert.Empty(t, records)
			} else {
				assert.Len(t, records, 1)
			}
		})
	}
}
