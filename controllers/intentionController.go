package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ClassroomPrayers/feed"
	"github.com/ClassroomPrayers/initializers"
	"github.com/ClassroomPrayers/models"
)

// GetIntentions returns the live window of recent intentions, newest first.
// Public: the display board is unauthenticated.
func GetIntentions(c *gin.Context) {
	if intentionWindow == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Display is not ready"})
		return
	}

	records := intentionWindow.Records()

	type intentionView struct {
		models.IntentionRecord
		DisplayTime string `json:"displayTime"`
	}

	views := make([]intentionView, 0, len(records))
	for _, rec := range records {
		views = append(views, intentionView{IntentionRecord: rec, DisplayTime: feed.DisplayTime(rec)})
	}

	c.JSON(200, gin.H{"intentions": views})
}

// CreateIntention submits a new prayer intention.
func CreateIntention(c *gin.Context) {
	identity := c.MustGet("currentUser").(models.Identity)

	var req models.IntentionCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := feed.Submit(c, initializers.Store, &identity, req.Text)
	switch {
	case errors.Is(err, feed.ErrEmptyText), errors.Is(err, feed.ErrTextTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		log.Printf("Failed to create intention: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to add intention"})
		return
	}

	board.Announce("New prayer intention added")

	c.JSON(200, gin.H{
		"message": "Intention added.",
		"id":      id,
	})
}

// DeleteIntention removes an intention. Requires the admin claim; a
// backend rejection surfaces as a delete-failed notice without touching
// the feed.
func DeleteIntention(c *gin.Context) {
	identity := c.MustGet("currentUser").(models.Identity)

	id := c.Param("intention_id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid intention ID"})
		return
	}

	err := feed.Remove(c, initializers.Store, &identity, id)
	switch {
	case errors.Is(err, feed.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to remove intentions"})
		return
	case err != nil:
		log.Printf("Failed to delete intention %s: %v", id, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Delete failed"})
		return
	}

	c.JSON(200, gin.H{"message": "Intention removed."})
}
