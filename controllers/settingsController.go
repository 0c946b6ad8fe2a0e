package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ClassroomPrayers/models"
	"github.com/ClassroomPrayers/reconciler"
	"github.com/ClassroomPrayers/services"

	"github.com/ClassroomPrayers/initializers"
)

// GetSettings returns the caller's reconciled settings (remote merged over
// defaults).
func GetSettings(c *gin.Context) {
	identity := c.MustGet("currentUser").(models.Identity)

	settings, err := reconciler.Load(c, initializers.Store, identity)
	if err != nil {
		log.Printf("Failed to load settings for %s: %v", identity.UID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load settings"})
		return
	}

	c.JSON(200, gin.H{"settings": settings})
}

// SaveSettings persists the full settings object with merge semantics.
func SaveSettings(c *gin.Context) {
	identity := c.MustGet("currentUser").(models.Identity)

	var req models.SettingsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current, err := reconciler.Load(c, initializers.Store, identity)
	if err != nil {
		log.Printf("Failed to load settings for %s: %v", identity.UID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load settings"})
		return
	}

	if req.DisplayName != "" {
		current.DisplayName = req.DisplayName
	}
	if req.Subject != "" {
		current.Subject = req.Subject
	}
	current.RosterText = req.RosterText
	if req.SavedClasses != nil {
		current.SavedClasses = req.SavedClasses
	}

	if err := reconciler.Save(c, initializers.Store, identity.UID, current); err != nil {
		log.Printf("Failed to save settings for %s: %v", identity.UID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save settings"})
		return
	}

	c.JSON(200, gin.H{
		"message":  "Settings saved.",
		"settings": current,
	})
}

// Amen records an affirmation: the school-wide counter goes up, the
// teacher's XP and leaderboard update optimistically, and the merged
// settings are written back. A failed settings write is surfaced as a
// warning but the optimistic local result is still returned - there is no
// rollback.
func Amen(c *gin.Context) {
	identity := c.MustGet("currentUser").(models.Identity)

	var req models.AmenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.GetCounterService().RecordAmen(c); err != nil {
		log.Printf("Failed to bump global counter: %v", err)
	}

	settings, err := reconciler.Load(c, initializers.Store, identity)
	if err != nil {
		log.Printf("Failed to load settings for %s: %v", identity.UID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load settings"})
		return
	}

	updated, err := reconciler.Amen(c, initializers.Store, identity, settings, req.LeaderName)
	if err != nil {
		log.Printf("Failed to persist amen for %s: %v", identity.UID, err)
		c.JSON(200, gin.H{
			"settings": updated,
			"leaders":  reconciler.TopLeaders(updated, reconciler.TopLeaderLimit),
			"warning":  "Your progress could not be synced.",
		})
		return
	}

	c.JSON(200, gin.H{
		"settings": updated,
		"leaders":  reconciler.TopLeaders(updated, reconciler.TopLeaderLimit),
	})
}

// GetLeaders returns the top of the class leaderboard.
func GetLeaders(c *gin.Context) {
	identity := c.MustGet("currentUser").(models.Identity)

	settings, err := reconciler.Load(c, initializers.Store, identity)
	if err != nil {
		log.Printf("Failed to load settings for %s: %v", identity.UID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load settings"})
		return
	}

	c.JSON(200, gin.H{"leaders": reconciler.TopLeaders(settings, reconciler.TopLeaderLimit)})
}

// PickLeader draws a random student from the current roster.
func PickLeader(c *gin.Context) {
	identity := c.MustGet("currentUser").(models.Identity)

	settings, err := reconciler.Load(c, initializers.Store, identity)
	if err != nil {
		log.Printf("Failed to load settings for %s: %v", identity.UID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load settings"})
		return
	}

	name, err := reconciler.PickRandomLeader(settings.RosterText)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please add student names in Settings first!"})
		return
	}

	c.JSON(200, gin.H{"leaderName": name})
}
