package controllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ClassroomPrayers/initializers"
	"github.com/ClassroomPrayers/models"
	"github.com/ClassroomPrayers/reconciler"
	"github.com/ClassroomPrayers/services"
)

// classroomToken pulls the caller's Google OAuth access token from the
// X-Classroom-Token header. The token came from the sign-in flow with
// Classroom scopes; it is forwarded per request and never stored.
func classroomToken(c *gin.Context) (string, bool) {
	token := strings.TrimSpace(c.GetHeader("X-Classroom-Token"))
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please Sign Out and Sign In again to authorize Classroom access."})
		return "", false
	}
	return token, true
}

// GetClassroomCourses lists the caller's active Google Classroom courses.
func GetClassroomCourses(c *gin.Context) {
	token, ok := classroomToken(c)
	if !ok {
		return
	}

	courses, err := services.GetClassroomService().ListCourses(c, token)
	if err != nil {
		log.Printf("Failed to list Classroom courses: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to connect to Google Classroom."})
		return
	}
	if len(courses) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active courses found."})
		return
	}

	c.JSON(200, gin.H{"courses": courses})
}

// ImportClassroomCourse pulls a course roster, saves it as a reusable
// saved-class entry, and makes it the current roster and subject.
func ImportClassroomCourse(c *gin.Context) {
	identity := c.MustGet("currentUser").(models.Identity)

	token, ok := classroomToken(c)
	if !ok {
		return
	}

	courseID := c.Param("course_id")
	courseName := c.Query("name")
	if courseID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID"})
		return
	}

	roster, err := services.GetClassroomService().FetchRoster(c, token, courseID)
	if err != nil {
		log.Printf("Failed to import course %s: %v", courseID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "No students found in this class."})
		return
	}

	settings, err := reconciler.Load(c, initializers.Store, identity)
	if err != nil {
		log.Printf("Failed to load settings for %s: %v", identity.UID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load settings"})
		return
	}

	if courseName == "" {
		courseName = courseID
	}
	settings.SavedClasses[courseID] = models.SavedClass{Name: courseName, StudentsText: roster}
	settings.RosterText = roster
	settings.Subject = courseName

	if err := reconciler.Save(c, initializers.Store, identity.UID, settings); err != nil {
		log.Printf("Failed to save imported roster for %s: %v", identity.UID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save settings"})
		return
	}

	c.JSON(200, gin.H{
		"message":  "Class imported.",
		"settings": settings,
	})
}

// LoadSavedClass switches the current roster and subject to a previously
// imported class.
func LoadSavedClass(c *gin.Context) {
	identity := c.MustGet("currentUser").(models.Identity)

	courseID := c.Param("course_id")

	settings, err := reconciler.Load(c, initializers.Store, identity)
	if err != nil {
		log.Printf("Failed to load settings for %s: %v", identity.UID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load settings"})
		return
	}

	updated, ok := reconciler.LoadSavedClass(settings, courseID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Saved class not found"})
		return
	}

	if err := reconciler.Save(c, initializers.Store, identity.UID, updated); err != nil {
		log.Printf("Failed to save settings for %s: %v", identity.UID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save settings"})
		return
	}

	c.JSON(200, gin.H{"settings": updated})
}
