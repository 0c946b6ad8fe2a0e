package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/ClassroomPrayers/gateway"
	"github.com/ClassroomPrayers/initializers"
	"github.com/ClassroomPrayers/models"
	"github.com/gin-gonic/gin"
)

// SetupTestStore swaps the global document store for an in-memory one
func SetupTestStore(t *testing.T) (*gateway.Memory, func()) {
	store := gateway.NewMemory()

	originalStore := initializers.Store
	initializers.Store = store

	cleanup := func() {
		initializers.Store = originalStore
	}
	return store, cleanup
}

// SetupTestContext creates a test Gin context with a response recorder
func SetupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

// SetAuthenticatedUser sets the currentUser and admin values in the Gin context
// This simulates what the CheckAuth middleware does
func SetAuthenticatedUser(c *gin.Context, identity models.Identity) {
	c.Set("currentUser", identity)
	c.Set("admin", identity.Admin)
}
