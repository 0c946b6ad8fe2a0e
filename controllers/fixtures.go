package controllers

import (
	"github.com/ClassroomPrayers/models"
	"golang.org/x/crypto/bcrypt"
)

// Test fixture data for use in tests

// MockIdentity creates a sample teacher identity for testing
func MockIdentity() models.Identity {
	return models.Identity{
		UID:         "uid-1",
		DisplayName: "Ms. Rivera",
		Email:       "rivera@salpointe.org",
		Admin:       false,
	}
}

// MockAdminIdentity creates a sample campus-ministry admin for testing
func MockAdminIdentity() models.Identity {
	return models.Identity{
		UID:         "uid-admin",
		DisplayName: "Fr. Marcus",
		Email:       "marcus@salpointe.org",
		Admin:       true,
	}
}

// MockLocalAccount creates a local account record with a bcrypt hashed
// password. Password is "password123" - use this in tests
func MockLocalAccount() models.LocalAccount {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	return models.LocalAccount{
		Username:     "rivera",
		PasswordHash: string(hashedPassword),
		Email:        "rivera@salpointe.org",
		DisplayName:  "Ms. Rivera",
	}
}
