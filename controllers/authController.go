package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/ClassroomPrayers/gateway"
	"github.com/ClassroomPrayers/initializers"
	"github.com/ClassroomPrayers/models"
	"github.com/ClassroomPrayers/reconciler"
	"golang.org/x/crypto/bcrypt"
)

func accountPath(username string) string {
	return "accounts/" + username
}

// isAdminEmail checks the externalized ADMIN_EMAILS allow-list. The result
// is carried as the token's role claim, so authorization downstream is a
// claim check rather than a hardcoded list.
func isAdminEmail(email string) bool {
	for _, allowed := range strings.Split(os.Getenv("ADMIN_EMAILS"), ",") {
		if allowed != "" && strings.EqualFold(strings.TrimSpace(allowed), email) {
			return true
		}
	}
	return false
}

func issueToken(identity models.Identity) (string, error) {
	role := "user"
	if identity.Admin {
		role = "admin"
	}

	generateToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    identity.UID,
		"email": identity.Email,
		"name":  identity.DisplayName,
		"exp":   time.Now().Add(time.Hour * 24).Unix(),
		"role":  role,
	})
	return generateToken.SignedString([]byte(os.Getenv("SECRET")))
}

// GoogleLogin exchanges a verified Google ID token for a session token and
// the reconciled teacher settings. Identities outside the required domain
// are rejected outright - the frontend treats that as a forced sign-out.
func GoogleLogin(c *gin.Context) {
	var req models.GoogleLogin

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if initializers.AuthClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google sign-in is not available"})
		return
	}

	verified, err := initializers.AuthClient.VerifyIDToken(c, req.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid ID token"})
		return
	}

	email, _ := verified.Claims["email"].(string)
	name, _ := verified.Claims["name"].(string)

	identity := models.Identity{
		UID:         verified.UID,
		DisplayName: name,
		Email:       email,
		AccessToken: req.AccessToken,
		Admin:       isAdminEmail(email),
	}

	session, err := reconciler.SignIn(c, initializers.Store, identity, os.Getenv("REQUIRED_EMAIL_DOMAIN"))
	if errors.Is(err, reconciler.ErrDomainRestricted) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Please sign in with your school account"})
		return
	}
	if err != nil {
		log.Printf("Sign-in reconciliation failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load settings"})
		return
	}

	token, err := issueToken(identity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(200, gin.H{
		"message":       "Signed in successfully.",
		"token":         token,
		"identity":      session.Identity,
		"settings":      session.Settings,
		"setupRequired": session.SetupRequired,
	})
}

// UserLogin is the local-account fallback for teachers without a school
// Google account.
func UserLogin(c *gin.Context) {
	var req models.Login

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := initializers.Store.ReadOnce(c, accountPath(req.Username))
	if errors.Is(err, gateway.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load account"})
		return
	}

	account := accountFromFields(doc)
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	identity := models.Identity{
		UID:         "local:" + account.Username,
		DisplayName: account.DisplayName,
		Email:       account.Email,
		Admin:       isAdminEmail(account.Email),
	}

	session, err := reconciler.SignIn(c, initializers.Store, identity, "")
	if err != nil {
		log.Printf("Sign-in reconciliation failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load settings"})
		return
	}

	token, err := issueToken(identity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(200, gin.H{
		"message":       "User logged in successfully.",
		"token":         token,
		"identity":      session.Identity,
		"settings":      session.Settings,
		"setupRequired": session.SetupRequired,
	})
}

// UserSignup creates a local account. Admin only.
func UserSignup(c *gin.Context) {
	var req models.AccountSignup

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Username == "" || len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and a password of at least 6 characters are required."})
		return
	}

	_, err := initializers.Store.ReadOnce(c, accountPath(req.Username))
	switch {
	case err == nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": "username already exists."})
		return
	case !errors.Is(err, gateway.ErrNotFound):
		// a transient read failure must not let the write clobber an
		// existing account
		log.Printf("Failed to check username %s: %v", req.Username, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create account"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = initializers.Store.WriteMerge(c, accountPath(req.Username), gateway.Fields{
		"username":     req.Username,
		"passwordHash": string(passwordHash),
		"email":        req.Email,
		"displayName":  req.DisplayName,
	})
	if err != nil {
		log.Printf("Failed to create account: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create account"})
		return
	}

	c.JSON(200, gin.H{
		"message":  "User created successfully.",
		"username": req.Username,
	})
}

func accountFromFields(doc gateway.Fields) models.LocalAccount {
	var account models.LocalAccount
	account.Username, _ = doc["username"].(string)
	account.PasswordHash, _ = doc["passwordHash"].(string)
	account.Email, _ = doc["email"].(string)
	account.DisplayName, _ = doc["displayName"].(string)
	return account
}

func Ping(c *gin.Context) {
	c.JSON(200, gin.H{"message": "pong"})
}
