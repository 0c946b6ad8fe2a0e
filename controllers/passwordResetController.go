package controllers

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/ClassroomPrayers/gateway"
	"github.com/ClassroomPrayers/initializers"
	"github.com/ClassroomPrayers/models"
	"github.com/ClassroomPrayers/services"
)

const (
	resetCodeTTL         = 15 * time.Minute
	maxResetAttempts     = 3
	resetCollectionPath  = "passwordResets/"
	resetNeutralResponse = "If this account exists, a verification code has been sent."
)

func resetPath(username string) string {
	return resetCollectionPath + username
}

// ForgotPassword initiates the reset flow by emailing a 6-digit code to the
// local account's address. The response never reveals whether the account
// exists.
func ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required", "details": err.Error()})
		return
	}

	doc, err := initializers.Store.ReadOnce(c, accountPath(req.Username))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"message": resetNeutralResponse})
		return
	}
	account := accountFromFields(doc)
	if account.Email == "" {
		c.JSON(http.StatusOK, gin.H{"message": resetNeutralResponse})
		return
	}

	code, err := generate6DigitCode()
	if err != nil {
		log.Printf("Failed to generate verification code: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate verification code"})
		return
	}

	err = initializers.Store.WriteMerge(c, resetPath(req.Username), gateway.Fields{
		"code":      code,
		"expiresAt": time.Now().Add(resetCodeTTL).UTC().Format(time.RFC3339Nano),
		"attempts":  int64(0),
		"used":      false,
	})
	if err != nil {
		log.Printf("Failed to store password reset code: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password reset request"})
		return
	}

	if err := services.GetEmailService().SendPasswordResetEmail(account.Email, code, account.DisplayName); err != nil {
		log.Printf("Failed to send password reset email: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": resetNeutralResponse})
}

// VerifyResetCode checks the 6-digit code and burns an attempt on failure.
func VerifyResetCode(c *gin.Context) {
	var req models.VerifyResetCodeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and 6-digit code are required", "details": err.Error()})
		return
	}

	if err := checkResetCode(c, req.Username, req.Code); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code is valid"})
}

// ResetPassword sets a new password after a successful code check and marks
// the code used.
func ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username, code and new password are required", "details": err.Error()})
		return
	}

	if len(req.NewPassword) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters long"})
		return
	}

	if err := checkResetCode(c, req.Username, req.Code); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	err = initializers.Store.WriteMerge(c, accountPath(req.Username), gateway.Fields{
		"passwordHash": string(passwordHash),
	})
	if err != nil {
		log.Printf("Failed to update password: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to reset password"})
		return
	}

	if err := initializers.Store.WriteMerge(c, resetPath(req.Username), gateway.Fields{"used": true}); err != nil {
		log.Printf("Failed to mark reset code used: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset."})
}

var errBadResetCode = errors.New("Invalid or expired verification code")

func checkResetCode(c *gin.Context, username, code string) error {
	doc, err := initializers.Store.ReadOnce(c, resetPath(username))
	if err != nil {
		return errBadResetCode
	}

	used, _ := doc["used"].(bool)
	if used {
		return errBadResetCode
	}

	expiresAt := gateway.FieldTime(doc, "expiresAt")
	if expiresAt.IsZero() || time.Now().After(expiresAt) {
		return errBadResetCode
	}

	attempts := int64(0)
	switch v := doc["attempts"].(type) {
	case int64:
		attempts = v
	case float64:
		attempts = int64(v)
	}
	if attempts >= maxResetAttempts {
		return errors.New("Maximum verification attempts exceeded. Please request a new code.")
	}

	stored, _ := doc["code"].(string)
	if stored != code {
		if err := initializers.Store.WriteMerge(c, resetPath(username), gateway.Fields{"attempts": attempts + 1}); err != nil {
			log.Printf("Failed to update attempt count: %v", err)
		}
		return errBadResetCode
	}
	return nil
}

func generate6DigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
