package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/ClassroomPrayers/gateway"
	"github.com/ClassroomPrayers/initializers"
	"github.com/ClassroomPrayers/models"
)

func seedLocalAccount(t *testing.T, store *gateway.Memory, account models.LocalAccount) {
	t.Helper()
	err := store.WriteMerge(context.Background(), accountPath(account.Username), gateway.Fields{
		"username":     account.Username,
		"passwordHash": account.PasswordHash,
		"email":        account.Email,
		"displayName":  account.DisplayName,
	})
	assert.NoError(t, err)
}

// Test UserLogin - local account sign-in with bcrypt password check
func TestUserLogin(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		seedAccount    bool
		expectedStatus int
		expectError    bool
		expectToken    bool
	}{
		{
			name: "successful login",
			requestBody: models.Login{
				Username: "rivera",
				Password: "password123",
			},
			seedAccount:    true,
			expectedStatus: http.StatusOK,
			expectError:    false,
			expectToken:    true,
		},
		{
			name: "wrong password",
			requestBody: models.Login{
				Username: "rivera",
				Password: "wrongpassword",
			},
			seedAccount:    true,
			expectedStatus: http.StatusUnauthorized,
			expectError:    true,
		},
		{
			name: "unknown username",
			requestBody: models.Login{
				Username: "nobody",
				Password: "password123",
			},
			seedAccount:    false,
			expectedStatus: http.StatusUnauthorized,
			expectError:    true,
		},
		{
			name:           "invalid JSON",
			requestBody:    "{invalid json}",
			seedAccount:    false,
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SECRET", "test-secret")

			store, cleanup := SetupTestStore(t)
			defer cleanup()

			if tt.seedAccount {
				seedLocalAccount(t, store, MockLocalAccount())
			}

			c, w := SetupTestContext()

			var jsonData []byte
			if str, ok := tt.requestBody.(string); ok {
				jsonData = []byte(str)
			} else {
				jsonData, _ = json.Marshal(tt.requestBody)
			}

			c.Request = httptest.NewRequest("POST", "/login", bytes.NewBuffer(jsonData))
			c.Request.Header.Set("Content-Type", "application/json")

			UserLogin(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)

			if tt.expectError {
				assert.NotNil(t, response["error"])
			}
			if tt.expectToken {
				assert.NotEmpty(t, response["token"])
				assert.NotNil(t, response["settings"])

				identity, ok := response["identity"].(map[string]interface{})
				assert.True(t, ok)
				assert.Equal(t, "local:rivera", identity["uid"])
				assert.Equal(t, "Ms. Rivera", identity["displayName"])
			}
		})
	}
}

func TestUserLoginFirstSignInPersistsDefaults(t *testing.T) {
	t.Setenv("SECRET", "test-secret")

	store, cleanup := SetupTestStore(t)
	defer cleanup()
	seedLocalAccount(t, store, MockLocalAccount())

	c, w := SetupTestContext()
	jsonData, _ := json.Marshal(models.Login{Username: "rivera", Password: "password123"})
	c.Request = httptest.NewRequest("POST", "/login", bytes.NewBuffer(jsonData))
	c.Request.Header.Set("Content-Type", "application/json")

	UserLogin(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, true, response["setupRequired"])

	// the defaults document now exists remotely
	doc, err := store.ReadOnce(context.Background(), "teachers/local:rivera")
	assert.NoError(t, err)
	assert.Equal(t, "Ms. Rivera", doc["teacherName"])
}

// Test UserSignup - admin-only local account creation
func TestUserSignup(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		seedAccount    bool
		expectedStatus int
		expectError    bool
	}{
		{
			name: "successful signup",
			requestBody: models.AccountSignup{
				Username:    "newteacher",
				Password:    "password123",
				Email:       "newteacher@salpointe.org",
				DisplayName: "Mr. Chen",
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "password too short",
			requestBody: models.AccountSignup{
				Username: "newteacher",
				Password: "short",
			},
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
		{
			name: "missing username",
			requestBody: models.AccountSignup{
				Password: "password123",
			},
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
		{
			name: "username already exists",
			requestBody: models.AccountSignup{
				Username: "rivera",
				Password: "password123",
			},
			seedAccount:    true,
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := SetupTestStore(t)
			defer cleanup()

			if tt.seedAccount {
				seedLocalAccount(t, store, MockLocalAccount())
			}

			c, w := SetupTestContext()
			jsonData, _ := json.Marshal(tt.requestBody)
			c.Request = httptest.NewRequest("POST", "/users", bytes.NewBuffer(jsonData))
			c.Request.Header.Set("Content-Type", "application/json")

			UserSignup(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)

			if tt.expectError {
				assert.NotNil(t, response["error"])
				return
			}

			// the account is stored with a hash, never the raw password
			doc, err := store.ReadOnce(context.Background(), accountPath("newteacher"))
			assert.NoError(t, err)
			hash, _ := doc["passwordHash"].(string)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("password123")))
		})
	}
}

// readFailStore breaks ReadOnce with a non-NotFound error, simulating a
// transient gateway outage.
type readFailStore struct {
	*gateway.Memory
}

func (s readFailStore) ReadOnce(ctx context.Context, path string) (gateway.Fields, error) {
	return nil, errors.New("gateway unavailable")
}

func TestUserSignupReadFailureDoesNotOverwrite(t *testing.T) {
	store, cleanup := SetupTestStore(t)
	defer cleanup()

	seedLocalAccount(t, store, MockLocalAccount())
	before, err := store.ReadOnce(context.Background(), accountPath("rivera"))
	assert.NoError(t, err)

	initializers.Store = readFailStore{store}

	c, w := SetupTestContext()
	jsonData, _ := json.Marshal(models.AccountSignup{
		Username: "rivera",
		Password: "attacker-pass",
	})
	c.Request = httptest.NewRequest("POST", "/users", bytes.NewBuffer(jsonData))
	c.Request.Header.Set("Content-Type", "application/json")

	UserSignup(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	// the existing account's hash survived
	after, err := store.ReadOnce(context.Background(), accountPath("rivera"))
	assert.NoError(t, err)
	assert.Equal(t, before["passwordHash"], after["passwordHash"])
}

func TestGoogleLoginUnavailableWithoutVerifier(t *testing.T) {
	_, cleanup := SetupTestStore(t)
	defer cleanup()

	c, w := SetupTestContext()
	jsonData, _ := json.Marshal(models.GoogleLogin{IDToken: "some-token"})
	c.Request = httptest.NewRequest("POST", "/auth/google", bytes.NewBuffer(jsonData))
	c.Request.Header.Set("Content-Type", "application/json")

	GoogleLogin(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGoogleLoginInvalidJSON(t *testing.T) {
	_, cleanup := SetupTestStore(t)
	defer cleanup()

	c, w := SetupTestContext()
	c.Request = httptest.NewRequest("POST", "/auth/google", bytes.NewBufferString("{invalid"))
	c.Request.Header.Set("Content-Type", "application/json")

	GoogleLogin(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIsAdminEmail(t *testing.T) {
	t.Setenv("ADMIN_EMAILS", "marcus@salpointe.org, office@salpointe.org")

	assert.True(t, isAdminEmail("marcus@salpointe.org"))
	assert.True(t, isAdminEmail("MARCUS@salpointe.org"))
	assert.True(t, isAdminEmail("office@salpointe.org"))
	assert.False(t, isAdminEmail("rivera@salpointe.org"))
	assert.False(t, isAdminEmail(""))
}
