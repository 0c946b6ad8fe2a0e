package models

// Identity is an authenticated principal. AccessToken is only present when
// the client signed in with Classroom scopes; it is passed through for
// roster import and never persisted.
type Identity struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	AccessToken string `json:"accessToken,omitempty"`
	Admin       bool   `json:"admin"`
}

type GoogleLogin struct {
	IDToken     string `json:"idToken"`
	AccessToken string `json:"accessToken"`
}

type Login struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LocalAccount is the fallback sign-in record stored at accounts/{username}
// for teachers without a school Google account.
type LocalAccount struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
}

type AccountSignup struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type ForgotPasswordRequest struct {
	Username string `json:"username"`
}

type VerifyResetCodeRequest struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

type ResetPasswordRequest struct {
	Username    string `json:"username"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}
