package models

// UserCredentials is one row of the credentials sheet. PasswordHash holds a
// bcrypt hash and is never serialised.
type UserCredentials struct {
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// SignupRequest represents the request body for signup
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest represents the request body for a password reset
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}
