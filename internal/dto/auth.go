package dto

// LoginRequest captures credential input.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse contains the issued access token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// RegisterRequest captures self-service registration payloads.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPasswordRequest identifies the account requesting a reset link.
type ResetPasswordRequest struct {
	Email string `json:"email"`
}

// CompleteResetRequest carries the emailed token and the replacement password.
type CompleteResetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// SessionResponse mirrors the claims of the presented token.
type SessionResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
