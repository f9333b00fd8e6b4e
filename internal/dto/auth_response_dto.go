package dto

// TokenRequest asks for a development bearer token for an actor.
type TokenRequest struct {
	UserID string `json:"userID" binding:"required,max=100"`
}

// LoginResponse represents the response for a successful token issue.
type LoginResponse struct {
	Token string `json:"token"`
}
