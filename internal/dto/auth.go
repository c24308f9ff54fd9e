package dto

// LoginRequest defines the credentials expected by the login endpoint.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued JWT token.
type LoginResponse struct {
	Token string `json:"token"`
}
