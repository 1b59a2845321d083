package api

import "context"

// LoginRequest is the credential pair for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is what a successful login hands back. ExpiresIn is seconds.
type LoginResponse struct {
	Token     string `json:"token"`
	UserEmail string `json:"userEmail"`
	UserRole  string `json:"userRole"`
	TokenType string `json:"tokenType"`
	ExpiresIn int64  `json:"expiresIn"`
}

// Login authenticates and returns the issued session. The bearer header is
// not required here; the token source is simply empty before first login.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.post(ctx, "/auth/login", LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
