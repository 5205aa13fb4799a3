package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges admin credentials for a token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out loginResponse
	err := c.sendJSON(ctx, http.MethodPost, "/api/admin/login",
		loginRequest{Username: username, Password: password}, &out)
	if err != nil {
		return "", fmt.Errorf("admin login: %w", err)
	}
	if out.Token == "" {
		return "", errors.New("admin login: response carried no token")
	}
	return out.Token, nil
}
