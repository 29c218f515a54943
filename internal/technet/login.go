package technet

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

type LoginResult struct {
	Token    string `json:"auth_token"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Login получает токен и сохраняет его в сессии клиента.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	const op = "technet.Login"

	body := map[string]string{"username": username, "password": password}

	var res LoginResult
	if err := c.doJSON(ctx, http.MethodPost, c.url(pathLogin, nil), body, &res); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if res.Token == "" {
		return nil, fmt.Errorf("%s: %w", op, errors.New("empty auth_token in response"))
	}

	c.session.Set(res.Token)

	return &res, nil
}
