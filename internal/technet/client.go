package technet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"technet-admin/internal/session"
)

var (
	ErrUnauthorized = errors.New("technet: unauthorized")
	ErrNotFound     = errors.New("technet: not found")
)

// APIError ответ бэкенда со статусом вне 2xx. Message: текст из поля error/detail,
// либо сырое тело ответа.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("technet: status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	session *session.Store
}

func New(baseURL string, timeout time.Duration, store *session.Store) *Client {
	if store == nil {
		store = session.New("")
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		session: store,
	}
}

func (c *Client) Session() *session.Store {
	return c.session
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) newRequest(ctx context.Context, method, rawURL string, body any) (*http.Request, error) {
	const op = "technet.newRequest"

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal body: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.session.Get(); ok {
		req.Header.Set("Authorization", "Token "+token)
	}

	return req, nil
}

// send выполняет запрос и читает тело целиком. 401 сбрасывает токен сессии.
func (c *Client) send(req *http.Request) (int, []byte, error) {
	const op = "technet.send"

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %s %s: %w", op, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%s: read body: %w", op, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.Clear()
		return resp.StatusCode, data, ErrUnauthorized
	}

	return resp.StatusCode, data, nil
}

// doJSON запрос с JSON-телом и JSON-ответом. out может быть nil.
func (c *Client) doJSON(ctx context.Context, method, rawURL string, body, out any) error {
	const op = "technet.doJSON"

	req, err := c.newRequest(ctx, method, rawURL, body)
	if err != nil {
		return err
	}

	status, data, err := c.send(req)
	if err != nil {
		return err
	}

	if status == http.StatusNotFound {
		return fmt.Errorf("%s: %s: %w", op, req.URL.Path, ErrNotFound)
	}
	if status < 200 || status >= 300 {
		return newAPIError(status, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}

	return nil
}

func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}

	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Error != "":
			msg = payload.Error
		case payload.Detail != "":
			msg = payload.Detail
		}
	}

	if msg == "" {
		msg = http.StatusText(status)
	}

	return &APIError{StatusCode: status, Message: msg}
}
