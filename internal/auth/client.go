package auth

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

	"github.com/carson-networks/banca-client/internal/kvstore"
)

const (
	sessionKey    = "auth.session"
	expiryLeeway  = 10 * time.Second
	maxErrorBytes = 64 << 10
)

// Client is a GoTrue-compatible Provider. The current session is persisted
// in the key-value store so it survives restarts.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	storage kvstore.Store
	now     func() time.Time
}

var _ Provider = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

func WithClock(now func() time.Time) Option {
	return func(cl *Client) { cl.now = now }
}

func NewClient(baseURL, apiKey string, storage kvstore.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
		storage: storage,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GetSession loads the stored session, refreshing it once if it expired.
func (c *Client) GetSession(ctx context.Context) (*Session, error) {
	raw, err := c.storage.GetItem(ctx, sessionKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		_ = c.storage.RemoveItem(ctx, sessionKey)
		return nil, fmt.Errorf("auth: stored session: %w", err)
	}

	if !s.expired(c.now(), expiryLeeway) {
		return &s, nil
	}
	if s.RefreshToken == "" {
		_ = c.storage.RemoveItem(ctx, sessionKey)
		return nil, nil
	}

	var refreshed Session
	err = c.post(ctx, "/token?grant_type=refresh_token", "", map[string]string{"refresh_token": s.RefreshToken}, &refreshed)
	if err != nil {
		return nil, err
	}
	if err := c.store(ctx, &refreshed); err != nil {
		return nil, err
	}
	return &refreshed, nil
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	if err := c.post(ctx, "/token?grant_type=password", "", credentials{Email: email, Password: password}, &s); err != nil {
		return nil, err
	}
	if err := c.store(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SignUp registers a user. When the provider requires email confirmation the
// response is a bare user and the returned session has no access token.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	var body json.RawMessage
	if err := c.post(ctx, "/signup", "", credentials{Email: email, Password: password}, &body); err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, err
	}
	if s.AccessToken == "" {
		var u User
		if err := json.Unmarshal(body, &u); err != nil {
			return nil, err
		}
		return &Session{User: u}, nil
	}
	if err := c.store(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SignOut revokes the stored session. The local copy is removed even when
// the provider call fails.
func (c *Client) SignOut(ctx context.Context) error {
	s, _ := c.readStored(ctx)
	removeErr := c.storage.RemoveItem(ctx, sessionKey)
	if s == nil || s.AccessToken == "" {
		return removeErr
	}
	if err := c.post(ctx, "/logout", s.AccessToken, nil, nil); err != nil {
		return err
	}
	return removeErr
}

func (c *Client) readStored(ctx context.Context) (*Session, error) {
	raw, err := c.storage.GetItem(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) store(ctx context.Context, s *Session) error {
	if s.ExpiresAt == 0 && s.ExpiresIn > 0 {
		s.ExpiresAt = c.now().Unix() + s.ExpiresIn
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.storage.SetItem(ctx, sessionKey, string(b))
}

func (c *Client) post(ctx context.Context, path, bearer string, in any, out any) error {
	buf := new(bytes.Buffer)
	if in != nil {
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1"+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeError understands the error shapes GoTrue has used over time.
func decodeError(resp *http.Response) error {
	var payload struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
	_ = json.Unmarshal(body, &payload)

	msg := firstNonEmpty(payload.ErrorDescription, payload.Msg, payload.Message, payload.Error)
	if msg == "" {
		msg = fmt.Sprintf("auth provider: %s", resp.Status)
	}
	return &Error{Status: resp.StatusCode, Message: msg}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Endpoint is the provider base URL with the auth prefix, for logging.
func (c *Client) Endpoint() string {
	u, err := url.Parse(c.baseURL + "/auth/v1")
	if err != nil {
		return c.baseURL
	}
	return u.Redacted()
}
