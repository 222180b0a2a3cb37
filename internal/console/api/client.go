// internal/console/api/client.go

// Package api is the console's HTTP client for the AdminHub REST API.
// Every call resolves to an Envelope; transport failures surface as
// Success:false envelopes rather than Go errors so callers have exactly
// one failure path.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// networkError is the message callers see when the server could not be
// reached or its reply was unreadable.
const networkError = "network error: could not reach server"

// Envelope mirrors the API's response shape. Data stays raw; services
// decode it into their own types.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore
	log     *zap.Logger

	mu    sync.RWMutex
	token string
}

// New builds a client for the given base URL (e.g.
// "http://localhost:8080"), seeding the bearer token from the store.
func New(baseURL string, store TokenStore, logger *zap.Logger) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   store,
		log:     logger,
	}
	if store != nil {
		if tok, err := store.Load(); err == nil {
			c.token = tok
		} else {
			logger.Warn("token store load failed", zap.Error(err))
		}
	}
	return c
}

// Token returns the current bearer token ("" when signed out).
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken updates the in-memory token and persists it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	if c.store != nil {
		if err := c.store.Save(token); err != nil {
			c.log.Warn("token store save failed", zap.Error(err))
		}
	}
}

// ClearToken forgets the token in memory and in the store.
func (c *Client) ClearToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	if c.store != nil {
		if err := c.store.Clear(); err != nil {
			c.log.Warn("token store clear failed", zap.Error(err))
		}
	}
}

// Do performs a JSON API call. It always returns an Envelope: transport
// failures and unparseable replies come back as Success:false with the
// generic network-error message; API failures carry the server's error
// string.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any) Envelope {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return Envelope{Success: false, Error: "could not encode request: " + err.Error()}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(endpoint), reader)
	if err != nil {
		return Envelope{Success: false, Error: networkError}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	return c.send(req)
}

// Upload performs a multipart POST with a single file part plus extra
// form fields.
func (c *Client) Upload(ctx context.Context, endpoint, field, filename string, file io.Reader, fields map[string]string) Envelope {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return Envelope{Success: false, Error: "could not encode upload: " + err.Error()}
		}
	}
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return Envelope{Success: false, Error: "could not encode upload: " + err.Error()}
	}
	if _, err := io.Copy(part, file); err != nil {
		return Envelope{Success: false, Error: "could not read file: " + err.Error()}
	}
	if err := mw.Close(); err != nil {
		return Envelope{Success: false, Error: "could not encode upload: " + err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(endpoint), &buf)
	if err != nil {
		return Envelope{Success: false, Error: networkError}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req)

	return c.send(req)
}

func (c *Client) url(endpoint string) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.baseURL + endpoint
}

func (c *Client) authorize(req *http.Request) {
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}

func (c *Client) send(req *http.Request) Envelope {
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("url", req.URL.String()), zap.Error(err))
		return Envelope{Success: false, Error: networkError}
	}
	defer resp.Body.Close()

	var env Envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, 10<<20)).Decode(&env); err != nil {
		c.log.Debug("unparseable response",
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode),
		)
		return Envelope{Success: false, Error: networkError}
	}

	// A non-2xx with a well-formed envelope keeps the server's error;
	// a malformed success flag on a non-2xx is forced false.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		env.Success = false
		if env.Error == "" {
			env.Error = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
	}
	return env
}
