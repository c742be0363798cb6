// Package apiclient is the typed client for the VideoVault HTTP API, used by
// the upload CLI and by integrations.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rajput-vishal01/videovault/internal/models"
	"github.com/rajput-vishal01/videovault/internal/services"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{}}
}

// SetToken sets the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) { c.token = token }

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(raw)
	} else {
		buf = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s", path, apiErr.Error)
		}
		return fmt.Errorf("%s: request failed with status %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": password,
	}, &out)
	if err != nil {
		return "", err
	}
	c.token = out.Token
	return out.Token, nil
}

func (c *Client) GetVideos(ctx context.Context) ([]models.FeedItem, error) {
	var out []models.FeedItem
	if err := c.do(ctx, http.MethodGet, "/api/videos", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateVideo(ctx context.Context, req services.CreateVideoRequest) (*models.Video, error) {
	var out models.Video
	if err := c.do(ctx, http.MethodPost, "/api/videos", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetVideo(ctx context.Context, id string) (*models.Video, error) {
	var out models.Video
	if err := c.do(ctx, http.MethodGet, "/api/videos/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
