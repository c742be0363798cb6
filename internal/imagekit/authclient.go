package imagekit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/rajput-vishal01/videovault/internal/httpclient"
)

// AuthParams satisfies the upload flow's credential source with locally
// signed params (server-side issuance).
func (c *Client) AuthParams(_ context.Context) (AuthParams, error) {
	return c.NewAuthParams(), nil
}

// RemoteAuthClient fetches signed-upload credentials from the application's
// auth endpoint, the way a browser client does. Credential fetches retry on
// transient failure; the upload that follows does not.
type RemoteAuthClient struct {
	endpoint string
	http     *httpclient.Client

	mu        sync.Mutex
	publicKey string
}

func NewRemoteAuthClient(endpoint string, hc *httpclient.Client) *RemoteAuthClient {
	return &RemoteAuthClient{endpoint: endpoint, http: hc}
}

type authResponse struct {
	AuthenticationParameters AuthParams `json:"authenticationParameters"`
	PublicKey                string     `json:"publicKey"`
}

func (r *RemoteAuthClient) AuthParams(ctx context.Context) (AuthParams, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint, nil)
	if err != nil {
		return AuthParams{}, err
	}
	resp, err := r.http.DoWithRetry(ctx, req)
	if err != nil {
		return AuthParams{}, fmt.Errorf("fetch upload credentials: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return AuthParams{}, fmt.Errorf("fetch upload credentials: status %d", resp.StatusCode)
	}
	var out authResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return AuthParams{}, fmt.Errorf("decode upload credentials: %w", err)
	}
	if out.AuthenticationParameters.Token == "" || out.AuthenticationParameters.Signature == "" {
		return AuthParams{}, fmt.Errorf("incomplete upload credentials")
	}
	r.mu.Lock()
	r.publicKey = out.PublicKey
	r.mu.Unlock()
	return out.AuthenticationParameters, nil
}

// PublicKey returns the account public key from the last successful fetch.
func (r *RemoteAuthClient) PublicKey() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.publicKey
}
