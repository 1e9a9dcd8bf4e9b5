// Package federation exchanges one-time handles from the external identity
// provider for a verified identity and a pre-issued session handle.
package federation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/doyensec/safeurl"
)

// The exchange endpoint is a constant on purpose. It must never come from
// configuration, caller input, or an environment fallback: a redirectable
// endpoint here is an authentication bypass.
const exchangeURL = "https://demobackend.emergentagent.com/auth/v1/env/oauth/session-data"

const exchangeHost = "demobackend.emergentagent.com"

// ErrExchangeFailed covers every failure mode of the exchange: transport
// errors, timeouts, non-2xx responses, and unparseable bodies. Callers treat
// all of them as an invalid one-time handle.
var ErrExchangeFailed = errors.New("identity exchange failed")

// Identity is what the provider vouches for: a verified email plus profile
// fields and the session handle it already issued for this login.
type Identity struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	SessionHandle string `json:"session_token"`
}

type Client struct {
	httpClient *http.Client
	endpoint   string
}

// NewClient builds the exchange client. Outbound requests go through a
// safeurl-hardened transport pinned to the provider host.
func NewClient() *Client {
	cfg := safeurl.GetConfigBuilder().
		SetTimeout(10 * time.Second).
		SetAllowedSchemes("https").
		SetAllowedPorts(443).
		SetAllowedHosts(exchangeHost).
		Build()

	return &Client{
		httpClient: safeurl.Client(cfg).Client,
		endpoint:   exchangeURL,
	}
}

// Exchange resolves a one-time handle. Any failure is ErrExchangeFailed.
func (c *Client) Exchange(ctx context.Context, oneTimeHandle string) (Identity, error) {
	if oneTimeHandle == "" {
		return Identity{}, ErrExchangeFailed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	req.Header.Set("X-Session-ID", oneTimeHandle)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Identity{}, fmt.Errorf("%w: status %d", ErrExchangeFailed, resp.StatusCode)
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	if identity.Email == "" || identity.SessionHandle == "" {
		return Identity{}, fmt.Errorf("%w: incomplete identity", ErrExchangeFailed)
	}

	return identity, nil
}
