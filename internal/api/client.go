package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"zenban/internal/auth"
	"zenban/internal/config"
)

// refreshSkew is how close to its exp claim an access token may get
// before the client refreshes it proactively instead of eating a 401.
const refreshSkew = 60 * time.Second

// Client talks to the board API. It attaches the stored access token to
// every request and transparently recovers from access-token expiry via
// a single-flight refresh shared by all concurrent callers.
type Client struct {
	cfg      config.Config
	http     *http.Client
	store    auth.Store
	coord    *auth.Coordinator
	observer Observer
}

// NewClient creates a Client. The coordinator must be the process-wide
// singleton; sharing it is what keeps refreshes single-flight.
func NewClient(cfg config.Config, store auth.Store, coord *auth.Coordinator, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		store:    store,
		coord:    coord,
		observer: observer,
	}
}

// do performs one logical API request: marshal, attach token, send,
// refresh-and-replay once on 401. Returns the response body for 2xx
// responses and *APIError for everything else.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	start := time.Now()
	requestID := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		payload = data
	}

	access := c.currentAccess()
	if access != "" && auth.AccessExpiresSoon(access, refreshSkew) {
		refreshed, err := c.refreshAccess(ctx)
		if err == nil {
			access = refreshed
		}
		// A failed proactive refresh falls through to the reactive
		// 401 path with the stale token.
	}

	respBody, status, err := c.send(ctx, method, path, payload, access, requestID)

	// A single logical request is retried at most once.
	if err == nil && status == http.StatusUnauthorized {
		refreshed, refreshErr := c.refreshAccess(ctx)
		if refreshErr != nil {
			c.observe(method, path, status, start, requestID, refreshErr)
			return nil, refreshErr
		}
		respBody, status, err = c.send(ctx, method, path, payload, refreshed, requestID)
	}

	if err != nil {
		c.observe(method, path, 0, start, requestID, err)
		return nil, err
	}

	if status < 200 || status >= 300 {
		apiErr := &APIError{Status: status, Detail: detailFrom(respBody)}
		c.observe(method, path, status, start, requestID, apiErr)
		return nil, apiErr
	}

	c.observe(method, path, status, start, requestID, nil)
	return respBody, nil
}

// doJSON performs a request and decodes a 2xx body into out (skipped
// when out is nil or the body is empty).
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	respBody, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// send issues one HTTP round trip with the given access token attached.
func (c *Client) send(ctx context.Context, method, path string, payload []byte, access, requestID string) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading response: %w", err)
	}
	return respBody, resp.StatusCode, nil
}

// refreshAccess runs the single-flight refresh protocol. Exactly one
// caller performs the refresh call; everyone else blocks on the shared
// result. On refresh failure the stored session is cleared and every
// caller gets ErrSessionExpired. Fatal, no further retries.
func (c *Client) refreshAccess(ctx context.Context) (string, error) {
	refresher, wait := c.coord.Acquire()
	if !refresher {
		select {
		case res := <-wait:
			if res.Err != nil {
				return "", res.Err
			}
			return res.Access, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	access, err := c.performRefresh(ctx)
	if err != nil {
		c.coord.FailAll(ErrSessionExpired)
		if clearErr := c.store.Clear(); clearErr != nil {
			return "", fmt.Errorf("%w (clearing session: %v)", ErrSessionExpired, clearErr)
		}
		return "", ErrSessionExpired
	}
	c.coord.ResolveAll(access)
	return access, nil
}

// performRefresh calls the refresh endpoint directly, outside the
// intercepted path, and merges the new access token into the stored
// session, preserving the refresh token and profile.
func (c *Client) performRefresh(ctx context.Context) (string, error) {
	sess, err := c.store.Load()
	if err != nil {
		return "", fmt.Errorf("loading session: %w", err)
	}
	if sess == nil || sess.Refresh == "" {
		return "", ErrNotLoggedIn
	}

	payload, err := json.Marshal(map[string]string{"refresh": sess.Refresh})
	if err != nil {
		return "", fmt.Errorf("marshaling refresh request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/accounts/refresh/", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading refresh response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Status: resp.StatusCode, Detail: detailFrom(respBody)}
	}

	var out struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", fmt.Errorf("decoding refresh response: %w", err)
	}
	if out.Access == "" {
		return "", fmt.Errorf("refresh response missing access token")
	}

	sess.Access = out.Access
	if err := c.store.Save(sess); err != nil {
		return "", fmt.Errorf("saving refreshed session: %w", err)
	}
	return out.Access, nil
}

// currentAccess returns the stored access token, or "" when no session
// exists. A missing token is not an error at this stage; the request
// goes out bare and the server decides.
func (c *Client) currentAccess() string {
	sess, err := c.store.Load()
	if err != nil || sess == nil {
		return ""
	}
	return sess.Access
}

func (c *Client) observe(method, path string, status int, start time.Time, requestID string, err error) {
	c.observer.OnCallComplete(APICallEvent{
		Method:    method,
		Path:      path,
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
		RequestID: requestID,
		Err:       err,
	})
}

// detailFrom extracts the server's {"detail": …} message when present.
func detailFrom(body []byte) string {
	var out struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return ""
	}
	return out.Detail
}
