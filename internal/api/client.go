package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	ghAPI "github.com/cli/go-gh/v2/pkg/api"
)

type Client struct {
	rest  *ghAPI.RESTClient
	owner string
	repo  string
}

// Options configures the REST transport. Host and Token are required.
type Options struct {
	Host    string
	Token   string
	Timeout time.Duration
	// Transport overrides the HTTP round tripper; tests use it to fake GitHub.
	Transport http.RoundTripper
}

type RateLimit struct {
	Remaining int
	Limit     int
	Reset     int64
}

func NewClient(owner, repo string, opts Options) (*Client, error) {
	rest, err := ghAPI.NewRESTClient(ghAPI.ClientOptions{
		Host:         opts.Host,
		AuthToken:    opts.Token,
		Timeout:      opts.Timeout,
		Transport:    opts.Transport,
		LogIgnoreEnv: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	return &Client{rest: rest, owner: owner, repo: repo}, nil
}

func (c *Client) repoPath(path string) string {
	return fmt.Sprintf("repos/%s/%s/%s", c.owner, c.repo, path)
}

// RawRequest issues a request against the repository and returns the
// response. Non-2xx responses come back as *ghAPI.HTTPError.
func (c *Client) RawRequest(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	return c.rest.RequestWithContext(ctx, method, c.repoPath(path), body)
}

func ParseRateLimit(resp *http.Response) RateLimit {
	rl := RateLimit{}
	if resp == nil {
		return rl
	}
	rl.Remaining, _ = strconv.Atoi(resp.Header.Get("X-RateLimit-Remaining"))
	rl.Limit, _ = strconv.Atoi(resp.Header.Get("X-RateLimit-Limit"))
	rl.Reset, _ = strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64)
	return rl
}
