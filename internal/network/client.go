package network

import (
	"errors"
	"math/rand"
	"net/url"
	"sync"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	fhttpcookiejar "github.com/bogdanfinn/fhttp/cookiejar"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

var ErrRequestFailed = errors.New("request failed")

// DefaultTimeout bounds a single page fetch.
const DefaultTimeout = 30 * time.Second

// Client sends requests with a Chrome TLS fingerprint, a shared cookie jar and
// a rotating User-Agent. When a Rotator is set every request goes through the
// next healthy proxy.
type Client struct {
	http       tls_client.HttpClient
	rotator    *Rotator
	userAgents []string

	mu   sync.Mutex
	rand *rand.Rand
}

type Option func(*options)

type options struct {
	timeout time.Duration
}

// WithTimeout overrides DefaultTimeout. Values under one second are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout >= time.Second {
			o.timeout = timeout
		}
	}
}

func NewClient(rotator *Rotator, opts ...Option) (*Client, error) {
	cfg := options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	jar, _ := fhttpcookiejar.New(nil)

	client, err := tls_client.NewHttpClient(
		tls_client.NewNoopLogger(),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(int(cfg.timeout/time.Second)),
		tls_client.WithCookieJar(jar),
	)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Client{
		http:       client,
		rotator:    rotator,
		userAgents: append([]string{}, userAgents...),
		rand:       rng,
	}, nil
}

// Do sends req. A 403 or 429 answer bans the proxy that served it.
func (c *Client) Do(req *fhttp.Request) (*fhttp.Response, error) {
	proxy, _ := c.rotateProxy()
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.randomUA())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if proxy != nil {
		c.rotator.Report(proxy, resp.StatusCode)
	}
	return resp, nil
}

func (c *Client) rotateProxy() (*url.URL, error) {
	if c.rotator == nil {
		return nil, nil
	}
	proxy, err := c.rotator.Next()
	if err != nil {
		return nil, err
	}

	if proxy != nil {
		_ = c.http.SetProxy(proxy.String())
	}
	return proxy, nil
}

func (c *Client) randomUA() string {
	if len(c.userAgents) == 0 {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userAgents[c.rand.Intn(len(c.userAgents))]
}
