// Package amrclient talks to the SKEMA service, which turns MathML equations
// into Petri-net model documents.
package amrclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cdr.dev/slog"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/amrviz/amrmodel"
	"oss.terrastruct.com/amrviz/lib/log"
)

const (
	DefaultBaseURL  = "https://skema-rs.staging.terarium.ai"
	DefaultEndpoint = "/mathml/acset"
	PingEndpoint    = "/ping"

	// maxBody bounds how much of a response is read.
	maxBody = 64 << 20
)

var (
	// ErrNetwork is returned when the service could not be reached or the
	// response could not be read.
	ErrNetwork = errors.New("network error")
	// ErrNoEquations is returned by Convert when given nothing to convert.
	ErrNoEquations = errors.New("no equations to convert")
)

type Client struct {
	BaseURL  string
	Endpoint string
	HTTP     *http.Client
}

type Option func(*Client)

func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.Endpoint = endpoint
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.HTTP = hc
	}
}

// WithTimeout bounds every request. 0 disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if c.HTTP == nil {
			c.HTTP = &http.Client{}
		}
		hc := *c.HTTP
		hc.Timeout = d
		c.HTTP = &hc
	}
}

// New returns a client for the service at baseURL, DefaultBaseURL when empty.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Endpoint: DefaultEndpoint,
		HTTP:     &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.HTTP == nil {
		c.HTTP = &http.Client{}
	}
	if !strings.HasPrefix(c.Endpoint, "/") {
		c.Endpoint = "/" + c.Endpoint
	}
	return c
}

// Ping checks the service is up and returns what it answered.
func (c *Client) Ping(ctx context.Context) (_ string, err error) {
	defer xdefer.Errorf(&err, "failed to ping %s", c.BaseURL)

	url := c.BaseURL + PingEndpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	code, body, err := c.do(req)
	if err != nil {
		return "", err
	}
	logResponse(ctx, url, code, body)
	if code != http.StatusOK {
		return "", fmt.Errorf("%s: Code %d %q", url, code, body)
	}
	return string(body), nil
}

// Convert sends the MathML equations to the service and decodes the model it
// returns. A response other than 200 is logged and yields an empty document
// with no error, so callers cannot tell an unreachable converter from one that
// rejected the input other than by Document.Empty.
func (c *Client) Convert(ctx context.Context, mathml []string, f amrmodel.Format) (_ *amrmodel.Document, err error) {
	defer xdefer.Errorf(&err, "failed to convert %d equations", len(mathml))

	if len(mathml) == 0 {
		return nil, ErrNoEquations
	}

	payload, err := json.Marshal(mathml)
	if err != nil {
		return nil, err
	}

	url := c.BaseURL + c.Endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log.Debug(ctx, "converting equations", slog.F("url", url), slog.F("equations", len(mathml)))
	code, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	logResponse(ctx, url, code, body)
	if code != http.StatusOK {
		return amrmodel.EmptyDocument(), nil
	}
	return amrmodel.Parse(body, f)
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to read response: %v", ErrNetwork, err)
	}
	return resp.StatusCode, body, nil
}

func logResponse(ctx context.Context, url string, code int, body []byte) {
	fields := []slog.Field{
		slog.F("url", url),
		slog.F("status", code),
		slog.F("body", string(body)),
	}
	msg := fmt.Sprintf("%s: Code %d", url, code)
	if code == http.StatusOK {
		log.Info(ctx, msg, fields...)
		return
	}
	log.Warn(ctx, msg, fields...)
}
