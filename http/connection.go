package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptrace"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds a transfer when no other timeout is configured.
const DefaultTimeout = 30 * time.Second

// Connection dispatches requests over net/http and records what it sent.
// Method and headers are set before Transfer, the way a request layer drives
// a single outgoing call. Connection is safe for concurrent use, but callers
// sharing one Connection across requests must serialize set-then-transfer.
type Connection struct {
	httpClient *http.Client
	logger     *slog.Logger

	mu      sync.Mutex
	method  string
	headers map[string]string
	timing  TimingInfo
}

// ConnectionOption is a function that configures a Connection.
type ConnectionOption func(*Connection)

// NewConnection creates a net/http backed Connection.
//
// Example:
//
//	conn := http.NewConnection(
//	    http.WithTimeout(10*time.Second),
//	    http.WithFollowRedirects(false),
//	)
func NewConnection(options ...ConnectionOption) *Connection {
	c := &Connection{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger:  slog.Default(),
		method:  http.MethodGet,
		headers: make(map[string]string),
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// WithTimeout sets the timeout of every transfer. The default is 30 seconds.
func WithTimeout(timeout time.Duration) ConnectionOption {
	return func(c *Connection) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying *http.Client. Options applied after
// it modify the given client.
func WithHTTPClient(httpClient *http.Client) ConnectionOption {
	return func(c *Connection) {
		c.httpClient = httpClient
	}
}

// WithFollowRedirects controls whether 3xx responses are followed.
// When disabled the redirect response itself is returned.
func WithFollowRedirects(follow bool) ConnectionOption {
	return func(c *Connection) {
		if follow {
			c.httpClient.CheckRedirect = nil
			return
		}
		c.httpClient.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
// WARNING: This should only be used for testing purposes.
func WithInsecureSkipVerify() ConnectionOption {
	return func(c *Connection) {
		c.httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
}

// WithLogger sets the logger used for transfer diagnostics.
func WithLogger(logger *slog.Logger) ConnectionOption {
	return func(c *Connection) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// SetMethod sets the verb of the next transfer.
func (c *Connection) SetMethod(method string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.method = method
}

// Method returns the verb of the next transfer.
func (c *Connection) Method() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.method
}

// SetHeaders replaces the outgoing header set.
func (c *Connection) SetHeaders(headers map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers = make(map[string]string, len(headers))
	for name, value := range headers {
		c.headers[name] = value
	}
}

// Headers returns a copy of the outgoing header set.
func (c *Connection) Headers() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	headers := make(map[string]string, len(c.headers))
	for name, value := range c.headers {
		headers[name] = value
	}
	return headers
}

// Timing returns the phase durations of the last completed transfer.
func (c *Connection) Timing() TimingInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timing
}

// Transfer sends body to url with the configured method and headers and
// returns the fully read response. Status codes are not interpreted: a 500
// is a successful transfer.
func (c *Connection) Transfer(ctx context.Context, url string, body []byte) (*Response, error) {
	method := c.Method()
	headers := c.Headers()

	var bodyReader io.Reader = http.NoBody
	if len(body) > 0 {
		bodyReader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, errors.Wrap(err, "building HTTP request")
	}
	for name, value := range headers {
		httpReq.Header[name] = []string{value}
	}
	if host, ok := headers["Host"]; ok {
		httpReq.Host = host
	}

	timing := TimingInfo{StartTime: time.Now()}
	httpReq = httpReq.WithContext(httptrace.WithClientTrace(ctx, newClientTrace(&timing)))

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Debug("transfer failed", "method", method, "url", url, "error", err)
		return nil, errors.Wrap(err, "sending HTTP request")
	}
	responseTime := time.Since(timing.StartTime)

	contentTransferStart := time.Now()
	respBody, err := io.ReadAll(httpResp.Body)
	httpResp.Body.Close()
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}
	timing.ContentTransferTime = time.Since(contentTransferStart)
	timing.TotalTime = time.Since(timing.StartTime)

	resp := NewResponse(httpResp.StatusCode, httpResp.Header, respBody)
	resp.Status = httpResp.Status
	resp.ResponseTime = responseTime
	resp.Timing = timing

	c.mu.Lock()
	c.timing = timing
	c.mu.Unlock()

	c.logger.Debug("transfer complete",
		"method", method,
		"url", url,
		"status", httpResp.StatusCode,
		"bytes", len(respBody),
		"duration", timing.TotalTime)

	return resp, nil
}

// newClientTrace records connection phases into timing. Phases that did not
// happen (reused connection, plain http) stay zero.
func newClientTrace(timing *TimingInfo) *httptrace.ClientTrace {
	var dnsStart, connectStart, tlsStart time.Time
	var dnsDone, connectDone bool
	lastPhaseEnd := timing.StartTime

	return &httptrace.ClientTrace{
		DNSStart: func(httptrace.DNSStartInfo) {
			dnsStart = time.Now()
		},
		DNSDone: func(httptrace.DNSDoneInfo) {
			now := time.Now()
			timing.DNSLookupTime = now.Sub(dnsStart)
			dnsDone = true
			lastPhaseEnd = now
		},
		ConnectStart: func(network, addr string) {
			connectStart = time.Now()
		},
		ConnectDone: func(network, addr string, err error) {
			if err != nil || connectStart.IsZero() {
				return
			}
			now := time.Now()
			timing.TCPConnectTime = now.Sub(connectStart)
			connectDone = true
			lastPhaseEnd = now
		},
		TLSHandshakeStart: func() {
			if connectDone || dnsDone {
				tlsStart = time.Now()
			}
		},
		TLSHandshakeDone: func(state tls.ConnectionState, err error) {
			if err != nil || tlsStart.IsZero() {
				return
			}
			now := time.Now()
			timing.TLSHandshakeTime = now.Sub(tlsStart)
			lastPhaseEnd = now
		},
		GotFirstResponseByte: func() {
			timing.TimeToFirstByte = time.Since(lastPhaseEnd)
		},
	}
}
