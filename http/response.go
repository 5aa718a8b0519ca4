package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"
)

// TimingInfo stores the phase durations of a single transfer.
// Phases a transport cannot observe are left at zero.
type TimingInfo struct {
	// StartTime is when the transfer started
	StartTime time.Time

	// DNSLookupTime is the time spent resolving the host
	DNSLookupTime time.Duration

	// TCPConnectTime is the time spent establishing the TCP connection
	TCPConnectTime time.Duration

	// TLSHandshakeTime is the time spent in the TLS handshake (https only)
	TLSHandshakeTime time.Duration

	// TimeToFirstByte is measured from the end of the last connection phase
	TimeToFirstByte time.Duration

	// ContentTransferTime is the time spent reading the response body
	ContentTransferTime time.Duration

	// TotalTime is the time from transfer start to fully read body
	TotalTime time.Duration
}

// Response is what a Connection reports back after a transfer.
type Response struct {
	// StatusCode is the HTTP status code (e.g., 200, 404, 500)
	StatusCode int

	// Status is the HTTP status string (e.g., "200 OK")
	Status string

	// Headers contains the response headers
	Headers http.Header

	// Body is the response body. It is backed by memory, closing it is optional.
	Body io.ReadCloser

	// ResponseTime is the time until the headers were received
	ResponseTime time.Duration

	// Timing holds per-phase durations when the transport records them
	Timing TimingInfo

	rawBody []byte
	parsed  bool
}

// NewResponse builds a fully buffered Response. Transports and test doubles
// use it so every Response can be read more than once.
func NewResponse(statusCode int, headers http.Header, body []byte) *Response {
	if headers == nil {
		headers = make(http.Header)
	}
	status := http.StatusText(statusCode)
	if status != "" {
		status = strconv.Itoa(statusCode) + " " + status
	} else {
		status = strconv.Itoa(statusCode)
	}
	return &Response{
		StatusCode: statusCode,
		Status:     status,
		Headers:    headers,
		Body:       io.NopCloser(bytes.NewReader(body)),
		rawBody:    body,
		parsed:     true,
	}
}

// GetBody returns the response body as a byte array.
// The body is cached, so this method can be called multiple times.
func (r *Response) GetBody() ([]byte, error) {
	if r.parsed {
		return r.rawBody, nil
	}
	if r.Body == nil {
		r.parsed = true
		return nil, nil
	}

	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.rawBody = body
	r.parsed = true
	return body, nil
}

// GetBodyAsString returns the response body as a string.
func (r *Response) GetBodyAsString() (string, error) {
	body, err := r.GetBody()
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetBodyAsJSON unmarshals the response body into v.
func (r *Response) GetBodyAsJSON(v interface{}) error {
	body, err := r.GetBody()
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// GetHeader returns the first value of the named header, or "".
func (r *Response) GetHeader(key string) string {
	return r.Headers.Get(key)
}

// IsSuccess returns true if the response status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsRedirect returns true if the response status code is in the 3xx range.
func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

// IsClientError returns true if the response status code is in the 4xx range.
func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

// IsServerError returns true if the response status code is in the 5xx range.
func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode < 600
}

// IsError returns true for 4xx and 5xx responses.
func (r *Response) IsError() bool {
	return r.IsClientError() || r.IsServerError()
}

// GetTotalTimeMillis returns the total transfer time in milliseconds.
func (r *Response) GetTotalTimeMillis() int64 {
	return r.Timing.TotalTime.Milliseconds()
}
