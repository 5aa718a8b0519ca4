// Package oauthtest provides an in-memory Connection for testing code that
// sends oauth requests.
package oauthtest

import (
	"context"
	"sync"

	"github.com/wesleyorama2/scribe/http"
)

// ConnectionStub records what it is given instead of performing I/O.
// Every Transfer answers with Response, or with Err when it is set.
type ConnectionStub struct {
	// Response is returned by Transfer. Nil means an empty 200 OK.
	Response *http.Response

	// Err, when set, is returned by Transfer instead of a response.
	Err error

	mu        sync.Mutex
	method    string
	headers   map[string]string
	url       string
	body      []byte
	transfers int
}

// NewConnectionStub returns a stub answering 200 OK with an empty body.
func NewConnectionStub() *ConnectionStub {
	return &ConnectionStub{headers: make(map[string]string)}
}

func (s *ConnectionStub) SetMethod(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.method = method
}

func (s *ConnectionStub) Method() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.method
}

func (s *ConnectionStub) SetHeaders(headers map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.headers = make(map[string]string, len(headers))
	for name, value := range headers {
		s.headers[name] = value
	}
}

func (s *ConnectionStub) Headers() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	headers := make(map[string]string, len(s.headers))
	for name, value := range s.headers {
		headers[name] = value
	}
	return headers
}

// Transfer records url and body and returns the canned outcome.
func (s *ConnectionStub) Transfer(ctx context.Context, url string, body []byte) (*http.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.url = url
	s.body = append([]byte{}, body...)
	s.transfers++
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Response != nil {
		return s.Response, nil
	}
	return http.NewResponse(200, nil, nil), nil
}

// URL returns the URL of the last transfer.
func (s *ConnectionStub) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

// Body returns the body of the last transfer.
func (s *ConnectionStub) Body() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte{}, s.body...)
}

// Transfers returns how many times Transfer was called.
func (s *ConnectionStub) Transfers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transfers
}
