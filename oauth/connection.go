package oauth

import (
	"context"

	"github.com/wesleyorama2/scribe/http"
)

// Connection is the transport a Request drives. Send calls SetMethod, then
// SetHeaders with the final header set, then Transfer exactly once.
//
// http.Connection and http.FastConnection perform real I/O;
// oauthtest.ConnectionStub records what it was given.
type Connection interface {
	SetMethod(method string)
	Method() string

	// SetHeaders replaces the whole outgoing header set.
	SetHeaders(headers map[string]string)

	// Headers returns a copy of the outgoing header set.
	Headers() map[string]string

	// Transfer blocks until the exchange completes or fails. Timeouts and
	// cancellation are the transport's business, driven by ctx.
	Transfer(ctx context.Context, url string, body []byte) (*http.Response, error)
}

var (
	_ Connection = (*http.Connection)(nil)
	_ Connection = (*http.FastConnection)(nil)
)
