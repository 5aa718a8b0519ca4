package oauth

import (
	"context"

	"github.com/wesleyorama2/scribe/http"
)

// Outgoing is a resolved request: what a Connection is asked to send.
// Resolve returns a fresh value each time and nothing else holds a reference
// to its maps or slices.
type Outgoing struct {
	Verb    Verb
	URL     string
	Headers map[string]string
	Body    []byte
}

// Resolve computes the wire form of the request from its current state:
// the complete URL, the body from BytePayload, and the header set with
// Content-Length and Content-Type derived for non-empty bodies.
func (r *Request) Resolve() *Outgoing {
	body := r.BytePayload()
	return &Outgoing{
		Verb:    r.verb,
		URL:     r.CompleteURL(),
		Headers: ComputeHeaders(r.headers, len(body), r.config.ContentType()),
		Body:    body,
	}
}

// Send resolves the request and drives the connection: method, headers,
// then one Transfer. The connection's response and error are returned
// unchanged; status codes are not interpreted and nothing is retried.
func (r *Request) Send(ctx context.Context) (*http.Response, error) {
	r.connection.SetMethod(string(r.verb))
	out := r.Resolve()
	r.connection.SetHeaders(out.Headers)

	r.logger.DebugContext(ctx, "sending request",
		"verb", out.Verb,
		"url", out.URL,
		"headers", len(out.Headers),
		"bodyLength", len(out.Body))

	return r.connection.Transfer(ctx, out.URL, out.Body)
}
