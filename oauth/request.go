package oauth

import (
	"log/slog"
	"net/url"

	"golang.org/x/text/encoding"

	"github.com/wesleyorama2/scribe/http"
)

type payloadKind int

const (
	noPayload payloadKind = iota
	textPayload
	binaryPayload
)

// Request assembles one outgoing call: verb, URL, query and body parameters
// or a raw payload, and headers. Mutators return the Request so calls can be
// chained, and Send may be called any number of times; each call resolves
// the current state again.
//
// A Request is not safe for concurrent mutation. Its read-only methods may be
// called concurrently as long as no mutation or Send runs at the same time.
type Request struct {
	verb        Verb
	url         string
	querystring *ParameterList
	body        *ParameterList
	oauthParams *ParameterList
	headers     map[string]string
	realm       string

	kind          payloadKind
	stringPayload string
	bytePayload   []byte

	charset string
	encoder encoding.Encoding

	config     Config
	connection Connection
	logger     *slog.Logger
}

// RequestOption configures a Request at construction.
type RequestOption func(*Request)

// WithConnection sets the transport. The default is http.NewConnection().
func WithConnection(conn Connection) RequestOption {
	return func(r *Request) {
		if conn != nil {
			r.connection = conn
		}
	}
}

// WithLogger sets the logger used when sending. The default is slog.Default().
func WithLogger(logger *slog.Logger) RequestOption {
	return func(r *Request) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRequest creates a Request for verb and rawURL. Any query component of
// rawURL is parsed into the query parameters; the rest becomes the base URL.
// It fails with *InvalidURLError when rawURL is not an absolute URL, and with
// ErrUnsupportedCharset when cfg names an unknown charset. cfg may be nil and
// is copied, never modified.
//
// Example:
//
//	req, err := oauth.NewRequest(oauth.POST, "https://api.example.com/statuses/update", cfg)
//	if err != nil {
//	    return err
//	}
//	req.AddBodyParameter("status", "hello world").
//	    AddHeader("Accept", "application/json")
//	resp, err := req.Send(ctx)
func NewRequest(verb Verb, rawURL string, cfg *Config, opts ...RequestOption) (*Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, newInvalidURLError(rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, newInvalidURLError(rawURL, nil)
	}

	config := cfg.clone()
	charset := config.Charset
	if charset == "" {
		charset = DefaultCharset
	}
	enc, err := lookupCharset(charset)
	if err != nil {
		return nil, err
	}

	querystring := ParseQuerystring(u.RawQuery)
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""

	r := &Request{
		verb:        verb,
		url:         u.String(),
		querystring: querystring,
		body:        &ParameterList{},
		oauthParams: &ParameterList{},
		headers:     make(map[string]string),
		charset:     charset,
		encoder:     enc,
		config:      config,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.connection == nil {
		r.connection = http.NewConnection()
	}
	return r, nil
}

// AddQuerystringParameter appends a query parameter.
func (r *Request) AddQuerystringParameter(key, value string) *Request {
	r.querystring.Add(key, value)
	return r
}

// AddBodyParameter appends a form body parameter. Body parameters are
// ignored on the wire while a payload is set.
func (r *Request) AddBodyParameter(key, value string) *Request {
	r.body.Add(key, value)
	return r
}

// AddHeader sets a header, replacing any previous value of the same
// case-sensitive name. Caller headers take precedence over derived ones.
func (r *Request) AddHeader(name, value string) *Request {
	r.headers[name] = value
	return r
}

// SetPayload sets a text payload, replacing any earlier payload. It is
// encoded in the request charset and takes precedence over body parameters.
func (r *Request) SetPayload(payload string) *Request {
	r.kind = textPayload
	r.stringPayload = payload
	r.bytePayload = nil
	return r
}

// SetBytePayload sets a binary payload, replacing any earlier payload. It is
// sent as is and takes precedence over body parameters.
func (r *Request) SetBytePayload(payload []byte) *Request {
	r.kind = binaryPayload
	r.stringPayload = ""
	r.bytePayload = append([]byte{}, payload...)
	return r
}

// SetCharset changes the encoding of body parameters and text payloads.
// The empty string selects DefaultCharset.
func (r *Request) SetCharset(charset string) error {
	if charset == "" {
		charset = DefaultCharset
	}
	enc, err := lookupCharset(charset)
	if err != nil {
		return err
	}
	r.charset = charset
	r.encoder = enc
	return nil
}

// SetConnection replaces the transport. A nil conn restores the default.
func (r *Request) SetConnection(conn Connection) *Request {
	if conn == nil {
		conn = http.NewConnection()
	}
	r.connection = conn
	return r
}

// Verb returns the request method.
func (r *Request) Verb() Verb {
	return r.verb
}

// URL returns the base URL: scheme, host and path without query.
func (r *Request) URL() string {
	return r.url
}

// CompleteURL returns the base URL followed by the encoded query parameters.
func (r *Request) CompleteURL() string {
	return r.querystring.AppendTo(r.url)
}

// SanitizedURL returns the base URL without the default port of its scheme,
// the form OAuth signature base strings use. Userinfo is dropped.
func (r *Request) SanitizedURL() string {
	u, err := url.Parse(r.url)
	if err != nil {
		return r.url
	}
	u.User = nil
	switch {
	case u.Scheme == "http" && u.Port() == "80":
		u.Host = u.Host[:len(u.Host)-len(":80")]
	case u.Scheme == "https" && u.Port() == "443":
		u.Host = u.Host[:len(u.Host)-len(":443")]
	}
	return u.String()
}

// QuerystringParams returns a copy of the query parameters.
func (r *Request) QuerystringParams() *ParameterList {
	return r.querystring.Clone()
}

// BodyParams returns a copy of the body parameters.
func (r *Request) BodyParams() *ParameterList {
	return r.body.Clone()
}

// Headers returns a copy of the caller-set headers. Derived headers are only
// computed when the request is resolved.
func (r *Request) Headers() map[string]string {
	headers := make(map[string]string, len(r.headers))
	for name, value := range r.headers {
		headers[name] = value
	}
	return headers
}

// StringPayload returns the text payload, or "" when none is set or the
// payload is binary.
func (r *Request) StringPayload() string {
	return r.stringPayload
}

// BytePayload returns the body as it goes on the wire: the explicit payload
// when one is set, otherwise the form-encoded body parameters. It is empty
// when neither is present.
func (r *Request) BytePayload() []byte {
	switch r.kind {
	case binaryPayload:
		return append([]byte{}, r.bytePayload...)
	case textPayload:
		return encodeString(r.encoder, r.stringPayload)
	default:
		return encodeString(r.encoder, r.body.FormURLEncoded())
	}
}

// Charset returns the payload charset label.
func (r *Request) Charset() string {
	return r.charset
}

// Config returns a copy of the configuration the request was built with.
func (r *Request) Config() Config {
	return r.config.clone()
}

// Connection returns the transport the request sends through.
func (r *Request) Connection() Connection {
	return r.connection
}
