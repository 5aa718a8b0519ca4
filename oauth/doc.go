// Package oauth builds the HTTP requests an OAuth client sends and hands
// them to a pluggable transport.
//
// A Request collects a verb, a URL, query parameters, form body parameters
// or a raw payload, and headers. On Send it resolves them into their wire
// form and drives a Connection once:
//
//	req, err := oauth.NewRequest(oauth.POST, "http://example.com/oauth/request_token", cfg)
//	if err != nil {
//	    return err
//	}
//	req.AddBodyParameter("param with spaces", "value with spaces")
//	resp, err := req.Send(ctx)
//
// Encoding rules:
//   - keys and values are percent-encoded with a space as %20, never '+'
//   - a payload set with SetPayload or SetBytePayload replaces body parameters
//   - a non-empty body gets Content-Length and Content-Type headers unless
//     the caller set a header with exactly that name
//   - a request without a body gets no derived headers, whatever its verb
//
// Signatures and token exchange are not computed here. Callers store
// protocol parameters with AddOAuthParameter and attach AuthorizationHeader
// themselves.
//
// Transports live in package http; oauthtest provides a recording stub.
package oauth
