package oauth

import (
	"strings"

	"github.com/pkg/errors"
)

const oauthParamPrefix = "oauth_"

// AddOAuthParameter records a protocol parameter such as oauth_token or
// oauth_nonce. Keys must start with "oauth_" or be "scope" or "realm".
// OAuth parameters never reach the query string or body on their own; see
// AuthorizationHeader.
func (r *Request) AddOAuthParameter(key, value string) error {
	if !strings.HasPrefix(key, oauthParamPrefix) && key != "scope" && key != "realm" {
		return errors.Wrapf(ErrInvalidOAuthParameter, "parameter %q", key)
	}
	r.oauthParams.Add(key, value)
	return nil
}

// OAuthParams returns a copy of the OAuth protocol parameters.
func (r *Request) OAuthParams() *ParameterList {
	return r.oauthParams.Clone()
}

// SetRealm sets the realm reported in the Authorization header.
func (r *Request) SetRealm(realm string) *Request {
	r.realm = realm
	return r
}

// Realm returns the realm, or "".
func (r *Request) Realm() string {
	return r.realm
}

// AuthorizationHeader formats the OAuth parameters as an Authorization
// header value:
//
//	OAuth oauth_consumer_key="key", oauth_nonce="n%20once", realm="photos"
//
// Parameters appear in insertion order followed by the realm, if any. It
// returns "" when there are no OAuth parameters. The header is not added to
// the request automatically.
func (r *Request) AuthorizationHeader() string {
	if r.oauthParams.Len() == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("OAuth ")
	for i, p := range r.oauthParams.params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(PercentEncode(p.Key))
		b.WriteString(`="`)
		b.WriteString(PercentEncode(p.Value))
		b.WriteByte('"')
	}
	if r.realm != "" {
		b.WriteString(`, realm="`)
		b.WriteString(PercentEncode(r.realm))
		b.WriteByte('"')
	}
	return b.String()
}
