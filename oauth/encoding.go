package oauth

import (
	"net/url"
	"strconv"
	"strings"
)

// PercentEncode escapes s for use in a query string or form body. It follows
// form-urlencoding except that a space becomes %20 instead of '+', which is
// what OAuth signature base strings require. A literal '+' is escaped to %2B
// by QueryEscape, so the replacement cannot collide with it.
func PercentEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// PercentDecode reverses form-urlencoding: '+' becomes a space and %XX
// sequences are decoded. Malformed sequences are not rejected; a '%' that is
// not followed by two hex digits is kept as is.
func PercentDecode(s string) string {
	if decoded, err := url.QueryUnescape(s); err == nil {
		return decoded
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s):
			if n, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
				b.WriteByte(byte(n))
				i += 2
				continue
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
