package oauth

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultCharset encodes body parameters and string payloads unless
// configured otherwise.
const DefaultCharset = "UTF-8"

// lookupCharset resolves a charset label. A nil encoding means UTF-8, which
// needs no conversion from Go strings.
func lookupCharset(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errors.Wrapf(ErrUnsupportedCharset, "charset %q", name)
	}
	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		return nil, nil
	}
	return enc, nil
}

// CheckCharset returns an error wrapping ErrUnsupportedCharset when name
// cannot be used as a payload charset.
func CheckCharset(name string) error {
	_, err := lookupCharset(name)
	return err
}

// encodeString converts s to enc. Characters enc cannot represent are
// replaced with the encoding's substitute byte.
func encodeString(enc encoding.Encoding, s string) []byte {
	if enc == nil {
		return []byte(s)
	}
	b, err := encoding.ReplaceUnsupported(enc.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return b
}
