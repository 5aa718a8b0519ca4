package oauth

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnsupportedCharset is returned when a payload charset has no known
	// encoder. It is a configuration error and is never recovered from.
	ErrUnsupportedCharset = errors.New("unsupported charset")

	// ErrInvalidOAuthParameter is returned by AddOAuthParameter for keys
	// outside the OAuth namespace.
	ErrInvalidOAuthParameter = errors.New(`OAuth parameters must start with "oauth_" or be "scope" or "realm"`)
)

// InvalidURLError reports a URL that is not a well-formed absolute URL.
type InvalidURLError struct {
	URL string
	Err error
}

func (e *InvalidURLError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid URL %q: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("invalid URL %q", e.URL)
}

func (e *InvalidURLError) Unwrap() error {
	return e.Err
}

func newInvalidURLError(rawURL string, err error) error {
	return errors.WithStack(&InvalidURLError{URL: rawURL, Err: err})
}
