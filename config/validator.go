package config

import (
	"fmt"
	"strings"

	"github.com/wesleyorama2/scribe/oauth"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Path is the dotted path to the invalid field
	Path string

	// Message describes the validation error
	Message string
}

// Error returns the error message.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Validate checks a configuration file and returns every problem found.
// An empty slice indicates the file is usable.
//
// Credentials are optional: unsigned requests need none.
func Validate(file *File) []error {
	var errs []error

	if file.Provider.APISecret != "" && file.Provider.APIKey == "" {
		errs = append(errs, ValidationError{
			Path:    "provider.apiKey",
			Message: "apiKey is required when apiSecret is set",
		})
	}

	if err := oauth.CheckCharset(file.Provider.Charset); err != nil {
		errs = append(errs, ValidationError{
			Path:    "provider.charset",
			Message: err.Error(),
		})
	}

	kind := strings.ToLower(file.Transport.Kind)
	switch kind {
	case "", TransportNetHTTP, TransportFastHTTP:
	default:
		errs = append(errs, ValidationError{
			Path:    "transport.kind",
			Message: fmt.Sprintf("must be %q or %q, got %q", TransportNetHTTP, TransportFastHTTP, file.Transport.Kind),
		})
	}

	if kind == TransportFastHTTP && file.Transport.FollowRedirects {
		errs = append(errs, ValidationError{
			Path:    "transport.followRedirects",
			Message: "redirects are not followed by the fasthttp transport",
		})
	}

	if d, err := ParseDurationString(file.Transport.Timeout); err != nil {
		errs = append(errs, ValidationError{
			Path:    "transport.timeout",
			Message: err.Error(),
		})
	} else if d < 0 {
		errs = append(errs, ValidationError{
			Path:    "transport.timeout",
			Message: "timeout must not be negative",
		})
	}

	return errs
}
