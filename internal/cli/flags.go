package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// requestOptions holds the flags that shape one request.
type requestOptions struct {
	query    []string
	body     []string
	headers  []string
	data     string
	dataFile string
	realm    string
	oauth    []string

	repeat  int
	rate    float64
	extract []string
	schema  string
	dryRun  bool
}

func addRequestFlags(flags *pflag.FlagSet, opts *requestOptions) {
	flags.StringArrayVarP(&opts.query, "query", "q", nil, "Query parameter key=value (repeatable)")
	flags.StringArrayVarP(&opts.body, "body", "b", nil, "Form body parameter key=value (repeatable)")
	flags.StringArrayVarP(&opts.headers, "header", "H", nil, "Header 'Name: value' (repeatable)")
	flags.StringVarP(&opts.data, "data", "d", "", "Raw text payload; replaces form body parameters")
	flags.StringVar(&opts.dataFile, "data-file", "", "Read a binary payload from a file")
	flags.StringArrayVar(&opts.oauth, "oauth", nil, "OAuth protocol parameter key=value, sent as the Authorization header (repeatable)")
	flags.StringVar(&opts.realm, "realm", "", "Realm for the Authorization header")
	flags.IntVarP(&opts.repeat, "repeat", "n", 1, "Send the request N times, then print the last successful response and latency percentiles")
	flags.Float64Var(&opts.rate, "rate", 0, "Limit repeated sends to this many per second (0 means unlimited)")
	flags.StringArrayVarP(&opts.extract, "extract", "e", nil, "Extract name=$.path from the response body (repeatable)")
	flags.StringVar(&opts.schema, "schema", "", "Validate the response body against a JSON Schema file")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "Print the resolved request without sending it")
}

func (o *requestOptions) validate() error {
	if o.repeat < 1 {
		return fmt.Errorf("--repeat must be at least 1, got %d", o.repeat)
	}
	if o.rate < 0 {
		return fmt.Errorf("--rate must not be negative, got %g", o.rate)
	}
	if o.data != "" && o.dataFile != "" {
		return fmt.Errorf("--data and --data-file are mutually exclusive")
	}
	return nil
}

// parseKeyValue splits "key=value". The value may be empty or contain '='.
func parseKeyValue(s string) (string, string, error) {
	key, value, found := strings.Cut(s, "=")
	if !found || key == "" {
		return "", "", fmt.Errorf("invalid parameter %q: expected key=value", s)
	}
	return key, value, nil
}

// parseHeader splits "Name: value" and trims both sides.
func parseHeader(s string) (string, string, error) {
	name, value, found := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if !found || name == "" {
		return "", "", fmt.Errorf("invalid header %q: expected 'Name: value'", s)
	}
	return name, strings.TrimSpace(value), nil
}
