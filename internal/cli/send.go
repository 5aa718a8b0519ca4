package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/scribe/config"
	"github.com/wesleyorama2/scribe/http"
	"github.com/wesleyorama2/scribe/internal/output"
	"github.com/wesleyorama2/scribe/internal/stats"
	"github.com/wesleyorama2/scribe/oauth"
	"github.com/wesleyorama2/scribe/pkg/jsonpath"
	"github.com/wesleyorama2/scribe/pkg/jsonschema"
)

var shortcutVerbs = []oauth.Verb{oauth.GET, oauth.POST, oauth.PUT, oauth.DELETE}

func newSendCmd(globals *globalOptions) *cobra.Command {
	opts := &requestOptions{}
	cmd := &cobra.Command{
		Use:   "send VERB URL",
		Short: "Send a request with any HTTP verb",
		Example: `  scribe send PATCH https://api.example.com/items/7 -d '{"name":"x"}' -H 'Content-Type: application/json'
  scribe send POST https://api.example.com/oauth/request_token -b oauth_callback=oob --dry-run`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			verb := oauth.Verb(strings.ToUpper(args[0]))
			return runRequest(cmd, globals, opts, verb, args[1])
		},
	}
	addRequestFlags(cmd.Flags(), opts)
	return cmd
}

func newVerbCmd(globals *globalOptions, verb oauth.Verb) *cobra.Command {
	opts := &requestOptions{}
	cmd := &cobra.Command{
		Use:   strings.ToLower(verb.String()) + " URL",
		Short: fmt.Sprintf("Make a %s request to the specified URL", verb),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRequest(cmd, globals, opts, verb, args[0])
		},
	}
	addRequestFlags(cmd.Flags(), opts)
	return cmd
}

// exchange is everything one invocation needs, resolved from flags and config.
type exchange struct {
	request   *oauth.Request
	formatter output.FormatProvider
	schema    *jsonschema.Schema
	extract   []jsonpath.Expression
	logger    *slog.Logger
	out       io.Writer
}

func runRequest(cmd *cobra.Command, globals *globalOptions, opts *requestOptions, verb oauth.Verb, rawURL string) error {
	if err := opts.validate(); err != nil {
		return err
	}

	ex, err := prepare(cmd, globals, opts, verb, rawURL)
	if err != nil {
		return err
	}

	fmt.Fprint(ex.out, ex.formatter.FormatRequest(ex.request.Resolve()))
	if opts.dryRun {
		return nil
	}

	if opts.repeat == 1 {
		return ex.sendOnce(cmd.Context())
	}
	return ex.sendRepeated(cmd.Context(), opts.repeat, stats.NewPacer(opts.rate))
}

func prepare(cmd *cobra.Command, globals *globalOptions, opts *requestOptions, verb oauth.Verb, rawURL string) (*exchange, error) {
	logger := newLogger(cmd.ErrOrStderr(), globals.verbose)

	file := &config.File{}
	if globals.configPath != "" {
		loaded, err := config.LoadConfig(globals.configPath)
		if err != nil {
			return nil, err
		}
		if errs := config.Validate(loaded); len(errs) > 0 {
			msgs := make([]string, len(errs))
			for i, e := range errs {
				msgs[i] = e.Error()
			}
			return nil, fmt.Errorf("invalid config %s: %s", globals.configPath, strings.Join(msgs, "; "))
		}
		file = loaded
	}
	if globals.timeout > 0 {
		file.Transport.Timeout = globals.timeout.String()
	}

	conn, err := file.Connection(logger)
	if err != nil {
		return nil, err
	}

	req, err := oauth.NewRequest(verb, rawURL, file.OAuthConfig(),
		oauth.WithConnection(conn),
		oauth.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := applyOptions(req, opts); err != nil {
		return nil, err
	}

	format, err := output.ParseFormat(globals.format)
	if err != nil {
		return nil, err
	}
	out := cmd.OutOrStdout()

	ex := &exchange{
		request:   req,
		formatter: output.GetFormatter(format, globals.verbose, colorDisabled(out, globals.noColor)),
		logger:    logger,
		out:       out,
	}

	if opts.schema != "" {
		ex.schema, err = jsonschema.LoadFile(opts.schema)
		if err != nil {
			return nil, err
		}
	}
	for _, raw := range opts.extract {
		expr, err := jsonpath.ParseExpression(raw)
		if err != nil {
			return nil, err
		}
		ex.extract = append(ex.extract, expr)
	}

	return ex, nil
}

// applyOptions copies parameters, headers and payload flags onto req.
func applyOptions(req *oauth.Request, opts *requestOptions) error {
	for _, raw := range opts.query {
		key, value, err := parseKeyValue(raw)
		if err != nil {
			return err
		}
		req.AddQuerystringParameter(key, value)
	}
	for _, raw := range opts.body {
		key, value, err := parseKeyValue(raw)
		if err != nil {
			return err
		}
		req.AddBodyParameter(key, value)
	}
	for _, raw := range opts.headers {
		name, value, err := parseHeader(raw)
		if err != nil {
			return err
		}
		req.AddHeader(name, value)
	}
	for _, raw := range opts.oauth {
		key, value, err := parseKeyValue(raw)
		if err != nil {
			return err
		}
		if err := req.AddOAuthParameter(key, value); err != nil {
			return err
		}
	}
	if opts.realm != "" {
		req.SetRealm(opts.realm)
	}
	if header := req.AuthorizationHeader(); header != "" {
		if _, set := req.Headers()[oauth.HeaderAuthorization]; !set {
			req.AddHeader(oauth.HeaderAuthorization, header)
		}
	}

	switch {
	case opts.data != "":
		req.SetPayload(opts.data)
	case opts.dataFile != "":
		payload, err := os.ReadFile(opts.dataFile)
		if err != nil {
			return fmt.Errorf("failed to read data file: %w", err)
		}
		req.SetBytePayload(payload)
	}
	return nil
}

func (ex *exchange) sendOnce(ctx context.Context) error {
	resp, err := ex.request.Send(ctx)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	fmt.Fprint(ex.out, ex.formatter.FormatResponse(resp))
	return ex.check(resp.GetBody)
}

func (ex *exchange) sendRepeated(ctx context.Context, n int, pacer *stats.Pacer) error {
	recorder := stats.NewRecorder()

	var last *http.Response
	for i := 0; i < n; i++ {
		if err := pacer.Wait(ctx); err != nil {
			return err
		}
		start := time.Now()
		resp, err := ex.request.Send(ctx)
		if err != nil {
			ex.logger.WarnContext(ctx, "request failed", "attempt", i+1, "error", err)
			recorder.RecordFailure()
			continue
		}
		body, err := resp.GetBody()
		if err != nil {
			ex.logger.WarnContext(ctx, "reading response body", "attempt", i+1, "error", err)
			recorder.RecordFailure()
			continue
		}
		latency := resp.Timing.TotalTime
		if latency == 0 {
			latency = time.Since(start)
		}
		recorder.Record(latency, resp.StatusCode, int64(len(body)))

		last = resp
	}

	if last != nil {
		fmt.Fprint(ex.out, ex.formatter.FormatResponse(last))
	}
	summary := recorder.Summary()
	fmt.Fprint(ex.out, ex.formatter.FormatSummary(summary))

	if last == nil {
		return fmt.Errorf("all %d requests failed", summary.Count)
	}
	if err := ex.check(last.GetBody); err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d requests failed", summary.Failed, summary.Count)
	}
	return nil
}

// check runs schema validation and extraction against the response body.
func (ex *exchange) check(body func() ([]byte, error)) error {
	if ex.schema == nil && len(ex.extract) == 0 {
		return nil
	}
	data, err := body()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if ex.schema != nil {
		if err := ex.schema.Validate(data); err != nil {
			return fmt.Errorf("response does not match schema: %w", err)
		}
	}

	if len(ex.extract) > 0 {
		values, err := jsonpath.ExtractAll(data, ex.extract)
		fmt.Fprint(ex.out, ex.formatter.FormatExtracted(values))
		if err != nil {
			return err
		}
	}
	return nil
}
