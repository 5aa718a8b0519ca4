package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"code.cloudfoundry.org/bytefmt"

	"github.com/wesleyorama2/scribe/http"
	"github.com/wesleyorama2/scribe/internal/stats"
	"github.com/wesleyorama2/scribe/oauth"
)

// Formatter renders exchanges as human-readable text
type Formatter struct {
	Verbose bool
	NoColor bool

	colors *ColorScheme
}

// NewFormatter creates a new text formatter with the given options
func NewFormatter(verbose, noColor bool) *Formatter {
	return &Formatter{
		Verbose: verbose,
		NoColor: noColor,
		colors:  NewColorScheme(noColor),
	}
}

// FormatRequest formats a resolved request for display
func (f *Formatter) FormatRequest(out *oauth.Outgoing) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("▶ REQUEST: %s %s\n",
		f.colors.Method.Sprint(out.Verb),
		f.colors.URL.Sprint(out.URL)))

	if len(out.Headers) > 0 {
		buf.WriteString("  Headers:\n")
		for _, name := range sortedKeys(out.Headers) {
			buf.WriteString(fmt.Sprintf("    %s: %s\n",
				f.colors.HeaderKey.Sprint(name),
				f.colors.HeaderValue.Sprint(out.Headers[name])))
		}
	}

	if len(out.Body) > 0 {
		buf.WriteString(fmt.Sprintf("  Body (%s):\n", bytefmt.ByteSize(uint64(len(out.Body)))))
		buf.WriteString(indent(formatBody(out.Body)))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatResponse formats a response for display
func (f *Formatter) FormatResponse(resp *http.Response) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s (%dms)\n",
		f.colors.Status(resp.StatusCode).Sprint(resp.Status),
		resp.GetTotalTimeMillis()))

	if f.Verbose {
		t := resp.Timing
		buf.WriteString("  Timing:\n")
		buf.WriteString(fmt.Sprintf("    DNS Lookup:         %dms\n", t.DNSLookupTime.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    TCP Connection:     %dms\n", t.TCPConnectTime.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    TLS Handshake:      %dms\n", t.TLSHandshakeTime.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    Time to First Byte: %dms\n", t.TimeToFirstByte.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    Content Transfer:   %dms\n", t.ContentTransferTime.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    Total:              %dms\n", t.TotalTime.Milliseconds()))

		buf.WriteString("  Headers:\n")
		names := make([]string, 0, len(resp.Headers))
		for name := range resp.Headers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			for _, value := range resp.Headers[name] {
				buf.WriteString(fmt.Sprintf("    %s: %s\n",
					f.colors.HeaderKey.Sprint(name),
					f.colors.HeaderValue.Sprint(value)))
			}
		}
	}

	body, err := resp.GetBody()
	if err == nil && len(body) > 0 {
		buf.WriteString(fmt.Sprintf("  Body (%s):\n", bytefmt.ByteSize(uint64(len(body)))))
		buf.WriteString(indent(formatBody(body)))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatExtracted formats values pulled out of a response body
func (f *Formatter) FormatExtracted(values map[string]string) string {
	if len(values) == 0 {
		return ""
	}
	var buf strings.Builder
	buf.WriteString("  Extracted:\n")
	for _, name := range sortedKeys(values) {
		buf.WriteString(fmt.Sprintf("    %s = %s\n", f.colors.Highlight.Sprint(name), values[name]))
	}
	return buf.String()
}

// FormatSummary formats the aggregate of repeated sends
func (f *Formatter) FormatSummary(s stats.Summary) string {
	var buf strings.Builder

	icon := SuccessIcon(f.NoColor)
	if s.Failed > 0 || s.StatusClasses[4] > 0 || s.StatusClasses[5] > 0 {
		icon = ErrorIcon(f.NoColor)
	}
	buf.WriteString(fmt.Sprintf("%s SUMMARY: %d requests in %s, %d failed, %s received\n",
		icon, s.Count, s.Elapsed.Round(time.Millisecond), s.Failed, bytefmt.ByteSize(uint64(s.Bytes))))

	buf.WriteString(fmt.Sprintf("  Status: 2xx=%d 3xx=%d 4xx=%d 5xx=%d\n",
		s.StatusClasses[2], s.StatusClasses[3], s.StatusClasses[4], s.StatusClasses[5]))

	if s.Count > s.Failed {
		buf.WriteString("  Latency:\n")
		rows := []struct {
			label string
			value time.Duration
		}{
			{"min", s.Min}, {"mean", s.Mean}, {"p50", s.P50},
			{"p90", s.P90}, {"p95", s.P95}, {"p99", s.P99}, {"max", s.Max},
		}
		for _, row := range rows {
			buf.WriteString(fmt.Sprintf("    %-5s %s\n", f.colors.Label.Sprint(row.label), row.value))
		}
	}

	return buf.String()
}

// formatBody pretty-prints JSON bodies and returns anything else as is
func formatBody(body []byte) string {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, body, "", "  "); err != nil {
		return string(body)
	}
	return prettyJSON.String()
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, "\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
