package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/scribe/http"
	"github.com/wesleyorama2/scribe/internal/stats"
	"github.com/wesleyorama2/scribe/oauth"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable text format
	FormatText OutputFormat = "text"
	// FormatJSON outputs one JSON document per element
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs one YAML document per element
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(name)); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", name)
	}
}

// FormatProvider is implemented by every output format
type FormatProvider interface {
	FormatRequest(out *oauth.Outgoing) string
	FormatResponse(resp *http.Response) string
	FormatExtracted(values map[string]string) string
	FormatSummary(s stats.Summary) string
}

// RequestData represents the structured data of a resolved request
type RequestData struct {
	Method    string            `json:"method" yaml:"method"`
	URL       string            `json:"url" yaml:"url"`
	Headers   map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body      string            `json:"body,omitempty" yaml:"body,omitempty"`
	Timestamp string            `json:"timestamp" yaml:"timestamp"`
}

// TimingData represents detailed timing information for an exchange
type TimingData struct {
	DNSLookup       int64 `json:"dnsLookupMs,omitempty" yaml:"dnsLookupMs,omitempty"`
	TCPConnection   int64 `json:"tcpConnectionMs,omitempty" yaml:"tcpConnectionMs,omitempty"`
	TLSHandshake    int64 `json:"tlsHandshakeMs,omitempty" yaml:"tlsHandshakeMs,omitempty"`
	TimeToFirstByte int64 `json:"timeToFirstByteMs,omitempty" yaml:"timeToFirstByteMs,omitempty"`
	ContentTransfer int64 `json:"contentTransferMs,omitempty" yaml:"contentTransferMs,omitempty"`
	Total           int64 `json:"totalMs" yaml:"totalMs"`
}

// ResponseData represents the structured data of a response
type ResponseData struct {
	StatusCode    int               `json:"statusCode" yaml:"statusCode"`
	Status        string            `json:"status" yaml:"status"`
	Headers       map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body          interface{}       `json:"body,omitempty" yaml:"body,omitempty"`
	Timing        *TimingData       `json:"timing,omitempty" yaml:"timing,omitempty"`
	ContentLength int               `json:"contentLength" yaml:"contentLength"`
	Timestamp     string            `json:"timestamp" yaml:"timestamp"`
}

// SummaryData represents the aggregate of repeated sends
type SummaryData struct {
	Requests  int64            `json:"requests" yaml:"requests"`
	Failed    int64            `json:"failed" yaml:"failed"`
	Bytes     int64            `json:"bytes" yaml:"bytes"`
	ElapsedMs int64            `json:"elapsedMs" yaml:"elapsedMs"`
	Status    map[string]int64 `json:"status" yaml:"status"`
	LatencyMs map[string]int64 `json:"latencyMs,omitempty" yaml:"latencyMs,omitempty"`
}

// StructuredFormatter emits JSON or YAML documents
type StructuredFormatter struct {
	Format  OutputFormat
	Verbose bool
}

// FormatRequest formats a request as a structured document
func (f *StructuredFormatter) FormatRequest(out *oauth.Outgoing) string {
	return f.encode(map[string]interface{}{"request": RequestData{
		Method:    out.Verb.String(),
		URL:       out.URL,
		Headers:   out.Headers,
		Body:      string(out.Body),
		Timestamp: time.Now().Format(time.RFC3339),
	}})
}

// FormatResponse formats a response as a structured document. JSON bodies
// are embedded as values, anything else as a string.
func (f *StructuredFormatter) FormatResponse(resp *http.Response) string {
	data := ResponseData{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Timestamp:  time.Now().Format(time.RFC3339),
	}

	if f.Verbose {
		data.Headers = make(map[string]string, len(resp.Headers))
		for name, values := range resp.Headers {
			data.Headers[name] = strings.Join(values, ", ")
		}
		t := resp.Timing
		data.Timing = &TimingData{
			DNSLookup:       t.DNSLookupTime.Milliseconds(),
			TCPConnection:   t.TCPConnectTime.Milliseconds(),
			TLSHandshake:    t.TLSHandshakeTime.Milliseconds(),
			TimeToFirstByte: t.TimeToFirstByte.Milliseconds(),
			ContentTransfer: t.ContentTransferTime.Milliseconds(),
			Total:           t.TotalTime.Milliseconds(),
		}
	}

	if body, err := resp.GetBody(); err == nil && len(body) > 0 {
		data.ContentLength = len(body)
		var parsed interface{}
		if err := json.Unmarshal(body, &parsed); err == nil {
			data.Body = parsed
		} else {
			data.Body = string(body)
		}
	}

	return f.encode(map[string]interface{}{"response": data})
}

// FormatExtracted formats extracted values as a structured document
func (f *StructuredFormatter) FormatExtracted(values map[string]string) string {
	if len(values) == 0 {
		return ""
	}
	return f.encode(map[string]interface{}{"extracted": values})
}

// FormatSummary formats the repeat summary as a structured document
func (f *StructuredFormatter) FormatSummary(s stats.Summary) string {
	data := SummaryData{
		Requests:  s.Count,
		Failed:    s.Failed,
		Bytes:     s.Bytes,
		ElapsedMs: s.Elapsed.Milliseconds(),
		Status: map[string]int64{
			"2xx": s.StatusClasses[2],
			"3xx": s.StatusClasses[3],
			"4xx": s.StatusClasses[4],
			"5xx": s.StatusClasses[5],
		},
	}
	if s.Count > s.Failed {
		data.LatencyMs = map[string]int64{
			"min":  s.Min.Milliseconds(),
			"mean": s.Mean.Milliseconds(),
			"p50":  s.P50.Milliseconds(),
			"p90":  s.P90.Milliseconds(),
			"p95":  s.P95.Milliseconds(),
			"p99":  s.P99.Milliseconds(),
			"max":  s.Max.Milliseconds(),
		}
	}
	return f.encode(map[string]interface{}{"summary": data})
}

func (f *StructuredFormatter) encode(v interface{}) string {
	if f.Format == FormatYAML {
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Sprintf("error: %v\n", err)
		}
		return "---\n" + string(out)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`+"\n", err.Error())
	}
	return string(out) + "\n"
}

// GetFormatter returns a formatter for the specified output format
func GetFormatter(format OutputFormat, verbose bool, noColor bool) FormatProvider {
	switch format {
	case FormatJSON, FormatYAML:
		return &StructuredFormatter{Format: format, Verbose: verbose}
	default:
		return NewFormatter(verbose, noColor)
	}
}
