package output

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	scribehttp "github.com/wesleyorama2/scribe/http"
	"github.com/wesleyorama2/scribe/internal/stats"
	"github.com/wesleyorama2/scribe/oauth"
)

func sampleOutgoing() *oauth.Outgoing {
	return &oauth.Outgoing{
		Verb: oauth.POST,
		URL:  "http://example.com/statuses?x=1",
		Headers: map[string]string{
			"Content-Type":   oauth.DefaultContentType,
			"Content-Length": "11",
		},
		Body: []byte("param=value"),
	}
}

func sampleResponse() *scribehttp.Response {
	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")
	resp := scribehttp.NewResponse(200, headers, []byte(`{"id":7,"text":"hi"}`))
	resp.Timing.TotalTime = 42 * time.Millisecond
	resp.Timing.DNSLookupTime = 3 * time.Millisecond
	return resp
}

func TestFormatter_FormatRequest(t *testing.T) {
	f := NewFormatter(false, true)
	got := f.FormatRequest(sampleOutgoing())

	assert.Contains(t, got, "▶ REQUEST: POST http://example.com/statuses?x=1\n")
	// Headers are sorted by name
	assert.Contains(t, got, "    Content-Length: 11\n    Content-Type: application/x-www-form-urlencoded\n")
	assert.Contains(t, got, "  Body (11B):\n    param=value\n")
}

func TestFormatter_FormatRequestWithoutBody(t *testing.T) {
	f := NewFormatter(false, true)
	got := f.FormatRequest(&oauth.Outgoing{Verb: oauth.GET, URL: "http://example.com"})

	assert.Equal(t, "▶ REQUEST: GET http://example.com\n", got)
}

func TestFormatter_FormatResponse(t *testing.T) {
	f := NewFormatter(false, true)
	got := f.FormatResponse(sampleResponse())

	assert.Contains(t, got, "◀ RESPONSE: 200 OK (42ms)\n")
	assert.Contains(t, got, "    {\n      \"id\": 7,")
	assert.NotContains(t, got, "Timing:")
	assert.NotContains(t, got, "Headers:")
}

func TestFormatter_FormatResponseVerbose(t *testing.T) {
	f := NewFormatter(true, true)
	got := f.FormatResponse(sampleResponse())

	assert.Contains(t, got, "  Timing:\n")
	assert.Contains(t, got, "DNS Lookup:         3ms")
	assert.Contains(t, got, "    Content-Type: application/json\n")
}

func TestFormatter_Colors(t *testing.T) {
	colored := NewFormatter(false, false).FormatRequest(sampleOutgoing())
	plain := NewFormatter(false, true).FormatRequest(sampleOutgoing())

	assert.Contains(t, colored, "\x1b[")
	assert.NotContains(t, plain, "\x1b[")
}

func TestFormatter_FormatExtracted(t *testing.T) {
	f := NewFormatter(false, true)
	assert.Equal(t, "", f.FormatExtracted(nil))
	assert.Equal(t, "  Extracted:\n    a = 1\n    b = 2\n", f.FormatExtracted(map[string]string{"b": "2", "a": "1"}))
}

func TestFormatter_FormatSummary(t *testing.T) {
	r := stats.NewRecorder()
	r.Record(10*time.Millisecond, 200, 1024)
	r.Record(20*time.Millisecond, 200, 1024)
	s := r.Summary()

	got := NewFormatter(false, true).FormatSummary(s)
	assert.True(t, strings.HasPrefix(got, "✓ SUMMARY: 2 requests in "))
	assert.Contains(t, got, "0 failed, 2K received")
	assert.Contains(t, got, "Status: 2xx=2 3xx=0 4xx=0 5xx=0")
	assert.Contains(t, got, "p99")

	r.RecordFailure()
	got = NewFormatter(false, true).FormatSummary(r.Summary())
	assert.True(t, strings.HasPrefix(got, "✗ SUMMARY: 3 requests"))
}

func TestStructuredFormatter_JSON(t *testing.T) {
	f := GetFormatter(FormatJSON, true, true)

	var req struct {
		Request RequestData `json:"request"`
	}
	require.NoError(t, json.Unmarshal([]byte(f.FormatRequest(sampleOutgoing())), &req))
	assert.Equal(t, "POST", req.Request.Method)
	assert.Equal(t, "param=value", req.Request.Body)
	assert.Equal(t, "11", req.Request.Headers["Content-Length"])

	var resp struct {
		Response ResponseData `json:"response"`
	}
	require.NoError(t, json.Unmarshal([]byte(f.FormatResponse(sampleResponse())), &resp))
	assert.Equal(t, 200, resp.Response.StatusCode)
	assert.Equal(t, map[string]interface{}{"id": float64(7), "text": "hi"}, resp.Response.Body)
	require.NotNil(t, resp.Response.Timing)
	assert.Equal(t, int64(42), resp.Response.Timing.Total)
}

func TestStructuredFormatter_YAML(t *testing.T) {
	f := GetFormatter(FormatYAML, false, true)
	out := f.FormatExtracted(map[string]string{"token": "abc"})
	require.True(t, strings.HasPrefix(out, "---\n"))

	var doc map[string]map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "abc", doc["extracted"]["token"])
}

func TestStructuredFormatter_NonJSONBody(t *testing.T) {
	f := &StructuredFormatter{Format: FormatJSON}
	resp := scribehttp.NewResponse(200, nil, []byte("oauth_token=abc"))

	var doc struct {
		Response ResponseData `json:"response"`
	}
	require.NoError(t, json.Unmarshal([]byte(f.FormatResponse(resp)), &doc))
	assert.Equal(t, "oauth_token=abc", doc.Response.Body)
	assert.Nil(t, doc.Response.Timing)
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"", "text", "JSON", "yaml"} {
		_, err := ParseFormat(name)
		assert.NoError(t, err, name)
	}
	_, err := ParseFormat("junit")
	assert.Error(t, err)
}

func TestColorScheme_Status(t *testing.T) {
	s := NoColorScheme()
	assert.Same(t, s.StatusOK, s.Status(204))
	assert.Same(t, s.StatusWarn, s.Status(302))
	assert.Same(t, s.StatusError, s.Status(401))
	assert.Same(t, s.StatusError, s.Status(503))
}
