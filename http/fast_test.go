package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func TestFastConnection_Transfer(t *testing.T) {
	server, got := newRecordingServer(t, http.StatusOK, "ok")

	conn := NewFastConnection(WithFastTimeout(5 * time.Second))
	conn.SetMethod("PUT")
	conn.SetHeaders(map[string]string{
		"Content-Type":   "application/x-www-form-urlencoded",
		"Content-Length": "11",
		"X-Test":         "fast",
	})

	resp, err := conn.Transfer(context.Background(), server.URL+"/resource?x=1", []byte("param=value"))
	require.NoError(t, err)

	assert.Equal(t, "PUT", got.method)
	assert.Equal(t, "/resource", got.path)
	assert.Equal(t, "x=1", got.query)
	assert.Equal(t, "param=value", got.body)
	assert.Equal(t, int64(11), got.length)
	assert.Equal(t, "fast", got.headers.Get("X-Test"))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain", resp.GetHeader("Content-Type"))
	body, err := resp.GetBodyAsString()
	require.NoError(t, err)
	assert.Equal(t, "ok", body)
	assert.Equal(t, resp.Timing, conn.Timing())
}

func TestFastConnection_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conn := NewFastConnection()
	_, err := conn.Transfer(ctx, "http://127.0.0.1:1/", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFastConnection_HeadersAndMethod(t *testing.T) {
	conn := NewFastConnection(WithFastClient(&fasthttp.Client{}))
	assert.Equal(t, "GET", conn.Method())

	conn.SetMethod("HEAD")
	conn.SetHeaders(map[string]string{"A": "1"})
	conn.SetHeaders(map[string]string{"B": "2"})

	assert.Equal(t, "HEAD", conn.Method())
	assert.Equal(t, map[string]string{"B": "2"}, conn.Headers())
}
