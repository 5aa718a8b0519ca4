// Package http provides the transports that carry a resolved OAuth request
// over the network, and the Response they report back.
//
// Two transports are provided:
//   - Connection, built on net/http, records DNS, TCP, TLS and TTFB timings
//   - FastConnection, built on fasthttp, for high-volume repeated sends
//
// Both follow the same drive sequence: set the method, set the header set,
// then Transfer the body to a URL.
//
// Basic Usage:
//
//	conn := http.NewConnection(http.WithTimeout(10 * time.Second))
//	conn.SetMethod("POST")
//	conn.SetHeaders(map[string]string{
//	    "Content-Type": "application/x-www-form-urlencoded",
//	})
//
//	resp, err := conn.Transfer(ctx, "https://api.example.com/oauth/request_token", body)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Status: %d, TTFB: %v\n", resp.StatusCode, resp.Timing.TimeToFirstByte)
//
// Most callers do not drive a Connection directly; they hand it to
// oauth.NewRequest and call Send.
//
// Transfer honors context cancellation and deadlines. Status codes are never
// interpreted: a non-2xx response is returned with a nil error.
package http
