package oauth

import "strconv"

const (
	HeaderContentLength = "Content-Length"
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
)

// ComputeHeaders returns the header set to put on the wire. It starts from a
// copy of explicit and, when bodyLength is positive, adds Content-Length and
// Content-Type (defaultContentType) unless explicit already holds that exact
// key. A request without a body gets no derived headers, whatever its verb.
func ComputeHeaders(explicit map[string]string, bodyLength int, defaultContentType string) map[string]string {
	headers := make(map[string]string, len(explicit)+2)
	for name, value := range explicit {
		headers[name] = value
	}
	if bodyLength <= 0 {
		return headers
	}
	if _, ok := headers[HeaderContentLength]; !ok {
		headers[HeaderContentLength] = strconv.Itoa(bodyLength)
	}
	if _, ok := headers[HeaderContentType]; !ok && defaultContentType != "" {
		headers[HeaderContentType] = defaultContentType
	}
	return headers
}
