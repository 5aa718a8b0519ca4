// Package jsonpath extracts single values from response bodies.
//
// JSON bodies are addressed with a JSONPath subset: $, .name, ['name'],
// ["name"] and [index]. Form-encoded bodies, as returned by OAuth 1.0 token
// endpoints, are addressed by parameter name:
//
//	token, _ := jsonpath.Extract(body, "$.oauth_token")
package jsonpath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/wesleyorama2/scribe/oauth"
)

// Expression names one path to extract.
type Expression struct {
	Name string
	Path string
}

// ParseExpression parses "name=$.path". A missing name defaults to the last
// path segment.
func ParseExpression(s string) (Expression, error) {
	name, path, found := strings.Cut(s, "=")
	if !found {
		path = s
		name = ""
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Expression{}, fmt.Errorf("empty JSONPath expression in %q", s)
	}
	if _, err := ToGJSON(path); err != nil {
		return Expression{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = lastSegment(path)
	}
	return Expression{Name: name, Path: path}, nil
}

// Extract returns the value at path. Strings are returned unquoted, other
// JSON values in their JSON form and null as "null".
func Extract(body []byte, path string) (string, error) {
	if len(body) == 0 {
		return "", fmt.Errorf("empty response body")
	}
	gpath, err := ToGJSON(path)
	if err != nil {
		return "", err
	}

	if !gjson.ValidBytes(body) {
		return extractForm(body, path)
	}

	result := gjson.GetBytes(body, gpath)
	if !result.Exists() {
		return "", fmt.Errorf("path not found: %s", path)
	}
	if result.Type == gjson.Null {
		return "null", nil
	}
	return result.String(), nil
}

// ExtractAll applies every expression and reports all failures together.
// Values that were found are returned even when others fail.
func ExtractAll(body []byte, exprs []Expression) (map[string]string, error) {
	results := make(map[string]string, len(exprs))
	var failures []string

	for _, expr := range exprs {
		value, err := Extract(body, expr.Path)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", expr.Name, err))
			continue
		}
		results[expr.Name] = value
	}

	if len(failures) > 0 {
		return results, fmt.Errorf("extraction errors: %s", strings.Join(failures, "; "))
	}
	return results, nil
}

// extractForm looks path up as a parameter of a form-encoded body. Only
// single-segment paths can address form parameters.
func extractForm(body []byte, path string) (string, error) {
	segments, err := parse(path)
	if err != nil {
		return "", err
	}
	if len(segments) != 1 || segments[0].index {
		return "", fmt.Errorf("body is not JSON and %s is not a parameter name", path)
	}
	for _, p := range oauth.ParseQuerystring(string(body)).Params() {
		if p.Key == segments[0].name {
			return p.Value, nil
		}
	}
	return "", fmt.Errorf("path not found: %s", path)
}

type segment struct {
	name  string
	index bool
}

// ToGJSON converts a JSONPath expression to gjson path syntax.
func ToGJSON(path string) (string, error) {
	segments, err := parse(path)
	if err != nil {
		return "", err
	}
	if len(segments) == 0 {
		return "@this", nil
	}
	parts := make([]string, len(segments))
	for i, s := range segments {
		if s.index {
			parts[i] = s.name
			continue
		}
		parts[i] = escape(s.name)
	}
	return strings.Join(parts, "."), nil
}

func parse(path string) ([]segment, error) {
	if path == "" {
		return nil, fmt.Errorf("empty JSONPath expression")
	}
	rest := strings.TrimPrefix(path, "$")

	var segments []segment
	for rest != "" {
		switch rest[0] {
		case '.':
			rest = rest[1:]
			end := strings.IndexAny(rest, ".[")
			if end < 0 {
				end = len(rest)
			}
			if end == 0 {
				return nil, fmt.Errorf("invalid JSONPath %q: empty name", path)
			}
			segments = append(segments, segment{name: rest[:end]})
			rest = rest[end:]

		case '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return nil, fmt.Errorf("invalid JSONPath %q: unclosed bracket", path)
			}
			inner := rest[1:end]
			rest = rest[end+1:]
			if len(inner) >= 2 && (inner[0] == '\'' || inner[0] == '"') && inner[len(inner)-1] == inner[0] {
				segments = append(segments, segment{name: inner[1 : len(inner)-1]})
				continue
			}
			if _, err := strconv.ParseUint(inner, 10, 32); err != nil {
				return nil, fmt.Errorf("invalid JSONPath %q: bad index %q", path, inner)
			}
			segments = append(segments, segment{name: inner, index: true})

		default:
			if len(segments) > 0 || strings.HasPrefix(path, "$") {
				return nil, fmt.Errorf("invalid JSONPath %q", path)
			}
			// Bare names such as "oauth_token" read as "$.oauth_token"
			rest = "." + rest
		}
	}
	return segments, nil
}

func escape(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func lastSegment(path string) string {
	segments, err := parse(path)
	if err != nil || len(segments) == 0 {
		return "value"
	}
	return segments[len(segments)-1].name
}
