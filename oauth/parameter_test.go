package oauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParameter_Equality(t *testing.T) {
	assert.Equal(t, Parameter{"key", "value"}, Parameter{Key: "key", Value: "value"})
	assert.True(t, Parameter{"key", "value"} == Parameter{"key", "value"})
	assert.False(t, Parameter{"key", "value"} == Parameter{"key", "Value"})
	assert.False(t, Parameter{"key", "value"} == Parameter{"Key", "value"})
}

func TestParameter_URLEncoded(t *testing.T) {
	p := Parameter{Key: "param with spaces", Value: "value with spaces"}
	assert.Equal(t, "param%20with%20spaces=value%20with%20spaces", p.URLEncoded())
	assert.Equal(t, "empty=", Parameter{Key: "empty"}.URLEncoded())
}

func TestParameterList_AddKeepsDuplicatesInOrder(t *testing.T) {
	var l ParameterList
	l.Add("b", "2")
	l.Add("a", "1")
	l.Add("b", "2")

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []Parameter{{"b", "2"}, {"a", "1"}, {"b", "2"}}, l.Params())
	assert.Equal(t, "b=2&a=1&b=2", l.FormURLEncoded())
}

func TestParameterList_AddAll(t *testing.T) {
	l := NewParameterList(Parameter{"one", "1"})
	l.AddAll(NewParameterList(Parameter{"two", "2"}, Parameter{"three", "3"}))
	l.AddAll(nil)

	assert.Equal(t, "one=1&two=2&three=3", l.FormURLEncoded())
}

func TestParameterList_Contains(t *testing.T) {
	l := NewParameterList(Parameter{"qsparam", "value"})

	assert.True(t, l.Contains(Parameter{"qsparam", "value"}))
	assert.False(t, l.Contains(Parameter{"qsparam", "other"}))
	assert.False(t, l.Contains(Parameter{"other", "value"}))
}

func TestParameterList_EmptyEncodesToEmptyString(t *testing.T) {
	assert.Equal(t, "", NewParameterList().FormURLEncoded())
	assert.Equal(t, "", (&ParameterList{}).String())
}

func TestParameterList_AppendTo(t *testing.T) {
	tests := []struct {
		name     string
		params   *ParameterList
		url      string
		expected string
	}{
		{
			name:     "No existing query",
			params:   NewParameterList(Parameter{"a", "1"}, Parameter{"b", "two words"}),
			url:      "http://example.com/path",
			expected: "http://example.com/path?a=1&b=two%20words",
		},
		{
			name:     "Existing query",
			params:   NewParameterList(Parameter{"b", "2"}),
			url:      "http://example.com/path?a=1",
			expected: "http://example.com/path?a=1&b=2",
		},
		{
			name:     "Empty list leaves URL alone",
			params:   NewParameterList(),
			url:      "http://example.com",
			expected: "http://example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.params.AppendTo(tt.url))
		})
	}
}

func TestParseQuerystring(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected []Parameter
	}{
		{
			name:     "Plus and percent spaces",
			query:    "qsparam=value&other+param=value+with+spaces",
			expected: []Parameter{{"qsparam", "value"}, {"other param", "value with spaces"}},
		},
		{
			name:     "Key without value",
			query:    "flag&x=1",
			expected: []Parameter{{"flag", ""}, {"x", "1"}},
		},
		{
			name:     "Split on first equals",
			query:    "expr=a=b",
			expected: []Parameter{{"expr", "a=b"}},
		},
		{
			name:     "Empty pairs skipped",
			query:    "a=1&&b=2&",
			expected: []Parameter{{"a", "1"}, {"b", "2"}},
		},
		{
			name:     "Duplicates kept",
			query:    "a=1&a=1",
			expected: []Parameter{{"a", "1"}, {"a", "1"}},
		},
		{
			name:     "Malformed escape kept",
			query:    "rate=100%&ok=%41",
			expected: []Parameter{{"rate", "100%"}, {"ok", "A"}},
		},
		{
			name:     "Empty",
			query:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseQuerystring(tt.query).Params())
		})
	}
}

func TestParameterList_Sorted(t *testing.T) {
	l := NewParameterList(
		Parameter{"oauth_nonce", "x"},
		Parameter{"a", "2"},
		Parameter{"a", "1"},
		Parameter{"c", ""},
	)

	sorted := l.Sorted()

	assert.Equal(t, "a=1&a=2&c=&oauth_nonce=x", sorted.FormURLEncoded())
	assert.Equal(t, "oauth_nonce=x&a=2&a=1&c=", l.FormURLEncoded(), "receiver must not be reordered")
}

func TestParameterList_CloneIsIndependent(t *testing.T) {
	l := NewParameterList(Parameter{"a", "1"})
	clone := l.Clone()
	clone.Add("b", "2")

	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 2, clone.Len())
}
