package oauth

import (
	"sort"
	"strings"
)

// Parameter is a single key/value pair of a query string or form body.
// Parameters are comparable: two are equal when key and value match exactly.
type Parameter struct {
	Key   string
	Value string
}

// URLEncoded returns the percent-encoded "key=value" form of p.
func (p Parameter) URLEncoded() string {
	return PercentEncode(p.Key) + "=" + PercentEncode(p.Value)
}

// ParameterList is an ordered list of Parameters. Duplicates are kept and
// every serialization preserves insertion order.
// The zero value is an empty list ready to use.
type ParameterList struct {
	params []Parameter
}

// NewParameterList returns a list holding params in the given order.
func NewParameterList(params ...Parameter) *ParameterList {
	l := &ParameterList{}
	l.params = append(l.params, params...)
	return l
}

// ParseQuerystring builds a list from a raw query string such as
// "a=1&b=two%20words". See AddQuerystring for the parsing rules.
func ParseQuerystring(rawQuery string) *ParameterList {
	l := &ParameterList{}
	l.AddQuerystring(rawQuery)
	return l
}

// Add appends a parameter. It never deduplicates.
func (l *ParameterList) Add(key, value string) {
	l.params = append(l.params, Parameter{Key: key, Value: value})
}

// AddAll appends every parameter of other, in order.
func (l *ParameterList) AddAll(other *ParameterList) {
	if other == nil {
		return
	}
	l.params = append(l.params, other.params...)
}

// AddQuerystring appends the parameters of a raw query string. Pairs are
// split on '&' and then on the first '='; keys and values are decoded with
// PercentDecode. A pair without '=' gets an empty value, empty pairs are
// skipped.
func (l *ParameterList) AddQuerystring(rawQuery string) {
	if rawQuery == "" {
		return
	}
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		l.Add(PercentDecode(key), PercentDecode(value))
	}
}

// Contains reports whether a parameter with the same key and value is present.
func (l *ParameterList) Contains(p Parameter) bool {
	for _, param := range l.params {
		if param == p {
			return true
		}
	}
	return false
}

// Len returns the number of parameters.
func (l *ParameterList) Len() int {
	return len(l.params)
}

// Params returns a copy of the parameters in insertion order.
func (l *ParameterList) Params() []Parameter {
	return append([]Parameter(nil), l.params...)
}

// Clone returns an independent copy of l.
func (l *ParameterList) Clone() *ParameterList {
	return NewParameterList(l.params...)
}

// Sorted returns a copy ordered by key, then value. l is left untouched.
func (l *ParameterList) Sorted() *ParameterList {
	sorted := l.Clone()
	sort.SliceStable(sorted.params, func(i, j int) bool {
		a, b := sorted.params[i], sorted.params[j]
		if a.Key != b.Key {
			return a.Key < b.Key
		}
		return a.Value < b.Value
	})
	return sorted
}

// FormURLEncoded joins the encoded parameters with '&'. An empty list
// yields "".
func (l *ParameterList) FormURLEncoded() string {
	if len(l.params) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range l.params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.URLEncoded())
	}
	return b.String()
}

// AppendTo appends the encoded list to rawURL, starting with '?' when rawURL
// has no query component yet and with '&' otherwise. An empty list returns
// rawURL unchanged.
func (l *ParameterList) AppendTo(rawURL string) string {
	if len(l.params) == 0 {
		return rawURL
	}
	separator := "?"
	if strings.Contains(rawURL, "?") {
		separator = "&"
	}
	return rawURL + separator + l.FormURLEncoded()
}

func (l *ParameterList) String() string {
	return l.FormURLEncoded()
}
