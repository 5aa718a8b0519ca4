package oauth

// Verb is the HTTP method of a Request. The set is open: any method token
// is accepted, the constants cover the common ones.
type Verb string

const (
	GET     Verb = "GET"
	POST    Verb = "POST"
	PUT     Verb = "PUT"
	DELETE  Verb = "DELETE"
	HEAD    Verb = "HEAD"
	OPTIONS Verb = "OPTIONS"
	TRACE   Verb = "TRACE"
	PATCH   Verb = "PATCH"
)

func (v Verb) String() string {
	return string(v)
}
