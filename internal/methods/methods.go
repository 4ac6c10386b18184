package methods

import (
	"net/http"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// A Method is one of the HTTP methods that a CORS policy can list
// as supported. The set of methods is closed.
// The zero value is not a valid Method.
type Method uint8

const (
	GET Method = iota + 1
	POST
	HEAD
	PUT
	DELETE
	TRACE
	OPTIONS
	CONNECT
	PATCH

	nbMethods = iota
)

var names = [nbMethods + 1]string{
	GET:     http.MethodGet,
	POST:    http.MethodPost,
	HEAD:    http.MethodHead,
	PUT:     http.MethodPut,
	DELETE:  http.MethodDelete,
	TRACE:   http.MethodTrace,
	OPTIONS: http.MethodOptions,
	CONNECT: http.MethodConnect,
	PATCH:   http.MethodPatch,
}

// String returns m's name, e.g. "GET".
func (m Method) String() string {
	if m == 0 || m > nbMethods {
		return ""
	}
	return names[m]
}

// IsValid reports whether name is a syntactically valid method,
// [per the Fetch standard].
//
// [per the Fetch standard]: https://fetch.spec.whatwg.org/#concept-method
func IsValid(name string) bool {
	// Note: the production is identical to that of header names.
	return httpguts.ValidHeaderFieldName(name)
}

// Parse returns the Method whose name is exactly name.
// Method names are case-sensitive; callers that wish to tolerate
// lowercase input must uppercase it first.
func Parse(name string) (Method, bool) {
	if !IsValid(name) {
		return 0, false
	}
	for m := GET; m <= nbMethods; m++ {
		if names[m] == name {
			return m, true
		}
	}
	return 0, false
}

// A Set represents a set of methods.
// The zero value represents an empty set.
type Set uint16

// Add adds m to set.
func (set *Set) Add(m Method) {
	*set |= 1 << m
}

// Contains reports whether m is an element of set.
func (set Set) Contains(m Method) bool {
	return set&(1<<m) != 0
}

// Size returns the cardinality of set.
func (set Set) Size() int {
	var n int
	for m := GET; m <= nbMethods; m++ {
		if set.Contains(m) {
			n++
		}
	}
	return n
}

// All calls yield on each element of set, in declaration order
// (GET, POST, HEAD, PUT, DELETE, TRACE, OPTIONS, CONNECT, PATCH),
// until yield returns false.
func (set Set) All(yield func(Method) bool) {
	for m := GET; m <= nbMethods; m++ {
		if set.Contains(m) && !yield(m) {
			return
		}
	}
}

// Join concatenates the names of set's elements (in declaration order),
// separated by sep.
func (set Set) Join(sep string) string {
	var b strings.Builder
	for m := range set.All {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(m.String())
	}
	return b.String()
}
