/*
Package cfgerrors provides functionalities for programmatically handling
configuration errors produced by package [github.com/jub0bs/corsfilter].

Most users of package [github.com/jub0bs/corsfilter] have no use for this
package: the error returned by [github.com/jub0bs/corsfilter.NewPolicy]
already carries a readable message. However, tools that let operators edit
CORS properties (e.g. via some admin portal or some command-line interface)
may find this package useful: it allows them to report every configuration
mistake individually, with custom messages keyed on the offending property.
*/
package cfgerrors

import (
	"fmt"
	"iter"
)

// An UnacceptableOriginError indicates a token of the allowOrigin property
// that could not be parsed as an origin.
// The Reason field describes why parsing failed.
//
// For more details, see [github.com/jub0bs/corsfilter.NewPolicy].
type UnacceptableOriginError struct {
	Value  string // the unacceptable value that was specified
	Reason string
}

func (err *UnacceptableOriginError) Error() string {
	const tmpl = "cors: bad origin URI %q in property allowOrigin: %s"
	return fmt.Sprintf(tmpl, err.Value, err.Reason)
}

// An UnacceptableMethodError indicates a token of the supportedMethods
// property that names no known HTTP method. Tokens are upper-cased before
// being matched, and Value holds the token as specified.
type UnacceptableMethodError struct {
	Value string // the unacceptable value that was specified
}

func (err *UnacceptableMethodError) Error() string {
	const tmpl = "cors: unsupported HTTP method %q in property supportedMethods"
	return fmt.Sprintf(tmpl, err.Value)
}

// An UnacceptableHeaderNameError indicates an invalid header name.
// The Property field may take one of two values:
//   - "supportedHeaders";
//   - "exposedHeaders".
//
// The Reason field may take one of two values:
//   - "empty": the header name is empty;
//   - "invalid syntax": the header name does not start with a letter or
//     contains characters other than letters, digits, underscores and
//     hyphens.
type UnacceptableHeaderNameError struct {
	Value    string // the unacceptable value that was specified
	Property string // supportedHeaders | exposedHeaders
	Reason   string // empty | invalid syntax
}

func (err *UnacceptableHeaderNameError) Error() string {
	const tmpl = "cors: bad header name %q in property %s: %s"
	return fmt.Sprintf(tmpl, err.Value, err.Property, err.Reason)
}

// A MalformedValueError indicates a property value that could not be parsed
// as the type the property requires.
// The Type field may take one of two values:
//   - "bool": the property is a boolean (allowGenericHttpRequests,
//     allowOriginSuffixMatching, supportsCredentials);
//   - "int": the property is an integer (maxAge).
type MalformedValueError struct {
	Property string // the name of the property, without any "cors." prefix
	Value    string // the unacceptable value that was specified
	Type     string // bool | int
}

func (err *MalformedValueError) Error() string {
	const tmpl = "cors: property %s must be of type %s; got %q"
	return fmt.Sprintf(tmpl, err.Property, err.Type, err.Value)
}

// All returns an iterator over the CORS-configuration errors contained in
// err's error tree. Errors are yielded in the order in which properties are
// validated; that order may change from one release to the next. All only
// supports error values returned by [github.com/jub0bs/corsfilter.NewPolicy];
// it should not be called on any other error value.
func All(err error) iter.Seq[error] {
	return func(yield func(error) bool) {
		every(err, yield)
	}
}

func every(err error, f func(error) bool) bool {
	switch err := err.(type) {
	// Note that there's no need for any "interface { Unwrap() error }" case
	// because nowhere do we "wrap" errors; we only ever "join" them.
	case interface{ Unwrap() []error }:
		for _, err := range err.Unwrap() {
			if !every(err, f) {
				return false
			}
		}
		return true
	default:
		return f(err)
	}
}
