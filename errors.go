package cors

import (
	"net/http"
	"strings"
)

// An ErrorKind classifies the reasons for which a CORS request is rejected.
type ErrorKind uint8

const (
	// InvalidRequest indicates a request whose shape does not match its
	// CORS type, or whose Access-Control-Request-Headers header is malformed.
	InvalidRequest ErrorKind = iota
	// OriginDenied indicates a request whose origin the policy does not allow.
	OriginDenied
	// UnsupportedMethod indicates a request whose (requested) method
	// is unknown or not supported by the policy.
	UnsupportedMethod
	// UnsupportedHeader indicates a preflight request that asks for
	// a header that the policy does not support.
	UnsupportedHeader
)

// kinds maps each ErrorKind to its response status and base message.
var kinds = [...]struct {
	name   string
	status int
	msg    string
}{
	InvalidRequest:    {"invalid_request", http.StatusBadRequest, "Invalid CORS request"},
	OriginDenied:      {"origin_denied", http.StatusForbidden, "CORS origin denied"},
	UnsupportedMethod: {"unsupported_method", http.StatusMethodNotAllowed, "Unsupported HTTP method"},
	UnsupportedHeader: {"unsupported_header", http.StatusForbidden, "Unsupported HTTP request header"},
}

func (k ErrorKind) String() string {
	if int(k) >= len(kinds) {
		return "unknown"
	}
	return kinds[k].name
}

// Status returns the HTTP status code of responses to requests rejected
// for reasons of kind k.
func (k ErrorKind) Status() int {
	if int(k) >= len(kinds) {
		return http.StatusInternalServerError
	}
	return kinds[k].status
}

// A RequestError indicates why a CORS request was rejected.
// Which of its fields are meaningful depends on its Kind.
type RequestError struct {
	Kind    ErrorKind
	Detail  string   // InvalidRequest only: what is wrong with the request
	Origins []string // OriginDenied only: the words of the Origin header
	Method  string   // UnsupportedMethod only: the method, if known
	Header  string   // UnsupportedHeader only: the canonical header name
}

func (err *RequestError) Error() string {
	switch err.Kind {
	case InvalidRequest:
		if err.Detail != "" {
			return err.Detail
		}
		return kinds[InvalidRequest].msg
	case OriginDenied:
		return kinds[OriginDenied].msg + ": " + strings.Join(err.Origins, " ")
	case UnsupportedMethod:
		if err.Method == "" {
			return kinds[UnsupportedMethod].msg
		}
		return kinds[UnsupportedMethod].msg + ": " + err.Method
	case UnsupportedHeader:
		return kinds[UnsupportedHeader].msg + ": " + err.Header
	default:
		return "unknown CORS error"
	}
}

// Status returns the HTTP status code of the response to the rejected request.
func (err *RequestError) Status() int {
	return err.Kind.Status()
}
