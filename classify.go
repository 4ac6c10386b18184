package cors

import (
	"net/http"

	"github.com/jub0bs/corsfilter/internal/headers"
)

// A RequestType is the CORS type of an HTTP request.
type RequestType uint8

const (
	// Other denotes a request that carries no Origin header,
	// i.e. a request that is not subject to CORS.
	Other RequestType = iota
	// Actual denotes a CORS request that is not a preflight request.
	Actual
	// Preflight denotes a CORS-preflight request, i.e. an OPTIONS request
	// that carries both an Origin header and an
	// Access-Control-Request-Method header.
	Preflight
)

var requestTypeNames = [...]string{
	Other:     "",
	Actual:    "actual",
	Preflight: "preflight",
}

// String returns "actual" for [Actual], "preflight" for [Preflight],
// and the empty string otherwise.
func (t RequestType) String() string {
	if int(t) >= len(requestTypeNames) {
		return ""
	}
	return requestTypeNames[t]
}

// Classify determines the CORS type of a request from its method and
// headers. A header counts as present as soon as it occurs in hdrs,
// even with an empty value.
func Classify(method string, hdrs http.Header) RequestType {
	// see https://fetch.spec.whatwg.org/#cors-request
	if _, found := headers.First(hdrs, headers.Origin); !found {
		return Other
	}
	// see https://fetch.spec.whatwg.org/#cors-preflight-request
	if _, found := headers.First(hdrs, headers.ACRM); found && method == http.MethodOptions {
		return Preflight
	}
	return Actual
}
