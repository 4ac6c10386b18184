package headers

import "net/http"

// header names in canonical format
const (
	// common request headers
	Origin = "Origin"

	// preflight-only request headers
	ACRM = "Access-Control-Request-Method"
	ACRH = "Access-Control-Request-Headers"

	// common response headers
	ACAO = "Access-Control-Allow-Origin"
	ACAC = "Access-Control-Allow-Credentials"

	// preflight-only response headers
	ACAM = "Access-Control-Allow-Methods"
	ACAH = "Access-Control-Allow-Headers"
	ACMA = "Access-Control-Max-Age"

	// actual-only response headers
	ACEH = "Access-Control-Expose-Headers"
)

const (
	ValueTrue     = "true"
	ValueWildcard = "*"
)

// ValueSep separates the elements of the list-based header values that
// this module writes.
const ValueSep = ", "

// First, if k is present in hdrs, returns the value associated to k in hdrs
// and true; otherwise, First returns "", false.
// Precondition: k is in canonical format (see [http.CanonicalHeaderKey]).
//
// Only the first field line counts: a header that occurs several times
// is treated as if only its first occurrence had been sent.
// A present but empty field line is still reported as found.
func First(hdrs http.Header, k string) (string, bool) {
	v, found := hdrs[k]
	if !found || len(v) == 0 {
		return "", false
	}
	return v[0], true
}
