package cors

import (
	"net/http"

	"github.com/jub0bs/corsfilter/internal/headers"
	"github.com/jub0bs/corsfilter/internal/methods"
	"github.com/jub0bs/corsfilter/internal/util"
)

const (
	msgInvalidActual    = "Invalid simple/actual CORS request"
	msgInvalidPreflight = "Invalid preflight CORS request"
	msgMissingACRM      = msgInvalidPreflight + ": Missing " + headers.ACRM + " header"
	msgBadACRH          = msgInvalidPreflight + ": Bad request header value"
)

// HandleActual checks an actual CORS request, given its method and headers,
// against p. If the request is allowed, HandleActual returns the headers to
// add to the response and a nil error; otherwise, it returns a nil
// [http.Header] and a [*RequestError].
//
// The request's Origin header is treated as a word list; the request is
// allowed if any of its words is allowed. The entire Origin header is then
// echoed in Access-Control-Allow-Origin.
func (p *Policy) HandleActual(method string, hdrs http.Header) (http.Header, error) {
	if Classify(method, hdrs) != Actual {
		return nil, &RequestError{Kind: InvalidRequest, Detail: msgInvalidActual}
	}
	origin, err := p.checkOrigin(hdrs)
	if err != nil {
		return nil, err
	}
	m, ok := methods.Parse(method)
	if !ok {
		return nil, &RequestError{Kind: UnsupportedMethod, Method: method}
	}
	if !p.methods.Contains(m) {
		return nil, &RequestError{Kind: UnsupportedMethod, Method: m.String()}
	}

	// Headers are only ever computed as a whole, once all checks have passed.
	resHdrs := make(http.Header, 3)
	resHdrs.Add(headers.ACAO, origin)
	if p.credentialed {
		resHdrs.Add(headers.ACAC, headers.ValueTrue)
	}
	if p.aceh != "" {
		resHdrs.Add(headers.ACEH, p.aceh)
	}
	return resHdrs, nil
}

// HandlePreflight checks a CORS-preflight request, given its method and
// headers, against p. If the request is allowed, HandlePreflight returns the
// headers to add to the response and a nil error; otherwise, it returns a nil
// [http.Header] and a [*RequestError].
//
// The checks run in the following order: request type, origin,
// presence of Access-Control-Request-Method, validity of the requested
// method, syntax of Access-Control-Request-Headers, support for the requested
// method, support for each of the requested headers. The first failing check
// determines the error.
func (p *Policy) HandlePreflight(method string, hdrs http.Header) (http.Header, error) {
	if Classify(method, hdrs) != Preflight {
		return nil, &RequestError{Kind: InvalidRequest, Detail: msgInvalidPreflight}
	}
	origin, err := p.checkOrigin(hdrs)
	if err != nil {
		return nil, err
	}
	acrm, found := headers.First(hdrs, headers.ACRM)
	if !found {
		return nil, &RequestError{Kind: InvalidRequest, Detail: msgMissingACRM}
	}
	m, ok := methods.Parse(util.ByteUppercase(acrm))
	if !ok {
		return nil, &RequestError{Kind: UnsupportedMethod, Method: acrm}
	}

	// Malformed header names must be reported as such, even if the requested
	// method isn't supported.
	acrh, _ := headers.First(hdrs, headers.ACRH)
	words := headers.Words(acrh)
	names := make([]string, 0, len(words))
	for _, w := range words {
		name, err := headers.Canonicalize(w)
		if err != nil {
			return nil, &RequestError{Kind: InvalidRequest, Detail: msgBadACRH}
		}
		names = append(names, name)
	}

	if !p.methods.Contains(m) {
		return nil, &RequestError{Kind: UnsupportedMethod, Method: m.String()}
	}
	for _, name := range names {
		if !p.supportedHeaders.Contains(name) {
			return nil, &RequestError{Kind: UnsupportedHeader, Header: name}
		}
	}

	resHdrs := make(http.Header, 5)
	switch {
	case p.credentialed:
		resHdrs.Add(headers.ACAO, origin)
		resHdrs.Add(headers.ACAC, headers.ValueTrue)
	case p.allowAnyOrigin:
		resHdrs.Add(headers.ACAO, headers.ValueWildcard)
	default:
		resHdrs.Add(headers.ACAO, origin)
	}
	if p.acma != "" {
		resHdrs.Add(headers.ACMA, p.acma)
	}
	resHdrs.Add(headers.ACAM, p.acam)
	if p.acah != "" {
		resHdrs.Add(headers.ACAH, p.acah)
	}
	return resHdrs, nil
}

// checkOrigin returns the request's Origin header if one of its words is
// allowed by p.
func (p *Policy) checkOrigin(hdrs http.Header) (string, error) {
	origin, _ := headers.First(hdrs, headers.Origin)
	words := headers.Words(origin)
	for _, w := range words {
		if p.IsAllowedOrigin(w) {
			return origin, nil
		}
	}
	return "", &RequestError{Kind: OriginDenied, Origins: words}
}
