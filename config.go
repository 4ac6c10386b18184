package cors

import (
	"errors"
	"strconv"

	"github.com/jub0bs/corsfilter/cfgerrors"
	"github.com/jub0bs/corsfilter/internal/headers"
	"github.com/jub0bs/corsfilter/internal/methods"
	"github.com/jub0bs/corsfilter/internal/origin"
	"github.com/jub0bs/corsfilter/internal/origins"
	"github.com/jub0bs/corsfilter/internal/util"
)

// names of the properties recognized by NewPolicy
const (
	PropAllowGenericHTTPRequests  = "allowGenericHttpRequests"
	PropAllowOrigin               = "allowOrigin"
	PropAllowOriginSuffixMatching = "allowOriginSuffixMatching"
	PropSupportedMethods          = "supportedMethods"
	PropSupportedHeaders          = "supportedHeaders"
	PropExposedHeaders            = "exposedHeaders"
	PropSupportsCredentials       = "supportsCredentials"
	PropMaxAge                    = "maxAge"

	// PropPrefix is the optional prefix of property names,
	// as found in servlet-style deployment descriptors.
	PropPrefix = "cors."
)

const (
	defaultAllowOrigin      = headers.ValueWildcard
	defaultSupportedMethods = "GET, POST, HEAD, OPTIONS"
	noMaxAge                = -1

	// emptyList is a non-blank word list that contains no words.
	emptyList = ","
)

// A Policy is an immutable CORS policy. The mechanics of and interplay
// between its various properties are explained below.
// Policies are safe for concurrent use by multiple goroutines.
//
// # allowGenericHttpRequests
//
// Boolean; defaults to true. Controls whether requests that carry no Origin
// header are let through. When false, such requests are answered with
// 403 (Forbidden).
//
// # allowOrigin
//
// Either a single asterisk, which allows any origin (the default),
// or a word list of origins:
//
//	allowOrigin: https://example.com http://example.com:8080
//
// A word list is a list of words separated by commas, by whitespace,
// or by any mix of those. Each origin must be an absolute URI whose scheme is
// http, https or file; http and https origins must have a host.
// Origins are stored in their canonical form: scheme and host are
// lowercased, internationalized host names are converted to Punycode,
// and any path, query or fragment of an http or https URI is discarded.
//
// The request's Origin header, which is itself treated as a word list,
// is compared verbatim against the canonical forms of the allowed origins.
//
// # allowOriginSuffixMatching
//
// Boolean; defaults to false. When true, an origin is allowed if its
// scheme is that of some allowed origin and its "host[:port]" ends with
// that allowed origin's "host[:port]":
//
//	allowOrigin:               https://example.com
//	allowOriginSuffixMatching: true
//
// allows https://www.example.com but not http://www.example.com.
// Be aware that the comparison is a plain string-suffix test that does not
// respect DNS-label boundaries: the policy above also allows
// https://notexample.com.
//
// # supportedMethods
//
// Word list of method names; defaults to "GET, POST, HEAD, OPTIONS".
// Names are uppercased and must be one of GET, POST, HEAD, PUT, DELETE,
// TRACE, OPTIONS, CONNECT or PATCH.
//
// # supportedHeaders
//
// Word list of the request-header names that preflight requests may list
// in their Access-Control-Request-Headers header; defaults to none.
// A valid header name starts with a letter and otherwise only contains
// letters, digits, underscores and hyphens; names are case-insensitive.
//
// # exposedHeaders
//
// Word list of the response-header names that clients may read;
// defaults to none. Same syntax as supportedHeaders.
//
// # supportsCredentials
//
// Boolean; defaults to true. When true, successful responses include
// Access-Control-Allow-Credentials: true and always echo the request's
// Origin header in Access-Control-Allow-Origin.
//
// # maxAge
//
// Integer; defaults to -1. A positive value is sent in the
// Access-Control-Max-Age header of preflight responses;
// other values omit that header.
type Policy struct {
	allowGeneric     bool
	allowAnyOrigin   bool
	allowSuffix      bool
	allowedOrigins   util.SortedSet // canonical forms
	suffixTree       origins.Tree   // allowedOrigins, indexed by suffix
	methods          methods.Set
	supportedHeaders util.SortedSet // canonical names
	exposedHeaders   util.SortedSet // canonical names
	credentialed     bool
	maxAge           int

	// precomputed header values
	acam string
	acah string // empty if !(supportedHeaders.Size() > 0)
	aceh string // empty if !(exposedHeaders.Size() > 0)
	acma string // empty if !(maxAge > 0)
}

// NewPolicy builds a [Policy] out of props, a map from property names to
// property values. Property names may carry the [PropPrefix] prefix
// (e.g. "cors.allowOrigin"); if both the bare and the prefixed names
// of a property are present, the bare one wins. Unrecognized properties are
// ignored, and properties whose value is empty or consists only of
// whitespace take their default value.
//
// If some property values are invalid, NewPolicy returns a nil [*Policy]
// and an error that reports all of them; if you need to programmatically
// handle the configuration errors constitutive of that error, rely on
// package [github.com/jub0bs/corsfilter/cfgerrors].
func NewPolicy(props map[string]string) (*Policy, error) {
	var p Policy
	// Accumulate errors in a slice so as to call errors.Join at most once.
	var errs []error
	errs = p.validateBool(errs, &p.allowGeneric, props, PropAllowGenericHTTPRequests, true)
	errs = p.validateOrigins(errs, props)
	errs = p.validateBool(errs, &p.allowSuffix, props, PropAllowOriginSuffixMatching, false)
	errs = p.validateMethods(errs, props)
	errs = p.validateHeaders(errs, &p.supportedHeaders, props, PropSupportedHeaders)
	errs = p.validateHeaders(errs, &p.exposedHeaders, props, PropExposedHeaders)
	errs = p.validateBool(errs, &p.credentialed, props, PropSupportsCredentials, true)
	errs = p.validateMaxAge(errs, props)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	p.acam = p.methods.Join(headers.ValueSep)
	p.acah = p.supportedHeaders.Join(headers.ValueSep)
	p.aceh = p.exposedHeaders.Join(headers.ValueSep)
	if p.maxAge > 0 {
		p.acma = strconv.Itoa(p.maxAge)
	}
	return &p, nil
}

// lookup returns the trimmed value of property name in props, if any.
func lookup(props map[string]string, name string) (string, bool) {
	for _, k := range [...]string{name, PropPrefix + name} {
		if v := util.Whitespace.Trim(props[k]); v != "" {
			return v, true
		}
	}
	return "", false
}

func (*Policy) validateBool(
	errs []error,
	dst *bool,
	props map[string]string,
	name string,
	def bool,
) []error {
	v, found := lookup(props, name)
	if !found {
		*dst = def
		return errs
	}
	b, err := strconv.ParseBool(util.ByteLowercase(v))
	if err != nil {
		err := &cfgerrors.MalformedValueError{
			Property: name,
			Value:    v,
			Type:     "bool",
		}
		return append(errs, err)
	}
	*dst = b
	return errs
}

func (p *Policy) validateOrigins(errs []error, props map[string]string) []error {
	v, found := lookup(props, PropAllowOrigin)
	if !found {
		v = defaultAllowOrigin
	}
	if v == headers.ValueWildcard {
		p.allowAnyOrigin = true
		return errs
	}
	for _, raw := range headers.Words(v) {
		o, err := origin.Parse(raw)
		if err != nil {
			var oerr *origin.Error
			reason := err.Error()
			if errors.As(err, &oerr) {
				reason = oerr.Reason
			}
			err := &cfgerrors.UnacceptableOriginError{
				Value:  raw,
				Reason: reason,
			}
			errs = append(errs, err)
			continue
		}
		if p.allowedOrigins.Contains(o.String()) {
			continue
		}
		p.allowedOrigins.Add(o.String())
		p.suffixTree.Insert(o.Scheme(), o.Suffix())
	}
	return errs
}

func (p *Policy) validateMethods(errs []error, props map[string]string) []error {
	v, found := lookup(props, PropSupportedMethods)
	if !found {
		v = defaultSupportedMethods
	}
	for _, name := range headers.Words(v) {
		m, ok := methods.Parse(util.ByteUppercase(name))
		if !ok {
			err := &cfgerrors.UnacceptableMethodError{Value: name}
			errs = append(errs, err)
			continue
		}
		p.methods.Add(m)
	}
	return errs
}

func (*Policy) validateHeaders(
	errs []error,
	dst *util.SortedSet,
	props map[string]string,
	name string,
) []error {
	v, _ := lookup(props, name)
	for _, raw := range headers.Words(v) {
		canonical, err := headers.Canonicalize(raw)
		if err != nil {
			reason := "invalid syntax"
			var serr *headers.SyntaxError
			if errors.As(err, &serr) {
				reason = serr.Reason
			}
			err := &cfgerrors.UnacceptableHeaderNameError{
				Value:    raw,
				Property: name,
				Reason:   reason,
			}
			errs = append(errs, err)
			continue
		}
		dst.Add(canonical)
	}
	return errs
}

func (p *Policy) validateMaxAge(errs []error, props map[string]string) []error {
	v, found := lookup(props, PropMaxAge)
	if !found {
		p.maxAge = noMaxAge
		return errs
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		err := &cfgerrors.MalformedValueError{
			Property: PropMaxAge,
			Value:    v,
			Type:     "int",
		}
		return append(errs, err)
	}
	p.maxAge = n
	return errs
}

// AllowGenericHTTPRequests reports whether requests that carry no Origin
// header are let through.
func (p *Policy) AllowGenericHTTPRequests() bool {
	return p.allowGeneric
}

// AllowAnyOrigin reports whether p allows all origins.
func (p *Policy) AllowAnyOrigin() bool {
	return p.allowAnyOrigin
}

// AllowOriginSuffixMatching reports whether p allows origins by suffix.
func (p *Policy) AllowOriginSuffixMatching() bool {
	return p.allowSuffix
}

// AllowedOrigins returns the canonical forms of the origins that p lists,
// in lexicographical order. The result is empty if p allows any origin.
func (p *Policy) AllowedOrigins() []string {
	return p.allowedOrigins.ToSlice()
}

// SupportedMethods returns the names of the methods that p supports.
func (p *Policy) SupportedMethods() []string {
	var names []string
	for m := range p.methods.All {
		names = append(names, m.String())
	}
	return names
}

// SupportedHeaders returns the canonical names of the request headers that
// p supports, in lexicographical order.
func (p *Policy) SupportedHeaders() []string {
	return p.supportedHeaders.ToSlice()
}

// ExposedHeaders returns the canonical names of the response headers that
// p exposes, in lexicographical order.
func (p *Policy) ExposedHeaders() []string {
	return p.exposedHeaders.ToSlice()
}

// SupportsCredentials reports whether p allows credentialed access.
func (p *Policy) SupportsCredentials() bool {
	return p.credentialed
}

// MaxAge returns p's max-age value, or -1 if none was specified.
func (p *Policy) MaxAge() int {
	return p.maxAge
}

// IsAllowedOrigin reports whether p allows s, a single word of some
// request's Origin header.
func (p *Policy) IsAllowedOrigin(s string) bool {
	if p.allowAnyOrigin {
		return true
	}
	if p.allowSuffix {
		return p.OriginSuffixAllowed(s)
	}
	if s == "" {
		return false
	}
	return p.allowedOrigins.Contains(s)
}

// OriginSuffixAllowed reports whether raw, once parsed as an origin, has the
// scheme of some allowed origin and a "host[:port]" that ends with that
// allowed origin's "host[:port]". It returns false if raw cannot be parsed.
func (p *Policy) OriginSuffixAllowed(raw string) bool {
	o, err := origin.Parse(raw)
	if err != nil {
		return false
	}
	return p.suffixTree.Match(o.Scheme(), o.Suffix())
}

// IsSupportedMethod reports whether p supports the method named name.
// Method names are case-sensitive.
func (p *Policy) IsSupportedMethod(name string) bool {
	m, ok := methods.Parse(name)
	return ok && p.methods.Contains(m)
}

// IsSupportedHeader reports whether p supports the request header named name.
// Header names are case-insensitive.
func (p *Policy) IsSupportedHeader(name string) bool {
	canonical, err := headers.Canonicalize(name)
	return err == nil && p.supportedHeaders.Contains(canonical)
}

// Properties returns a map of properties from which [NewPolicy] builds a
// policy equivalent to p. Property names in the result are bare,
// i.e. without the [PropPrefix] prefix.
// Mutating the result does not alter p.
func (p *Policy) Properties() map[string]string {
	props := map[string]string{
		PropAllowGenericHTTPRequests:  strconv.FormatBool(p.allowGeneric),
		PropAllowOriginSuffixMatching: strconv.FormatBool(p.allowSuffix),
		PropSupportsCredentials:       strconv.FormatBool(p.credentialed),
		PropMaxAge:                    strconv.Itoa(p.maxAge),
		PropSupportedMethods:          orEmptyList(p.methods.Join(headers.ValueSep)),
		PropSupportedHeaders:          p.acah,
		PropExposedHeaders:            p.aceh,
	}
	if p.allowAnyOrigin {
		props[PropAllowOrigin] = headers.ValueWildcard
	} else {
		props[PropAllowOrigin] = orEmptyList(p.allowedOrigins.Join(" "))
	}
	return props
}

// orEmptyList returns s, unless s is empty, in which case it returns a word
// list that NewPolicy does not mistake for an absent property.
func orEmptyList(s string) string {
	if s == "" {
		return emptyList
	}
	return s
}
