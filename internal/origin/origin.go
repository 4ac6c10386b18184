// Package origin parses and normalizes the values of the Origin header
// and the origins listed in a CORS policy.
package origin

import (
	"errors"
	"net/netip"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/jub0bs/corsfilter/internal/util"
	"golang.org/x/net/idna"
)

const (
	schemeHTTP  = "http"
	schemeHTTPS = "https"
	schemeFile  = "file"

	schemeHostSep = "://" // scheme-host separator
	hostPortSep   = ':'   // host-port separator

	// null is the serialization of the unknown origin.
	null = "null"

	// noPort marks the absence of an explicit port.
	noPort = -1
	// maxPort is the largest valid port number.
	maxPort = 1<<16 - 1
)

// An Origin represents a (tuple) [Web origin] whose scheme is http, https,
// or file, or the unknown origin (serialized as "null").
// Origins are values: two Origins denote the same origin if and only if
// their canonical serializations (see [Origin.String]) are equal.
//
// The zero value is the unknown origin.
//
// [Web origin]: https://developer.mozilla.org/en-US/docs/Glossary/Origin
type Origin struct {
	scheme string // "" for the unknown origin
	host   string // IDNA-normalized and lowercase; empty for file origins
	port   int    // noPort if absent
	path   string // only for file origins
}

// Unknown is the unknown origin, i.e. the origin of a request whose Origin
// header is absent or equal to "null".
var Unknown = Origin{port: noPort}

// An Error indicates a malformed or unsupported origin.
type Error struct {
	Value  string // the offending value, as specified
	Reason string
}

func (err *Error) Error() string {
	return "bad origin URI: " + err.Reason
}

// Parse parses str into an [Origin].
// String "null" is parsed as the unknown origin.
// Otherwise, str must be an absolute URI whose scheme is http, https,
// or file (case-insensitively); http and https URIs must also have a host.
// Any path, query, or fragment of an http or https URI is ignored;
// only the path of a file URI is retained.
func Parse(str string) (Origin, error) {
	if str == null {
		return Unknown, nil
	}
	u, err := url.Parse(str)
	if err != nil {
		return Unknown, &Error{Value: str, Reason: unwrapURLError(err)}
	}
	// Note: url.Parse already lowercases the scheme.
	switch u.Scheme {
	case "":
		const reason = "missing scheme, must be http, https or file"
		return Unknown, &Error{Value: str, Reason: reason}
	case schemeFile:
		o := Origin{
			scheme: schemeFile,
			port:   noPort,
			path:   u.EscapedPath(),
		}
		return o, nil
	case schemeHTTP, schemeHTTPS:
		// handled below
	default:
		const reason = "scheme must be http, https or file"
		return Unknown, &Error{Value: str, Reason: reason}
	}
	host := u.Hostname()
	if host == "" {
		const reason = "missing host name / IP address"
		return Unknown, &Error{Value: str, Reason: reason}
	}
	host, err = normalizeHost(host)
	if err != nil {
		return Unknown, &Error{Value: str, Reason: err.Error()}
	}
	port := noPort
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil || maxPort < port {
			return Unknown, &Error{Value: str, Reason: "invalid port " + p}
		}
	}
	o := Origin{
		scheme: u.Scheme,
		host:   host,
		port:   port,
	}
	return o, nil
}

// normalizeHost applies the IDNA ToASCII algorithm to host (unless host is
// an IP address) and then lowercases the result.
func normalizeHost(host string) (string, error) {
	if addr, err := netip.ParseAddr(host); err == nil {
		if addr.Zone() != "" {
			return "", errZone
		}
		return util.ByteLowercase(host), nil
	}
	profileOnce.Do(initProfile)
	ascii, err := profile.ToASCII(host)
	if err != nil {
		return "", err
	}
	return util.ByteLowercase(ascii), nil
}

var errZone = errors.New("IPv6 zone identifiers are not allowed")

var (
	profileOnce sync.Once     // guards init of profile via initProfile
	profile     *idna.Profile // lazily initialized
)

func initProfile() {
	// MapForLookup implies STD3 rules (StrictDomainName) and label
	// validation; unassigned code points are tolerated by the mapping
	// tables rather than rejected outright.
	profile = idna.New(
		idna.MapForLookup(),
		idna.Transitional(true),
	)
}

func unwrapURLError(err error) string {
	if uerr, ok := err.(*url.Error); ok {
		return uerr.Err.Error()
	}
	return err.Error()
}

// String returns o's canonical serialization:
//   - "scheme://host[:port]" for http and https origins;
//   - "file://path" for file origins;
//   - "null" for the unknown origin.
func (o Origin) String() string {
	switch o.scheme {
	case "":
		return null
	case schemeFile:
		return schemeFile + schemeHostSep + o.path
	default:
		return o.scheme + schemeHostSep + o.Suffix()
	}
}

// Suffix returns the "host[:port]" part of o's serialization.
// It is only meaningful for http and https origins.
func (o Origin) Suffix() string {
	host := o.host
	if strings.IndexByte(host, hostPortSep) >= 0 { // IPv6 address
		host = "[" + host + "]"
	}
	if o.port == noPort {
		return host
	}
	return host + string(hostPortSep) + strconv.Itoa(o.port)
}

// Scheme returns o's scheme (always lowercase),
// or the empty string if o is the unknown origin.
func (o Origin) Scheme() string {
	return o.scheme
}

// IsUnknown reports whether o is the unknown origin.
func (o Origin) IsUnknown() bool {
	return o.scheme == ""
}

// Equal reports whether o and other denote the same origin.
func (o Origin) Equal(other Origin) bool {
	return o.String() == other.String()
}

// EqualString reports whether o's canonical serialization is s.
// Note that s is not normalized: a non-canonical serialization of o
// (e.g. one containing uppercase letters) is reported as unequal.
func (o Origin) EqualString(s string) bool {
	return o.String() == s
}
