package headers

import (
	"net/http"

	"github.com/jub0bs/corsfilter/internal/util"
)

// A Name is a header name in canonical format, i.e. hyphen-separated tokens
// each starting with an uppercase character and otherwise lowercase
// (e.g. "X-Requested-With").
// Because case is normalized at construction time,
// two Names are equal if and only if their canonical strings are equal.
// The zero value is not a valid Name.
type Name struct {
	canonical string
}

// ParseName validates raw and returns the corresponding [Name].
func ParseName(raw string) (Name, error) {
	s, err := Canonicalize(raw)
	if err != nil {
		return Name{}, err
	}
	return Name{canonical: s}, nil
}

// String returns n's canonical format.
func (n Name) String() string {
	return n.canonical
}

// A SyntaxError indicates a malformed header name.
type SyntaxError struct {
	Value  string // the malformed value, as specified
	Reason string // empty | invalid syntax
}

func (err *SyntaxError) Error() string {
	if err.Reason == "empty" {
		return "the header field name must not be an empty string"
	}
	return "the header field name " + quote(err.Value) + " has invalid syntax"
}

// Canonicalize trims raw of surrounding whitespace, checks that the result
// starts with an ASCII letter and otherwise only contains ASCII letters,
// digits, underscores, and hyphens, and returns its canonical format.
// Canonicalize is idempotent.
func Canonicalize(raw string) (string, error) {
	name := util.Whitespace.Trim(raw)
	if name == "" {
		return "", &SyntaxError{Value: raw, Reason: "empty"}
	}
	if !isValidName(name) {
		return "", &SyntaxError{Value: raw, Reason: "invalid syntax"}
	}
	// For names that pass the check above, http.CanonicalHeaderKey
	// uppercases exactly the first byte of each hyphen-separated token
	// and lowercases all other letters.
	return http.CanonicalHeaderKey(name), nil
}

func isValidName(name string) bool {
	if !util.IsLetter(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if c := name[i]; c != '-' && !util.IsWordByte(c) {
			return false
		}
	}
	return true
}

func quote(s string) string {
	return `"` + s + `"`
}
