package headers

import (
	"net/http"
	"testing"
)

// This check is important because, otherwise, index expressions
// involving a http.Header and one of those names would yield
// unexpected results.
func TestThatAllRelevantHeaderNamesAreInCanonicalFormat(t *testing.T) {
	headerNames := []string{
		Origin,
		ACRM,
		ACRH,
		ACAO,
		ACAC,
		ACAM,
		ACAH,
		ACMA,
		ACEH,
	}
	for _, name := range headerNames {
		if http.CanonicalHeaderKey(name) != name {
			t.Errorf("header name %q is not in canonical format", name)
		}
		if got, err := Canonicalize(name); err != nil || got != name {
			t.Errorf("Canonicalize(%q): got %q, %v; want %q, <nil>", name, got, err, name)
		}
	}
}

func TestFirst(t *testing.T) {
	cases := []struct {
		desc      string
		hdrs      http.Header
		wantValue string
		wantFound bool
	}{
		{
			desc: "absent",
			hdrs: http.Header{},
		}, {
			desc: "nil slice",
			hdrs: http.Header{Origin: nil},
		}, {
			desc:      "empty value",
			hdrs:      http.Header{Origin: {""}},
			wantFound: true,
		}, {
			desc:      "single field line",
			hdrs:      http.Header{Origin: {"https://example.com"}},
			wantValue: "https://example.com",
			wantFound: true,
		}, {
			desc:      "multiple field lines",
			hdrs:      http.Header{Origin: {"https://example.com", "https://example.org"}},
			wantValue: "https://example.com",
			wantFound: true,
		},
	}
	for _, tc := range cases {
		f := func(t *testing.T) {
			value, found := First(tc.hdrs, Origin)
			if value != tc.wantValue || found != tc.wantFound {
				const tmpl = "got %q, %t; want %q, %t"
				t.Errorf(tmpl, value, found, tc.wantValue, tc.wantFound)
			}
		}
		t.Run(tc.desc, f)
	}
}
