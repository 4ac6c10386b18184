package headers_test

import (
	"slices"
	"testing"

	"github.com/jub0bs/corsfilter/internal/headers"
)

func TestWords(t *testing.T) {
	cases := []struct {
		desc string
		s    string
		want []string
	}{
		{desc: "empty", s: "", want: nil},
		{desc: "whitespace only", s: " \t ", want: nil},
		{desc: "single", s: "GET", want: []string{"GET"}},
		{desc: "space", s: "GET POST HEAD", want: []string{"GET", "POST", "HEAD"}},
		{desc: "comma", s: "GET,POST,HEAD", want: []string{"GET", "POST", "HEAD"}},
		{desc: "mixed 1", s: "GET, POST, HEAD", want: []string{"GET", "POST", "HEAD"}},
		{desc: "mixed 2", s: "GET , POST , HEAD", want: []string{"GET", "POST", "HEAD"}},
		{desc: "mixed 3", s: "GET POST,HEAD\tOPTIONS", want: []string{"GET", "POST", "HEAD", "OPTIONS"}},
		{desc: "surrounding whitespace", s: "  X-Foo, X-Bar  ", want: []string{"X-Foo", "X-Bar"}},
		{desc: "consecutive commas", s: "a,,b", want: []string{"a", "", "b"}},
		{desc: "leading comma", s: ",a", want: []string{"", "a"}},
		{desc: "trailing commas", s: "a,,", want: []string{"a"}},
		{desc: "only a comma", s: " , ", want: nil},
		{
			desc: "origins",
			s:    "http://example.com https://example.org:8080",
			want: []string{"http://example.com", "https://example.org:8080"},
		},
	}
	for _, tc := range cases {
		f := func(t *testing.T) {
			got := headers.Words(tc.s)
			if !slices.Equal(got, tc.want) {
				t.Errorf("Words(%q): got %q; want %q", tc.s, got, tc.want)
			}
		}
		t.Run(tc.desc, f)
	}
}
