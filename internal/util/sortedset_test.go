package util_test

import (
	"slices"
	"testing"

	"github.com/jub0bs/corsfilter/internal/util"
)

func TestSortedSet(t *testing.T) {
	cases := []struct {
		desc  string
		elems []string
		// expectations
		size   int
		slice  []string
		joined string
	}{
		{
			desc: "empty set",
			size: 0,
		}, {
			desc:   "singleton set",
			elems:  []string{"X-Foo"},
			size:   1,
			slice:  []string{"X-Foo"},
			joined: "X-Foo",
		}, {
			desc:   "no dupes",
			elems:  []string{"X-Foo", "X-Bar", "X-Baz"},
			size:   3,
			slice:  []string{"X-Bar", "X-Baz", "X-Foo"},
			joined: "X-Bar, X-Baz, X-Foo",
		}, {
			desc:   "some dupes",
			elems:  []string{"X-Foo", "X-Bar", "X-Foo"},
			size:   2,
			slice:  []string{"X-Bar", "X-Foo"},
			joined: "X-Bar, X-Foo",
		},
	}
	for _, tc := range cases {
		f := func(t *testing.T) {
			set := util.NewSortedSet(tc.elems...)
			if size := set.Size(); size != tc.size {
				const tmpl = "NewSortedSet(%q...).Size(): got %d; want %d"
				t.Errorf(tmpl, tc.elems, size, tc.size)
			}
			s := set.ToSlice()
			if !slices.Equal(s, tc.slice) {
				const tmpl = "NewSortedSet(%q...).ToSlice(): got %q; want %q"
				t.Errorf(tmpl, tc.elems, s, tc.slice)
			}
			if got := slices.Collect(set.All); !slices.Equal(got, tc.slice) {
				const tmpl = "NewSortedSet(%q...).All: got %q; want %q"
				t.Errorf(tmpl, tc.elems, got, tc.slice)
			}
			if got := set.Join(", "); got != tc.joined {
				const tmpl = "NewSortedSet(%q...).Join: got %q; want %q"
				t.Errorf(tmpl, tc.elems, got, tc.joined)
			}
			for _, e := range tc.elems {
				if !set.Contains(e) {
					const tmpl = "NewSortedSet(%q...) does not contain %q, but it should"
					t.Errorf(tmpl, tc.elems, e)
				}
			}
			for _, e := range []string{"", "X-Qux", "x-foo", "X-Foo-Bar-Baz"} {
				if set.Contains(e) {
					const tmpl = "NewSortedSet(%q...) contains %q, but it should not"
					t.Errorf(tmpl, tc.elems, e)
				}
			}
		}
		t.Run(tc.desc, f)
	}
}

func TestSortedSetToSliceIsDefensiveCopy(t *testing.T) {
	set := util.NewSortedSet("b", "a")
	s := set.ToSlice()
	s[0] = "z"
	if !set.Contains("a") || set.Contains("z") {
		t.Errorf("mutating the result of ToSlice altered the set: %q", set.ToSlice())
	}
}
