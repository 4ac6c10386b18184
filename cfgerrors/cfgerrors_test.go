package cfgerrors_test

import (
	"errors"
	"iter"
	"strings"
	"testing"

	"github.com/jub0bs/corsfilter/cfgerrors"
)

func TestAll(t *testing.T) {
	cases := []struct {
		desc      string
		err       error
		want      []error
		breakWhen func(error) bool
	}{
		{
			desc: "singleton",
			err:  err0,
			want: []error{
				err0,
			},
			breakWhen: alwaysFalse,
		}, {
			desc: "multi-error no break",
			err:  err4,
			want: []error{
				err2,
				err3,
			},
			breakWhen: alwaysFalse,
		}, {
			desc: "multi-error break early",
			err:  err4,
			want: []error{
				err2,
			},
			breakWhen: equal(err3),
		}, {
			desc: "single joined error no break",
			err:  err1,
			want: []error{
				err0,
			},
			breakWhen: alwaysFalse,
		}, {
			desc:      "single joined error break early",
			err:       err1,
			want:      []error{},
			breakWhen: equal(err0),
		}, {
			desc:      "complex error tree no break",
			err:       err5,
			breakWhen: alwaysFalse,
			want: []error{
				err0,
				err2,
				err3,
			},
		},
	}
	for _, tc := range cases {
		f := func(t *testing.T) {
			got := cfgerrors.All(tc.err)
			assertEqual(t, got, tc.want, tc.breakWhen)
		}
		t.Run(tc.desc, f)
	}
}

var (
	err0 = errors.New("err0")
	err1 = errors.Join(err0)
	err2 = errors.New("err2")
	err3 = errors.New("err3")
	err4 = errors.Join(err2, err3)
	err5 = errors.Join(err1, err4)
)

func assertEqual(
	t *testing.T,
	got iter.Seq[error],
	want []error,
	breakWhen func(error) bool,
) {
	t.Helper()
	var errs []error
	var i int
	for err := range got {
		if breakWhen(err) {
			return
		}
		errs = append(errs, err)
		if len(want) <= i {
			t.Fatalf("too many elements: got %v...; want %v", errs, want)
		}
		if err != want[i] {
			t.Fatalf("unexpected element: got %v...; want %v...", errs, want[:i+1])
		}
		i++
	}
	// i should now be equal to len(want)
	if i != len(want) {
		t.Fatalf("not enough elements: got %v; want %v...", errs, want)
	}
}

func alwaysFalse(_ error) bool {
	return false
}

func equal(target error) func(error) bool {
	return func(err error) bool {
		return err == target
	}
}

func TestPackageNamePrefixInErrorMessages(t *testing.T) {
	errs := []error{
		&cfgerrors.UnacceptableOriginError{Value: "ftp://example.com", Reason: "scheme must be http, https or file"},
		&cfgerrors.UnacceptableOriginError{Value: "http://", Reason: "missing host name / IP address"},
		//
		&cfgerrors.UnacceptableMethodError{Value: "FOO"},
		//
		&cfgerrors.UnacceptableHeaderNameError{Value: "1-abc", Property: "supportedHeaders", Reason: "invalid syntax"},
		&cfgerrors.UnacceptableHeaderNameError{Value: "Aaa Bbb", Property: "exposedHeaders", Reason: "invalid syntax"},
		//
		&cfgerrors.MalformedValueError{Property: "maxAge", Value: "ten", Type: "int"},
		&cfgerrors.MalformedValueError{Property: "supportsCredentials", Value: "yes", Type: "bool"},
	}
	const wantPrefix = "cors: "
	for _, err := range errs {
		if msg := err.Error(); !strings.HasPrefix(msg, wantPrefix) {
			t.Errorf("missing package-name prefix in %q", msg)
		}
	}
}

func TestErrorMessagesNameTheProperty(t *testing.T) {
	cases := []struct {
		desc string
		err  error
		want string
	}{
		{
			desc: "origin",
			err:  &cfgerrors.UnacceptableOriginError{Value: "ftp://example.com", Reason: "scheme must be http, https or file"},
			want: "allowOrigin",
		}, {
			desc: "method",
			err:  &cfgerrors.UnacceptableMethodError{Value: "FOO"},
			want: "supportedMethods",
		}, {
			desc: "exposed header",
			err:  &cfgerrors.UnacceptableHeaderNameError{Value: "-x", Property: "exposedHeaders", Reason: "invalid syntax"},
			want: "exposedHeaders",
		}, {
			desc: "max age",
			err:  &cfgerrors.MalformedValueError{Property: "maxAge", Value: "ten", Type: "int"},
			want: "maxAge",
		},
	}
	for _, tc := range cases {
		f := func(t *testing.T) {
			if msg := tc.err.Error(); !strings.Contains(msg, tc.want) {
				const tmpl = "got %q; want a message that mentions %q"
				t.Errorf(tmpl, msg, tc.want)
			}
		}
		t.Run(tc.desc, f)
	}
}

// comparability checks
var (
	_ map[cfgerrors.UnacceptableOriginError]struct{}
	_ map[cfgerrors.UnacceptableMethodError]struct{}
	_ map[cfgerrors.UnacceptableHeaderNameError]struct{}
	_ map[cfgerrors.MalformedValueError]struct{}
)
