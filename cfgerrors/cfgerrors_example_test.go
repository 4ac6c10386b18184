package cfgerrors_test

import (
	"fmt"

	"github.com/jub0bs/corsfilter"
	"github.com/jub0bs/corsfilter/cfgerrors"
)

// The program below validates CORS properties submitted by an operator and
// programmatically handles the resulting error (if any) in order to report
// each configuration mistake in a human-friendly way.
func Example() {
	props := map[string]string{
		"allowOrigin":         "https://example.com ftp://example.com",
		"supportedMethods":    "GET, FETCH",
		"supportedHeaders":    "X-Foo, 1-abc",
		"supportsCredentials": "sometimes",
		"maxAge":              "3600",
	}
	if _, err := cors.NewPolicy(props); err != nil {
		for _, msg := range adaptCORSConfigErrorMessages(err) {
			fmt.Println(msg)
		}
	}
	// Output:
	// "ftp://example.com" is not an acceptable Web origin (scheme must be http, https or file).
	// "FETCH" is not an HTTP method this filter knows about.
	// "1-abc" is not a valid header name (see supportedHeaders).
	// The value of supportsCredentials must be a boolean, not "sometimes".
}

func adaptCORSConfigErrorMessages(err error) []string {
	// Modify the following logic to suit your needs.
	var msgs []string
	for err := range cfgerrors.All(err) {
		switch err := err.(type) {
		case *cfgerrors.UnacceptableOriginError:
			const tmpl = "%q is not an acceptable Web origin (%s)."
			msgs = append(msgs, fmt.Sprintf(tmpl, err.Value, err.Reason))
		case *cfgerrors.UnacceptableMethodError:
			const tmpl = "%q is not an HTTP method this filter knows about."
			msgs = append(msgs, fmt.Sprintf(tmpl, err.Value))
		case *cfgerrors.UnacceptableHeaderNameError:
			const tmpl = "%q is not a valid header name (see %s)."
			msgs = append(msgs, fmt.Sprintf(tmpl, err.Value, err.Property))
		case *cfgerrors.MalformedValueError:
			var msg string
			switch err.Type {
			case "bool":
				const tmpl = "The value of %s must be a boolean, not %q."
				msg = fmt.Sprintf(tmpl, err.Property, err.Value)
			case "int":
				const tmpl = "The value of %s must be an integer, not %q."
				msg = fmt.Sprintf(tmpl, err.Property, err.Value)
			default:
				panic("unknown type")
			}
			msgs = append(msgs, msg)
		default:
			panic("unknown configuration issue")
		}
	}
	return msgs
}
