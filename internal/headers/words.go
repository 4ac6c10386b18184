package headers

import "github.com/jub0bs/corsfilter/internal/util"

// Words splits s into the elements of a word list,
// i.e. a list whose elements are separated by a comma surrounded by
// optional whitespace, by whitespace alone, or by any mix of those.
// If s is empty or consists only of whitespace, Words returns nil.
//
// Words is used both for configuration values (e.g. "GET, POST HEAD")
// and for the values of the Origin and Access-Control-Request-Headers
// request headers.
//
// Empty elements only arise from consecutive commas (e.g. "a,,b")
// or from a leading comma; they are preserved, so that callers can
// reject them. Trailing empty elements (e.g. in "a,,") are dropped.
func Words(s string) []string {
	s = util.Whitespace.Trim(s)
	if s == "" {
		return nil
	}
	var words []string
	for s != "" {
		end := 0
		for end < len(s) && s[end] != ',' && !util.Whitespace.Contains(s[end]) {
			end++
		}
		words = append(words, s[:end])
		// Consume the separator: whitespace, optionally followed by a single
		// comma and more whitespace.
		i := end
		for i < len(s) && util.Whitespace.Contains(s[i]) {
			i++
		}
		if i < len(s) && s[i] == ',' {
			i++
			for i < len(s) && util.Whitespace.Contains(s[i]) {
				i++
			}
		}
		s = s[i:]
	}
	for len(words) > 0 && words[len(words)-1] == "" {
		words = words[:len(words)-1]
	}
	if len(words) == 0 {
		return nil
	}
	return words
}
