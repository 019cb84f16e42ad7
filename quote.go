package regexp

import "unicode/utf8"

// QuoteMeta returns a pattern that matches the literal text s by
// escaping every metacharacter in it.
//
// Example:
//
//	regexp.QuoteMeta("1+1=2?") // `1\+1=2\?`
func QuoteMeta(s string) string {
	var b []byte
	for _, c := range s {
		switch c {
		case '\\', '.', '+', '*', '?', '(', ')', '|', '[', ']', '{', '}', '^', '$':
			b = append(b, '\\')
		}
		b = utf8.AppendRune(b, c)
	}
	return string(b)
}
