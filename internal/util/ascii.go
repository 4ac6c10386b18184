package util

import "strings"

// An ASCIISet represents a set of ASCII bytes.
type ASCIISet [8]uint32

// MakeASCIISet creates a set of ASCII characters.
// All bytes in chars are assumed to be less than utf8.RuneSelf.
// This implementation is adapted from that of the strings package.
func MakeASCIISet(chars string) ASCIISet {
	var as ASCIISet
	for i := 0; i < len(chars); i++ {
		c := chars[i]
		as[c/32] |= 1 << (c % 32)
	}
	return as
}

// Contains reports whether c is inside the set.
func (as *ASCIISet) Contains(c byte) bool {
	return (as[c/32] & (1 << (c % 32))) != 0
}

// Trim returns s without the leading and trailing bytes that belong to as.
func (as *ASCIISet) Trim(s string) string {
	start := 0
	for start < len(s) && as.Contains(s[start]) {
		start++
	}
	end := len(s)
	for end > start && as.Contains(s[end-1]) {
		end--
	}
	return s[start:end]
}

// Whitespace contains the bytes that Java-style regular expressions
// (and this module's configuration format) treat as whitespace.
var Whitespace = MakeASCIISet(" \t\n\v\f\r")

// IsLetter reports whether c is an ASCII letter.
func IsLetter(c byte) bool {
	// see https://go.googlesource.com/go/+/refs/tags/go1.24.2/src/net/textproto/reader.go#678
	const mask = 0 |
		(1<<26-1)<<'A' |
		(1<<26-1)<<'a'
	return ((uint64(1)<<c)&(mask&(1<<64-1)) |
		(uint64(1)<<(c-64))&(mask>>64)) != 0
}

// IsWordByte reports whether c is an ASCII letter, digit, or underscore.
func IsWordByte(c byte) bool {
	const mask = 0 |
		(1<<10-1)<<'0' |
		(1<<26-1)<<'A' |
		(1<<26-1)<<'a' |
		1<<'_'
	return ((uint64(1)<<c)&(mask&(1<<64-1)) |
		(uint64(1)<<(c-64))&(mask>>64)) != 0
}

// ByteLowercase returns a [byte-lowercase] version of str.
//
// [byte-lowercase]: https://infra.spec.whatwg.org/#byte-lowercase
func ByteLowercase(str string) string {
	return strings.Map(byteLowercaseOne, str)
}

func byteLowercaseOne(asciiRune rune) rune {
	if 'A' <= asciiRune && asciiRune <= 'Z' {
		return asciiRune + toLower
	}
	return asciiRune
}

// ByteUppercase returns a [byte-uppercase] version of str.
//
// [byte-uppercase]: https://infra.spec.whatwg.org/#byte-uppercase
func ByteUppercase(str string) string {
	return strings.Map(byteUppercaseOne, str)
}

func byteUppercaseOne(asciiRune rune) rune {
	if 'a' <= asciiRune && asciiRune <= 'z' {
		return asciiRune - toLower
	}
	return asciiRune
}

const toLower = 'a' - 'A'
