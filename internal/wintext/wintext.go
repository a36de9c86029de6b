// Package wintext converts text between the host API's UTF-8 strings and the
// UTF-16 wide strings the Windows accessibility APIs require.
package wintext

import (
	"strings"
	"unicode/utf16"
)

// Widen converts a UTF-8 string to UTF-16 code units. Malformed byte
// sequences become U+FFFD rather than an error.
func Widen(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// Narrow converts UTF-16 code units back to a UTF-8 string. Unpaired
// surrogates become U+FFFD.
func Narrow(u []uint16) string {
	return string(utf16.Decode(u))
}

// WidenZ is Widen with a NUL terminator appended, for Win32 calls taking
// LPCWSTR. Interior NULs would truncate the string on the C side, so they
// are replaced before conversion.
func WidenZ(s string) []uint16 {
	if strings.IndexByte(s, 0) >= 0 {
		s = strings.ReplaceAll(s, "\x00", "�")
	}
	return append(utf16.Encode([]rune(s)), 0)
}

// NarrowZ converts a NUL-terminated UTF-16 buffer, stopping at the first
// NUL. Buffers without a terminator are converted in full.
func NarrowZ(u []uint16) string {
	for i, c := range u {
		if c == 0 {
			u = u[:i]
			break
		}
	}
	return string(utf16.Decode(u))
}
