package cursor

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// DecodeUTF16 decodes UTF-16LE text up to the first zero code unit.
// Invalid sequences are replaced with U+FFFD.
func DecodeUTF16(b []byte) string {
	end := len(b) &^ 1
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			end = i
			break
		}
	}
	out, err := utf16le.NewDecoder().Bytes(b[:end])
	if err != nil {
		return ""
	}
	return string(out)
}

// DecodeUTF8 returns the bytes up to the first NUL as a string.
func DecodeUTF8(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// EncodeUTF16 encodes s as UTF-16LE without a terminator.
func EncodeUTF16(s string) []byte {
	out, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil
	}
	return out
}
