package packet

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

var wireCharset atomic.Pointer[encoding.Encoding]

func init() {
	var utf8 encoding.Encoding = unicode.UTF8
	wireCharset.Store(&utf8)
}

// SetCharset selects the encoding used for S fields, by WHATWG label
// ("utf-8", "big5", "shift_jis", ...).
func SetCharset(label string) error {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return fmt.Errorf("charset %q: %w", label, err)
	}
	wireCharset.Store(&enc)
	return nil
}

// Charset returns the canonical name of the active wire charset.
func Charset() string {
	name, err := htmlindex.Name(*wireCharset.Load())
	if err != nil {
		return "utf-8"
	}
	return name
}

func decodeString(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	if isASCII(raw) {
		return string(raw)
	}
	decoded, err := (*wireCharset.Load()).NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

func encodeString(s string) []byte {
	if isASCII([]byte(s)) {
		return []byte(s)
	}
	encoded, err := (*wireCharset.Load()).NewEncoder().Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return encoded
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}
