package amber

import "strings"

// CanonicalMAC converts the telemetry-native MAC representation, a hex
// string like "0x9c63c00358d0", into the canonical lower-case
// colon-separated form "9c:63:c0:03:58:d0". Any input that is not exactly
// 12 hex digits after prefix stripping yields ok=false rather than a
// best-effort guess.
func CanonicalMAC(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 12 {
		return "", false
	}
	for _, c := range s {
		if !isHexDigit(c) {
			return "", false
		}
	}
	var b strings.Builder
	for i := 0; i < 12; i += 2 {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(s[i : i+2])
	}
	return b.String(), true
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}
