package internal

import "strings"

// SplitDelim splits s on a single-byte delimiter into its non-empty
// segments, preserving order.
func SplitDelim(s string, delim byte) []string {
	var segs []string
	for _, seg := range strings.Split(s, string(delim)) {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}

// Join joins segments with "/". An empty sequence joins to "".
func Join(segs []string) string {
	return strings.Join(segs, "/")
}

// HasSuffixFold tests case-insensitively whether s ends with suffix.
func HasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
