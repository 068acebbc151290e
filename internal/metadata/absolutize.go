package metadata

import (
	"regexp"
	"strings"
)

var escapedDot = regexp.MustCompile(`\\+\.`)

// Absolutize joins a possibly relative reference onto origin.
//
// The join is textual: "/x" becomes origin+"/x", anything starting with "http" is
// returned as is, and every other value is appended after origin+"/". Dot segments,
// queries and percent-encoding are left untouched. An empty reference stays empty.
func Absolutize(ref string, origin Origin) string {
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, "/"):
		return origin.String() + ref
	case strings.HasPrefix(ref, "http"):
		return ref
	default:
		return origin.String() + "/" + ref
	}
}

// CleanEscapes collapses any run of backslashes before a dot into a plain dot,
// repairing values that were escaped twice when the layout was written.
func CleanEscapes(s string) string {
	return escapedDot.ReplaceAllString(s, ".")
}
