package types

import (
	"os"
	"strings"
)

// SplitList splits an OS path-list style value (e.g. "/a:/b" on unix)
// and drops empty entries.
func SplitList(value string) []string {
	parts := strings.Split(value, string(os.PathListSeparator))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
