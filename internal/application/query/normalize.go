package query

import "strings"

// Normalize trims every line of raw model output, drops blank lines and
// joins the rest with "\n", keeping their order.
func Normalize(raw string) string {
	lines := strings.Split(raw, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
