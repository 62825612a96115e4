// Package stacktrace trims runtime stacks down to this module's frames.
package stacktrace

import "strings"

// InternalPaths returns "internal/<pkg>/<file>.go:<line>" for every frame of
// raw that lives under an internal/ directory, in stack order.
func InternalPaths(raw []byte) []string {
	var paths []string

	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		start := strings.Index(line, "/internal/")
		if start == -1 {
			continue
		}

		loc := line[start+1:]
		dot := strings.Index(loc, ".go:")
		if dot == -1 {
			continue
		}

		if sp := strings.IndexByte(loc[dot:], ' '); sp != -1 {
			loc = loc[:dot+sp]
		}
		paths = append(paths, loc)
	}

	return paths
}
