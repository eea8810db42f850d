package config

import (
	"fmt"
	"path"
	"strings"
)

// Match reports whether a slash-separated document path matches a glob
// pattern. Beyond path.Match semantics per segment, a "**" segment matches
// any number of segments, including none. A pattern without a slash matches
// against the path's base name, mirroring gitignore-style conventions.
func Match(pattern, p string) bool {
	p = strings.TrimPrefix(strings.ReplaceAll(p, "\\", "/"), "./")
	pattern = strings.TrimPrefix(pattern, "./")

	if !strings.Contains(pattern, "/") {
		ok, err := path.Match(pattern, path.Base(p))
		return err == nil && ok
	}
	return matchSegments(strings.Split(pattern, "/"), strings.Split(p, "/"))
}

func matchSegments(pattern, segs []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			if len(pattern) == 1 {
				return true
			}
			for i := 0; i <= len(segs); i++ {
				if matchSegments(pattern[1:], segs[i:]) {
					return true
				}
			}
			return false
		}
		if len(segs) == 0 {
			return false
		}
		ok, err := path.Match(pattern[0], segs[0])
		if err != nil || !ok {
			return false
		}
		pattern = pattern[1:]
		segs = segs[1:]
	}
	return len(segs) == 0
}

// checkGlob validates a glob pattern without matching anything.
func checkGlob(pattern string) error {
	for _, seg := range strings.Split(pattern, "/") {
		if seg == "**" {
			continue
		}
		if _, err := path.Match(seg, "probe"); err != nil {
			return fmt.Errorf("bad glob pattern %q: %w", pattern, err)
		}
	}
	return nil
}
