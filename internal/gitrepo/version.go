package gitrepo

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is an ordered git version triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// MinReferenceTransaction is the oldest git version with working
// reference-transaction hooks. Older versions lose ref update events.
var MinReferenceTransaction = Version{Major: 2, Minor: 29, Patch: 0}

// ParseVersion parses output such as "git version 2.39.2" or a bare "2.39.2".
// Suffixes like "2.39.2.windows.1" are tolerated; only the leading numeric
// components are read.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "git version ")

	fields := strings.Split(s, ".")
	if len(fields) < 2 {
		return Version{}, fmt.Errorf("malformed version string: %q", s)
	}

	var parts [3]int
	for i := 0; i < len(fields) && i < 3; i++ {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			if i >= 2 {
				break // trailing non-numeric suffix
			}
			return Version{}, fmt.Errorf("malformed version component %q: %w", fields[i], err)
		}
		parts[i] = n
	}
	return Version{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}

// Less reports whether v orders before other.
func (v Version) Less(other Version) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor < other.Minor
	}
	return v.Patch < other.Patch
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
