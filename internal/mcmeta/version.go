// Package mcmeta knows about Minecraft versions: parsing, ordering, the
// version to pack_format mapping and a cached lookup of Mojang's version
// manifest for resolving "latest".
package mcmeta

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a release version like 1.21 or 1.20.2.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Latest marks a version that should resolve to the newest release.
const Latest = "latest"

// ParseVersion parses "1.21" or "1.20.2". Snapshots are not supported.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 2 || len(parts) > 3 {
		return Version{}, fmt.Errorf("invalid Minecraft version %q", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid Minecraft version %q", s)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func (v Version) String() string {
	if v.Patch == 0 {
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or 1.
func (v Version) Compare(o Version) int {
	for _, d := range [3]int{v.Major - o.Major, v.Minor - o.Minor, v.Patch - o.Patch} {
		if d < 0 {
			return -1
		}
		if d > 0 {
			return 1
		}
	}
	return 0
}

func (v Version) Less(o Version) bool    { return v.Compare(o) < 0 }
func (v Version) AtLeast(o Version) bool { return v.Compare(o) >= 0 }
