package mcmeta

import "fmt"

// MinSupported is the oldest target the generated commands run on. The
// compiler emits the `return` command, which Minecraft added in 1.20.2.
var MinSupported = Version{Major: 1, Minor: 20, Patch: 2}

// formatRange maps every version from From onward (until the next entry)
// to one datapack pack_format.
type formatRange struct {
	From   Version
	Format int
}

// Ordered oldest to newest.
var formatTable = []formatRange{
	{Version{1, 20, 2}, 18},
	{Version{1, 20, 3}, 26},
	{Version{1, 20, 5}, 41},
	{Version{1, 21, 0}, 48},
	{Version{1, 21, 2}, 57},
	{Version{1, 21, 4}, 61},
	{Version{1, 21, 5}, 71},
}

// PackFormat resolves the datapack pack_format for a target version using
// the built-in offline table.
func PackFormat(v Version) (int, error) {
	if v.Less(MinSupported) {
		return 0, fmt.Errorf("minecraft %s is older than the minimum supported %s", v, MinSupported)
	}
	format := 0
	for _, r := range formatTable {
		if v.AtLeast(r.From) {
			format = r.Format
		}
	}
	if format == 0 {
		return 0, fmt.Errorf("no pack_format known for minecraft %s", v)
	}
	return format, nil
}

// DefaultVersion is the target used when neither the manifest nor the flags
// specify one.
var DefaultVersion = Version{Major: 1, Minor: 21, Patch: 0}
