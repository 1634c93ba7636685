package export

import "hash/fnv"

// palette is the fixed set of node fill colors. Light tones so black label
// text stays readable.
var palette = []string{
	"#bfdbfe", // blue
	"#bbf7d0", // green
	"#fde68a", // amber
	"#fecaca", // red
	"#ddd6fe", // violet
	"#fbcfe8", // pink
	"#a5f3fc", // cyan
	"#d9f99d", // lime
	"#fed7aa", // orange
	"#e2e8f0", // slate
}

// StructColor returns the fill color for a struct type. The mapping hashes
// the name into the fixed palette, so a type keeps its color across runs,
// workspaces, and instance orderings.
func StructColor(structName string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(structName))
	return palette[h.Sum32()%uint32(len(palette))]
}
