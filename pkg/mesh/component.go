package mesh

import "fmt"

// Tag labels a mesh component for material and color grouping.
type Tag uint8

// Component tags.
const (
	TagBase   Tag = 0 // base plate
	TagModule Tag = 1 // raised QR module
	TagFrame  Tag = 2 // decorative frame
	TagWall   Tag = 3 // vertical step or perimeter wall
	TagMount  Tag = 4 // keychain mount
)

// String returns a human-readable tag name.
func (t Tag) String() string {
	switch t {
	case TagBase:
		return "base"
	case TagModule:
		return "module"
	case TagFrame:
		return "frame"
	case TagWall:
		return "wall"
	case TagMount:
		return "mount"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

type tagRange struct {
	tag   Tag
	start int // inclusive triangle index
	end   int // exclusive triangle index
}

// ComponentMap maps triangle index ranges to component tags. It is
// append-only during a build and read-only afterwards.
type ComponentMap struct {
	ranges []tagRange
}

// Record tags the half-open triangle range [start, end). Empty ranges
// are dropped. Ranges are kept as recorded, one per component, so
// consumers can address each component individually.
func (c *ComponentMap) Record(tag Tag, start, end int) {
	if end <= start {
		return
	}
	c.ranges = append(c.ranges, tagRange{tag: tag, start: start, end: end})
}

// Lookup returns the tag of triangle i.
func (c *ComponentMap) Lookup(i int) (Tag, bool) {
	lo, hi := 0, len(c.ranges)
	for lo < hi {
		mid := (lo + hi) / 2
		r := c.ranges[mid]
		switch {
		case i < r.start:
			hi = mid
		case i >= r.end:
			lo = mid + 1
		default:
			return r.tag, true
		}
	}
	return 0, false
}

// Len returns the number of recorded ranges.
func (c *ComponentMap) Len() int { return len(c.ranges) }

// CountFor returns the number of triangles tagged with tag.
func (c *ComponentMap) CountFor(tag Tag) int {
	n := 0
	for _, r := range c.ranges {
		if r.tag == tag {
			n += r.end - r.start
		}
	}
	return n
}

// Range returns the i-th recorded range.
func (c *ComponentMap) Range(i int) (tag Tag, start, end int) {
	r := c.ranges[i]
	return r.tag, r.start, r.end
}

// Append merges another map whose triangle indices are shifted by
// offset, preserving range order.
func (c *ComponentMap) Append(other *ComponentMap, offset int) {
	for _, r := range other.ranges {
		c.Record(r.tag, r.start+offset, r.end+offset)
	}
}

// Tags returns the distinct tags present, in first-seen order.
func (c *ComponentMap) Tags() []Tag {
	seen := make(map[Tag]bool)
	var tags []Tag
	for _, r := range c.ranges {
		if !seen[r.tag] {
			seen[r.tag] = true
			tags = append(tags, r.tag)
		}
	}
	return tags
}
