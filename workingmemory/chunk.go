package workingmemory

import "github.com/resonantlabs/artengine/pattern"

// ChunkType is a pure function of a ListChunk's size (spec §3).
type ChunkType int

const (
	Small ChunkType = iota
	Medium
	Large
	Super
)

func (t ChunkType) String() string {
	switch t {
	case Small:
		return "SMALL"
	case Medium:
		return "MEDIUM"
	case Large:
		return "LARGE"
	default:
		return "SUPER"
	}
}

// TypeFromSize classifies a chunk size into its ChunkType band, mirroring
// the masking field's three preferred-size scales (item 1-2, chunk 3-4,
// list 5-7) plus an overflow SUPER band.
func TypeFromSize(size int) ChunkType {
	switch {
	case size <= 2:
		return Small
	case size <= 4:
		return Medium
	case size <= 7:
		return Large
	default:
		return Super
	}
}

// ListChunk is spec §3's ListChunk: a contiguous run of working-memory
// items the masking field committed to as one unit.
type ListChunk struct {
	Items        []Item
	Size         int
	TemporalSpan uint64
	Strength     float64
	Type         ChunkType
}

// NewListChunk builds a ListChunk from a contiguous item slice, recording
// its size, temporal span, summed strength and type. The chunk's pooled
// pattern is exported separately by PooledPattern.
func NewListChunk(items []Item) ListChunk {
	c := ListChunk{Items: items, Size: len(items)}
	if len(items) == 0 {
		c.Type = TypeFromSize(0)
		return c
	}
	minTime, maxTime := items[0].Time, items[0].Time
	var total float64
	for _, it := range items {
		if it.Time < minTime {
			minTime = it.Time
		}
		if it.Time > maxTime {
			maxTime = it.Time
		}
		total += it.Strength
	}
	c.TemporalSpan = maxTime - minTime
	c.Strength = total
	c.Type = TypeFromSize(c.Size)
	return c
}

// PooledPattern exports the chunk's representative pattern as the
// strength-weighted winner among its items (competitive winner-takes-all,
// spec §4.8).
func (c ListChunk) PooledPattern() pattern.Pattern {
	if len(c.Items) == 0 {
		return nil
	}
	best := 0
	for i, it := range c.Items {
		if it.Strength > c.Items[best].Strength {
			best = i
		}
	}
	return c.Items[best].Pattern
}
