package lsys

import "math"

// Floats per segment in Positions and Colors: two endpoints of three
// components each.
const segmentStride = 6

// Buffer is the flat, order-preserving output of one interpretation pass.
//
// Segment i occupies Positions[6i:6i+6] (start xyz, end xyz) and
// Colors[6i:6i+6] (one RGB triple per endpoint, equal for both), and its
// birth generation is Births[i]. Segments appear in the order their
// drawing commands were scanned, so any prefix is a valid growth state.
//
// A Buffer is immutable once returned; Prefix shares its storage.
type Buffer struct {
	Positions []float32
	Colors    []float32
	Births    []int
}

// Segment is one drawn line segment.
type Segment struct {
	A, B  Vec3
	Color RGB
	Birth int
}

// PrefixRenderer draws the first segments of a buffer. Implementations
// must tolerate any segments value between calls, growing or shrinking,
// and must draw exactly min(segments, buf.Len()) segments.
type PrefixRenderer interface {
	RenderPrefix(buf *Buffer, segments int) error
}

// Len returns the number of segments.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Births)
}

// VertexCount returns the number of endpoints, always 2*Len().
func (b *Buffer) VertexCount() int {
	return 2 * b.Len()
}

// Segment returns segment i. It panics if i is out of range, like a slice
// index.
func (b *Buffer) Segment(i int) Segment {
	p := b.Positions[i*segmentStride : (i+1)*segmentStride]
	c := b.Colors[i*segmentStride : i*segmentStride+3]
	return Segment{
		A:     V3(float64(p[0]), float64(p[1]), float64(p[2])),
		B:     V3(float64(p[3]), float64(p[4]), float64(p[5])),
		Color: RGB{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])},
		Birth: b.Births[i],
	}
}

// Prefix returns a view of the first k segments without copying.
// k is clamped to [0, Len()].
func (b *Buffer) Prefix(k int) *Buffer {
	k = max(0, min(k, b.Len()))
	if b == nil {
		return &Buffer{}
	}
	n := k * segmentStride
	return &Buffer{
		Positions: b.Positions[:n:n],
		Colors:    b.Colors[:n:n],
		Births:    b.Births[:k:k],
	}
}

// Bounds returns the axis-aligned bounding box of all endpoints.
// ok is false for an empty buffer.
func (b *Buffer) Bounds() (lo, hi Vec3, ok bool) {
	if b.Len() == 0 {
		return Vec3{}, Vec3{}, false
	}
	inf := math.Inf(1)
	lo, hi = V3(inf, inf, inf), V3(-inf, -inf, -inf)
	for i := 0; i+2 < len(b.Positions); i += 3 {
		p := V3(float64(b.Positions[i]), float64(b.Positions[i+1]), float64(b.Positions[i+2]))
		lo, hi = lo.Min(p), hi.Max(p)
	}
	return lo, hi, true
}

// MaxBirth returns the largest segment birth generation, or 0 if empty.
func (b *Buffer) MaxBirth() int {
	if b == nil {
		return 0
	}
	m := 0
	for _, g := range b.Births {
		m = max(m, g)
	}
	return m
}

// appendSegment adds one segment; used only while a buffer is built.
func (b *Buffer) appendSegment(from, to Vec3, c RGB, birth int) {
	b.Positions = append(b.Positions,
		float32(from.X), float32(from.Y), float32(from.Z),
		float32(to.X), float32(to.Y), float32(to.Z))
	r, g, bl := float32(c.R), float32(c.G), float32(c.B)
	b.Colors = append(b.Colors, r, g, bl, r, g, bl)
	b.Births = append(b.Births, birth)
}
