// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster is a CPU implementation of lsys.PrefixRenderer.
//
// A Canvas projects a segment buffer orthographically and strokes its
// leading segments into an RGBA image. Framing is computed from the whole
// buffer, so the picture stays still while the prefix grows or is
// scrubbed back:
//
//	c := raster.New(800, 800, raster.WithView(30, 20))
//	for k := 0; k <= buf.Len(); k += step {
//	    _ = c.RenderPrefix(buf, k)
//	    _ = c.SavePNG(fmt.Sprintf("frame%04d.png", k/step))
//	}
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/gogpu/lsys"
	"golang.org/x/image/vector"
)

// ErrEmptyCanvas is returned when rendering to a canvas with no pixels.
var ErrEmptyCanvas = errors.New("raster: canvas has zero size")

// Canvas renders segment buffer prefixes into an image.
// A Canvas is not safe for concurrent use.
type Canvas struct {
	width  int
	height int
	img    *image.RGBA
	z      *vector.Rasterizer
	opts   options

	pending []quad
}

var _ lsys.PrefixRenderer = (*Canvas)(nil)

// New creates a canvas. Negative dimensions are treated as zero.
func New(width, height int, opts ...Option) *Canvas {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	width, height = max(width, 0), max(height, 0)
	return &Canvas{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		z:      vector.NewRasterizer(width, height),
		opts:   o,
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Image returns the rendered image. It is overwritten by the next render.
func (c *Canvas) Image() *image.RGBA { return c.img }

// RenderPrefix clears the canvas and draws the first segments of buf in
// buffer order. segments is clamped to [0, buf.Len()].
func (c *Canvas) RenderPrefix(buf *lsys.Buffer, segments int) error {
	if c.width == 0 || c.height == 0 {
		return ErrEmptyCanvas
	}
	bg := c.opts.background.Color()
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	k := max(0, min(segments, buf.Len()))
	if k == 0 {
		return nil
	}

	vp := fit(buf, c.view(), float64(c.width), float64(c.height), c.opts.margin)
	hw := c.opts.lineWidth / 2

	run := buf.Segment(0).Color
	for i := range k {
		s := buf.Segment(i)
		if s.Color != run {
			c.flush(run)
			run = s.Color
		}
		ax, ay := vp.project(s.A)
		bx, by := vp.project(s.B)
		c.addStroke(ax, ay, bx, by, hw)
	}
	c.flush(run)

	lsys.Logger().Debug("raster: rendered prefix",
		"segments", k, "of", buf.Len(), "width", c.width, "height", c.height)
	return nil
}

// quad is one stroke outline in canvas pixels.
type quad [8]float64

// flush paints the pending strokes in col. Only the pixel box covering
// the strokes is rasterized, so short runs stay cheap on large canvases.
func (c *Canvas) flush(col lsys.RGB) {
	if len(c.pending) == 0 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, q := range c.pending {
		for j := 0; j < len(q); j += 2 {
			minX, maxX = math.Min(minX, q[j]), math.Max(maxX, q[j])
			minY, maxY = math.Min(minY, q[j+1]), math.Max(maxY, q[j+1])
		}
	}
	box := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	).Intersect(c.img.Bounds())
	if box.Empty() {
		c.pending = c.pending[:0]
		return
	}

	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	c.z.Reset(box.Dx(), box.Dy())
	for _, q := range c.pending {
		c.z.MoveTo(float32(q[0]-ox), float32(q[1]-oy))
		c.z.LineTo(float32(q[2]-ox), float32(q[3]-oy))
		c.z.LineTo(float32(q[4]-ox), float32(q[5]-oy))
		c.z.LineTo(float32(q[6]-ox), float32(q[7]-oy))
		c.z.ClosePath()
	}
	c.z.Draw(c.img, box, image.NewUniform(col.Color()), image.Point{})
	c.pending = c.pending[:0]
}

// addStroke queues a quad of half-width hw around a->b. Every quad has
// the same winding so overlapping strokes in one run never cancel out.
func (c *Canvas) addStroke(ax, ay, bx, by, hw float64) {
	dx, dy := bx-ax, by-ay
	l := math.Hypot(dx, dy)
	if l < 1e-9 {
		// Degenerate stroke: a dot one line width across.
		ax, bx = ax-hw, ax+hw
		dx, dy, l = 2*hw, 0, 2*hw
	}
	nx, ny := -dy/l*hw, dx/l*hw

	c.pending = append(c.pending, quad{
		ax + nx, ay + ny,
		bx + nx, by + ny,
		bx - nx, by - ny,
		ax - nx, ay - ny,
	})
}

func (c *Canvas) view() lsys.Quat {
	const deg = math.Pi / 180
	yaw := lsys.AxisAngle(lsys.Up, c.opts.yaw*deg)
	pitch := lsys.AxisAngle(lsys.Lateral, c.opts.pitch*deg)
	return pitch.Mul(yaw)
}

// WritePNG encodes the current image as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// SavePNG writes the current image to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: %w", err)
	}
	if err := c.WritePNG(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("raster: encode %s: %w", path, err)
	}
	return f.Close()
}
