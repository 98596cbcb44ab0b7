// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"math"

	"github.com/gogpu/lsys"
)

// viewport maps world points to canvas pixels: rotate by the view, drop
// depth, scale uniformly and flip Y so world +Y points up the image.
type viewport struct {
	view   lsys.Quat
	cx, cy float64 // view-space center of the fitted box
	scale  float64
	w, h   float64
}

// fit frames every endpoint of buf, not just the drawn prefix.
func fit(buf *lsys.Buffer, view lsys.Quat, w, h, margin float64) viewport {
	vp := viewport{view: view, scale: 1, w: w, h: h}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range buf.Len() {
		s := buf.Segment(i)
		for _, p := range [2]lsys.Vec3{s.A, s.B} {
			v := view.Rotate(p)
			minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
			minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return vp
	}

	vp.cx, vp.cy = (minX+maxX)/2, (minY+maxY)/2
	availW, availH := math.Max(w-2*margin, 1), math.Max(h-2*margin, 1)
	spanX, spanY := maxX-minX, maxY-minY
	switch {
	case spanX == 0 && spanY == 0:
		vp.scale = 1
	case spanX == 0:
		vp.scale = availH / spanY
	case spanY == 0:
		vp.scale = availW / spanX
	default:
		vp.scale = math.Min(availW/spanX, availH/spanY)
	}
	return vp
}

func (vp viewport) project(p lsys.Vec3) (x, y float64) {
	v := vp.view.Rotate(p)
	x = vp.w/2 + (v.X-vp.cx)*vp.scale
	y = vp.h/2 - (v.Y-vp.cy)*vp.scale
	return x, y
}
