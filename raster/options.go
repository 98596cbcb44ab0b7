// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "github.com/gogpu/lsys"

// Option configures a Canvas during creation.
type Option func(*options)

type options struct {
	background lsys.RGB
	yaw        float64 // degrees about world Y
	pitch      float64 // degrees about view X
	lineWidth  float64 // pixels
	margin     float64 // pixels
}

func defaultOptions() options {
	return options{
		background: lsys.Hex("#101418"),
		lineWidth:  1.5,
		margin:     16,
	}
}

// WithBackground sets the color the canvas is cleared to before each
// render.
func WithBackground(c lsys.RGB) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithView sets the orthographic camera: yaw degrees about the world Y
// axis, then pitch degrees about the view X axis. The default looks down
// -Z, which shows planar systems as drawn.
func WithView(yaw, pitch float64) Option {
	return func(o *options) {
		o.yaw, o.pitch = yaw, pitch
	}
}

// WithLineWidth sets the stroke width in pixels. Values below 0.5 are
// raised to 0.5.
func WithLineWidth(px float64) Option {
	return func(o *options) {
		o.lineWidth = max(px, 0.5)
	}
}

// WithMargin sets the empty border kept around the fitted geometry.
func WithMargin(px float64) Option {
	return func(o *options) {
		o.margin = max(px, 0)
	}
}
