// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package chart draws the radar chart of global capability averages shown
// on the admin page.
package chart

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/MKhiriev/capability-assessment/models"
)

const (
	DefaultSize = 640

	// MinSize keeps the plot readable once the radius gives way to the
	// widest label.
	MinSize = 480

	// ringStep is the score distance between concentric grid rings.
	ringStep = 2

	radiusRatio  = 0.28
	labelOffset  = 15
	labelPadding = 8
)

var ErrCanvasTooSmall = fmt.Errorf("canvas must be at least %dpx", MinSize)

var errNoCapabilities = errors.New("no capabilities to draw")

// Options tunes the rendered image. Zero values use defaults.
type Options struct {
	// Size is the width and height of the square canvas in pixels.
	Size int

	// Title is drawn above the chart when not empty.
	Title string
}

func (o Options) withDefaults() Options {
	if o.Size == 0 {
		o.Size = DefaultSize
	}
	return o
}

// RadarRenderer renders averages with a fixed set of options. It holds no
// mutable state and is safe for concurrent use.
type RadarRenderer struct {
	opts Options
}

func NewRadarRenderer(opts Options) *RadarRenderer {
	return &RadarRenderer{opts: opts.withDefaults()}
}

// RenderRadar renders averages as a PNG.
func (r *RadarRenderer) RenderRadar(averages models.Averages) ([]byte, error) {
	return RenderRadar(averages, r.opts)
}

// RenderRadar draws one axis per capability, evenly spaced and starting at
// 12 o'clock going clockwise, on a fixed 0..10 radial scale, and returns the
// PNG encoding. Values are clamped to the scale for drawing only.
func RenderRadar(averages models.Averages, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	if opts.Size < MinSize {
		return nil, ErrCanvasTooSmall
	}

	capabilities := models.Capabilities
	if len(capabilities) == 0 {
		return nil, errNoCapabilities
	}
	values := averages.Ordered()

	size := float64(opts.Size)
	cx, cy := size/2, size/2
	radius := plotRadius(opts.Size)
	n := len(capabilities)

	dc := gg.NewContext(opts.Size, opts.Size)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	// grid rings
	dc.SetRGB(0.85, 0.85, 0.85)
	dc.SetLineWidth(1)
	for score := ringStep; score <= models.MaxScore; score += ringStep {
		ringRadius := radius * float64(score) / models.MaxScore
		for i := 0; i < n; i++ {
			x, y := polar(cx, cy, ringRadius, axisAngle(i, n))
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		dc.Stroke()
	}

	// spokes and labels
	for i, c := range capabilities {
		angle := axisAngle(i, n)

		dc.SetRGB(0.7, 0.7, 0.7)
		x, y := polar(cx, cy, radius, angle)
		dc.DrawLine(cx, cy, x, y)
		dc.Stroke()

		cos, sin := math.Cos(angle), math.Sin(angle)
		lx, ly := polar(cx, cy, radius+labelOffset, angle)
		dc.SetRGB(0.15, 0.15, 0.15)
		dc.DrawStringAnchored(c.Label, lx, ly, (1-cos)/2, (1+sin)/2)
	}

	// ring scale along the first axis
	dc.SetRGB(0.5, 0.5, 0.5)
	for score := ringStep; score <= models.MaxScore; score += ringStep {
		x, y := polar(cx, cy, radius*float64(score)/models.MaxScore, axisAngle(0, n))
		dc.DrawStringAnchored(fmt.Sprint(score), x+4, y, 0, 0.5)
	}

	// data polygon, closed back to the first axis
	for i := 0; i < n; i++ {
		x, y := polar(cx, cy, radius*clamp(values[i])/models.MaxScore, axisAngle(i, n))
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
	dc.SetRGBA(0.18, 0.42, 0.78, 0.35)
	dc.FillPreserve()
	dc.SetRGB(0.18, 0.42, 0.78)
	dc.SetLineWidth(2)
	dc.Stroke()

	if opts.Title != "" {
		dc.SetRGB(0.1, 0.1, 0.1)
		dc.DrawStringAnchored(opts.Title, cx, 20, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("error encoding radar chart: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURI embeds a PNG into an <img src> attribute.
func DataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

// plotRadius shrinks the plot below radiusRatio of the canvas when needed so
// that the widest label, drawn outward from a horizontal axis, stays inside
// the canvas with labelPadding to spare.
func plotRadius(size int) float64 {
	var widest float64
	for _, c := range models.Capabilities {
		widest = math.Max(widest, labelWidth(c.Label))
	}
	half := float64(size) / 2
	return math.Min(float64(size)*radiusRatio, half-labelOffset-widest-labelPadding)
}

func labelWidth(label string) float64 {
	return float64(font.MeasureString(basicfont.Face7x13, label).Ceil())
}

// axisAngle is measured in screen coordinates where y grows downwards, so
// increasing angles run clockwise.
func axisAngle(i, n int) float64 {
	return -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
}

func polar(cx, cy, r, angle float64) (float64, float64) {
	return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > models.MaxScore:
		return models.MaxScore
	default:
		return v
	}
}
