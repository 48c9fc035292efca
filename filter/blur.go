// Copyright 2026 The rasterly Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package filter implements raster effects applied during compositing,
// currently an approximate Gaussian blur built from iterated box blurs.
package filter

import (
	"math"

	"github.com/rasterly/rasterly"
)

// BlurType selects how a CSS radius maps to the Gaussian standard
// deviation and how far the effect extends beyond its source.
type BlurType uint8

const (
	// BlurFilter is CSS filter: blur() - the radius equals sigma.
	BlurFilter BlurType = iota
	// BlurShadow is box-shadow / text-shadow blur - the radius equals
	// 2 sigma.
	BlurShadow
)

// Sigma converts a CSS radius to a Gaussian standard deviation.
func (t BlurType) Sigma(cssRadius float32) float32 {
	if t == BlurShadow {
		return cssRadius * 0.5
	}
	return cssRadius
}

// ExtentMultiplier is how many multiples of the radius the blurred output
// spills past the source bounds; callers pad layers by this much.
func (t BlurType) ExtentMultiplier() float32 {
	if t == BlurShadow {
		return 1.5
	}
	return 3.0
}

// Extent returns the padding in pixels a layer needs on each side so the
// blur does not clip.
func (t BlurType) Extent(cssRadius float32) int {
	return int(math.Ceil(float64(cssRadius * t.ExtentMultiplier())))
}

const rgbaStride = 4

type blurParams struct {
	width  int
	height int
	radius int
	stride int // bytes per row
	mul    uint32
	shg    uint32
}

// Blur applies an approximate Gaussian blur to the pixmap in place. Sigma
// at or below 0.5 and empty pixmaps are no-ops. The pixel data is
// premultiplied before blurring and un-premultiplied after, so colors do
// not bleed from fully transparent neighbors.
func Blur(p *rasterly.Pixmap, radius float32, blurType BlurType) {
	sigma := blurType.Sigma(radius)
	if sigma <= 0.5 {
		return
	}
	w, h := p.Width(), p.Height()
	if w == 0 || h == 0 {
		return
	}

	data := p.Data()
	premultiply(data)

	params := passParams(w, h, sigma, w*rgbaStride)
	tmp := make([]uint8, len(data))
	sums := make([]uint32, params.stride)
	for i := 0; i < 3; i++ {
		boxBlurH(data, tmp, params, rgbaStride)
		boxBlurV(tmp, data, params, sums)
	}

	unpremultiply(data)
}

// BlurAlpha blurs a single-channel alpha buffer in place, used for shadow
// masks. The buffer is width*height bytes, row-major.
func BlurAlpha(data []uint8, width, height int, radius float32, blurType BlurType) {
	sigma := blurType.Sigma(radius)
	if sigma <= 0.5 || width == 0 || height == 0 {
		return
	}

	params := passParams(width, height, sigma, width)
	tmp := make([]uint8, len(data))
	sums := make([]uint32, params.stride)
	for i := 0; i < 3; i++ {
		boxBlurH(data, tmp, params, 1)
		boxBlurV(tmp, data, params, sums)
	}
}

func passParams(width, height int, sigma float32, stride int) blurParams {
	// Equivalent box radius for a Gaussian of this sigma; three box
	// passes of this radius approximate it closely.
	boxRadius := int(math.Round(math.Max(1,
		(math.Sqrt(4*float64(sigma)*float64(sigma)+1)-1)*0.5)))

	div := uint32(2*boxRadius + 1)
	const shg = 23
	mul := uint32(math.Round(float64(uint64(1)<<shg) / float64(div)))

	return blurParams{
		width:  width,
		height: height,
		radius: boxRadius,
		stride: stride,
		mul:    mul,
		shg:    shg,
	}
}

// boxBlurH runs one horizontal moving-average pass per row. The window sum
// is divided by a fixed-point reciprocal multiply and shift instead of a
// per-pixel division. Edge pixels replicate the nearest valid column.
func boxBlurH(src, dst []uint8, p blurParams, px int) {
	r := p.radius
	w := p.width

	for y := 0; y < p.height; y++ {
		line := y * p.stride
		sum := make([]uint32, px)

		for c := 0; c < px; c++ {
			sum[c] = uint32(src[line+c]) * uint32(r+1)
		}
		for dx := 1; dx <= r; dx++ {
			off := line + min(dx, w-1)*px
			for c := 0; c < px; c++ {
				sum[c] += uint32(src[off+c])
			}
		}

		leftEnd := min(r+1, w)
		for x := 0; x < leftEnd; x++ {
			out := line + x*px
			entering := line + min(x+r+1, w-1)*px
			for c := 0; c < px; c++ {
				dst[out+c] = uint8((sum[c] * p.mul) >> p.shg)
				sum[c] += uint32(src[entering+c])
				sum[c] -= uint32(src[line+c])
			}
		}

		middleEnd := max(w-r-1, leftEnd)
		for x := leftEnd; x < middleEnd; x++ {
			out := line + x*px
			leaving := line + (x-r)*px
			entering := line + (x+r+1)*px
			for c := 0; c < px; c++ {
				dst[out+c] = uint8((sum[c] * p.mul) >> p.shg)
				sum[c] += uint32(src[entering+c])
				sum[c] -= uint32(src[leaving+c])
			}
		}

		last := line + (w-1)*px
		for x := middleEnd; x < w; x++ {
			out := line + x*px
			leaving := line + (x-r)*px
			for c := 0; c < px; c++ {
				dst[out+c] = uint8((sum[c] * p.mul) >> p.shg)
				sum[c] += uint32(src[last+c])
				sum[c] -= uint32(src[leaving+c])
			}
		}
	}
}

// boxBlurV runs one vertical moving-average pass, maintaining a window sum
// per byte column so each row is processed with a single sweep. Edge rows
// replicate the nearest valid row.
func boxBlurV(src, dst []uint8, p blurParams, sums []uint32) {
	r := p.radius
	h := p.height
	stride := p.stride

	for x := 0; x < stride; x++ {
		sums[x] = uint32(src[x]) * uint32(r+1)
	}
	for dy := 1; dy <= r; dy++ {
		row := min(dy, h-1) * stride
		for x := 0; x < stride; x++ {
			sums[x] += uint32(src[row+x])
		}
	}

	topEnd := min(r+1, h)
	for y := 0; y < topEnd; y++ {
		out := y * stride
		entering := min(y+r+1, h-1) * stride
		for x := 0; x < stride; x++ {
			dst[out+x] = uint8((sums[x] * p.mul) >> p.shg)
			sums[x] += uint32(src[entering+x])
			sums[x] -= uint32(src[x])
		}
	}

	middleEnd := max(h-r-1, topEnd)
	for y := topEnd; y < middleEnd; y++ {
		out := y * stride
		leaving := (y - r) * stride
		entering := (y + r + 1) * stride
		for x := 0; x < stride; x++ {
			dst[out+x] = uint8((sums[x] * p.mul) >> p.shg)
			sums[x] += uint32(src[entering+x])
			sums[x] -= uint32(src[leaving+x])
		}
	}

	last := (h - 1) * stride
	for y := middleEnd; y < h; y++ {
		out := y * stride
		leaving := (y - r) * stride
		for x := 0; x < stride; x++ {
			dst[out+x] = uint8((sums[x] * p.mul) >> p.shg)
			sums[x] += uint32(src[last+x])
			sums[x] -= uint32(src[leaving+x])
		}
	}
}

func premultiply(data []uint8) {
	for i := 0; i < len(data); i += 4 {
		a := uint32(data[i+3])
		if a == 255 {
			continue
		}
		data[i+0] = uint8((uint32(data[i+0])*a + 127) / 255)
		data[i+1] = uint8((uint32(data[i+1])*a + 127) / 255)
		data[i+2] = uint8((uint32(data[i+2])*a + 127) / 255)
	}
}

func unpremultiply(data []uint8) {
	for i := 0; i < len(data); i += 4 {
		a := uint32(data[i+3])
		if a == 0 || a == 255 {
			continue
		}
		data[i+0] = uint8(min(255, int(uint32(data[i+0])*255+a/2)/int(a)))
		data[i+1] = uint8(min(255, int(uint32(data[i+1])*255+a/2)/int(a)))
		data[i+2] = uint8(min(255, int(uint32(data[i+2])*255+a/2)/int(a)))
	}
}
