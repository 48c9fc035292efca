// Copyright 2026 The rasterly Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render ties the pipeline together: box-tree construction, layout
// solving and painting, producing a pixmap from a node tree and a viewport.
package render

import (
	"errors"
	"image"
	"log/slog"
	"math"

	"github.com/rasterly/rasterly"
	"github.com/rasterly/rasterly/layout"
	"github.com/rasterly/rasterly/paint"
	"github.com/rasterly/rasterly/resources"
	"github.com/rasterly/rasterly/text"
)

// ErrEmptyTree is returned when the node tree resolves to nothing, for
// example a display: none root.
var ErrEmptyTree = errors.New("render: node tree produced no boxes")

// Option configures a Renderer during creation.
type Option func(*options)

type options struct {
	fonts  []*text.Source
	images resources.Map
	engine layout.Engine
	logger *slog.Logger
}

// WithFontSource registers a font with the renderer's collection. The first
// registered font becomes the fallback; with no registered fonts a built-in
// fallback is used.
func WithFontSource(s *text.Source) Option {
	return func(o *options) {
		o.fonts = append(o.fonts, s)
	}
}

// WithResources supplies pre-fetched images, keyed by the source URL they
// were collected under. Layout and paint never fetch; a missing entry
// renders as nothing.
func WithResources(m resources.Map) Option {
	return func(o *options) {
		o.images = m
	}
}

// WithEngine replaces the built-in block-flow layout solver.
func WithEngine(e layout.Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}

// WithLogger sets the logger used for render diagnostics. The default
// discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Renderer runs the full pipeline for one viewport configuration. A
// Renderer is safe to reuse across renders but not across goroutines: the
// painter holds per-render scratch state.
type Renderer struct {
	fonts   *text.Collection
	shaper  *text.Shaper
	images  resources.Map
	engine  layout.Engine
	painter *paint.Painter
	logger  *slog.Logger
}

// New creates a renderer.
func New(opts ...Option) *Renderer {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	fonts := text.NewCollection()
	for _, s := range o.fonts {
		fonts.Add(s)
	}
	engine := o.engine
	if engine == nil {
		engine = layout.NewFlowEngine()
	}
	logger := o.logger
	if logger == nil {
		logger = rasterly.Logger()
	}

	return &Renderer{
		fonts:   fonts,
		shaper:  text.NewShaper(),
		images:  o.images,
		engine:  engine,
		painter: paint.NewPainter(),
		logger:  logger,
	}
}

// Render lays out and paints the node tree for the viewport, returning the
// raster as an image ready for encoding. The output dimensions are the
// viewport's device dimensions (CSS pixels scaled by the device pixel
// ratio); a zero viewport axis is unconstrained and sized to content.
func (r *Renderer) Render(root layout.Node, vp rasterly.Viewport) (*image.NRGBA, error) {
	pix, err := r.RenderPixmap(root, vp)
	if err != nil {
		return nil, err
	}
	return pix.Image(), nil
}

// RenderPixmap is Render returning the raw pixel buffer.
func (r *Renderer) RenderPixmap(root layout.Node, vp rasterly.Viewport) (*rasterly.Pixmap, error) {
	ctx := layout.NewContext(vp)
	ctx.Fonts = r.fonts
	ctx.Shaper = r.shaper
	ctx.Images = r.images

	tree := layout.Build(root, ctx)
	if tree == nil {
		return nil, ErrEmptyTree
	}

	w := vp.DeviceWidth()
	h := vp.DeviceHeight()
	r.engine.Solve(tree, layout.Size{Width: float32(w), Height: float32(h)})

	// A zero viewport axis is unconstrained: the output takes the root's
	// solved extent on that axis.
	if w <= 0 {
		w = int(math.Ceil(float64(tree.Layout.Width)))
	}
	if h <= 0 {
		h = int(math.Ceil(float64(tree.Layout.Height)))
	}

	r.logger.Debug("render: tree solved",
		slog.Int("width", w),
		slog.Int("height", h),
		slog.Float64("root_height", float64(tree.Layout.Height)))

	return r.painter.Paint(tree, w, h), nil
}

// CollectTasks returns the resource URLs the tree references, so the host
// can fetch them before calling Render.
func (r *Renderer) CollectTasks(root layout.Node) []string {
	return layout.CollectTasks(root)
}
