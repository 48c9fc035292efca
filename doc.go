// Package rasterly turns a declarative document tree with CSS-like styling
// into a rasterized image.
//
// # Overview
//
// rasterly is a pure Go layout and paint pipeline, similar in spirit to the
// layout+paint stages of a headless browser: a tree of styled nodes is
// cascaded into computed values, rewritten into a box tree, measured and
// line-broken, and finally painted into an RGBA pixel buffer. Encoding the
// buffer to PNG/JPEG/WebP is left to the host.
//
// # Quick Start
//
//	import (
//	    "github.com/rasterly/rasterly"
//	    "github.com/rasterly/rasterly/layout"
//	    "github.com/rasterly/rasterly/render"
//	)
//
//	root := &layout.ContainerNode{
//	    Kids: []layout.Node{
//	        &layout.TextNode{Text: "Hello, world"},
//	    },
//	}
//
//	img, err := render.New().Render(root, rasterly.NewViewport(800, 400))
//	// img is an *image.NRGBA ready for png.Encode.
//
// # Packages
//
// The root package holds the leaf types shared by every stage: Viewport,
// Pixmap, RGBA, Point and the Affine transform matrix. The pipeline stages
// live in subpackages:
//
//   - style: lengths, calc() expressions, computed-value resolution
//   - layout: box tree construction and inline flow
//   - text: paragraph shaping and line breaking over go-text/typesetting
//   - filter: approximate Gaussian blur for filters and shadows
//   - paint: drawing boxes, images and shaped text into a Pixmap
//   - render: the orchestrating renderer
//   - resources: pre-fetch task collection and fetched-image maps
package rasterly
