package paint

import (
	"testing"

	"github.com/rasterly/rasterly"
	"github.com/rasterly/rasterly/layout"
	"github.com/rasterly/rasterly/resources"
	"github.com/rasterly/rasterly/style"
)

func solveTree(t *testing.T, root layout.Node, w, h int) *layout.Tree {
	t.Helper()
	tree := layout.Build(root, layout.NewContext(rasterly.NewViewport(w, h)))
	if tree == nil {
		t.Fatal("Build returned nil")
	}
	layout.NewFlowEngine().Solve(tree, layout.Size{Width: float32(w), Height: float32(h)})
	return tree
}

func bg(c rasterly.RGBA) style.Color { return style.NewColor(c) }

func TestPaintBackground(t *testing.T) {
	root := &layout.ContainerNode{Styles: &style.Style{
		BackgroundColor: bg(rasterly.RGB(10, 20, 30)),
	}}
	tree := solveTree(t, root, 8, 8)

	pix := NewPainter().Paint(tree, 8, 8)
	if got := pix.GetPixel(4, 4); got != rasterly.RGB(10, 20, 30) {
		t.Fatalf("background pixel = %+v", got)
	}
	// The root box has no content height; its background still propagates
	// to the whole canvas.
	if got := pix.GetPixel(7, 7); got != rasterly.RGB(10, 20, 30) {
		t.Fatalf("canvas corner = %+v", got)
	}
}

func TestPaintNestedBoxes(t *testing.T) {
	child := &layout.ContainerNode{Styles: &style.Style{
		Width:           style.Length{Unit: style.UnitPx, Value: 4},
		Height:          style.Length{Unit: style.UnitPx, Value: 4},
		Margin:          style.UniformEdges(style.Length{Unit: style.UnitPx, Value: 2}),
		BackgroundColor: bg(rasterly.RGB(255, 0, 0)),
	}}
	root := &layout.ContainerNode{
		Styles: &style.Style{BackgroundColor: bg(rasterly.White)},
		Kids:   []layout.Node{child},
	}
	tree := solveTree(t, root, 12, 12)

	pix := NewPainter().Paint(tree, 12, 12)
	if got := pix.GetPixel(3, 3); got != rasterly.RGB(255, 0, 0) {
		t.Fatalf("child pixel = %+v, want red", got)
	}
	if got := pix.GetPixel(0, 0); got != rasterly.White {
		t.Fatalf("margin area = %+v, want white", got)
	}
}

func TestPaintText(t *testing.T) {
	root := &layout.ContainerNode{
		Styles: &style.Style{BackgroundColor: bg(rasterly.White)},
		Kids: []layout.Node{
			&layout.TextNode{
				Styles: &style.Style{Display: style.DisplayInline},
				Text:   "Hello",
			},
		},
	}
	tree := solveTree(t, root, 100, 30)
	pix := NewPainter().Paint(tree, 100, 30)

	// Some pixel in the line box must be darkened by glyph coverage.
	dark := false
	for y := 0; y < 30 && !dark; y++ {
		for x := 0; x < 100; x++ {
			if p := pix.GetPixel(x, y); p.R < 128 && p.A == 255 {
				dark = true
				break
			}
		}
	}
	if !dark {
		t.Fatal("no glyph coverage found")
	}
}

func TestPaintOpacityLayer(t *testing.T) {
	root := &layout.ContainerNode{Styles: &style.Style{
		BackgroundColor: bg(rasterly.Black),
		Opacity:         0.5,
	}}
	tree := solveTree(t, root, 4, 4)
	pix := NewPainter().Paint(tree, 4, 4)

	got := pix.GetPixel(2, 2)
	if got.A < 120 || got.A > 135 {
		t.Fatalf("alpha = %d, want about 127", got.A)
	}
}

func TestPaintTransformTranslate(t *testing.T) {
	tr, err := style.ParseTransforms("translate(10px, 0)")
	if err != nil {
		t.Fatal(err)
	}
	root := &layout.ContainerNode{Kids: []layout.Node{
		&layout.ContainerNode{Styles: &style.Style{
			Width:           style.Length{Unit: style.UnitPx, Value: 4},
			Height:          style.Length{Unit: style.UnitPx, Value: 4},
			BackgroundColor: bg(rasterly.RGB(0, 0, 255)),
			Transform:       tr,
		}},
	}}
	tree := solveTree(t, root, 20, 20)
	pix := NewPainter().Paint(tree, 20, 20)

	if got := pix.GetPixel(12, 2); got.B != 255 {
		t.Fatalf("translated pixel = %+v, want blue", got)
	}
	if got := pix.GetPixel(2, 2); got.A != 0 {
		t.Fatalf("original position = %+v, want empty", got)
	}
}

func TestPaintBoxShadowSpills(t *testing.T) {
	shadows, err := style.ParseBoxShadow("0 0 8px black")
	if err != nil {
		t.Fatal(err)
	}
	root := &layout.ContainerNode{Kids: []layout.Node{
		&layout.ContainerNode{Styles: &style.Style{
			Width:           style.Length{Unit: style.UnitPx, Value: 8},
			Height:          style.Length{Unit: style.UnitPx, Value: 8},
			Margin:          style.UniformEdges(style.Length{Unit: style.UnitPx, Value: 8}),
			BackgroundColor: bg(rasterly.White),
			BoxShadow:       shadows,
		}},
	}}
	tree := solveTree(t, root, 24, 24)
	pix := NewPainter().Paint(tree, 24, 24)

	if got := pix.GetPixel(12, 12); got != rasterly.White {
		t.Fatalf("box interior = %+v, want white", got)
	}
	if got := pix.GetPixel(6, 12); got.A == 0 {
		t.Fatal("shadow should spill past the box edge")
	}
}

func TestPaintImageNode(t *testing.T) {
	img := rasterly.NewPixmap(4, 4)
	img.Fill(rasterly.RGB(0, 128, 0))

	root := &layout.ImageNode{
		Styles: &style.Style{
			Width:  style.Length{Unit: style.UnitPx, Value: 12},
			Height: style.Length{Unit: style.UnitPx, Value: 12},
		},
		Src: "mem://green",
	}
	ctx := layout.NewContext(rasterly.NewViewport(12, 12))
	ctx.Images = resources.Map{"mem://green": img.Image()}

	tree := layout.Build(root, ctx)
	layout.NewFlowEngine().Solve(tree, layout.Size{Width: 12, Height: 12})
	pix := NewPainter().Paint(tree, 12, 12)

	if got := pix.GetPixel(6, 6); got.G != 128 {
		t.Fatalf("image pixel = %+v, want green", got)
	}
}
