package render

import (
	"errors"
	"testing"

	"github.com/rasterly/rasterly"
	"github.com/rasterly/rasterly/layout"
	"github.com/rasterly/rasterly/style"
)

func TestRenderBackground(t *testing.T) {
	root := &layout.ContainerNode{Styles: &style.Style{
		BackgroundColor: style.NewColor(rasterly.RGB(1, 2, 3)),
	}}

	pix, err := New().RenderPixmap(root, rasterly.NewViewport(10, 10))
	if err != nil {
		t.Fatal(err)
	}
	if pix.Width() != 10 || pix.Height() != 10 {
		t.Fatalf("dimensions = %dx%d", pix.Width(), pix.Height())
	}
	if got := pix.GetPixel(5, 5); got != rasterly.RGB(1, 2, 3) {
		t.Fatalf("pixel = %+v", got)
	}
}

func TestRenderDevicePixelRatio(t *testing.T) {
	root := &layout.ContainerNode{Styles: &style.Style{}}
	vp := rasterly.NewViewport(10, 10).WithDevicePixelRatio(2)

	pix, err := New().RenderPixmap(root, vp)
	if err != nil {
		t.Fatal(err)
	}
	if pix.Width() != 20 || pix.Height() != 20 {
		t.Fatalf("dimensions = %dx%d, want 20x20", pix.Width(), pix.Height())
	}
}

func TestRenderUnconstrainedHeight(t *testing.T) {
	root := &layout.ContainerNode{
		Styles: &style.Style{BackgroundColor: style.NewColor(rasterly.White)},
		Kids: []layout.Node{
			&layout.ContainerNode{Styles: &style.Style{
				Height:          style.Length{Unit: style.UnitPx, Value: 40},
				BackgroundColor: style.NewColor(rasterly.RGB(200, 0, 0)),
			}},
		},
	}

	pix, err := New().RenderPixmap(root, rasterly.NewViewport(20, 0))
	if err != nil {
		t.Fatal(err)
	}
	if pix.Width() != 20 || pix.Height() != 40 {
		t.Fatalf("dimensions = %dx%d, want 20x40", pix.Width(), pix.Height())
	}
	if got := pix.GetPixel(10, 35); got != rasterly.RGB(200, 0, 0) {
		t.Fatalf("content pixel = %+v, want red", got)
	}
}

func TestRenderEmptyTree(t *testing.T) {
	root := &layout.ContainerNode{Styles: &style.Style{Display: style.DisplayNone}}
	_, err := New().RenderPixmap(root, rasterly.NewViewport(10, 10))
	if !errors.Is(err, ErrEmptyTree) {
		t.Fatalf("err = %v, want ErrEmptyTree", err)
	}
}

func TestRenderEndToEnd(t *testing.T) {
	data := []byte(`{
		"type": "container",
		"style": {"backgroundColor": "white", "padding": "4px"},
		"children": [
			{"type": "text", "text": "Hi", "style": {"fontSize": "20px"}}
		]
	}`)
	root, err := layout.UnmarshalNode(data)
	if err != nil {
		t.Fatal(err)
	}

	img, err := New().Render(root, rasterly.NewViewport(80, 40))
	if err != nil {
		t.Fatal(err)
	}

	// The text child must leave non-white coverage somewhere.
	found := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !found; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, _, _, a := img.At(x, y).RGBA()
			if a > 0 && r < 0x8000 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatal("no glyph coverage in rendered output")
	}
}

func TestCollectTasksPassthrough(t *testing.T) {
	root := &layout.ContainerNode{
		Styles: &style.Style{},
		Kids: []layout.Node{
			&layout.ImageNode{Styles: &style.Style{}, Src: "https://example.com/x.png"},
		},
	}
	got := New().CollectTasks(root)
	if len(got) != 1 || got[0] != "https://example.com/x.png" {
		t.Fatalf("tasks = %v", got)
	}
}
