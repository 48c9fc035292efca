package layout

import (
	"testing"

	"github.com/rasterly/rasterly"
	"github.com/rasterly/rasterly/style"
)

func px(v float32) style.Length {
	return style.Length{Unit: style.UnitPx, Value: v}
}

func pct(v float32) style.Length {
	return style.Length{Unit: style.UnitPercent, Value: v}
}

func sizedBox(w, h style.Length) *ContainerNode {
	return &ContainerNode{Styles: &style.Style{Width: w, Height: h}}
}

func solve(t *testing.T, root Node, vpW, vpH int) *Tree {
	t.Helper()
	tree := Build(root, NewContext(rasterly.NewViewport(vpW, vpH)))
	if tree == nil {
		t.Fatal("Build returned nil")
	}
	NewFlowEngine().Solve(tree, Size{Width: float32(vpW), Height: float32(vpH)})
	return tree
}

func TestFlowBlockStacking(t *testing.T) {
	root := blockBox(
		sizedBox(px(50), px(30)),
		sizedBox(style.Length{}, px(20)),
	)
	tree := solve(t, root, 200, 100)

	if tree.Layout.Width != 200 || tree.Layout.Height != 50 {
		t.Fatalf("root layout = %+v, want 200x50", tree.Layout)
	}

	first := tree.Children[0].Layout
	if first != (Rect{X: 0, Y: 0, Width: 50, Height: 30}) {
		t.Fatalf("first child = %+v", first)
	}
	second := tree.Children[1].Layout
	if second != (Rect{X: 0, Y: 30, Width: 200, Height: 20}) {
		t.Fatalf("second child = %+v, want full-width block at y=30", second)
	}
}

func TestFlowMarginsAndPadding(t *testing.T) {
	child := &ContainerNode{Styles: &style.Style{
		Height: px(10),
		Margin: style.UniformEdges(px(5)),
	}}
	root := &ContainerNode{
		Styles: &style.Style{Padding: style.UniformEdges(px(8))},
		Kids:   []Node{child},
	}
	tree := solve(t, root, 100, 100)

	got := tree.Children[0].Layout
	if got.X != 13 || got.Y != 13 {
		t.Fatalf("child origin = (%v, %v), want (13, 13)", got.X, got.Y)
	}
	// Content width 84 minus 10 of horizontal margin.
	if got.Width != 74 {
		t.Fatalf("child width = %v, want 74", got.Width)
	}
	// Padding and the child's vertical margins both add to the auto height.
	if tree.Layout.Height != 8+5+10+5+8 {
		t.Fatalf("root height = %v, want 36", tree.Layout.Height)
	}
}

func TestFlowPercentageWidth(t *testing.T) {
	root := blockBox(sizedBox(pct(50), px(10)))
	tree := solve(t, root, 200, 100)
	if got := tree.Children[0].Layout.Width; got != 100 {
		t.Fatalf("width = %v, want 100", got)
	}
}

func TestFlowMinMaxClamp(t *testing.T) {
	root := blockBox(&ContainerNode{Styles: &style.Style{
		Width:     px(300),
		MaxWidth:  px(120),
		Height:    px(5),
		MinHeight: px(40),
	}})
	tree := solve(t, root, 200, 100)
	got := tree.Children[0].Layout
	if got.Width != 120 || got.Height != 40 {
		t.Fatalf("layout = %+v, want 120x40", got)
	}
}

func TestFlowFlexRow(t *testing.T) {
	root := &ContainerNode{
		Styles: &style.Style{Display: style.DisplayFlex, Gap: px(10)},
		Kids: []Node{
			sizedBox(px(40), px(30)),
			sizedBox(px(60), px(50)),
		},
	}
	tree := solve(t, root, 200, 100)

	first := tree.Children[0].Layout
	second := tree.Children[1].Layout
	if first.X != 0 || second.X != 50 {
		t.Fatalf("x positions = %v, %v; want 0, 50", first.X, second.X)
	}
	if tree.Layout.Height != 50 {
		t.Fatalf("row height = %v, want tallest child 50", tree.Layout.Height)
	}
}

func TestFlowInlineContentHeight(t *testing.T) {
	root := blockBox(inlineText("Hello, world"))
	tree := solve(t, root, 400, 200)
	if tree.Layout.Width != 400 {
		t.Fatalf("root width = %v, want to fill viewport", tree.Layout.Width)
	}
	if tree.Layout.Height != 20 {
		t.Fatalf("root height = %v, want one 20px line", tree.Layout.Height)
	}
}

func TestFlowExplicitHeightWins(t *testing.T) {
	root := &ContainerNode{
		Styles: &style.Style{Height: px(75)},
		Kids:   []Node{inlineText("Hello")},
	}
	tree := solve(t, root, 400, 200)
	if tree.Layout.Height != 75 {
		t.Fatalf("height = %v, want declared 75", tree.Layout.Height)
	}
}

func TestContentBox(t *testing.T) {
	root := &ContainerNode{Styles: &style.Style{
		Padding:     style.UniformEdges(px(4)),
		BorderWidth: style.UniformEdges(px(2)),
		Height:      px(50),
	}}
	tree := solve(t, root, 100, 100)

	content := tree.ContentBox(tree.Layout)
	if content.X != 6 || content.Y != 6 || content.Width != 88 || content.Height != 38 {
		t.Fatalf("content box = %+v", content)
	}
	padding := tree.PaddingBox(tree.Layout)
	if padding.X != 2 || padding.Width != 96 {
		t.Fatalf("padding box = %+v", padding)
	}
}
