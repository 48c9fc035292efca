package layout

import (
	"testing"

	"github.com/rasterly/rasterly/style"
)

func TestUnmarshalNodeTree(t *testing.T) {
	data := []byte(`{
		"type": "container",
		"style": {
			"display": "flex",
			"width": "100%",
			"padding": "8px 16px",
			"backgroundColor": "#102030",
			"gap": "1rem"
		},
		"children": [
			{
				"type": "text",
				"text": "Hello",
				"style": {"fontSize": "24px", "color": "red", "fontWeight": 700}
			},
			{
				"type": "image",
				"src": "https://example.com/a.png",
				"style": {"width": "40px", "objectFit": "cover"}
			}
		]
	}`)

	node, err := UnmarshalNode(data)
	if err != nil {
		t.Fatal(err)
	}
	root, ok := node.(*ContainerNode)
	if !ok {
		t.Fatalf("root = %T, want *ContainerNode", node)
	}
	if root.Styles.Display != style.DisplayFlex {
		t.Fatalf("display = %v, want flex", root.Styles.Display)
	}
	if root.Styles.Width != (style.Length{Unit: style.UnitPercent, Value: 100}) {
		t.Fatalf("width = %+v", root.Styles.Width)
	}
	if root.Styles.Padding.Top != px(8) || root.Styles.Padding.Left != px(16) {
		t.Fatalf("padding = %+v", root.Styles.Padding)
	}
	if root.Styles.BackgroundColor.Value.B != 0x30 {
		t.Fatalf("backgroundColor = %+v", root.Styles.BackgroundColor)
	}

	if len(root.Kids) != 2 {
		t.Fatalf("children = %d, want 2", len(root.Kids))
	}
	txt, ok := root.Kids[0].(*TextNode)
	if !ok || txt.Text != "Hello" {
		t.Fatalf("first child = %#v", root.Kids[0])
	}
	if txt.Styles.FontWeight != 700 {
		t.Fatalf("fontWeight = %d, want 700", txt.Styles.FontWeight)
	}
	img, ok := root.Kids[1].(*ImageNode)
	if !ok || img.Src != "https://example.com/a.png" {
		t.Fatalf("second child = %#v", root.Kids[1])
	}
	if img.Styles.ObjectFit != style.ObjectFitCover {
		t.Fatalf("objectFit = %v, want cover", img.Styles.ObjectFit)
	}
}

func TestUnmarshalNodeDefaultsToContainer(t *testing.T) {
	node, err := UnmarshalNode([]byte(`{"children": [{"type": "text", "text": "x"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := node.(*ContainerNode); !ok {
		t.Fatalf("node = %T, want *ContainerNode", node)
	}
}

func TestUnmarshalNodeErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"unknown type", `{"type": "video"}`},
		{"text with children", `{"type": "text", "text": "x", "children": [{"type": "text"}]}`},
		{"image without src", `{"type": "image"}`},
		{"bad length", `{"type": "container", "style": {"width": "how wide"}}`},
		{"bad color", `{"type": "container", "style": {"color": "#zz"}}`},
		{"bad transform", `{"type": "container", "style": {"transform": "warp(1)"}}`},
		{"bad child", `{"type": "container", "children": [{"type": "image"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := UnmarshalNode([]byte(tc.data)); err == nil {
				t.Fatalf("expected error for %s", tc.data)
			}
		})
	}
}

func TestUnmarshalNodeTransformAndShadow(t *testing.T) {
	data := []byte(`{
		"type": "container",
		"style": {
			"transform": "translate(10px, 0) scale(2)",
			"boxShadow": "0 4px 8px rgba(0, 0, 0, 0.5), inset 0 1px 0 white",
			"filter": "blur(4px)",
			"lineClamp": 2
		}
	}`)
	node, err := UnmarshalNode(data)
	if err != nil {
		t.Fatal(err)
	}
	st := node.Style()
	if len(st.Transform) != 2 {
		t.Fatalf("transform ops = %d, want 2", len(st.Transform))
	}
	if len(st.BoxShadow) != 2 {
		t.Fatalf("shadows = %d, want 2", len(st.BoxShadow))
	}
	if !st.BoxShadow[1].Inset {
		t.Fatal("second shadow should be inset")
	}
	if len(st.Filter) != 1 || st.Filter[0].Blur != px(4) {
		t.Fatalf("filter = %+v", st.Filter)
	}
	if st.LineClamp.MaxLines != 2 {
		t.Fatalf("lineClamp = %d, want 2", st.LineClamp.MaxLines)
	}
}
