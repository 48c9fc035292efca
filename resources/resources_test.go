package resources

import (
	"image"
	"testing"
)

func TestTasksDedupOrder(t *testing.T) {
	tasks := NewTasks()
	if !tasks.Add("a.png") {
		t.Error("first add should report new")
	}
	tasks.Add("b.png")
	if tasks.Add("a.png") {
		t.Error("duplicate add should report existing")
	}
	tasks.Add("")
	tasks.Add("c.png")
	tasks.Add("b.png")

	want := []string{"a.png", "b.png", "c.png"}
	got := tasks.URLs()
	if len(got) != len(want) {
		t.Fatalf("urls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("urls[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if tasks.Len() != 3 {
		t.Errorf("len = %d, want 3", tasks.Len())
	}
}

func TestMapImage(t *testing.T) {
	var nilMap Map
	if nilMap.Image("a.png") != nil {
		t.Error("nil map should return nil")
	}

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	m := Map{"a.png": img}
	if m.Image("a.png") != img {
		t.Error("missing stored image")
	}
	if m.Image("b.png") != nil {
		t.Error("unknown key should return nil")
	}
}
