package layout

import "github.com/rasterly/rasterly/resources"

// CollectTasks walks a node tree and returns the image URLs it references,
// in first-seen document order with duplicates removed. Callers fetch or
// decode these before layout so replaced boxes can be measured.
func CollectTasks(root Node) []string {
	tasks := resources.NewTasks()
	collectTasks(root, tasks)
	return tasks.URLs()
}

func collectTasks(n Node, tasks *resources.Tasks) {
	if n == nil {
		return
	}
	// display:none subtrees are still collected; toggling a node visible
	// later should not force a refetch.
	if st := n.Style(); st != nil && st.BackgroundImage != "" {
		tasks.Add(st.BackgroundImage)
	}
	if img, ok := n.(*ImageNode); ok {
		tasks.Add(img.Src)
	}
	for _, child := range n.Children() {
		collectTasks(child, tasks)
	}
}
