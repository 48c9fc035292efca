package layout

import (
	"github.com/rasterly/rasterly/style"
)

// Tree is one box of the laid-out box tree: a node (nil for anonymous
// boxes), its resolved context, and its children. After the engine runs,
// Layout holds the box's border-box rectangle relative to its parent.
type Tree struct {
	Context *Context
	// Node is nil for anonymous block boxes.
	Node     Node
	Children []*Tree

	// Layout is the border-box rectangle, set by the layout engine,
	// relative to the parent's border box.
	Layout Rect
}

// Display returns the box's effective display after tree fixups.
func (t *Tree) Display() style.Display {
	return t.Context.Style.Display
}

// IsInline reports whether the box participates in inline flow.
func (t *Tree) IsInline() bool {
	return t.Display() == style.DisplayInline
}

// IsAnonymous reports whether the box was synthesized to wrap an inline
// run.
func (t *Tree) IsAnonymous() bool { return t.Node == nil }

// ConstructsInlineLayout reports whether the box is the root of an inline
// formatting context: a block whose children are all inline-level.
func (t *Tree) ConstructsInlineLayout() bool {
	if t.Display() != style.DisplayBlock || len(t.Children) == 0 {
		return false
	}
	for _, c := range t.Children {
		if c.IsInline() {
			return true
		}
	}
	return false
}

// HasInlineContent reports whether the box paints through an inline
// formatting context: either it is the root of one, or it is a block leaf
// whose node contributes text directly.
func (t *Tree) HasInlineContent() bool {
	if t.ConstructsInlineLayout() {
		return true
	}
	if len(t.Children) > 0 || t.Node == nil {
		return false
	}
	return t.Node.InlineContent(t.Context).Kind == InlineText
}

// Build resolves the node tree into a box tree: styles are inherited
// top-down, display: none subtrees are dropped, flex containers blockify
// their children, mixed block containers wrap each maximal inline run in an
// anonymous block box, and the root is always blockified.
func Build(root Node, ctx *Context) *Tree {
	t := build(root, ctx)
	if t == nil {
		return nil
	}
	// The root's display is always blockified.
	// https://www.w3.org/TR/css-display-3/#root
	if t.IsInline() {
		t.Context.Style.Display = style.DisplayBlock
	}
	return t
}

func build(node Node, parent *Context) *Tree {
	var decl style.Style
	if s := node.Style(); s != nil {
		decl = *s
	}
	if decl.Display == style.DisplayNone {
		return nil
	}

	ctx := parent.child(decl)
	t := &Tree{Context: ctx, Node: node}

	kids := node.Children()
	if len(kids) == 0 {
		return t
	}

	for _, kid := range kids {
		if child := build(kid, ctx); child != nil {
			t.Children = append(t.Children, child)
		}
	}

	// Flex containers force every child to block level; no anonymous
	// wrapping is needed then.
	if ctx.Style.Display.BlockifiesChildren() {
		for _, c := range t.Children {
			if c.IsInline() {
				c.Context.Style.Display = style.DisplayBlock
			}
		}
		return t
	}

	hasInline := false
	hasBlock := false
	for _, c := range t.Children {
		if c.IsInline() {
			hasInline = true
		} else {
			hasBlock = true
		}
	}
	if ctx.Style.Display != style.DisplayBlock || !hasInline || !hasBlock {
		return t
	}

	// Mixed content: wrap each maximal run of inline children in an
	// anonymous block box so every child of this box is block-level.
	var fixed []*Tree
	var run []*Tree
	flush := func() {
		if len(run) == 0 {
			return
		}
		fixed = append(fixed, anonymousBox(ctx, run))
		run = nil
	}
	for _, c := range t.Children {
		if c.IsInline() {
			run = append(run, c)
			continue
		}
		flush()
		fixed = append(fixed, c)
	}
	flush()
	t.Children = fixed
	return t
}

// anonymousBox wraps an inline run in a block box that inherits the
// container's cascade state but declares nothing of its own.
func anonymousBox(parent *Context, run []*Tree) *Tree {
	ctx := *parent
	ctx.Style = style.Style{Display: style.DisplayBlock}
	return &Tree{Context: &ctx, Children: run}
}

// InlineItem is one leaf of an inline formatting context in document
// order: a text run or an inline-level box, with the tree box that owns it.
type InlineItem struct {
	// Owner is the box contributing the item; its context styles the run.
	Owner *Tree
	// Content is the owner's inline contribution.
	Content InlineContent
}

// InlineItems flattens the box's inline formatting context into document
// order. The receiver must be a block box; every descendant must be
// inline-level. Violations are builder bugs and panic.
func (t *Tree) InlineItems() []InlineItem {
	if t.Display() != style.DisplayBlock {
		panic("layout: inline formatting context root must be display block")
	}

	type frame struct {
		box   *Tree
		depth int
	}
	stack := []frame{{box: t}}
	var items []InlineItem

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.depth > 0 && !f.box.IsInline() {
			panic("layout: non-root boxes in an inline formatting context must be display inline")
		}
		if f.box.Node != nil {
			if content := f.box.Node.InlineContent(f.box.Context); content.Kind != InlineNone {
				items = append(items, InlineItem{Owner: f.box, Content: content})
			}
		}
		// Children in reverse so the stack pops them in document order.
		for i := len(f.box.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{box: f.box.Children[i], depth: f.depth + 1})
		}
	}
	return items
}
