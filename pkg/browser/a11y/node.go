// Package a11y turns accessibility trees into compact, model-readable page
// observations with a stable numeric index of interactive elements.
package a11y

// Node is one node of a raw accessibility tree. It is read-only input to the
// compactor and is never mutated by this package.
type Node struct {
	Role     string
	Name     string
	Value    string
	Checked  bool
	Disabled bool
	Level    int
	Children []*Node
}

// Element is one interactive element registered during a scan. Ids are dense,
// 1-based, and assigned in depth-first insertion order; they are only valid
// until the next scan.
type Element struct {
	ID   int
	Role string
	Name string
}

// Result is the outcome of one scan: the rendered report and the interactive
// elements it references, in id order.
type Result struct {
	Report   string
	Elements []Element
}

// ElementMap returns the scan's elements keyed by id, for lookup by later
// tool calls.
func (r Result) ElementMap() map[int]Element {
	m := make(map[int]Element, len(r.Elements))
	for _, el := range r.Elements {
		m[el.ID] = el
	}
	return m
}
