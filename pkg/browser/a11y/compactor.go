package a11y

import (
	"fmt"
	"strings"
)

// MaxInteractiveElements caps how many interactive elements a single scan
// registers. The cap protects the downstream token budget from pathological
// pages with thousands of links.
const MaxInteractiveElements = 800

const (
	maxDisplayNameLen  = 80
	minContextNameLen  = 2
	minPlainTextLength = 20
)

// interactiveRoles are roles the model can act on; matching nodes get ids.
var interactiveRoles = map[string]bool{
	"button":    true,
	"link":      true,
	"textbox":   true,
	"searchbox": true,
	"combobox":  true,
	"checkbox":  true,
	"radio":     true,
	"slider":    true,
	"tab":       true,
	"menuitem":  true,
	"switch":    true,
	"treeitem":  true,
}

// contextRoles carry content worth showing even though they are not
// actionable.
var contextRoles = map[string]bool{
	"heading":    true,
	"img":        true,
	"statictext": true,
	"text":       true,
	"paragraph":  true,
	"listitem":   true,
}

var currencyMarkers = []string{"₽", "$", "€"}

// scanState threads the element budget and accumulated output through the
// traversal, so Scan itself stays a pure function of its input tree.
type scanState struct {
	lines    []string
	elements []Element
}

// Scan walks the tree depth-first and produces a bounded textual report plus
// the registered interactive elements. It never fails: empty or useless trees
// degrade to an explanatory report with no elements.
func Scan(root *Node) Result {
	if root == nil {
		return Result{Report: "Accessibility tree is empty."}
	}

	st := &scanState{}
	st.visit(root)

	if len(st.lines) == 0 {
		return Result{Report: "No interactive elements found. Try scrolling."}
	}

	report := fmt.Sprintf("Interactive Elements (%d items):\n%s",
		len(st.elements), strings.Join(st.lines, "\n"))
	return Result{Report: report, Elements: st.elements}
}

func (st *scanState) visit(node *Node) {
	if len(st.elements) >= MaxInteractiveElements {
		return
	}

	role := node.Role
	name := strings.TrimSpace(node.Name)

	// Interactive nodes without an accessible name borrow the text of their
	// descendants, e.g. a link wrapping a product card.
	if name == "" && len(node.Children) > 0 && interactiveRoles[role] {
		name = collectText(node.Children)
	}

	isInteractive := interactiveRoles[role]
	isHeading := role == "heading"
	isContent := contextRoles[role] && len([]rune(name)) > minContextNameLen

	// Transparent node: contributes nothing itself but its children might.
	if !isInteractive && !isHeading && !isContent {
		for _, child := range node.Children {
			st.visit(child)
		}
		return
	}

	var attrs []string
	if (role == "textbox" || role == "searchbox") && name == "" && node.Value != "" {
		name = fmt.Sprintf("[Value: %s]", node.Value)
	} else if node.Value != "" && node.Value != name {
		attrs = append(attrs, "val="+node.Value)
	}
	if node.Checked {
		attrs = append(attrs, "checked")
	}
	if node.Disabled {
		attrs = append(attrs, "disabled")
	}
	if node.Level > 0 {
		attrs = append(attrs, fmt.Sprintf("h%d", node.Level))
	}
	attrStr := ""
	if len(attrs) > 0 {
		attrStr = " (" + strings.Join(attrs, ", ") + ")"
	}

	displayName := truncateName(strings.ReplaceAll(name, "\n", " "))

	switch {
	case isHeading:
		if displayName != "" {
			st.lines = append(st.lines, "\n=== "+strings.ToUpper(role+" "+displayName)+" ===")
		}
	case isInteractive:
		id := len(st.elements) + 1
		st.elements = append(st.elements, Element{ID: id, Role: role, Name: name})
		st.lines = append(st.lines, fmt.Sprintf("%d. [%s] %s%s", id, role, displayName, attrStr))
	case hasCurrency(displayName) || len([]rune(displayName)) > minPlainTextLength:
		st.lines = append(st.lines, "    (txt) "+displayName)
	}

	for _, child := range node.Children {
		st.visit(child)
	}
}

// collectText concatenates the non-empty names of all descendants,
// depth-first, space-joined.
func collectText(children []*Node) string {
	var parts []string
	for _, child := range children {
		if name := strings.TrimSpace(child.Name); name != "" {
			parts = append(parts, name)
		} else if text := collectText(child.Children); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) <= maxDisplayNameLen {
		return name
	}
	return string(runes[:maxDisplayNameLen-3]) + "..."
}

func hasCurrency(text string) bool {
	for _, marker := range currencyMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
