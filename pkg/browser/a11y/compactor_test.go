package a11y

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanNilTree(t *testing.T) {
	result := Scan(nil)
	assert.Equal(t, "Accessibility tree is empty.", result.Report)
	assert.Empty(t, result.Elements)
}

func TestScanNoInteractiveElements(t *testing.T) {
	root := &Node{Role: "WebArea", Children: []*Node{
		{Role: "generic"},
		{Role: "text", Name: "ok"}, // too short for context
	}}
	result := Scan(root)
	assert.Equal(t, "No interactive elements found. Try scrolling.", result.Report)
	assert.Empty(t, result.Elements)
}

func TestScanHeadingAndButton(t *testing.T) {
	root := &Node{Role: "WebArea", Children: []*Node{
		{Role: "heading", Name: "Search Results", Level: 1},
		{Role: "button", Name: "Buy"},
	}}

	result := Scan(root)
	require.Len(t, result.Elements, 1)
	assert.Contains(t, result.Report, "SEARCH RESULTS ===")
	assert.Contains(t, result.Report, "1. [button] Buy")
	assert.Equal(t, Element{ID: 1, Role: "button", Name: "Buy"}, result.Elements[0])
}

func TestScanIdsAreDenseAndOrdered(t *testing.T) {
	root := &Node{Role: "WebArea", Children: []*Node{
		{Role: "link", Name: "First"},
		{Role: "generic", Children: []*Node{
			{Role: "button", Name: "Second"},
		}},
		{Role: "textbox", Name: "Third"},
	}}

	result := Scan(root)
	require.Len(t, result.Elements, 3)
	for i, el := range result.Elements {
		assert.Equal(t, i+1, el.ID)
	}
	assert.Equal(t, "Second", result.Elements[1].Name)
}

func TestScanDescendantNameSynthesis(t *testing.T) {
	root := &Node{Role: "WebArea", Children: []*Node{
		{Role: "link", Children: []*Node{
			{Role: "generic", Children: []*Node{
				{Role: "text", Name: "Product"},
			}},
			{Role: "text", Name: "1499 ₽"},
		}},
	}}

	result := Scan(root)
	require.Len(t, result.Elements, 1)
	assert.Equal(t, "Product 1499 ₽", result.Elements[0].Name)
	assert.Contains(t, result.Report, "1. [link] Product 1499 ₽")
}

func TestScanTextboxValuePlaceholder(t *testing.T) {
	root := &Node{Role: "WebArea", Children: []*Node{
		{Role: "textbox", Value: "query in progress"},
	}}

	result := Scan(root)
	require.Len(t, result.Elements, 1)
	assert.Contains(t, result.Report, "[textbox] [Value: query in progress]")
}

func TestScanAttributes(t *testing.T) {
	root := &Node{Role: "WebArea", Children: []*Node{
		{Role: "checkbox", Name: "Subscribe", Checked: true},
		{Role: "button", Name: "Submit", Disabled: true},
		{Role: "combobox", Name: "Country", Value: "Germany"},
	}}

	result := Scan(root)
	require.Len(t, result.Elements, 3)
	assert.Contains(t, result.Report, "1. [checkbox] Subscribe (checked)")
	assert.Contains(t, result.Report, "2. [button] Submit (disabled)")
	assert.Contains(t, result.Report, "3. [combobox] Country (val=Germany)")
}

func TestScanPlainTextFiltering(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		included bool
	}{
		{"short text dropped", "Menu item here", false},
		{"long text kept", "This paragraph is definitely longer than twenty characters.", true},
		{"currency kept even when short", "Total: 99 €", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := &Node{Role: "WebArea", Children: []*Node{
				{Role: "button", Name: "anchor"}, // ensures a non-empty report
				{Role: "text", Name: tt.text},
			}}
			result := Scan(root)
			if tt.included {
				assert.Contains(t, result.Report, "(txt) "+tt.text)
			} else {
				assert.NotContains(t, result.Report, tt.text)
			}
		})
	}
}

func TestScanLongNamesTruncated(t *testing.T) {
	longName := strings.Repeat("x", 200)
	root := &Node{Role: "WebArea", Children: []*Node{
		{Role: "link", Name: longName},
	}}

	result := Scan(root)
	require.Len(t, result.Elements, 1)
	assert.Contains(t, result.Report, strings.Repeat("x", 77)+"...")
	assert.NotContains(t, result.Report, strings.Repeat("x", 78))
	// The registered element keeps the full name for locator resolution.
	assert.Equal(t, longName, result.Elements[0].Name)
}

func TestScanElementCap(t *testing.T) {
	children := make([]*Node, 0, MaxInteractiveElements+50)
	for i := 0; i < MaxInteractiveElements+50; i++ {
		children = append(children, &Node{Role: "link", Name: fmt.Sprintf("link %d", i)})
	}
	root := &Node{Role: "WebArea", Children: children}

	result := Scan(root)
	assert.Len(t, result.Elements, MaxInteractiveElements)
}

func TestElementMap(t *testing.T) {
	result := Scan(&Node{Role: "WebArea", Children: []*Node{
		{Role: "button", Name: "A"},
		{Role: "button", Name: "B"},
	}})

	m := result.ElementMap()
	require.Len(t, m, 2)
	assert.Equal(t, "A", m[1].Name)
	assert.Equal(t, "B", m[2].Name)
}
