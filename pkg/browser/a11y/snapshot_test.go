package a11y

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSnapshotEmpty(t *testing.T) {
	for _, snapshot := range []string{"", "   \n"} {
		root, err := ParseSnapshot(snapshot)
		require.NoError(t, err)
		assert.Equal(t, "WebArea", root.Role)
		assert.Empty(t, root.Children)
	}
}

func TestParseSnapshotFlat(t *testing.T) {
	snapshot := `
- heading "Results" [level=2]
- button "Buy now"
- checkbox "Subscribe" [checked]
- button "Sold out" [disabled]
`
	root, err := ParseSnapshot(snapshot)
	require.NoError(t, err)
	require.Len(t, root.Children, 4)

	heading := root.Children[0]
	assert.Equal(t, "heading", heading.Role)
	assert.Equal(t, "Results", heading.Name)
	assert.Equal(t, 2, heading.Level)

	assert.Equal(t, "Buy now", root.Children[1].Name)
	assert.True(t, root.Children[2].Checked)
	assert.True(t, root.Children[3].Disabled)
}

func TestParseSnapshotNested(t *testing.T) {
	snapshot := `
- list:
  - listitem:
    - link "First item":
      - /url: https://example.com/1
  - listitem:
    - link "Second item"
`
	root, err := ParseSnapshot(snapshot)
	require.NoError(t, err)
	require.Len(t, root.Children, 1)

	list := root.Children[0]
	assert.Equal(t, "list", list.Role)
	require.Len(t, list.Children, 2)

	first := list.Children[0]
	require.Len(t, first.Children, 1)
	link := first.Children[0]
	assert.Equal(t, "link", link.Role)
	assert.Equal(t, "First item", link.Name)
	// Property keys like /url are not children.
	assert.Empty(t, link.Children)
}

func TestParseSnapshotScalarValues(t *testing.T) {
	snapshot := `
- text: Free shipping on orders over fifty dollars
- textbox "Email": user@example.com
`
	root, err := ParseSnapshot(snapshot)
	require.NoError(t, err)
	require.Len(t, root.Children, 2)

	text := root.Children[0]
	assert.Equal(t, "text", text.Role)
	assert.Equal(t, "Free shipping on orders over fifty dollars", text.Name)

	box := root.Children[1]
	assert.Equal(t, "textbox", box.Role)
	assert.Equal(t, "Email", box.Name)
	assert.Equal(t, "user@example.com", box.Value)
}

func TestParseSnapshotInvalidYAML(t *testing.T) {
	_, err := ParseSnapshot("{ not: [valid")
	assert.Error(t, err)
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		header string
		want   *Node
	}{
		{`button "OK"`, &Node{Role: "button", Name: "OK"}},
		{`heading "Title" [level=1]`, &Node{Role: "heading", Name: "Title", Level: 1}},
		{`switch "Dark mode" [checked=false]`, &Node{Role: "switch", Name: "Dark mode", Checked: false}},
		{`switch "Dark mode" [checked=true]`, &Node{Role: "switch", Name: "Dark mode", Checked: true}},
		{`generic`, &Node{Role: "generic"}},
		{`/url: https://example.com`, nil},
		{``, nil},
	}

	for _, tt := range tests {
		got := parseHeader(tt.header)
		assert.Equal(t, tt.want, got, "header %q", tt.header)
	}
}
