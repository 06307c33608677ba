package a11y

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseSnapshot parses a Playwright aria snapshot (a YAML document of nested
// role entries) into a Node tree rooted at a synthetic WebArea node.
//
// Snapshot entries look like:
//
//	- heading "Search Results" [level=1]
//	- button "Buy"
//	- list:
//	  - listitem:
//	    - link "Item":
//	      - /url: https://example.com
//	- textbox "Email": user@example.com
//	- text: Plain page text
//
// Keys starting with "/" are node properties, not children, and are skipped.
func ParseSnapshot(snapshot string) (*Node, error) {
	root := &Node{Role: "WebArea"}

	trimmed := strings.TrimSpace(snapshot)
	if trimmed == "" {
		return root, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(snapshot), &doc); err != nil {
		return nil, fmt.Errorf("invalid aria snapshot: %w", err)
	}
	if len(doc.Content) == 0 {
		return root, nil
	}

	children, err := parseSequence(doc.Content[0])
	if err != nil {
		return nil, err
	}
	root.Children = children
	return root, nil
}

func parseSequence(seq *yaml.Node) ([]*Node, error) {
	if seq.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("expected a YAML sequence of aria nodes, got kind %d", seq.Kind)
	}

	var nodes []*Node
	for _, item := range seq.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			if node := parseHeader(item.Value); node != nil {
				nodes = append(nodes, node)
			}

		case yaml.MappingNode:
			// Mapping entries pair a role header with either a child
			// sequence or a scalar text/value.
			for i := 0; i+1 < len(item.Content); i += 2 {
				key, val := item.Content[i], item.Content[i+1]
				node := parseHeader(key.Value)
				if node == nil {
					continue
				}

				switch val.Kind {
				case yaml.SequenceNode:
					children, err := parseSequence(val)
					if err != nil {
						return nil, err
					}
					node.Children = children
				case yaml.ScalarNode:
					if node.Name == "" {
						node.Name = val.Value
					} else {
						node.Value = val.Value
					}
				}
				nodes = append(nodes, node)
			}
		}
	}
	return nodes, nil
}

// parseHeader parses one role header of the form
//
//	role "accessible name" [attr] [attr=value]
//
// and returns nil for property keys (leading "/") and empty headers.
func parseHeader(header string) *Node {
	header = strings.TrimSpace(header)
	if header == "" || strings.HasPrefix(header, "/") {
		return nil
	}

	node := &Node{}
	rest := header

	if i := strings.IndexByte(rest, ' '); i >= 0 {
		node.Role = rest[:i]
		rest = strings.TrimSpace(rest[i+1:])
	} else {
		node.Role = rest
		rest = ""
	}

	if strings.HasPrefix(rest, `"`) {
		if j := strings.Index(rest[1:], `"`); j >= 0 {
			node.Name = rest[1 : j+1]
			rest = strings.TrimSpace(rest[j+2:])
		}
	}

	for strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}
		applyAttr(node, rest[1:end])
		rest = strings.TrimSpace(rest[end+1:])
	}

	return node
}

func applyAttr(node *Node, attr string) {
	key, value, _ := strings.Cut(attr, "=")
	switch key {
	case "level":
		if level, err := strconv.Atoi(value); err == nil {
			node.Level = level
		}
	case "checked":
		node.Checked = value == "" || value != "false"
	case "disabled":
		node.Disabled = true
	}
}
