package preset

import (
	"strconv"

	"github.com/sblinch/kdl-go/document"
)

// Thin accessors over kdl-go's document model so the parser proper reads
// like the grammar instead of like AST plumbing.

func nodeName(node *document.Node) string {
	if node == nil || node.Name == nil {
		return ""
	}
	return node.Name.ValueString()
}

func stringProp(node *document.Node, key string) (string, bool) {
	if node == nil {
		return "", false
	}
	value, ok := node.Properties[key]
	if !ok || value == nil {
		return "", false
	}
	return value.ValueString(), true
}

func intProp(node *document.Node, key string) (int, bool) {
	raw, ok := stringProp(node, key)
	if !ok {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}
