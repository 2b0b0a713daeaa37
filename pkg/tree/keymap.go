package tree

// KeyMap maps a node type to the ordered list of field names that hold its
// traversable children. Types missing from the map fall back to generic
// enumeration of the node's own fields, so lookups are total: every node
// resolves to some key list.
type KeyMap map[string][]string

// ChildKeys resolves the traversal keys for a node. A nil KeyMap always
// falls back to the node's own field order.
func (keys KeyMap) ChildKeys(node *Node) []string {
	if node == nil {
		return nil
	}

	if known, ok := keys[node.Type]; ok {
		return known
	}

	return node.FieldNames()
}

// Merge returns a new KeyMap combining the receiver with overrides; keys in
// overrides win. Either side may be nil.
func (keys KeyMap) Merge(overrides KeyMap) KeyMap {
	if len(overrides) == 0 {
		return keys
	}

	merged := make(KeyMap, len(keys)+len(overrides))
	for nodeType, names := range keys {
		merged[nodeType] = names
	}

	for nodeType, names := range overrides {
		merged[nodeType] = names
	}

	return merged
}
