package patricia

// node is a single vertex of a Trie. The root has an empty prefix.
type node[V any] struct {
	prefix []rune // edge label from the parent
	kids   children[V]
	val    V
	hasVal bool
}

func newLeaf[V any](prefix []rune, val V) *node[V] {
	return &node[V]{prefix: prefix, val: val, hasVal: true}
}

// split cuts the node prefix at the given position and returns a new intermediate
// node holding the head; the original node keeps the tail and becomes its only child.
func (n *node[V]) split(at int) *node[V] {
	mid := &node[V]{prefix: n.prefix[:at:at]}
	n.prefix = n.prefix[at:]
	mid.kids.insertAt(0, n)
	return mid
}

// mergeChild collapses a valueless node with its only child. The child inherits the
// concatenated prefix and takes the node's place.
func (n *node[V]) mergeChild() *node[V] {
	child := n.kids.list[0]
	prefix := make([]rune, 0, len(n.prefix)+len(child.prefix))
	prefix = append(prefix, n.prefix...)
	prefix = append(prefix, child.prefix...)
	child.prefix = prefix
	return child
}

// commonPrefix returns the length of the longest common prefix of a and b.
func commonPrefix(a, b []rune) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for ; i < n && a[i] == b[i]; i++ {
	}
	return i
}

func hasPrefix(s, prefix []rune) bool {
	return len(s) >= len(prefix) && commonPrefix(s, prefix) == len(prefix)
}
