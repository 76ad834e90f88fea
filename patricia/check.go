package patricia

import (
	"fmt"
	"io"
	"strings"
)

// Check verifies the structural invariants of the trie. It returns an error wrapping
// ErrInvariant describing the first violation found.
func (t *Trie[V]) Check() error {
	if len(t.root.prefix) != 0 {
		return fmt.Errorf("%w: root prefix %q is not empty", ErrInvariant, string(t.root.prefix))
	}

	// base is the length of the parent path, the shared path buffer is cut to it
	// before a node's own prefix is appended
	type entry struct {
		n    *node[V]
		base int
	}

	var (
		words   int
		path    []rune
		toVisit = []entry{{&t.root, 0}}
	)

	for l := len(toVisit); l > 0; l = len(toVisit) {
		e := toVisit[l-1]
		toVisit = toVisit[:l-1]

		path = append(path[:e.base], e.n.prefix...)

		if err := t.checkNode(e.n, path); err != nil {
			return err
		}
		if e.n.hasVal {
			words++
		}

		for i := e.n.kids.len() - 1; i >= 0; i-- {
			toVisit = append(toVisit, entry{e.n.kids.list[i], len(path)})
		}
	}

	if words != t.size {
		return fmt.Errorf("%w: counted %d words, expected %d", ErrInvariant, words, t.size)
	}

	return nil
}

// checkNode verifies a single node and the layout of its children.
func (t *Trie[V]) checkNode(n *node[V], path []rune) error {
	if n != &t.root {
		switch {
		case len(n.prefix) == 0:
			return fmt.Errorf("%w: empty edge below %q", ErrInvariant, string(path))
		case !n.hasVal && n.kids.len() == 0:
			return fmt.Errorf("%w: leaf %q has no value", ErrInvariant, string(path))
		case !n.hasVal && n.kids.len() == 1:
			return fmt.Errorf("%w: node %q has a single child and no value", ErrInvariant, string(path))
		}
		if err := checkAlphabet(n.prefix, t.alphabet); err != nil {
			return fmt.Errorf("%w: edge %q: %v", ErrInvariant, string(n.prefix), err)
		}
	}

	var low [lowRunes / wordBits]uint64

	for i, child := range n.kids.list {
		if len(child.prefix) == 0 {
			return fmt.Errorf("%w: empty edge below %q", ErrInvariant, string(path))
		}
		first := child.prefix[0]
		if i > 0 && n.kids.list[i-1].prefix[0] >= first {
			return fmt.Errorf("%w: children of %q are not strictly ordered at %q",
				ErrInvariant, string(path), first)
		}
		if first >= 0 && first < lowRunes {
			low[first/wordBits] |= uint64(1) << uint(first%wordBits)
		}
	}

	if low != n.kids.low {
		return fmt.Errorf("%w: child bitmap of %q is out of sync", ErrInvariant, string(path))
	}

	return nil
}

// DebugDump prints the node tree, one edge per line.
func (t *Trie[V]) DebugDump(w io.Writer) {
	type entry struct {
		n     *node[V]
		depth int
	}

	toVisit := []entry{{&t.root, 0}}

	for l := len(toVisit); l > 0; l = len(toVisit) {
		e := toVisit[l-1]
		toVisit = toVisit[:l-1]

		indent := strings.Repeat("  ", e.depth)
		if e.n.hasVal {
			fmt.Fprintf(w, "%s%q val=%v\n", indent, string(e.n.prefix), e.n.val)
		} else {
			fmt.Fprintf(w, "%s%q\n", indent, string(e.n.prefix))
		}

		for i := e.n.kids.len() - 1; i >= 0; i-- {
			toVisit = append(toVisit, entry{e.n.kids.list[i], e.depth + 1})
		}
	}
}
