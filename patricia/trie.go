package patricia

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Item is a word with its value.
type Item[V any] struct {
	Word string
	Val  V
}

// Trie maps words to values. The zero value is an empty trie accepting any valid
// UTF-8 word.
type Trie[V any] struct {
	root     node[V]
	size     int
	alphabet []*unicode.RangeTable
}

// Option configures a Trie.
type Option func(*options)

type options struct {
	capacity int
	alphabet []*unicode.RangeTable
}

// WithCapacity hints the number of distinct first characters expected at the root.
// It only affects allocation.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithAlphabet restricts accepted characters to the given Unicode ranges.
func WithAlphabet(tables ...*unicode.RangeTable) Option {
	return func(o *options) {
		o.alphabet = append(o.alphabet, tables...)
	}
}

// New returns an empty Trie.
func New[V any](opts ...Option) *Trie[V] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	t := &Trie[V]{alphabet: o.alphabet}
	t.root.kids.grow(o.capacity)

	return t
}

// Len returns the number of words in the trie.
func (t *Trie[V]) Len() int {
	return t.size
}

// Insert maps the word to val and returns the previous value, if any.
// The empty word is valid and maps to the root.
func (t *Trie[V]) Insert(word string, val V) (prev V, replaced bool, err error) {
	key, err := t.runes(word)
	if err != nil {
		return prev, false, err
	}

	n := &t.root

	for len(key) > 0 {
		idx, ok := n.kids.index(key[0])
		if !ok {
			// no child for the next character - add a leaf
			n.kids.insertAt(idx, newLeaf(key, val))
			t.size++
			return prev, false, nil
		}

		child := n.kids.list[idx]
		common := commonPrefix(child.prefix, key)

		if common == len(child.prefix) {
			// the whole edge matches - descend
			n, key = child, key[common:]
			continue
		}

		// the word leaves the edge midway - split it
		mid := child.split(common)
		n.kids.list[idx] = mid

		if common == len(key) {
			mid.val, mid.hasVal = val, true
		} else {
			mid.kids.add(newLeaf(key[common:], val))
		}
		t.size++

		return prev, false, nil
	}

	// the word ends exactly at a node
	prev, replaced = n.val, n.hasVal
	n.val, n.hasVal = val, true
	if !replaced {
		t.size++
	}

	return prev, replaced, nil
}

// Find returns the value associated with the word.
func (t *Trie[V]) Find(word string) (V, bool) {
	var zero V

	key, err := t.runes(word)
	if err != nil {
		return zero, false
	}

	n := &t.root

	for len(key) > 0 {
		child := n.kids.get(key[0])
		if child == nil || !hasPrefix(key, child.prefix) {
			return zero, false
		}
		n, key = child, key[len(child.prefix):]
	}

	if !n.hasVal {
		return zero, false
	}

	return n.val, true
}

// Remove deletes the word and reports whether it was present.
func (t *Trie[V]) Remove(word string) bool {
	key, err := t.runes(word)
	if err != nil {
		return false
	}

	type step struct {
		parent *node[V]
		idx    int
	}

	var (
		n    = &t.root
		path = make([]step, 0, 8)
	)

	for len(key) > 0 {
		idx, ok := n.kids.index(key[0])
		if !ok {
			return false
		}
		child := n.kids.list[idx]
		if !hasPrefix(key, child.prefix) {
			return false
		}
		path = append(path, step{n, idx})
		n, key = child, key[len(child.prefix):]
	}

	if !n.hasVal {
		return false
	}

	var zero V
	n.val, n.hasVal = zero, false
	t.size--

	// restore compression on the way up; the root is never touched
	for i := len(path) - 1; i >= 0; i-- {
		parent, idx := path[i].parent, path[i].idx

		switch {
		case n.hasVal || n.kids.len() > 1:
			return true
		case n.kids.len() == 0:
			parent.kids.removeAt(idx)
		default:
			parent.kids.list[idx] = n.mergeChild()
		}

		n = parent
	}

	return true
}

// locate finds the highest node whose path starts with key. It returns the node
// and its full path, or nil if no word has the prefix.
func (t *Trie[V]) locate(key []rune) (*node[V], []rune) {
	var (
		n    = &t.root
		path = make([]rune, 0, len(key))
	)

	for len(key) > 0 {
		child := n.kids.get(key[0])
		if child == nil {
			return nil, nil
		}

		common := commonPrefix(child.prefix, key)
		switch {
		case common == len(key):
			// the prefix ends inside or at the end of the edge
			return child, append(path, child.prefix...)
		case common < len(child.prefix):
			return nil, nil
		}

		path = append(path, child.prefix...)
		n, key = child, key[common:]
	}

	return n, path
}

// ValuesWithPrefix returns values of all words starting with prefix, in lexicographic
// order of their words. The empty prefix matches everything.
func (t *Trie[V]) ValuesWithPrefix(prefix string) []V {
	key, err := t.runes(prefix)
	if err != nil {
		return nil
	}

	top, _ := t.locate(key)
	if top == nil {
		return nil
	}

	var vals []V

	// walk the tree without function recursion
	toVisit := []*node[V]{top}

	for l := len(toVisit); l > 0; l = len(toVisit) {
		n := toVisit[l-1]
		toVisit = toVisit[:l-1]

		if n.hasVal {
			vals = append(vals, n.val)
		}

		// push in reverse so the smallest rune is visited first
		for i := n.kids.len() - 1; i >= 0; i-- {
			toVisit = append(toVisit, n.kids.list[i])
		}
	}

	return vals
}

// Iter calls a handler for all words with a given prefix, in lexicographic order.
// It returns whether all prefixed words were iterated.
// The handler can continue the process by returning true or abort with false.
func (t *Trie[V]) Iter(prefix string, handler func(word string, val V) bool) bool {
	key, err := t.runes(prefix)
	if err != nil {
		return true
	}

	top, path := t.locate(key)
	if top == nil {
		return true
	}

	return iterate(top, path, handler)
}

// iterate calls the handler for top and every node below it in pre-order unless
// aborted. path is the full path of top.
func iterate[V any](top *node[V], path []rune, h func(string, V) bool) bool {
	type entry struct {
		n    *node[V]
		base int
	}

	if top.hasVal && !h(string(path), top.val) {
		return false
	}

	var toVisit []entry
	for i := top.kids.len() - 1; i >= 0; i-- {
		toVisit = append(toVisit, entry{top.kids.list[i], len(path)})
	}

	for l := len(toVisit); l > 0; l = len(toVisit) {
		e := toVisit[l-1]
		toVisit = toVisit[:l-1]

		path = append(path[:e.base], e.n.prefix...)

		if e.n.hasVal && !h(string(path), e.n.val) {
			return false
		}

		for i := e.n.kids.len() - 1; i >= 0; i-- {
			toVisit = append(toVisit, entry{e.n.kids.list[i], len(path)})
		}
	}

	return true
}

// Keys returns all words with the given prefix in a sorted order.
func (t *Trie[V]) Keys(prefix string) []string {
	keys := make([]string, 0)
	t.Iter(prefix, func(word string, _ V) bool {
		keys = append(keys, word)
		return true
	})
	return keys
}

// Items returns all words with the given prefix together with their values.
func (t *Trie[V]) Items(prefix string) []Item[V] {
	items := make([]Item[V], 0)
	t.Iter(prefix, func(word string, val V) bool {
		items = append(items, Item[V]{word, val})
		return true
	})
	return items
}

// runes converts a word and validates it against the alphabet.
func (t *Trie[V]) runes(word string) ([]rune, error) {
	if !utf8.ValidString(word) {
		return nil, fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidWord, word)
	}

	key := []rune(word)

	if err := checkAlphabet(key, t.alphabet); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidWord, word, err)
	}

	return key, nil
}

func checkAlphabet(key []rune, alphabet []*unicode.RangeTable) error {
	if len(alphabet) == 0 {
		return nil
	}
	for i, r := range key {
		if !unicode.In(r, alphabet...) {
			return fmt.Errorf("character %q at %d is outside the alphabet", r, i)
		}
	}
	return nil
}
