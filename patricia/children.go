package patricia

import (
	"sort"

	"github.com/hideo55/go-popcount"
)

const (
	lowRunes = 256 // runes tracked by the bitmap
	wordBits = 64
)

// children is an ordered set of child nodes keyed by the first rune of their prefix.
type children[V any] struct {
	low  [lowRunes / wordBits]uint64 // presence bitmap of first runes < 256
	list []*node[V]                  // sorted by first rune
}

func (c *children[V]) len() int {
	return len(c.list)
}

// lowCount returns the number of children starting with a rune < 256.
func (c *children[V]) lowCount() int {
	var cnt uint64
	for _, bmp := range c.low {
		cnt += popcount.Count(bmp)
	}
	return int(cnt)
}

// index returns the position of a child starting with r, or the position where
// such a child should be inserted.
func (c *children[V]) index(r rune) (int, bool) {
	if r >= 0 && r < lowRunes {
		var (
			ofs = r / wordBits
			bit = uint(r % wordBits)
			bmp = c.low[ofs]
			cnt = popcount.Count(bmp & (uint64(1)<<bit - 1))
		)
		for j := rune(0); j < ofs; j++ {
			cnt += popcount.Count(c.low[j])
		}
		return int(cnt), bmp>>bit&1 != 0
	}

	var (
		nlow = c.lowCount()
		tail = c.list[nlow:]
		i    = sort.Search(len(tail), func(i int) bool { return tail[i].prefix[0] >= r })
	)

	return nlow + i, i < len(tail) && tail[i].prefix[0] == r
}

func (c *children[V]) get(r rune) *node[V] {
	if idx, ok := c.index(r); ok {
		return c.list[idx]
	}
	return nil
}

// grow makes room for n more children.
func (c *children[V]) grow(n int) {
	if n <= 0 || cap(c.list)-len(c.list) >= n {
		return
	}
	list := make([]*node[V], len(c.list), len(c.list)+n)
	copy(list, c.list)
	c.list = list
}

// insertAt puts a child at the given index; idx must come from index().
func (c *children[V]) insertAt(idx int, n *node[V]) {
	c.list = append(c.list, nil)
	copy(c.list[idx+1:], c.list[idx:])
	c.list[idx] = n
	c.mark(n.prefix[0])
}

// add inserts a child keeping the order. It reports false if a sibling with the same
// first rune exists already.
func (c *children[V]) add(n *node[V]) bool {
	idx, ok := c.index(n.prefix[0])
	if ok {
		return false
	}
	c.insertAt(idx, n)
	return true
}

// removeAt detaches the child at the given index.
func (c *children[V]) removeAt(idx int) {
	r := c.list[idx].prefix[0]
	copy(c.list[idx:], c.list[idx+1:])
	c.list[len(c.list)-1] = nil
	c.list = c.list[:len(c.list)-1]
	if r >= 0 && r < lowRunes {
		c.low[r/wordBits] &^= uint64(1) << uint(r%wordBits)
	}
}

func (c *children[V]) mark(r rune) {
	if r >= 0 && r < lowRunes {
		c.low[r/wordBits] |= uint64(1) << uint(r%wordBits)
	}
}
