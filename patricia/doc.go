// Package patricia defines a compressed prefix tree (a patricia trie) mapping strings
// over an arbitrary Unicode alphabet to values of any type.
//
// A Trie consists of a sentinel root and a number of nodes connected by labeled edges.
// Every node stores the edge label leading to it (its prefix), an optional value and
// a set of children ordered by the first rune of their prefixes.
//
// Invariants:
// ----------
//
//   - the root prefix is empty, every other prefix is not;
//   - a non-root node without a value has at least two children;
//   - siblings have pairwise distinct first runes;
//   - every root-to-node path spells a unique string.
//
// Children layout:
// ---------------
//
// Children are kept in a slice sorted by first rune. Runes below 256 are also marked
// in a 256-bit bitmap so their slice index is the popcount of the lower bits:
//
//	low:  [ 4 x uint64 ]  bit r is set when a child starts with rune r (r < 256)
//	list: [ low children ... | high children ... ]
//	                           `-- binary search by first rune
//
// Example trie:
// ------------
//
//	              ,-- ["r":2]
//	[root] -- ["ca"]
//	   |          `-- ["t":1]
//	   |
//	   `-- ["dog":3]
//
// The trie above contains the following words:
//
//   - "car" -> 2
//   - "cat" -> 1
//   - "dog" -> 3
//
// Removing "cat" collapses ["ca"] and ["r"] back into a single ["car"] edge.
//
// Concurrency:
// -----------
//
// A Trie does no locking. Read-only methods (Find, ValuesWithPrefix, Iter, Stats, Encode
// and friends) may run concurrently with each other, but never with Insert or Remove.
package patricia
