package patricia

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// edge returns the prefix of the child hanging off n under rune r.
func edge[V any](t *testing.T, n *node[V], r rune) string {
	t.Helper()

	child := n.kids.get(r)
	require.NotNil(t, child, "no child for %q", r)

	return string(child.prefix)
}

// wordsWithPrefix is a brute-force reference for ValuesWithPrefix.
func wordsWithPrefix[V any](state map[string]V, prefix string) ([]string, []V) {
	var words []string

	for w := range state {
		if strings.HasPrefix(w, prefix) {
			words = append(words, w)
		}
	}

	sort.Strings(words)

	vals := make([]V, 0, len(words))
	for _, w := range words {
		vals = append(vals, state[w])
	}

	return words, vals
}

func mustInsert[V any](t *testing.T, tr *Trie[V], word string, val V) {
	t.Helper()

	_, _, err := tr.Insert(word, val)
	require.NoError(t, err, word)
}
