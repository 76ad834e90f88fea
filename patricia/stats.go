package patricia

import (
	"fmt"

	"github.com/go-logr/logr"
)

// Stats is a structural report of a Trie. The root is not counted as a node.
type Stats struct {
	Nodes        int     // non-root nodes
	Words        int     // nodes carrying a value, the root included
	Leaves       int     // non-root nodes without children
	MaxDepth     int     // edges on the longest root-to-node path
	EdgeRunes    int     // total length of all edge labels
	AvgBranching float64 // children per node having any
}

func (s Stats) String() string {
	return fmt.Sprintf("nodes=%d words=%d leaves=%d max-depth=%d edge-runes=%d avg-branching=%.2f",
		s.Nodes, s.Words, s.Leaves, s.MaxDepth, s.EdgeRunes, s.AvgBranching)
}

// Stats walks the whole trie and computes a structural report.
func (t *Trie[V]) Stats() Stats {
	var (
		s        Stats
		branches int
		parents  int
	)

	type entry struct {
		n     *node[V]
		depth int
	}

	toVisit := []entry{{&t.root, 0}}

	for l := len(toVisit); l > 0; l = len(toVisit) {
		e := toVisit[l-1]
		toVisit = toVisit[:l-1]

		if e.n.hasVal {
			s.Words++
		}
		if e.depth > s.MaxDepth {
			s.MaxDepth = e.depth
		}
		if e.n != &t.root {
			s.Nodes++
			s.EdgeRunes += len(e.n.prefix)
			if e.n.kids.len() == 0 {
				s.Leaves++
			}
		}
		if k := e.n.kids.len(); k > 0 {
			parents++
			branches += k
		}

		for _, child := range e.n.kids.list {
			toVisit = append(toVisit, entry{child, e.depth + 1})
		}
	}

	if parents > 0 {
		s.AvgBranching = float64(branches) / float64(parents)
	}

	return s
}

// LogStats reports the trie statistics to the given logger.
func (t *Trie[V]) LogStats(log logr.Logger) {
	s := t.Stats()
	log.Info("trie stats",
		"nodes", s.Nodes,
		"words", s.Words,
		"leaves", s.Leaves,
		"maxDepth", s.MaxDepth,
		"edgeRunes", s.EdgeRunes,
		"avgBranching", s.AvgBranching,
	)
}
