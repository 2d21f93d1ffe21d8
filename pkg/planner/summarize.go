package planner

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/sbanszky/advancedcalculator6/pkg/ipv6"
)

// summaryEntry is one parsed prefix in the summarization walk.
type summaryEntry struct {
	words    ipv6.Word128 // masked to plen
	plen     int
	expanded string
}

// Summarize merges adjacent prefixes into shorter covering prefixes
// where possible and returns the resulting list in compressed notation.
// Invalid entries are dropped, not fatal.
//
// The merge is a greedy left-to-right single pass over the input sorted
// by expanded textual form: two neighbors whose common leading-bit
// prefix is at least min(lenA, lenB)-1 collapse into one entry at that
// reduced length. This is a locally-correct heuristic, not minimal
// RFC-grade supernetting: it does not verify that merged blocks are
// power-of-two aligned siblings.
func (p *Planner) Summarize(prefixes []string) []string {
	entries := make([]summaryEntry, 0, len(prefixes))
	for _, s := range prefixes {
		rec := ipv6.Parse(s)
		if !rec.Valid {
			p.logger.Debug("summarize: dropping invalid prefix",
				zap.String("prefix", s),
				zap.String("detail", rec.ErrorDetail),
			)
			continue
		}
		network := rec.Words.Network(rec.PrefixLength)
		entries = append(entries, summaryEntry{
			words:    network,
			plen:     rec.PrefixLength,
			expanded: network.Expanded(),
		})
	}
	if len(entries) == 0 {
		return nil
	}

	// Expanded form is fixed-width per word, so its lexicographic order
	// matches numeric order.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].expanded != entries[j].expanded {
			return entries[i].expanded < entries[j].expanded
		}
		return entries[i].plen < entries[j].plen
	})

	out := make([]string, 0, len(entries))
	cur := entries[0]
	for _, next := range entries[1:] {
		if merged, ok := mergeAdjacent(cur, next); ok {
			cur = merged
			continue
		}
		out = append(out, cur.String())
		cur = next
	}
	out = append(out, cur.String())
	return out
}

// mergeAdjacent collapses two entries when they are candidate siblings
// one bit apart: their common leading-bit prefix covers all but the
// last bit of the shorter of the two prefixes.
func mergeAdjacent(a, b summaryEntry) (summaryEntry, bool) {
	shorter := a.plen
	if b.plen < shorter {
		shorter = b.plen
	}
	if shorter == 0 {
		return summaryEntry{}, false
	}
	common := ipv6.CommonPrefixLen(a.words, b.words)
	if common < shorter-1 {
		return summaryEntry{}, false
	}
	mergedLen := shorter - 1
	if common < mergedLen {
		mergedLen = common
	}
	network := a.words.Network(mergedLen)
	return summaryEntry{
		words:    network,
		plen:     mergedLen,
		expanded: network.Expanded(),
	}, true
}

func (e summaryEntry) String() string {
	return fmt.Sprintf("%s/%d", e.words.Compressed(), e.plen)
}
