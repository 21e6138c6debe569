package engine

import (
	"sort"
	"time"
)

// scan applies every registered pattern to the text and collects the
// accepted matches. Each scan is stateless: no cursor is shared between
// calls, so an engine is safe for concurrent use.
func (e *Engine) scan(text string, ref time.Time) []candidate {
	var cands []candidate
	for _, p := range e.patterns {
		for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
			mc := &matchContext{text: text, re: p.re, m: m, ref: ref, order: e.order}

			// Trailing-context suppression, part of recognition: a day
			// number directly followed by a clock-time suffix is not a
			// date ("jan 12:00").
			if p.dayGroup != "" {
				if _, hi := mc.span(p.dayGroup); hi >= 0 && clockSuffix.MatchString(text[hi:]) {
					continue
				}
			}

			res, ok := p.resolve(mc)
			if !ok {
				continue
			}
			cands = append(cands, candidate{
				start:   m[0],
				end:     m[1],
				raw:     text[m[0]:m[1]],
				pattern: p.name,
				res:     res,
			})
		}
	}
	return cands
}

// resolveOverlaps reduces the candidate set to a maximal set of
// disjoint spans, preferring the longest match at any contested
// position. Candidates are sorted by start ascending, breaking ties by
// span length descending, then kept greedily against a cursor.
func resolveOverlaps(cands []candidate) []candidate {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].start != cands[j].start {
			return cands[i].start < cands[j].start
		}
		return cands[i].end-cands[i].start > cands[j].end-cands[j].start
	})

	kept := cands[:0]
	cursor := 0
	for _, c := range cands {
		if c.start < cursor {
			continue
		}
		kept = append(kept, c)
		cursor = c.end
	}
	return kept
}

// selectAnchor picks the candidate that drives event semantics: the
// rightmost surviving match. A title with incidental date-like words is
// then never ambiguous about which expression controls the event.
func selectAnchor(kept []candidate) *candidate {
	if len(kept) == 0 {
		return nil
	}
	return &kept[len(kept)-1]
}
