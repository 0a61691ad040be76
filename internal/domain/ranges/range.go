// Package ranges implements interval arithmetic over numbered ticket ranges.
//
// A Range is a closed integer interval [From, To]. Merge and Subtract are
// the two operations the stock view is built from: purchased ranges are
// merged, sold ranges are merged, and sold is carved out of purchased.
// Ranges only ever interact within one grouping key (ticket, series,
// draw date); the caller is responsible for grouping.
package ranges

import (
	"fmt"
	"sort"
	"time"
)

// Range is a closed interval [From, To] of consecutively numbered items.
// Invariant: From <= To, both positive.
type Range struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// New creates a Range, normalizing reversed bounds.
func New(from, to int64) Range {
	if from > to {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Length returns the number of items in the range.
func (r Range) Length() int64 {
	return r.To - r.From + 1
}

// Contains reports whether other lies fully inside r.
func (r Range) Contains(other Range) bool {
	return other.From >= r.From && other.To <= r.To
}

// Overlaps reports whether r and other share at least one number.
func (r Range) Overlaps(other Range) bool {
	return r.From <= other.To && other.From <= r.To
}

// String formats the range as "from-to".
func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.From, r.To)
}

// Key groups ranges that may interact with each other.
// Ranges under different tickets, series or draw dates never merge or
// subtract against each other, even if the numeric intervals overlap.
type Key struct {
	Ticket   string
	Series   string
	DrawDate string
}

// NewKey builds a grouping key. The draw date is normalized to a calendar
// day so headers stored with different time-of-day values still group.
func NewKey(ticket, series string, drawDate time.Time) Key {
	return Key{
		Ticket:   ticket,
		Series:   series,
		DrawDate: drawDate.Format("2006-01-02"),
	}
}

// Merge coalesces overlapping and adjacent ranges.
// Result is sorted by From, pairwise disjoint and non-adjacent.
// Adjacency counts: [1,10] and [11,20] merge into [1,20].
// Empty input yields empty output. The input slice is not modified.
func Merge(rs []Range) []Range {
	if len(rs) == 0 {
		return nil
	}

	sorted := make([]Range, len(rs))
	copy(sorted, rs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].From != sorted[j].From {
			return sorted[i].From < sorted[j].From
		}
		return sorted[i].To < sorted[j].To
	})

	merged := make([]Range, 0, len(sorted))
	cur := sorted[0]
	for _, next := range sorted[1:] {
		if next.From <= cur.To+1 {
			if next.To > cur.To {
				cur.To = next.To
			}
			continue
		}
		merged = append(merged, cur)
		cur = next
	}
	merged = append(merged, cur)

	return merged
}

// Subtract carves the sold ranges out of the purchased ranges and returns
// what is still available. Both sides are merged first; each sold interval
// cuts zero, one or two fragments out of each purchased interval it
// overlaps. Survivors are re-merged. Empty sold returns merged purchased.
func Subtract(purchased, sold []Range) []Range {
	avail := Merge(purchased)
	if len(avail) == 0 {
		return nil
	}

	for _, s := range Merge(sold) {
		next := make([]Range, 0, len(avail)+1)
		for _, p := range avail {
			if !p.Overlaps(s) {
				next = append(next, p)
				continue
			}
			if s.From > p.From {
				next = append(next, Range{From: p.From, To: s.From - 1})
			}
			if s.To < p.To {
				next = append(next, Range{From: s.To + 1, To: p.To})
			}
		}
		avail = next
	}

	return Merge(avail)
}
