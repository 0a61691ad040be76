// Package notes implements the pipe-delimited line format that carries
// ticket range entries inside purchase and sale document notes.
//
// One line per range:
//
//	<ticket> | Series <series> | <from>-<to> | Qty <qty> @ <rate>
//
// This is the only persisted representation of range data. The grammar is
// treated as a versioned wire format: existing stored notes must keep
// parsing, so changes here require round-trip tests.
package notes

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"allot/internal/core/types"
	"allot/internal/domain/ranges"
)

// lineRe captures ticket, series, from, to, qty and rate from one line.
// Series may be empty. Anything that does not match is not an entry.
var lineRe = regexp.MustCompile(`^(.+?)\s*\|\s*Series\s+(\w*)\s*\|\s*(\d+)-(\d+)\s*\|\s*Qty\s+(\d+)\s*@\s*([\d.]+)`)

// Entry is one parsed range line.
type Entry struct {
	Ticket string
	Series string
	FromNo int64
	ToNo   int64
	Qty    int64
	Rate   types.Money
}

// Amount returns qty * rate.
func (e Entry) Amount() types.Money {
	return e.Rate.Mul(types.NewMoney(float64(e.Qty)))
}

// Range returns the numeric interval of the entry.
func (e Entry) Range() ranges.Range {
	return ranges.Range{From: e.FromNo, To: e.ToNo}
}

// Line renders the entry in canonical wire format. Rate is always written
// with two decimals. ParseLine(e.Line()) round-trips.
func (e Entry) Line() string {
	return fmt.Sprintf("%s | Series %s | %d-%d | Qty %d @ %s",
		e.Ticket, e.Series, e.FromNo, e.ToNo, e.Qty, e.Rate.StringFixed(2))
}

// ParseLine parses one notes line. Returns false if the line does not
// match the grammar; malformed lines are the caller's to skip, never an
// error (notes are free text and may carry operator comments).
func ParseLine(line string) (Entry, bool) {
	m := lineRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Entry{}, false
	}

	from, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return Entry{}, false
	}
	to, err := strconv.ParseInt(m[4], 10, 64)
	if err != nil {
		return Entry{}, false
	}
	qty, err := strconv.ParseInt(m[5], 10, 64)
	if err != nil {
		return Entry{}, false
	}
	rate, err := types.NewMoneyFromString(m[6])
	if err != nil {
		return Entry{}, false
	}

	return Entry{
		Ticket: strings.TrimSpace(m[1]),
		Series: m[2],
		FromNo: from,
		ToNo:   to,
		Qty:    qty,
		Rate:   rate,
	}, true
}

// ParseNotes parses a whole notes field line by line. Lines that do not
// match the grammar are dropped silently.
func ParseNotes(text string) []Entry {
	if text == "" {
		return nil
	}

	var entries []Entry
	for _, line := range strings.Split(text, "\n") {
		if e, ok := ParseLine(line); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

// ExtractRanges pulls only the numeric intervals out of a notes field.
// Used by the availability validator, which needs raw (from,to) pairs
// without full field decomposition.
func ExtractRanges(text string) []ranges.Range {
	var rs []ranges.Range
	for _, e := range ParseNotes(text) {
		rs = append(rs, e.Range())
	}
	return rs
}

// Render joins entries into a notes field, one line per entry.
func Render(entries []Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Line())
	}
	return strings.Join(lines, "\n")
}
