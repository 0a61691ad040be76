package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"allot/internal/core/types"
	"allot/internal/domain/ranges"
)

func TestParseLine(t *testing.T) {
	e, ok := ParseLine("D10 | Series 5X | 1-50 | Qty 500 @ 6.00")
	require.True(t, ok)

	assert.Equal(t, "D10", e.Ticket)
	assert.Equal(t, "5X", e.Series)
	assert.Equal(t, int64(1), e.FromNo)
	assert.Equal(t, int64(50), e.ToNo)
	assert.Equal(t, int64(500), e.Qty)
	assert.True(t, types.MustMoney("6.00").Equal(e.Rate))
	assert.True(t, types.MustMoney("3000").Equal(e.Amount()))
}

func TestParseLineEmptySeries(t *testing.T) {
	e, ok := ParseLine("M5 | Series  | 100-200 | Qty 101 @ 12.50")
	require.True(t, ok)

	assert.Equal(t, "M5", e.Ticket)
	assert.Equal(t, "", e.Series)
	assert.Equal(t, int64(100), e.FromNo)
	assert.Equal(t, int64(200), e.ToNo)
}

func TestParseLineLenient(t *testing.T) {
	malformed := []string{
		"",
		"not a valid line",
		"just an operator comment",
		"M5 | 100-200",
		"| Series A | 1-10 | Qty 10 @ 1.00",
	}

	for _, line := range malformed {
		_, ok := ParseLine(line)
		assert.False(t, ok, "line %q should not parse", line)
	}
}

func TestParseLineLooseWhitespace(t *testing.T) {
	e, ok := ParseLine("  E200|Series 7B|5-9|Qty 1000 @ 3.5")
	require.True(t, ok)

	assert.Equal(t, "E200", e.Ticket)
	assert.Equal(t, "7B", e.Series)
	assert.Equal(t, int64(1000), e.Qty)
	assert.True(t, types.MustMoney("3.5").Equal(e.Rate))
}

func TestRoundTrip(t *testing.T) {
	entries := []Entry{
		{Ticket: "D10", Series: "5X", FromNo: 1, ToNo: 50, Qty: 500, Rate: types.MustMoney("6.00")},
		{Ticket: "M5", Series: "", FromNo: 100, ToNo: 200, Qty: 505, Rate: types.MustMoney("12.50")},
		{Ticket: "E200", Series: "7B", FromNo: 5, ToNo: 9, Qty: 1000, Rate: types.MustMoney("3.50")},
	}

	for _, want := range entries {
		got, ok := ParseLine(want.Line())
		require.True(t, ok, "line %q must parse", want.Line())

		assert.Equal(t, want.Ticket, got.Ticket)
		assert.Equal(t, want.Series, got.Series)
		assert.Equal(t, want.FromNo, got.FromNo)
		assert.Equal(t, want.ToNo, got.ToNo)
		assert.Equal(t, want.Qty, got.Qty)
		assert.True(t, want.Rate.Equal(got.Rate))
	}
}

func TestParseNotesSkipsMalformedLines(t *testing.T) {
	text := "D10 | Series 5X | 1-50 | Qty 500 @ 6.00\n" +
		"reminder: call the distributor\n" +
		"\n" +
		"M5 | Series 1A | 10-20 | Qty 11 @ 2.00"

	entries := ParseNotes(text)
	require.Len(t, entries, 2)
	assert.Equal(t, "D10", entries[0].Ticket)
	assert.Equal(t, "M5", entries[1].Ticket)
}

func TestParseNotesEmpty(t *testing.T) {
	assert.Nil(t, ParseNotes(""))
	assert.Nil(t, ParseNotes("only free text\nno entries here"))
}

func TestExtractRanges(t *testing.T) {
	text := "D10 | Series 5X | 1-50 | Qty 500 @ 6.00\n" +
		"garbage\n" +
		"D10 | Series 5X | 60-70 | Qty 110 @ 6.00"

	rs := ExtractRanges(text)
	assert.Equal(t, []ranges.Range{{From: 1, To: 50}, {From: 60, To: 70}}, rs)
}

func TestRender(t *testing.T) {
	entries := []Entry{
		{Ticket: "D10", Series: "5X", FromNo: 1, ToNo: 50, Qty: 500, Rate: types.MustMoney("6")},
		{Ticket: "M5", Series: "1A", FromNo: 10, ToNo: 20, Qty: 11, Rate: types.MustMoney("2")},
	}

	want := "D10 | Series 5X | 1-50 | Qty 500 @ 6.00\nM5 | Series 1A | 10-20 | Qty 11 @ 2.00"
	assert.Equal(t, want, Render(entries))
}
