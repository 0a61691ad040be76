package ranges

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		in   []Range
		want []Range
	}{
		{
			name: "empty",
			in:   nil,
			want: nil,
		},
		{
			name: "single",
			in:   []Range{{1, 10}},
			want: []Range{{1, 10}},
		},
		{
			name: "adjacent coalesce, gap preserved",
			in:   []Range{{1, 10}, {11, 20}, {25, 30}},
			want: []Range{{1, 20}, {25, 30}},
		},
		{
			name: "overlapping",
			in:   []Range{{1, 15}, {10, 20}},
			want: []Range{{1, 20}},
		},
		{
			name: "unsorted input",
			in:   []Range{{25, 30}, {1, 10}, {11, 20}},
			want: []Range{{1, 20}, {25, 30}},
		},
		{
			name: "contained",
			in:   []Range{{1, 100}, {40, 60}},
			want: []Range{{1, 100}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merge(tt.in))
		})
	}
}

func TestMergeIdempotent(t *testing.T) {
	in := []Range{{5, 7}, {1, 3}, {4, 4}, {20, 30}, {25, 40}}
	once := Merge(in)
	twice := Merge(once)
	assert.Equal(t, once, twice)
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	in := []Range{{25, 30}, {1, 10}}
	_ = Merge(in)
	assert.Equal(t, []Range{{25, 30}, {1, 10}}, in)
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name      string
		purchased []Range
		sold      []Range
		want      []Range
	}{
		{
			name:      "full containment leaves nothing",
			purchased: []Range{{1, 100}},
			sold:      []Range{{1, 100}},
			want:      nil,
		},
		{
			name:      "middle cut splits in two",
			purchased: []Range{{1, 100}},
			sold:      []Range{{40, 60}},
			want:      []Range{{1, 39}, {61, 100}},
		},
		{
			name:      "no overlap leaves purchased unchanged",
			purchased: []Range{{1, 50}},
			sold:      []Range{{60, 70}},
			want:      []Range{{1, 50}},
		},
		{
			name:      "left edge cut",
			purchased: []Range{{1, 100}},
			sold:      []Range{{1, 20}},
			want:      []Range{{21, 100}},
		},
		{
			name:      "right edge cut",
			purchased: []Range{{1, 100}},
			sold:      []Range{{80, 100}},
			want:      []Range{{1, 79}},
		},
		{
			name:      "sold spans two purchased intervals",
			purchased: []Range{{1, 50}, {60, 100}},
			sold:      []Range{{40, 70}},
			want:      []Range{{1, 39}, {71, 100}},
		},
		{
			name:      "multiple sold cuts",
			purchased: []Range{{1, 100}},
			sold:      []Range{{10, 20}, {30, 40}},
			want:      []Range{{1, 9}, {21, 29}, {41, 100}},
		},
		{
			name:      "empty purchased",
			purchased: nil,
			sold:      []Range{{1, 10}},
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Subtract(tt.purchased, tt.sold))
		})
	}
}

func TestSubtractEmptySoldReturnsMerged(t *testing.T) {
	purchased := []Range{{11, 20}, {1, 10}, {25, 30}}
	got := Subtract(purchased, nil)
	assert.Equal(t, Merge(purchased), got)
}

func TestRangeLength(t *testing.T) {
	assert.Equal(t, int64(50), Range{1, 50}.Length())
	assert.Equal(t, int64(1), Range{7, 7}.Length())
}

func TestRangeContains(t *testing.T) {
	p := Range{100, 200}
	assert.True(t, p.Contains(Range{150, 160}))
	assert.True(t, p.Contains(Range{100, 200}))
	assert.False(t, p.Contains(Range{190, 210}))
	assert.False(t, p.Contains(Range{90, 110}))
}

func TestNewNormalizesReversedBounds(t *testing.T) {
	assert.Equal(t, Range{From: 1, To: 10}, New(10, 1))
}

func TestKeyGroupsByCalendarDay(t *testing.T) {
	d1 := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)

	require.Equal(t, NewKey("M5", "1A", d1), NewKey("M5", "1A", d2))
	assert.NotEqual(t, NewKey("M5", "1A", d1), NewKey("M5", "1B", d1))
	assert.NotEqual(t, NewKey("M5", "1A", d1), NewKey("D10", "1A", d1))
}
