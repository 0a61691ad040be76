package numerator

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	corenumerator "allot/internal/core/numerator"
)

// fakeQuerier emulates the sys_sequences UPSERT semantics in memory.
type fakeQuerier struct {
	vals map[string]int64
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{vals: make(map[string]int64)}
}

type fakeRow struct {
	val int64
}

func (r fakeRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.val
	return nil
}

func (f *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	key := args[0].(string)
	inc := int64(1)
	if len(args) > 1 {
		switch v := args[1].(type) {
		case int64:
			inc = v
		case int:
			inc = int64(v)
		}
	}
	f.vals[key] += inc
	return fakeRow{val: f.vals[key]}
}

func TestStrictNumbering(t *testing.T) {
	svc := New(newFakeQuerier())
	cfg := corenumerator.DefaultConfig("PUR")
	period := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, want := range []string{"PUR000001", "PUR000002", "PUR000003"} {
		got, err := svc.GetNextNumber(context.Background(), cfg, corenumerator.DefaultOptions(), period)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestIndependentSequencesPerPrefix(t *testing.T) {
	svc := New(newFakeQuerier())
	period := time.Now()

	pur, err := svc.GetNextNumber(context.Background(), corenumerator.DefaultConfig("PUR"), nil, period)
	require.NoError(t, err)
	sal, err := svc.GetNextNumber(context.Background(), corenumerator.DefaultConfig("SAL"), nil, period)
	require.NoError(t, err)

	assert.Equal(t, "PUR000001", pur)
	assert.Equal(t, "SAL000001", sal)
}

func TestFormatWithYear(t *testing.T) {
	svc := New(newFakeQuerier())
	cfg := corenumerator.Config{
		Prefix:      "INV",
		IncludeYear: true,
		PadWidth:    5,
		ResetPeriod: "year",
	}
	period := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	got, err := svc.GetNextNumber(context.Background(), cfg, nil, period)
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-00001", got)
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, int64(1), ParseNumber("PUR000001"))
	assert.Equal(t, int64(42), ParseNumber("SAL000042"))
	assert.Equal(t, int64(7), ParseNumber("INV-2024-00007"))
	assert.Equal(t, int64(-1), ParseNumber("nonsense"))
	assert.Equal(t, int64(-1), ParseNumber(""))
}

func TestCachedNumbering(t *testing.T) {
	svc := New(newFakeQuerier())
	cfg := corenumerator.DefaultConfig("PUR")
	opts := &corenumerator.Options{
		Strategy:  corenumerator.StrategyCached,
		RangeSize: 10,
	}
	period := time.Now()

	seen := make(map[string]bool)
	for i := 0; i < 25; i++ {
		got, err := svc.GetNextNumber(context.Background(), cfg, opts, period)
		require.NoError(t, err)
		require.False(t, seen[got], "duplicate number %s", got)
		seen[got] = true
	}
	assert.True(t, seen["PUR000001"])
	assert.True(t, seen["PUR000025"])
}
