package catalogs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextDisplayID(t *testing.T) {
	tests := []struct {
		name     string
		lastCode string
		want     string
	}{
		{"Delta Distributors", "", "D001"},
		{"Delta Distributors", "D001", "D002"},
		{"delta lower", "D009", "D010"},
		{"  Apex  ", "A041", "A042"},
		{"Zen", "Z999", "Z1000"},
	}

	for _, tt := range tests {
		got, err := NextDisplayID(tt.name, tt.lastCode)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got)
	}
}

func TestNextDisplayIDRejectsBadNames(t *testing.T) {
	_, err := NextDisplayID("", "")
	assert.Error(t, err)

	_, err = NextDisplayID("42 Traders", "")
	assert.Error(t, err)
}

func TestDisplayIDPrefix(t *testing.T) {
	assert.Equal(t, "D", DisplayIDPrefix("delta"))
	assert.Equal(t, "A", DisplayIDPrefix(" Apex"))
	assert.Equal(t, "", DisplayIDPrefix(""))
}
