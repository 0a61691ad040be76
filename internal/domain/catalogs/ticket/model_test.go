package ticket

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiplierFor(t *testing.T) {
	tests := []struct {
		name string
		want int64
	}{
		{"D10", 10},
		{"M5", 5},
		{"E200", 200},
		{"ABC", 1},
		{"", 1},
		{"X0", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MultiplierFor(tt.name), tt.name)
	}
}

func TestTicketValidate(t *testing.T) {
	ctx := context.Background()

	valid := New("d10")
	assert.Equal(t, "D10", valid.Name)
	assert.NoError(t, valid.Validate(ctx))

	tests := []string{"", "10D", "D-10", "d 10", "DDD"}
	for _, name := range tests {
		tk := &Ticket{}
		tk.Name = name
		assert.Error(t, tk.Validate(ctx), "name %q should be invalid", name)
	}
}
