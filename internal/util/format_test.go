package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"pasta", 10, "pasta"},
		{"pasta", 5, "pasta"},
		{"creamy garlic pasta", 10, "creamy ..."},
		{"crème brûlée", 8, "crème..."},
		{"abc", 2, "ab"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateString(tt.in, tt.max))
		})
	}
}

func TestDisplayHelpers(t *testing.T) {
	assert.Equal(t, "—", OrDash("  "))
	assert.Equal(t, "Easy", OrDash("Easy"))

	assert.Equal(t, "—", JoinTags(nil))
	assert.Equal(t, "Cold · Batch", JoinTags([]string{"Cold", "Batch"}))

	assert.Equal(t, "1 recipe", Plural(1, "recipe"))
	assert.Equal(t, "0 recipes", Plural(0, "recipe"))
	assert.Equal(t, "4 recipes", Plural(4, "recipe"))

	assert.Equal(t, "3/6", CountLabel(3, 6))
}
