package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateScores(t *testing.T) {
	tests := []struct {
		name          string
		scores        []int
		expectAverage float64
		expectCount   int
	}{
		{
			name:          "empty input yields zero aggregate",
			scores:        nil,
			expectAverage: 0,
			expectCount:   0,
		},
		{
			name:          "single score",
			scores:        []int{4},
			expectAverage: 4,
			expectCount:   1,
		},
		{
			name:          "average rounds to two decimals",
			scores:        []int{5, 4, 4},
			expectAverage: 4.33,
			expectCount:   3,
		},
		{
			name:          "rounding up",
			scores:        []int{5, 5, 4},
			expectAverage: 4.67,
			expectCount:   3,
		},
		{
			name:          "exact average untouched",
			scores:        []int{3, 5},
			expectAverage: 4,
			expectCount:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := AggregateScores(tt.scores)
			assert.Equal(t, tt.expectAverage, agg.Average)
			assert.Equal(t, tt.expectCount, agg.ReviewCount)
		})
	}
}

func TestValidScore(t *testing.T) {
	assert.False(t, ValidScore(0))
	assert.True(t, ValidScore(1))
	assert.True(t, ValidScore(3))
	assert.True(t, ValidScore(5))
	assert.False(t, ValidScore(6))
	assert.False(t, ValidScore(-1))
}
