package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tutoweb/booking-service/pkg/types"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		aStart, aEnd   types.TimeString
		bStart, bEnd   types.TimeString
		expectOverlaps bool
	}{
		{
			name:   "partial overlap",
			aStart: "10:00", aEnd: "11:00",
			bStart: "10:30", bEnd: "11:30",
			expectOverlaps: true,
		},
		{
			name:   "b contains a",
			aStart: "10:00", aEnd: "11:00",
			bStart: "09:00", bEnd: "12:00",
			expectOverlaps: true,
		},
		{
			name:   "identical intervals",
			aStart: "10:00", aEnd: "11:00",
			bStart: "10:00", bEnd: "11:00",
			expectOverlaps: true,
		},
		{
			name:   "touching boundaries do not overlap",
			aStart: "10:00", aEnd: "11:00",
			bStart: "11:00", bEnd: "12:00",
			expectOverlaps: false,
		},
		{
			name:   "touching boundaries reversed order",
			aStart: "11:00", aEnd: "12:00",
			bStart: "10:00", bEnd: "11:00",
			expectOverlaps: false,
		},
		{
			name:   "disjoint intervals",
			aStart: "09:00", aEnd: "10:00",
			bStart: "14:00", bEnd: "15:00",
			expectOverlaps: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			assert.Equal(t, tt.expectOverlaps, got)

			// Пересечение симметрично
			gotReversed := Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd)
			assert.Equal(t, tt.expectOverlaps, gotReversed)
		})
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name                     string
		outerStart, outerEnd     types.TimeString
		innerStart, innerEnd     types.TimeString
		expectContains           bool
	}{
		{
			name:       "inner strictly inside",
			outerStart: "09:00", outerEnd: "17:00",
			innerStart: "10:00", innerEnd: "11:00",
			expectContains: true,
		},
		{
			name:       "exact match",
			outerStart: "09:00", outerEnd: "17:00",
			innerStart: "09:00", innerEnd: "17:00",
			expectContains: true,
		},
		{
			name:       "inner starts before outer",
			outerStart: "09:00", outerEnd: "17:00",
			innerStart: "08:30", innerEnd: "10:00",
			expectContains: false,
		},
		{
			name:       "inner ends after outer",
			outerStart: "09:00", outerEnd: "17:00",
			innerStart: "16:00", innerEnd: "17:30",
			expectContains: false,
		},
		{
			name:       "inner fully outside",
			outerStart: "09:00", outerEnd: "12:00",
			innerStart: "13:00", innerEnd: "14:00",
			expectContains: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Contains(tt.outerStart, tt.outerEnd, tt.innerStart, tt.innerEnd)
			assert.Equal(t, tt.expectContains, got)
		})
	}
}
