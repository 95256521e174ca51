package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tutorschool/msms/internal/model"
)

func term(name string, start, end time.Time) *model.Term {
	return &model.Term{Name: name, StartDate: start, EndDate: end}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestTerm_Contains(t *testing.T) {
	autumn := term("Autumn", day(2023, time.January, 3), day(2023, time.February, 10))

	// Границы включительно
	assert.True(t, autumn.Contains(day(2023, time.January, 3)))
	assert.True(t, autumn.Contains(day(2023, time.February, 10)))
	assert.True(t, autumn.Contains(day(2023, time.January, 20)))

	assert.False(t, autumn.Contains(day(2023, time.January, 2)))
	assert.False(t, autumn.Contains(day(2023, time.February, 11)))
}

func TestTerm_Outdated(t *testing.T) {
	autumn := term("Autumn", day(2023, time.January, 3), day(2023, time.February, 10))

	assert.False(t, autumn.Outdated(day(2023, time.January, 20)))
	assert.True(t, autumn.Outdated(day(2023, time.February, 10)))
	assert.True(t, autumn.Outdated(day(2023, time.March, 1)))
}

func TestTerm_Overlaps(t *testing.T) {
	base := term("Base", day(2023, time.March, 1), day(2023, time.May, 31))

	type testCase struct {
		name  string
		other *model.Term
		want  bool
	}

	tests := []testCase{
		{
			name:  "DisjointBefore",
			other: term("Before", day(2023, time.January, 1), day(2023, time.February, 28)),
			want:  false,
		},
		{
			name:  "DisjointAfter",
			other: term("After", day(2023, time.June, 1), day(2023, time.August, 31)),
			want:  false,
		},
		{
			name:  "StartInside",
			other: term("StartInside", day(2023, time.April, 1), day(2023, time.July, 1)),
			want:  true,
		},
		{
			name:  "EndInside",
			other: term("EndInside", day(2023, time.February, 1), day(2023, time.March, 15)),
			want:  true,
		},
		{
			name:  "FullyContains",
			other: term("Contains", day(2023, time.February, 1), day(2023, time.June, 30)),
			want:  true,
		},
		{
			name:  "FullyInside",
			other: term("Inside", day(2023, time.April, 1), day(2023, time.April, 30)),
			want:  true,
		},
		{
			name:  "TouchingBoundary",
			other: term("Touching", day(2023, time.May, 31), day(2023, time.June, 30)),
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}
