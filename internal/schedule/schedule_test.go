package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorschool/msms/internal/schedule"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestNextWeekday(t *testing.T) {
	type testCase struct {
		name    string
		start   time.Time
		weekday time.Weekday
		want    time.Time
	}

	tests := []testCase{
		{
			// 2023-01-03 - вторник
			name:    "SameDayNoShift",
			start:   date(2023, time.January, 3),
			weekday: time.Tuesday,
			want:    date(2023, time.January, 3),
		},
		{
			name:    "NextDay",
			start:   date(2023, time.January, 3),
			weekday: time.Wednesday,
			want:    date(2023, time.January, 4),
		},
		{
			name:    "WrapsToNextWeek",
			start:   date(2023, time.January, 4),
			weekday: time.Tuesday,
			want:    date(2023, time.January, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schedule.NextWeekday(tt.start, tt.weekday)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.weekday, got.Weekday())
		})
	}
}

func TestSeries(t *testing.T) {
	t.Run("AdvancesToTargetWeekday", func(t *testing.T) {
		got := schedule.Series(date(2023, time.January, 3), time.Wednesday, 1, 3)

		require.Len(t, got, 3)
		assert.Equal(t, date(2023, time.January, 4), got[0])
		assert.Equal(t, date(2023, time.January, 11), got[1])
		assert.Equal(t, date(2023, time.January, 18), got[2])
	})

	t.Run("ExactCountAndSpacing", func(t *testing.T) {
		const count = 10
		const intervalWeeks = 2

		got := schedule.Series(date(2023, time.January, 3), time.Friday, intervalWeeks, count)

		require.Len(t, got, count)
		for i, d := range got {
			assert.Equal(t, time.Friday, d.Weekday())
			if i > 0 {
				assert.Equal(t, got[i-1].AddDate(0, 0, intervalWeeks*7), d)
			}
		}
	})
}

func TestFits(t *testing.T) {
	start := date(2023, time.January, 3)
	end := date(2023, time.February, 10)

	t.Run("Monotonic", func(t *testing.T) {
		// Если умещается N занятий, умещается и любое меньшее количество
		for count := 6; count >= 1; count-- {
			assert.True(t, schedule.Fits(start, end, count, 1, time.Wednesday), "count=%d", count)
		}
		assert.False(t, schedule.Fits(start, end, 7, 1, time.Wednesday))
	})

	t.Run("FirstOccurrencePastEnd", func(t *testing.T) {
		// Первое же занятие выпадает за конец - не умещается ни одно
		assert.False(t, schedule.Fits(date(2023, time.January, 5), date(2023, time.January, 6), 1, 1, time.Monday))
	})

	t.Run("LastDateOnEndFits", func(t *testing.T) {
		// Конец периода включительно: 2023-02-08 - среда
		assert.True(t, schedule.Fits(start, date(2023, time.February, 8), 6, 1, time.Wednesday))
	})
}

func TestMaxFitting(t *testing.T) {
	start := date(2023, time.January, 3)
	end := date(2023, time.February, 10)

	t.Run("CapsAtWhatFits", func(t *testing.T) {
		// Запрошено 10, но до 2023-02-10 умещается только 6 сред
		assert.Equal(t, 6, schedule.MaxFitting(start, end, 10, 1, time.Wednesday))
	})

	t.Run("NeverExceedsRequested", func(t *testing.T) {
		assert.Equal(t, 2, schedule.MaxFitting(start, end, 2, 1, time.Wednesday))
	})

	t.Run("ZeroWhenNothingFits", func(t *testing.T) {
		assert.Equal(t, 0, schedule.MaxFitting(date(2023, time.January, 5), date(2023, time.January, 6), 3, 1, time.Monday))
	})

	t.Run("RoundTripWithFits", func(t *testing.T) {
		max := schedule.MaxFitting(start, end, 100, 1, time.Wednesday)

		assert.True(t, schedule.Fits(start, end, max, 1, time.Wednesday))
		assert.False(t, schedule.Fits(start, end, max+1, 1, time.Wednesday))
	})
}
