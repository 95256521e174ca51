package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorschool/msms/internal/model"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func autumnTerm() *model.Term {
	return &model.Term{
		ID:        1,
		Name:      "Autumn Term",
		StartDate: day(2023, time.January, 3),
		EndDate:   day(2023, time.February, 10),
	}
}

func validParams() BookParams {
	return BookParams{
		TermName:      "Autumn Term",
		StartDate:     day(2023, time.January, 3),
		EndDate:       day(2023, time.February, 10),
		Weekday:       time.Wednesday,
		StartHour:     12,
		IntervalWeeks: 1,
		LessonCount:   3,
		Duration:      60,
		Topic:         "Piano",
		Teacher:       "Mr Bob",
	}
}

func TestPlanBooking(t *testing.T) {
	now := day(2023, time.January, 2)

	t.Run("NoTerms", func(t *testing.T) {
		_, err := planBooking(now, nil, validParams())

		assert.ErrorIs(t, err, ErrNoTerms)
	})

	t.Run("AllTermsOutdated", func(t *testing.T) {
		old := &model.Term{ID: 2, Name: "Old Term", StartDate: day(2022, time.September, 1), EndDate: day(2022, time.December, 16)}

		_, err := planBooking(day(2023, time.January, 2), []*model.Term{old}, validParams())

		assert.ErrorIs(t, err, ErrAllTermsOutdated)
	})

	t.Run("UnknownTermSuggestsNext", func(t *testing.T) {
		params := validParams()
		params.TermName = "Spring Term"

		_, err := planBooking(now, []*model.Term{autumnTerm()}, params)

		var unknownErr *UnknownTermError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "Spring Term", unknownErr.Name)
		assert.Equal(t, "Autumn Term", unknownErr.Suggestion)
	})

	t.Run("StartDateOutsideTerm", func(t *testing.T) {
		params := validParams()
		params.StartDate = day(2023, time.January, 1)

		_, err := planBooking(now, []*model.Term{autumnTerm()}, params)

		var outErr *OutOfTermError
		require.ErrorAs(t, err, &outErr)
		assert.Equal(t, "Autumn Term", outErr.Term)
		assert.Equal(t, day(2023, time.January, 3), outErr.Start)
		assert.Equal(t, day(2023, time.February, 10), outErr.End)
	})

	t.Run("EndDateOutsideTerm", func(t *testing.T) {
		params := validParams()
		params.EndDate = day(2023, time.February, 11)

		_, err := planBooking(now, []*model.Term{autumnTerm()}, params)

		var outErr *OutOfTermError
		assert.ErrorAs(t, err, &outErr)
	})

	t.Run("EndNotAfterStart", func(t *testing.T) {
		params := validParams()
		params.StartDate = day(2023, time.February, 1)
		params.EndDate = day(2023, time.February, 1)

		_, err := planBooking(now, []*model.Term{autumnTerm()}, params)

		assert.ErrorIs(t, err, ErrDateOrder)
	})

	t.Run("CapacityCarriesMaxFitting", func(t *testing.T) {
		// До 2023-02-10 умещается только 6 сред
		params := validParams()
		params.LessonCount = 10

		_, err := planBooking(now, []*model.Term{autumnTerm()}, params)

		var capacityErr *CapacityError
		require.ErrorAs(t, err, &capacityErr)
		assert.Equal(t, 10, capacityErr.Requested)
		assert.Equal(t, 6, capacityErr.MaxFitting)
	})

	t.Run("Success", func(t *testing.T) {
		// Старт во вторник, занятия по средам: первая дата сдвигается на день
		dates, err := planBooking(now, []*model.Term{autumnTerm()}, validParams())

		require.NoError(t, err)
		require.Len(t, dates, 3)
		assert.Equal(t, day(2023, time.January, 4), dates[0])
		assert.Equal(t, day(2023, time.January, 11), dates[1])
		assert.Equal(t, day(2023, time.January, 18), dates[2])
	})
}

func TestValidateLessonFields(t *testing.T) {
	type testCase struct {
		name            string
		duration        int
		count           int
		interval        int
		topic           string
		teacher         string
		teacherRequired bool
		wantField       string
	}

	tests := []testCase{
		{name: "Valid", duration: 60, count: 1, interval: 1, topic: "Piano", teacher: "Mr Bob"},
		{name: "ValidBoundaries", duration: 120, count: 50, interval: 5, topic: "Piano", teacher: ""},
		{name: "DurationTooShort", duration: 29, count: 1, interval: 1, topic: "Piano", wantField: "duration"},
		{name: "DurationTooLong", duration: 121, count: 1, interval: 1, topic: "Piano", wantField: "duration"},
		{name: "ZeroCount", duration: 60, count: 0, interval: 1, topic: "Piano", wantField: "lesson_count"},
		{name: "NegativeInterval", duration: 60, count: 1, interval: -1, topic: "Piano", wantField: "interval_weeks"},
		{name: "BlankTopic", duration: 60, count: 1, interval: 1, topic: " ", wantField: "topic"},
		{name: "TopicTooLong", duration: 60, count: 1, interval: 1, topic: strings.Repeat("a", 51), wantField: "topic"},
		{name: "BlankTeacherWhenRequired", duration: 60, count: 1, interval: 1, topic: "Piano", teacher: "", teacherRequired: true, wantField: "teacher"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLessonFields(tt.duration, tt.count, tt.interval, tt.topic, tt.teacher, tt.teacherRequired)

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}
