package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorschool/msms/internal/model"
)

func registeredTerms() []*model.Term {
	return []*model.Term{
		{ID: 1, Name: "Autumn Term", StartDate: day(2022, time.September, 1), EndDate: day(2022, time.December, 16)},
		{ID: 2, Name: "Spring Term", StartDate: day(2023, time.January, 3), EndDate: day(2023, time.March, 31)},
	}
}

func TestFindOverlap(t *testing.T) {
	terms := registeredTerms()

	t.Run("Disjoint", func(t *testing.T) {
		overlap := findOverlap(terms, day(2023, time.April, 17), day(2023, time.July, 7), 0)

		assert.Nil(t, overlap)
	})

	t.Run("StartInsideExisting", func(t *testing.T) {
		overlap := findOverlap(terms, day(2023, time.March, 31), day(2023, time.July, 7), 0)

		require.NotNil(t, overlap)
		assert.Equal(t, "Spring Term", overlap.Name)
	})

	t.Run("EndInsideExisting", func(t *testing.T) {
		overlap := findOverlap(terms, day(2022, time.August, 1), day(2022, time.September, 1), 0)

		require.NotNil(t, overlap)
		assert.Equal(t, "Autumn Term", overlap.Name)
	})

	t.Run("StrictlyInsideExisting", func(t *testing.T) {
		overlap := findOverlap(terms, day(2023, time.February, 1), day(2023, time.February, 28), 0)

		require.NotNil(t, overlap)
		assert.Equal(t, "Spring Term", overlap.Name)
	})

	t.Run("CoversExisting", func(t *testing.T) {
		overlap := findOverlap(terms, day(2022, time.December, 20), day(2023, time.April, 10), 0)

		require.NotNil(t, overlap)
		assert.Equal(t, "Spring Term", overlap.Name)
	})

	t.Run("ExcludesSelfOnUpdate", func(t *testing.T) {
		// Семестр сдвигается в собственных границах - это не пересечение
		overlap := findOverlap(terms, day(2023, time.January, 10), day(2023, time.March, 20), 2)

		assert.Nil(t, overlap)
	})
}

func TestNextOrCurrent(t *testing.T) {
	terms := registeredTerms()

	t.Run("InsideTerm", func(t *testing.T) {
		term := nextOrCurrent(day(2022, time.October, 15), terms)

		require.NotNil(t, term)
		assert.Equal(t, "Autumn Term", term.Name)
	})

	t.Run("BetweenTermsPicksNext", func(t *testing.T) {
		term := nextOrCurrent(day(2022, time.December, 20), terms)

		require.NotNil(t, term)
		assert.Equal(t, "Spring Term", term.Name)
	})

	t.Run("AfterAllTerms", func(t *testing.T) {
		term := nextOrCurrent(day(2023, time.June, 1), terms)

		assert.Nil(t, term)
	})

	t.Run("NoTerms", func(t *testing.T) {
		assert.Nil(t, nextOrCurrent(day(2023, time.June, 1), nil))
	})
}

func TestAllOutdated(t *testing.T) {
	terms := registeredTerms()

	assert.False(t, allOutdated(day(2023, time.January, 15), terms))
	assert.False(t, allOutdated(day(2022, time.December, 20), terms))
	assert.True(t, allOutdated(day(2023, time.April, 1), terms))
}

func TestValidateTermName(t *testing.T) {
	assert.NoError(t, validateTermName("Autumn Term"))

	var validationErr *ValidationError

	err := validateTermName("  ")
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "name", validationErr.Field)

	err = validateTermName(strings.Repeat("a", 51))
	assert.ErrorAs(t, err, &validationErr)
}
