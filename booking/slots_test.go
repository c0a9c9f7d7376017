package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlotDate(t *testing.T) {
	day, err := ParseSlotDate("2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), day)
}

func TestParseSlotDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "10/06/2024", "2024-6-10", "2024-06-10T10:00:00Z", "not-a-date"} {
		_, err := ParseSlotDate(input)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr, "input %q", input)
	}
}

func TestDaySlots(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	slots := DaySlots(day)

	require.Len(t, slots, 18)
	assert.Equal(t, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), slots[0])
	assert.Equal(t, time.Date(2024, 6, 10, 17, 30, 0, 0, time.UTC), slots[len(slots)-1])
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, 30*time.Minute, slots[i].Sub(slots[i-1]))
	}
}

func TestFilterAvailable(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	slots := DaySlots(day)
	occupied := []time.Time{
		time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 10, 14, 30, 0, 0, time.UTC),
	}

	free := FilterAvailable(slots, occupied)

	assert.Len(t, free, 16)
	assert.NotContains(t, free, occupied[0])
	assert.NotContains(t, free, occupied[1])
	assert.Equal(t, time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC), free[0])
}

func TestFilterAvailable_ExactInstantOnly(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	slots := DaySlots(day)

	// Occupancy at 09:15 matches no slot instant, so nothing is filtered.
	free := FilterAvailable(slots, []time.Time{time.Date(2024, 6, 10, 9, 15, 0, 0, time.UTC)})

	assert.Len(t, free, 18)
}

func TestFilterAvailable_TimezoneNormalized(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	slots := DaySlots(day)

	// 11:00 CEST is 09:00 UTC; the same instant filters regardless of zone.
	cest := time.FixedZone("CEST", 2*60*60)
	free := FilterAvailable(slots, []time.Time{time.Date(2024, 6, 10, 11, 0, 0, 0, cest)})

	assert.Len(t, free, 17)
	assert.NotContains(t, free, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC))
}
