package timebitmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSpanUnknownBoundary(t *testing.T) {
	_, err := FromSpan("0815", "0900", "monday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized start time")
}

func TestFromSpanUnknownDay(t *testing.T) {
	_, err := FromSpan("0810", "0900", "funday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized day")
}

func TestFromSpanIdempotent(t *testing.T) {
	a, err := FromSpan("1240", "1400", "tuesday")
	require.NoError(t, err)
	b, err := FromSpan("1240", "1400", "tuesday")
	require.NoError(t, err)
	assert.Equal(t, a, Union(a, b))
}

func TestFromSpanUnionAcrossDays(t *testing.T) {
	// CRN 40288 (MATH1010U Tue/Fri 12:40-14:00) per the committed fixture.
	tue, err := FromSpan("1240", "1400", "tuesday")
	require.NoError(t, err)
	fri, err := FromSpan("1240", "1400", "friday")
	require.NoError(t, err)
	combined := Union(tue, fri)
	assert.False(t, IsEmpty(combined))
	assert.True(t, combined.test(9+1*W)) // tuesday, slot index 9 (1240-1300)
	assert.True(t, combined.test(9+4*W)) // friday, slot index 9
	assert.False(t, combined.test(9+0*W)) // monday untouched
}

func TestOverlapsDisjointVsSame(t *testing.T) {
	morning, err := FromSpan("0810", "0930", "monday")
	require.NoError(t, err)
	later, err := FromSpan("0940", "1100", "monday")
	require.NoError(t, err)
	assert.False(t, Overlaps(morning, later))

	same, err := FromSpan("0810", "0930", "monday")
	require.NoError(t, err)
	assert.True(t, Overlaps(morning, same))
}

func TestOverlapsEqualsBitwiseAnd(t *testing.T) {
	x, err := FromSpan("0810", "0930", "monday")
	require.NoError(t, err)
	y, err := FromSpan("0910", "1030", "monday")
	require.NoError(t, err)
	assert.Equal(t, !IsEmpty(Intersect(x, y)), Overlaps(x, y))
}

func TestEmptyBitmapIsZeroValue(t *testing.T) {
	assert.True(t, IsEmpty(Empty()))
	assert.True(t, IsEmpty(TimeBitmap{}))
}

func TestCountIdleGapsPerDayNoClasses(t *testing.T) {
	gaps := CountIdleGapsPerDay(Empty())
	for _, day := range Days {
		assert.Equal(t, 0, gaps[day])
	}
}

func TestCountIdleGapsPerDayWithBreak(t *testing.T) {
	morning, err := FromSpan("0810", "0830", "monday")
	require.NoError(t, err)
	afternoon, err := FromSpan("1240", "1300", "monday")
	require.NoError(t, err)
	combined := Union(morning, afternoon)

	gaps := CountIdleGapsPerDay(combined)
	// slot index 0 (0810-0830) through slot index 9 (1240-1300): 8 idle slots between.
	assert.Equal(t, 8, gaps["monday"])
	assert.Equal(t, 0, gaps["tuesday"])
}

func TestCountIdleGapsPerDayContiguousIsZero(t *testing.T) {
	contiguous, err := FromSpan("0810", "1000", "wednesday")
	require.NoError(t, err)
	gaps := CountIdleGapsPerDay(contiguous)
	assert.Equal(t, 0, gaps["wednesday"])
}

func TestMaskBeforeCatchesEarlyClass(t *testing.T) {
	mask, err := MaskBefore("0900")
	require.NoError(t, err)
	early, err := FromSpan("0810", "0830", "wednesday")
	require.NoError(t, err)
	late, err := FromSpan("1240", "1300", "wednesday")
	require.NoError(t, err)
	assert.True(t, Overlaps(mask, early))
	assert.False(t, Overlaps(mask, late))
}

func TestMaskAfterCatchesLateClass(t *testing.T) {
	mask, err := MaskAfter("1210")
	require.NoError(t, err)
	early, err := FromSpan("0810", "0830", "wednesday")
	require.NoError(t, err)
	late, err := FromSpan("1240", "1300", "wednesday")
	require.NoError(t, err)
	assert.False(t, Overlaps(mask, early))
	assert.True(t, Overlaps(mask, late))
}

func TestDaySpanCoversWholeDay(t *testing.T) {
	span, err := DaySpan("monday")
	require.NoError(t, err)
	cell, err := FromSpan("1240", "1300", "monday")
	require.NoError(t, err)
	assert.True(t, Overlaps(span, cell))

	otherDay, err := FromSpan("1240", "1300", "tuesday")
	require.NoError(t, err)
	assert.False(t, Overlaps(span, otherDay))
}
