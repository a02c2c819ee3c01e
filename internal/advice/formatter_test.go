package advice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayLocation(t *testing.T) {
	t.Run("bare input gets resolved region appended", func(t *testing.T) {
		assert.Equal(t, "Tyler, Texas", DisplayLocation("Tyler", "Texas"))
	})

	t.Run("input with a comma is shown verbatim", func(t *testing.T) {
		assert.Equal(t, "Tyler, TX", DisplayLocation("Tyler, TX", "Texas"))
	})

	t.Run("unknown region means no augmentation", func(t *testing.T) {
		assert.Equal(t, "Tyler", DisplayLocation("Tyler", ""))
	})
}

func TestFormatRendersFixedPrecision(t *testing.T) {
	now := time.Date(2025, 6, 11, 5, 0, 0, 0, time.UTC)
	ts := time.Date(2025, 6, 11, 6, 0, 0, 0, time.UTC)
	result := Format("Tyler", "Texas", BlockMorning, []CandidateHour{
		{
			Time:                ts,
			Temperature:         61.27,
			ApparentTemperature: 59.849,
			PrecipitationChance: 4.6,
			RainAmount:          0.128,
			WindSpeed:           7.04,
			Humidity:            26.8,
			DewPoint:            40.04,
			WindGusts:           6.66,
		},
	}, now)

	require.Len(t, result.Details, 1)
	require.Len(t, result.Details[0].Times, 1)

	row := result.Details[0].Times[0]
	assert.Equal(t, 1, row.Rank)
	assert.Equal(t, "6:00 AM", row.Time)
	assert.Equal(t, "61.3°F", row.Temperature)
	assert.Equal(t, "59.8°F", row.ApparentTemperature)
	assert.Equal(t, "5%", row.PrecipitationChance)
	assert.Equal(t, "0.13 in", row.RainAmount)
	assert.Equal(t, "7.0 mph", row.WindSpeed)
	assert.Equal(t, "27%", row.Humidity)
	assert.Equal(t, "40.0°F", row.DewPoint)
	assert.Equal(t, "6.7 mph", row.WindGusts)

	assert.Contains(t, result.Title, "Tyler, Texas")
	assert.Contains(t, result.Title, "(morning)")
}

func TestFormatDayTitles(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	today := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)
	dayAfter := today.AddDate(0, 0, 2)

	result := Format("Tyler", "", BlockMorning, []CandidateHour{
		{Time: today, ApparentTemperature: 59},
		{Time: tomorrow, ApparentTemperature: 60},
		{Time: dayAfter, ApparentTemperature: 61},
	}, now)

	require.Len(t, result.Details, 3)
	assert.Equal(t, "Today", result.Details[0].DayTitle)
	assert.Equal(t, "Tomorrow", result.Details[1].DayTitle)
	assert.Equal(t, "Thursday, Jun 12", result.Details[2].DayTitle)
}

func TestFormatGroupsByCalendarDay(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	day1 := time.Date(2025, 6, 11, 6, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 12, 7, 0, 0, 0, time.UTC)

	result := Format("Tyler", "", BlockMorning, []CandidateHour{
		{Time: day1, ApparentTemperature: 59},
		{Time: day2, ApparentTemperature: 60},
		{Time: day1.Add(time.Hour), ApparentTemperature: 61},
	}, now)

	require.Len(t, result.Details, 2)
	assert.Equal(t, "Tomorrow", result.Details[0].DayTitle)
	assert.Equal(t, "Thursday, Jun 12", result.Details[1].DayTitle)

	// Rank numbering follows the overall ranked order, not the grouping.
	require.Len(t, result.Details[0].Times, 2)
	assert.Equal(t, 1, result.Details[0].Times[0].Rank)
	assert.Equal(t, 3, result.Details[0].Times[1].Rank)
	assert.Equal(t, 2, result.Details[1].Times[0].Rank)
}

func TestFormatSpecialAdvice(t *testing.T) {
	now := time.Date(2025, 6, 11, 5, 0, 0, 0, time.UTC)
	ts := time.Date(2025, 6, 11, 6, 0, 0, 0, time.UTC)

	t.Run("near-ideal top pick earns the special closing", func(t *testing.T) {
		result := Format("Tyler", "", BlockMorning, []CandidateHour{
			{Time: ts, ApparentTemperature: 59, PrecipitationChance: 5, WindSpeed: 6},
		}, now)
		assert.Equal(t, "The top recommendation offers nearly perfect running conditions!", result.SpecialAdvice)
		assert.Equal(t, "Here are the top three recommended times for your run.", result.Advice)
	})

	t.Run("windy top pick falls back to the generic closing", func(t *testing.T) {
		result := Format("Tyler", "", BlockMorning, []CandidateHour{
			{Time: ts, ApparentTemperature: 59, PrecipitationChance: 5, WindSpeed: 14},
		}, now)
		assert.Equal(t, genericAdviceText, result.SpecialAdvice)
	})

	t.Run("band edges are inclusive for temperature and chance", func(t *testing.T) {
		result := Format("Tyler", "", BlockMorning, []CandidateHour{
			{Time: ts, ApparentTemperature: 68, PrecipitationChance: 10, WindSpeed: 11.9},
		}, now)
		assert.Equal(t, specialAdviceText, result.SpecialAdvice)
	})
}
