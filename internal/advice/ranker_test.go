package advice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runweather/running-advisor/internal/forecast"
)

func datasetFromHours(hours []string, apparent []float64) *forecast.HourlyDataset {
	n := len(hours)
	zeros := make([]float64, n)
	return &forecast.HourlyDataset{
		Time:                     hours,
		Temperature:              append([]float64(nil), apparent...),
		ApparentTemperature:      apparent,
		PrecipitationProbability: zeros,
		Precipitation:            append([]float64(nil), zeros...),
		Rain:                     append([]float64(nil), zeros...),
		WindSpeed:                append([]float64(nil), zeros...),
		RelativeHumidity:         append([]float64(nil), zeros...),
		DewPoint:                 append([]float64(nil), zeros...),
		WindGusts:                append([]float64(nil), zeros...),
	}
}

func TestSelectCandidatesNightWrapsMidnight(t *testing.T) {
	now := time.Date(2025, 6, 10, 22, 0, 0, 0, time.UTC)
	data := datasetFromHours(
		[]string{"2025-06-10T23:00", "2025-06-11T02:00", "2025-06-11T10:00"},
		[]float64{60, 61, 62},
	)

	candidates := SelectCandidates(data, BlockNight, 1, now)

	require.Len(t, candidates, 2)
	assert.Equal(t, 23, candidates[0].Time.Hour())
	assert.Equal(t, 2, candidates[1].Time.Hour())
}

func TestSelectCandidatesDurationThreeExcludesToday(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	data := datasetFromHours(
		[]string{
			"2025-06-10T09:00", // today, must be excluded
			"2025-06-11T09:00",
			"2025-06-13T09:00",
			"2025-06-14T09:00", // past the three-day window
		},
		[]float64{60, 61, 62, 63},
	)

	candidates := SelectCandidates(data, BlockMorning, 3, now)

	require.Len(t, candidates, 2)
	assert.Equal(t, 11, candidates[0].Time.Day())
	assert.Equal(t, 13, candidates[1].Time.Day())
}

func TestSelectCandidatesDurationOneIncludesRestOfToday(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	data := datasetFromHours(
		[]string{
			"2025-06-10T06:00", // already in the past
			"2025-06-10T09:00",
			"2025-06-11T09:00",
			"2025-06-12T09:00", // day after tomorrow
		},
		[]float64{60, 61, 62, 63},
	)

	candidates := SelectCandidates(data, BlockMorning, 1, now)

	require.Len(t, candidates, 2)
	assert.Equal(t, 10, candidates[0].Time.Day())
	assert.Equal(t, 11, candidates[1].Time.Day())
}

func TestSelectCandidatesUnknownBlockSelectsNothing(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	data := datasetFromHours([]string{"2025-06-10T09:00"}, []float64{60})

	assert.Empty(t, SelectCandidates(data, TimeBlock("brunch"), 1, now))
}

func TestSelectCandidatesSkipsUnparsableTimestamps(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	data := datasetFromHours(
		[]string{"garbage", "2025-06-10T09:00"},
		[]float64{60, 61},
	)

	candidates := SelectCandidates(data, BlockMorning, 1, now)

	require.Len(t, candidates, 1)
	assert.Equal(t, 61.0, candidates[0].ApparentTemperature)
}

func TestSelectCandidatesNeverIndexesPastShortestColumn(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	data := &forecast.HourlyDataset{
		Time:                     []string{"2025-06-10T09:00", "2025-06-10T10:00", "2025-06-10T11:00"},
		Temperature:              []float64{60, 61, 62},
		ApparentTemperature:      []float64{60}, // lopsided on purpose
		PrecipitationProbability: []float64{0, 0, 0},
		Precipitation:            []float64{0, 0, 0},
		Rain:                     []float64{0, 0, 0},
		WindSpeed:                []float64{0, 0, 0},
		RelativeHumidity:         []float64{0, 0, 0},
		DewPoint:                 []float64{0, 0, 0},
		WindGusts:                []float64{0, 0, 0},
	}

	candidates := SelectCandidates(data, BlockMorning, 1, now)

	assert.Len(t, candidates, 1)
}

func TestRankPrefersApparentTemperatureClosestToTarget(t *testing.T) {
	ts := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	candidates := []CandidateHour{
		{Time: ts, ApparentTemperature: 75},
		{Time: ts.Add(time.Hour), ApparentTemperature: 59},
		{Time: ts.Add(2 * time.Hour), ApparentTemperature: 54},
	}

	ranked := Rank(candidates)

	require.Len(t, ranked, 3)
	assert.Equal(t, 59.0, ranked[0].ApparentTemperature)
	assert.Equal(t, 54.0, ranked[1].ApparentTemperature)
	assert.Equal(t, 75.0, ranked[2].ApparentTemperature)
}

func TestRankTieBreakChain(t *testing.T) {
	ts := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)

	t.Run("rain amount breaks apparent-temperature ties", func(t *testing.T) {
		ranked := Rank([]CandidateHour{
			{Time: ts, ApparentTemperature: 60, RainAmount: 0.1},
			{Time: ts.Add(time.Hour), ApparentTemperature: 58, RainAmount: 0},
		})
		assert.Equal(t, 0.0, ranked[0].RainAmount)
	})

	t.Run("precipitation chance breaks rain ties", func(t *testing.T) {
		ranked := Rank([]CandidateHour{
			{Time: ts, ApparentTemperature: 60, PrecipitationChance: 40},
			{Time: ts.Add(time.Hour), ApparentTemperature: 58, PrecipitationChance: 5},
		})
		assert.Equal(t, 5.0, ranked[0].PrecipitationChance)
	})

	t.Run("wind breaks the remaining ties", func(t *testing.T) {
		ranked := Rank([]CandidateHour{
			{Time: ts, ApparentTemperature: 60, WindSpeed: 15},
			{Time: ts.Add(time.Hour), ApparentTemperature: 58, WindSpeed: 3},
		})
		assert.Equal(t, 3.0, ranked[0].WindSpeed)
	})

	t.Run("full ties keep input order", func(t *testing.T) {
		ranked := Rank([]CandidateHour{
			{Time: ts, ApparentTemperature: 59},
			{Time: ts.Add(time.Hour), ApparentTemperature: 59},
		})
		assert.Equal(t, ts, ranked[0].Time)
	})
}

func TestRankCapsAtMaxPicks(t *testing.T) {
	ts := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	var candidates []CandidateHour
	for i := 0; i < 6; i++ {
		candidates = append(candidates, CandidateHour{
			Time:                ts.Add(time.Duration(i) * time.Hour),
			ApparentTemperature: 59 + float64(i),
		})
	}

	ranked := Rank(candidates)

	require.Len(t, ranked, MaxPicks)
	assert.Equal(t, 59.0, ranked[0].ApparentTemperature)
	// Input slice order is untouched.
	assert.Equal(t, ts, candidates[0].Time)
}
