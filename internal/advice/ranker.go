package advice

import (
	"math"
	"sort"
	"time"

	"github.com/runweather/running-advisor/internal/forecast"
)

// TargetApparentF is the apparent temperature considered ideal for running.
// Distance from it is the primary ranking signal.
const TargetApparentF = 59.0

// MaxPicks caps how many ranked hours a recommendation carries.
const MaxPicks = 3

type blockRange struct {
	start, end int
}

// Local-hour ranges per block. Night's start > end, meaning it wraps
// past midnight.
var blockRanges = map[TimeBlock]blockRange{
	BlockMorning:   {5, 12},
	BlockAfternoon: {12, 17},
	BlockEvening:   {17, 21},
	BlockNight:     {21, 4},
}

func inBlock(hour int, block TimeBlock) bool {
	r, ok := blockRanges[block]
	if !ok {
		return false
	}
	if r.start > r.end {
		return hour >= r.start || hour < r.end
	}
	return hour >= r.start && hour < r.end
}

// dateRange returns the inclusive window of timestamps eligible for the
// given duration. Duration 1 covers the rest of today plus tomorrow;
// duration 3 covers the next three whole days, excluding today.
func dateRange(now time.Time, durationDays int) (time.Time, time.Time) {
	if durationDays == 1 {
		return now, endOfDay(now.AddDate(0, 0, 1))
	}
	return startOfDay(now.AddDate(0, 0, 1)), endOfDay(now.AddDate(0, 0, durationDays))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}

// parseHourlyTime parses an Open-Meteo hourly timestamp. The API emits
// minute-precision ISO local times; RFC3339 is accepted as a fallback.
func parseHourlyTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02T15:04", s, loc); err == nil {
		return t, nil
	}
	return time.ParseInLocation(time.RFC3339, s, loc)
}

// SelectCandidates walks the dataset once and keeps every hour inside both
// the duration's date range and the requested block. Unknown blocks and
// unparsable timestamps select nothing; indexing is bounded by the shortest
// column so a lopsided dataset can never panic.
func SelectCandidates(data *forecast.HourlyDataset, block TimeBlock, durationDays int, now time.Time) []CandidateHour {
	from, to := dateRange(now, durationDays)

	n := len(data.Time)
	for _, col := range [][]float64{
		data.Temperature,
		data.ApparentTemperature,
		data.PrecipitationProbability,
		data.Rain,
		data.WindSpeed,
		data.RelativeHumidity,
		data.DewPoint,
		data.WindGusts,
	} {
		if len(col) < n {
			n = len(col)
		}
	}

	var candidates []CandidateHour
	for i := 0; i < n; i++ {
		t, err := parseHourlyTime(data.Time[i], now.Location())
		if err != nil {
			continue
		}
		if t.Before(from) || t.After(to) {
			continue
		}
		if !inBlock(t.Hour(), block) {
			continue
		}

		candidates = append(candidates, CandidateHour{
			Time:                t,
			Temperature:         data.Temperature[i],
			ApparentTemperature: data.ApparentTemperature[i],
			PrecipitationChance: data.PrecipitationProbability[i],
			RainAmount:          data.Rain[i],
			WindSpeed:           data.WindSpeed[i],
			Humidity:            data.RelativeHumidity[i],
			DewPoint:            data.DewPoint[i],
			WindGusts:           data.WindGusts[i],
		})
	}
	return candidates
}

// Rank orders candidates best-first with a stable multi-key comparison:
// distance of apparent temperature from the comfort target, then rain
// amount, then precipitation probability, then wind speed. It returns at
// most MaxPicks candidates; their order is the display order.
func Rank(candidates []CandidateHour) []CandidateHour {
	ranked := make([]CandidateHour, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		di := math.Abs(ranked[i].ApparentTemperature - TargetApparentF)
		dj := math.Abs(ranked[j].ApparentTemperature - TargetApparentF)
		if di != dj {
			return di < dj
		}
		if ranked[i].RainAmount != ranked[j].RainAmount {
			return ranked[i].RainAmount < ranked[j].RainAmount
		}
		if ranked[i].PrecipitationChance != ranked[j].PrecipitationChance {
			return ranked[i].PrecipitationChance < ranked[j].PrecipitationChance
		}
		return ranked[i].WindSpeed < ranked[j].WindSpeed
	})

	if len(ranked) > MaxPicks {
		ranked = ranked[:MaxPicks]
	}
	return ranked
}
