package advice

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const adviceSentence = "Here are the top three recommended times for your run."

const (
	specialAdviceText = "The top recommendation offers nearly perfect running conditions!"
	genericAdviceText = "Conditions are workable. Check the details and dress for them."
)

// Near-ideal comfort band for the closing remark.
const (
	idealApparentMinF = 50.0
	idealApparentMaxF = 68.0
	idealMaxChancePct = 10.0
	idealMaxWindMph   = 12.0
)

// DisplayLocation decides what place name the result shows. Input that
// already names a region (contains a comma) is shown verbatim; bare input
// gets the resolved region appended when one is known.
func DisplayLocation(raw, region string) string {
	if strings.Contains(raw, ",") || region == "" {
		return raw
	}
	return raw + ", " + region
}

// dayTitle labels a candidate's calendar day relative to now. Days beyond
// tomorrow fall back to the dated form.
func dayTitle(t, now time.Time) string {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, 1)):
		return "Tomorrow"
	default:
		return t.Format("Monday, Jan 2")
	}
}

// Format renders ranked candidates into the structured recommendation.
// Candidates must already be in display order; their rank is positional.
// Every field is plain text, never markup.
func Format(rawLocation, region string, block TimeBlock, ranked []CandidateHour, now time.Time) *Result {
	display := DisplayLocation(strings.TrimSpace(rawLocation), region)

	result := &Result{
		Title:  fmt.Sprintf("Best times to run in %s (%s)", display, block),
		Advice: adviceSentence,
	}

	// Group by calendar day, days ordered by their best-ranked member.
	groupIndex := make(map[string]int)
	for i, c := range ranked {
		title := dayTitle(c.Time, now)
		idx, ok := groupIndex[title]
		if !ok {
			idx = len(result.Details)
			groupIndex[title] = idx
			result.Details = append(result.Details, DayGroup{DayTitle: title})
		}

		result.Details[idx].Times = append(result.Details[idx].Times, RankedTime{
			Rank:                i + 1,
			Time:                c.Time.Format("3:04 PM"),
			Temperature:         fmt.Sprintf("%.1f°F", c.Temperature),
			ApparentTemperature: fmt.Sprintf("%.1f°F", c.ApparentTemperature),
			PrecipitationChance: fmt.Sprintf("%d%%", int(math.Round(c.PrecipitationChance))),
			RainAmount:          fmt.Sprintf("%.2f in", c.RainAmount),
			WindSpeed:           fmt.Sprintf("%.1f mph", c.WindSpeed),
			Humidity:            fmt.Sprintf("%d%%", int(math.Round(c.Humidity))),
			DewPoint:            fmt.Sprintf("%.1f°F", c.DewPoint),
			WindGusts:           fmt.Sprintf("%.1f mph", c.WindGusts),
		})
	}

	if len(ranked) > 0 && nearIdeal(ranked[0]) {
		result.SpecialAdvice = specialAdviceText
	} else {
		result.SpecialAdvice = genericAdviceText
	}

	return result
}

func nearIdeal(c CandidateHour) bool {
	return c.ApparentTemperature >= idealApparentMinF &&
		c.ApparentTemperature <= idealApparentMaxF &&
		c.PrecipitationChance <= idealMaxChancePct &&
		c.WindSpeed < idealMaxWindMph
}
