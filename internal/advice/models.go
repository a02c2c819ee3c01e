package advice

import "time"

// TimeBlock is a user-selectable slice of the day, expressed in local hours.
// Night wraps past midnight.
type TimeBlock string

const (
	BlockMorning   TimeBlock = "morning"
	BlockAfternoon TimeBlock = "afternoon"
	BlockEvening   TimeBlock = "evening"
	BlockNight     TimeBlock = "night"
)

// CandidateHour is one forecast hour materialized from the columnar dataset.
// Humidity, dew point, and wind gusts are display-only; they never influence
// the ranking.
type CandidateHour struct {
	Time                time.Time
	Temperature         float64
	ApparentTemperature float64
	PrecipitationChance float64
	RainAmount          float64
	WindSpeed           float64
	Humidity            float64
	DewPoint            float64
	WindGusts           float64
}

// Result is the engine's sole contract with presentation. All fields are
// plain text; anything rendering them into markup must escape them first.
type Result struct {
	Title         string     `json:"title"`
	Advice        string     `json:"advice"`
	Details       []DayGroup `json:"details"`
	SpecialAdvice string     `json:"specialAdvice,omitempty"`
}

// DayGroup collects the ranked times that fall on one calendar day.
type DayGroup struct {
	DayTitle string       `json:"dayTitle"`
	Times    []RankedTime `json:"times"`
}

// RankedTime is one recommended hour with display-ready readings.
type RankedTime struct {
	Rank                int    `json:"rank"`
	Time                string `json:"time"`
	Temperature         string `json:"temperature"`
	ApparentTemperature string `json:"apparentTemperature"`
	PrecipitationChance string `json:"precipitationChance"`
	RainAmount          string `json:"rainAmount"`
	WindSpeed           string `json:"windSpeed"`
	Humidity            string `json:"humidity"`
	DewPoint            string `json:"dewPoint"`
	WindGusts           string `json:"windGusts"`
}
