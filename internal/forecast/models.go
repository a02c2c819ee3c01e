package forecast

// HourlyDataset mirrors the Open-Meteo hourly block: one ordered time column
// plus index-aligned value columns, where index i across all columns
// describes the same hour. Times are ISO wall-clock strings in the forecast
// location's own timezone. JSON tags match the wire field names so a cached
// dataset round-trips exactly as fetched.
type HourlyDataset struct {
	Time                     []string  `json:"time"`
	Temperature              []float64 `json:"temperature_2m"`
	ApparentTemperature      []float64 `json:"apparent_temperature"`
	PrecipitationProbability []float64 `json:"precipitation_probability"`
	Precipitation            []float64 `json:"precipitation"`
	Rain                     []float64 `json:"rain"`
	WindSpeed                []float64 `json:"wind_speed_10m"`
	RelativeHumidity         []float64 `json:"relative_humidity_2m"`
	DewPoint                 []float64 `json:"dew_point_2m"`
	WindGusts                []float64 `json:"wind_gusts_10m"`
}

// Aligned reports whether every value column has the same length as the time
// column. A dataset that is not aligned must be rejected at the fetch
// boundary, never indexed.
func (d *HourlyDataset) Aligned() bool {
	n := len(d.Time)
	return len(d.Temperature) == n &&
		len(d.ApparentTemperature) == n &&
		len(d.PrecipitationProbability) == n &&
		len(d.Precipitation) == n &&
		len(d.Rain) == n &&
		len(d.WindSpeed) == n &&
		len(d.RelativeHumidity) == n &&
		len(d.DewPoint) == n &&
		len(d.WindGusts) == n
}
