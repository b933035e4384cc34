package format

import (
	"math"
	"strconv"
)

// FormatPercent renders a utilization value the way the dashboard prints it:
// the shortest decimal representation followed by a percent sign, e.g. "0%",
// "23.4%", "150%". Non-finite values are rendered verbatim ("NaN%").
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// RoundTenth rounds v to one decimal place, the precision the metrics
// provider reports at.
func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
