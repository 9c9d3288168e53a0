package activity

import (
	"fmt"
	"math"
)

const milesPerMeter = 0.000621371

// NoPace is shown for activities without a measurable distance.
const NoPace = "--:--"

// MetersToMiles converts meters to miles rounded to two decimal places.
func MetersToMiles(meters float64) float64 {
	return math.Round(meters*milesPerMeter*100) / 100
}

// SecondsToHMS renders a duration as HH:MM:SS. Hours widen past two digits rather than wrap.
func SecondsToHMS(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := seconds % 3600 / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Pace renders minutes per mile as M:SS. Whole minutes of moving time are used,
// matching how Strava users read their splits. A seconds value that rounds up
// to 60 carries into the minutes.
func Pace(movingSeconds int64, meters float64) string {
	miles := MetersToMiles(meters)
	if miles <= 0 {
		return NoPace
	}

	minutes := math.Floor(float64(movingSeconds) / 60)
	pace := minutes / miles
	paceMinutes := math.Floor(pace)
	paceSeconds := math.RoundToEven((pace - paceMinutes) * 60)
	if paceSeconds >= 60 {
		paceMinutes++
		paceSeconds -= 60
	}
	return fmt.Sprintf("%d:%02d", int64(paceMinutes), int64(paceSeconds))
}
