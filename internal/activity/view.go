package activity

import (
	"time"

	"github.com/jw6ventures/stravaview/internal/strava"
)

// View is the display-ready form of a Strava activity.
type View struct {
	ID            int64
	Name          string
	DistanceMiles float64
	StartDate     time.Time
	ElapsedTime   string
	MovingTime    string
	Pace          string
	SportType     string
}

// Build derives a View from a raw activity. It is pure.
func Build(raw strava.RawActivity) View {
	return View{
		ID:            raw.ID,
		Name:          raw.Name,
		DistanceMiles: MetersToMiles(raw.Distance),
		StartDate:     raw.StartDate.UTC(),
		ElapsedTime:   SecondsToHMS(raw.ElapsedTime),
		MovingTime:    SecondsToHMS(raw.MovingTime),
		Pace:          Pace(raw.MovingTime, raw.Distance),
		SportType:     raw.SportType,
	}
}

// BuildAll keeps upstream order.
func BuildAll(raws []strava.RawActivity) []View {
	views := make([]View, 0, len(raws))
	for _, raw := range raws {
		views = append(views, Build(raw))
	}
	return views
}
