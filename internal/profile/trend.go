package profile

import (
	"sort"
	"time"
)

// TrendPoint is one profile's share of automatable and augmentable work.
type TrendPoint struct {
	ProfileID string    `json:"profileId"`
	JobTitle  string    `json:"jobTitle"`
	Date      time.Time `json:"date"`
	Automate  float64   `json:"automate"`
	Augment   float64   `json:"augment"`
	Human     float64   `json:"human"`
}

// Trend orders profiles oldest first for the dashboard chart.
func Trend(profiles []SavedProfile) []TrendPoint {
	points := make([]TrendPoint, 0, len(profiles))
	for _, p := range profiles {
		points = append(points, TrendPoint{
			ProfileID: p.ID,
			JobTitle:  p.JobTitle,
			Date:      p.Date,
			Automate:  p.Analysis.Percentages.Automate,
			Augment:   p.Analysis.Percentages.Augment,
			Human:     p.Analysis.Percentages.Human,
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}
