package service

import (
	"math"

	"regapi/internal/model"
)

// Age bucket labels. Alphabetical order matches display order, so the
// distribution can stay a plain map on the wire.
const (
	bucket18to25 = "18-25"
	bucket26to35 = "26-35"
	bucket36to50 = "36-50"
	bucket51Plus = "51+"
)

// Stats holds aggregate statistics over the full submission store.
// ByCountry and ByGender are keyed by the stored (verbatim) values.
type Stats struct {
	Total           int            `json:"total"`
	ByCountry       map[string]int `json:"byCountry"`
	ByGender        map[string]int `json:"byGender"`
	AverageAge      float64        `json:"averageAge"`
	AgeDistribution map[string]int `json:"ageDistribution"`
}

// Aggregate recomputes statistics from scratch over the given records.
// AverageAge is rounded to one decimal and is 0 for an empty store.
// The last age bucket is an else-fallthrough: any age outside the three
// explicit ranges lands in "51+". Inputs are assumed validated to >= 18,
// so in practice only 51+ ages reach it, but the fallthrough is kept as
// downstream consumers may rely on it.
func Aggregate(subs []model.Submission) *Stats {
	stats := &Stats{
		Total:     len(subs),
		ByCountry: make(map[string]int),
		ByGender:  make(map[string]int),
		AgeDistribution: map[string]int{
			bucket18to25: 0,
			bucket26to35: 0,
			bucket36to50: 0,
			bucket51Plus: 0,
		},
	}

	totalAge := 0
	for _, sub := range subs {
		stats.ByCountry[sub.Country]++
		stats.ByGender[sub.Gender]++
		totalAge += sub.Age

		switch {
		case sub.Age >= 18 && sub.Age <= 25:
			stats.AgeDistribution[bucket18to25]++
		case sub.Age >= 26 && sub.Age <= 35:
			stats.AgeDistribution[bucket26to35]++
		case sub.Age >= 36 && sub.Age <= 50:
			stats.AgeDistribution[bucket36to50]++
		default:
			stats.AgeDistribution[bucket51Plus]++
		}
	}

	if len(subs) > 0 {
		stats.AverageAge = math.Round(float64(totalAge)/float64(len(subs))*10) / 10
	}

	return stats
}
