package aggregator

import (
	"math"

	"clinic-stats/internal/domain/entity"
)

// AggregateRatings computes the mean rating (one decimal, 0 without reviews)
// and a 1..5 histogram. Ratings outside the scale are dropped from both.
func AggregateRatings(rows []entity.ReviewRow) entity.RatingStats {
	var counts [entity.MaxRating]int
	sum, valid, dropped := 0, 0, 0

	for _, row := range rows {
		if !row.HasValidRating() {
			dropped++
			continue
		}
		counts[row.Rating-entity.MinRating]++
		sum += row.Rating
		valid++
	}

	stats := entity.RatingStats{
		TotalReviews: valid,
		Histogram:    make([]entity.RatingBucket, 0, entity.MaxRating),
		Dropped:      dropped,
	}
	if valid > 0 {
		stats.Average = roundOneDecimal(float64(sum) / float64(valid))
	}
	for i, count := range counts {
		stats.Histogram = append(stats.Histogram, entity.RatingBucket{Rating: i + entity.MinRating, Count: count})
	}
	return stats
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
