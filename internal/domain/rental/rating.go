package rental

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// RatingSummary is the read-time aggregate over a listing's reviews.
type RatingSummary struct {
	Average decimal.Decimal
	Count   int
}

// SummarizeRatings averages ratings to two decimals. The mean is taken in
// float64 and rounded from its exact binary value with ties to even, so
// 4.125 becomes 4.12 and 801/200 becomes 4.0. An empty input averages to
// exactly zero.
func SummarizeRatings(ratings []int) RatingSummary {
	if len(ratings) == 0 {
		return RatingSummary{Average: decimal.Zero}
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	avg := decimal.RequireFromString(strconv.FormatFloat(mean, 'f', 2, 64))
	return RatingSummary{Average: avg, Count: len(ratings)}
}

// AverageFloat is the JSON form of the average.
func (s RatingSummary) AverageFloat() float64 {
	return s.Average.InexactFloat64()
}
