package domain

import (
	"math"
	"time"
)

// Rating is a 1..5 score a student gives a tutor for a completed,
// paid reservation. At most one rating per reservation.
type Rating struct {
	ID            int64
	ReservationID int64
	RaterID       int64
	RatedID       int64
	Score         int
	Comment       *string
	CreatedAt     time.Time
}

// MinScore and MaxScore bound the allowed rating score
const (
	MinScore = 1
	MaxScore = 5
)

// ValidScore reports whether score lies in [MinScore, MaxScore]
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}

// RatingAggregate is the recomputed rating summary of a tutor
type RatingAggregate struct {
	Average     float64
	ReviewCount int
}

// AggregateScores computes the full-recomputation aggregate over scores,
// with the average rounded to 2 decimals. Empty input yields a zero aggregate.
func AggregateScores(scores []int) RatingAggregate {
	if len(scores) == 0 {
		return RatingAggregate{}
	}

	total := 0
	for _, s := range scores {
		total += s
	}
	avg := float64(total) / float64(len(scores))

	return RatingAggregate{
		Average:     math.Round(avg*100) / 100,
		ReviewCount: len(scores),
	}
}
