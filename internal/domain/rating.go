package domain

import "fmt"

// Rating is the user's self-assessment of a flashcard recall.
type Rating string

const (
	RatingPoor Rating = "poor"
	RatingOkay Rating = "okay"
	RatingGood Rating = "good"
)

// ParseRating converts callback data into a Rating.
func ParseRating(s string) (Rating, error) {
	switch Rating(s) {
	case RatingPoor, RatingOkay, RatingGood:
		return Rating(s), nil
	}
	return "", fmt.Errorf("unknown rating %q", s)
}

// Points returns the study points awarded for a rating.
func (r Rating) Points() int {
	switch r {
	case RatingGood:
		return 3
	case RatingOkay:
		return 1
	default:
		return 0
	}
}
