package model

import (
	"github.com/lib/pq"

	"mehfil/shared/model"
)

const (
	TableName  = "feedbacks"
	EntityName = "feedback"

	FieldID             = "id"
	FieldExperienceID   = "experience_id"
	FieldName           = "name"
	FieldEmail          = "email"
	FieldOverallRating  = "overall_rating"
	FieldEnjoyedMost    = "enjoyed_most"
	FieldWouldRecommend = "would_recommend"
	FieldComments       = "comments"
)

const (
	RatingExcellent = "Excellent"
	RatingGood      = "Good"
	RatingAverage   = "Average"
	RatingPoor      = "Poor"
)

type Feedback struct {
	ID             string         `db:"id"`
	ExperienceID   string         `db:"experience_id"`
	Name           string         `db:"name"`
	Email          string         `db:"email"`
	OverallRating  string         `db:"overall_rating"`
	EnjoyedMost    pq.StringArray `db:"enjoyed_most"`
	WouldRecommend bool           `db:"would_recommend"`
	Comments       string         `db:"comments"`
	model.Metadata
}
