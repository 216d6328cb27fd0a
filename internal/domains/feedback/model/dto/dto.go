package dto

import (
	"github.com/google/uuid"

	"mehfil/internal/domains/feedback/model"
	"mehfil/shared"
	gDto "mehfil/shared/dto"
	gModel "mehfil/shared/model"
	"mehfil/shared/timezone"
)

type CreateFeedbackRequest struct {
	ExperienceID   string   `json:"experience_id"   validate:"required,uuid4"`
	Name           string   `json:"name"            validate:"required,max=100"`
	Email          string   `json:"email"           validate:"omitempty,email,max=100"`
	OverallRating  string   `json:"overall_rating"  validate:"required,oneof=Excellent Good Average Poor"`
	EnjoyedMost    []string `json:"enjoyed_most"    validate:"omitempty,dive,max=50"`
	WouldRecommend bool     `json:"would_recommend"`
	Comments       string   `json:"comments"        validate:"omitempty,max=2000"`
}

func (c *CreateFeedbackRequest) ToModel(user string) model.Feedback {
	return model.Feedback{
		ID:             uuid.NewString(),
		ExperienceID:   c.ExperienceID,
		Name:           c.Name,
		Email:          c.Email,
		OverallRating:  c.OverallRating,
		EnjoyedMost:    c.EnjoyedMost,
		WouldRecommend: c.WouldRecommend,
		Comments:       c.Comments,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type FeedbackResponse struct {
	ID             string   `json:"id"`
	ExperienceID   string   `json:"experience_id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	OverallRating  string   `json:"overall_rating"`
	EnjoyedMost    []string `json:"enjoyed_most"`
	WouldRecommend bool     `json:"would_recommend"`
	Comments       string   `json:"comments"`
	gDto.Metadata
}

func (r *FeedbackResponse) FromModel(model model.Feedback) {
	r.ID = model.ID
	r.ExperienceID = model.ExperienceID
	r.Name = model.Name
	r.Email = model.Email
	r.OverallRating = model.OverallRating
	r.EnjoyedMost = model.EnjoyedMost
	r.WouldRecommend = model.WouldRecommend
	r.Comments = model.Comments
	r.Metadata.FromModel(model.Metadata)
}

type GetFeedbacksResponse struct {
	Feedbacks []FeedbackResponse `json:"feedbacks"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetFeedbacksResponse) FromModels(models []model.Feedback, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Feedbacks = make([]FeedbackResponse, len(models))
	for i, m := range models {
		r.Feedbacks[i].FromModel(m)
	}
}
