package dto

import (
	"github.com/google/uuid"

	"mehfil/internal/domains/booking/model"
	"mehfil/shared"
	gDto "mehfil/shared/dto"
	gModel "mehfil/shared/model"
	"mehfil/shared/timezone"
)

type CreateBookingRequest struct {
	ExperienceID        string `json:"experience_id"         validate:"required,uuid4"`
	FirstName           string `json:"first_name"            validate:"required,max=100"`
	LastName            string `json:"last_name"             validate:"required,max=100"`
	Gender              string `json:"gender"                validate:"required,oneof=Male Female Other"`
	Phone               string `json:"phone"                 validate:"required,max=20"`
	Email               string `json:"email"                 validate:"required,email,max=100"`
	Age                 int    `json:"age"                   validate:"required,min=1,max=120"`
	SourceOfInformation string `json:"source_of_information" validate:"required,oneof=Instagram WhatsApp Friends/Family Posters Other"`
	WhatsappOptIn       bool   `json:"whatsapp_opt_in"`
	PaymentConfirmed    bool   `json:"payment_confirmed"`
}

func (c *CreateBookingRequest) ToModel(user string) model.Booking {
	return model.Booking{
		ID:                  uuid.NewString(),
		ExperienceID:        c.ExperienceID,
		FirstName:           c.FirstName,
		LastName:            c.LastName,
		Gender:              c.Gender,
		Phone:               c.Phone,
		Email:               c.Email,
		Age:                 c.Age,
		SourceOfInformation: c.SourceOfInformation,
		WhatsappOptIn:       c.WhatsappOptIn,
		PaymentConfirmed:    c.PaymentConfirmed,
		BookingDate:         timezone.Now(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type BookingResponse struct {
	ID                  string `json:"id"`
	ExperienceID        string `json:"experience_id"`
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
	Gender              string `json:"gender"`
	Phone               string `json:"phone"`
	Email               string `json:"email"`
	Age                 int    `json:"age"`
	SourceOfInformation string `json:"source_of_information"`
	WhatsappOptIn       bool   `json:"whatsapp_opt_in"`
	PaymentConfirmed    bool   `json:"payment_confirmed"`
	BookingDate         string `json:"booking_date"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.ExperienceID = model.ExperienceID
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.Gender = model.Gender
	r.Phone = model.Phone
	r.Email = model.Email
	r.Age = model.Age
	r.SourceOfInformation = model.SourceOfInformation
	r.WhatsappOptIn = model.WhatsappOptIn
	r.PaymentConfirmed = model.PaymentConfirmed
	r.BookingDate = model.BookingDate.Format("2006-01-02 15:04")
	r.Metadata.FromModel(model.Metadata)
}

type CreateBookingResponse struct {
	Booking BookingResponse `json:"booking"`
	Message string          `json:"message"`
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, m := range models {
		r.Bookings[i].FromModel(m)
	}
}
