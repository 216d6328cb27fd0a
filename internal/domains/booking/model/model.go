package model

import (
	"time"

	"mehfil/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                  = "id"
	FieldExperienceID        = "experience_id"
	FieldFirstName           = "first_name"
	FieldLastName            = "last_name"
	FieldGender              = "gender"
	FieldPhone               = "phone"
	FieldEmail               = "email"
	FieldAge                 = "age"
	FieldSourceOfInformation = "source_of_information"
	FieldWhatsappOptIn       = "whatsapp_opt_in"
	FieldPaymentConfirmed    = "payment_confirmed"
	FieldBookingDate         = "booking_date"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"

	SourceInstagram     = "Instagram"
	SourceWhatsApp      = "WhatsApp"
	SourceFriendsFamily = "Friends/Family"
	SourcePosters       = "Posters"
	SourceOther         = "Other"
)

type Booking struct {
	ID                  string    `db:"id"`
	ExperienceID        string    `db:"experience_id"`
	FirstName           string    `db:"first_name"`
	LastName            string    `db:"last_name"`
	Gender              string    `db:"gender"`
	Phone               string    `db:"phone"`
	Email               string    `db:"email"`
	Age                 int       `db:"age"`
	SourceOfInformation string    `db:"source_of_information"`
	WhatsappOptIn       bool      `db:"whatsapp_opt_in"`
	PaymentConfirmed    bool      `db:"payment_confirmed"`
	BookingDate         time.Time `db:"booking_date"`
	model.Metadata
}
