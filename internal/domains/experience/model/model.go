package model

import (
	"time"

	"mehfil/shared/model"
)

const (
	TableName  = "experiences"
	EntityName = "experience"

	FieldID                  = "id"
	FieldName                = "name"
	FieldShortDescription    = "short_description"
	FieldLongDescription     = "long_description"
	FieldDate                = "date"
	FieldDay                 = "day"
	FieldTime                = "time"
	FieldRegistrationFee     = "registration_fee"
	FieldArtistName          = "artist_name"
	FieldArtistInstagram     = "artist_instagram"
	FieldArtistLink          = "artist_link"
	FieldArtistBio           = "artist_bio"
	FieldImageURL            = "image_url"
	FieldVideoURL            = "video_url"
	FieldNumberOfSeats       = "number_of_seats"
	FieldRegistrationFormURL = "registration_form_url"
	FieldIsActive            = "is_active"
)

type Experience struct {
	ID                  string    `db:"id"`
	Name                string    `db:"name"`
	ShortDescription    string    `db:"short_description"`
	LongDescription     string    `db:"long_description"`
	Date                time.Time `db:"date"`
	Day                 string    `db:"day"`
	Time                string    `db:"time"`
	RegistrationFee     float64   `db:"registration_fee"`
	ArtistName          string    `db:"artist_name"`
	ArtistInstagram     string    `db:"artist_instagram"`
	ArtistLink          string    `db:"artist_link"`
	ArtistBio           string    `db:"artist_bio"`
	ImageURL            string    `db:"image_url"`
	VideoURL            string    `db:"video_url"`
	NumberOfSeats       int       `db:"number_of_seats"`
	RegistrationFormURL string    `db:"registration_form_url"`
	IsActive            bool      `db:"is_active"`
	model.Metadata
}
