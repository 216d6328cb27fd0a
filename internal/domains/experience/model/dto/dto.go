package dto

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"mehfil/internal/domains/experience/model"
	"mehfil/shared"
	"mehfil/shared/constant"
	gDto "mehfil/shared/dto"
	"mehfil/shared/failure"
	gModel "mehfil/shared/model"
	"mehfil/shared/timezone"
)

const dateLayout = "2006-01-02"

type CreateExperienceRequest struct {
	Name                string  `json:"name"                  validate:"required,max=150"`
	ShortDescription    string  `json:"short_description"     validate:"required,max=300"`
	LongDescription     string  `json:"long_description"      validate:"omitempty"`
	Date                string  `json:"date"                  validate:"required"`
	Time                string  `json:"time"                  validate:"required,max=50"`
	RegistrationFee     float64 `json:"registration_fee"      validate:"gte=0"`
	ArtistName          string  `json:"artist_name"           validate:"required,max=100"`
	ArtistInstagram     string  `json:"artist_instagram"      validate:"omitempty,max=100"`
	ArtistLink          string  `json:"artist_link"           validate:"omitempty,url"`
	ArtistBio           string  `json:"artist_bio"            validate:"omitempty"`
	ImageURL            string  `json:"image_url"             validate:"omitempty,url"`
	VideoURL            string  `json:"video_url"             validate:"omitempty,url"`
	NumberOfSeats       int     `json:"number_of_seats"       validate:"required,min=1"`
	RegistrationFormURL string  `json:"registration_form_url" validate:"omitempty,url"`
	IsActive            string  `json:"is_active"             validate:"omitempty"`

	Image     *multipart.FileHeader `json:"-" swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/gif,maxfilesize=5"`
	ImageFile multipart.File        `json:"-"`
}

// FromForm fills the request from a parsed multipart form. The image file,
// when present, is attached separately by the handler.
func (c *CreateExperienceRequest) FromForm(r *http.Request) error {
	c.Name = r.FormValue(model.FieldName)
	c.ShortDescription = r.FormValue(model.FieldShortDescription)
	c.LongDescription = r.FormValue(model.FieldLongDescription)
	c.Date = r.FormValue(model.FieldDate)
	c.Time = r.FormValue(model.FieldTime)
	c.ArtistName = r.FormValue(model.FieldArtistName)
	c.ArtistInstagram = r.FormValue(model.FieldArtistInstagram)
	c.ArtistLink = r.FormValue(model.FieldArtistLink)
	c.ArtistBio = r.FormValue(model.FieldArtistBio)
	c.ImageURL = r.FormValue(model.FieldImageURL)
	c.VideoURL = r.FormValue(model.FieldVideoURL)
	c.RegistrationFormURL = r.FormValue(model.FieldRegistrationFormURL)
	c.IsActive = r.FormValue(model.FieldIsActive)

	if fee := r.FormValue(model.FieldRegistrationFee); fee != constant.Empty {
		parsed, err := strconv.ParseFloat(fee, 64)
		if err != nil {
			return failure.BadRequestFromString("registration_fee must be a number") //nolint:wrapcheck
		}

		c.RegistrationFee = parsed
	}

	if seats := r.FormValue(model.FieldNumberOfSeats); seats != constant.Empty {
		parsed, err := strconv.Atoi(seats)
		if err != nil {
			return failure.BadRequestFromString("number_of_seats must be an integer") //nolint:wrapcheck
		}

		c.NumberOfSeats = parsed
	}

	return nil
}

func (c *CreateExperienceRequest) ToModel(imageURL, user string) (model.Experience, error) {
	date, err := time.Parse(dateLayout, c.Date)
	if err != nil {
		return model.Experience{}, failure.BadRequestFromString("date must be in YYYY-MM-DD format") //nolint:wrapcheck
	}

	// Absent means active, anything that does not parse as true means inactive.
	isActive := true
	if c.IsActive != constant.Empty {
		parsed := shared.ConvertStringToBool(c.IsActive)
		isActive = parsed != nil && *parsed
	}

	return model.Experience{
		ID:                  uuid.NewString(),
		Name:                c.Name,
		ShortDescription:    c.ShortDescription,
		LongDescription:     c.LongDescription,
		Date:                date,
		Day:                 date.Weekday().String(),
		Time:                c.Time,
		RegistrationFee:     c.RegistrationFee,
		ArtistName:          c.ArtistName,
		ArtistInstagram:     c.ArtistInstagram,
		ArtistLink:          c.ArtistLink,
		ArtistBio:           c.ArtistBio,
		ImageURL:            imageURL,
		VideoURL:            c.VideoURL,
		NumberOfSeats:       c.NumberOfSeats,
		RegistrationFormURL: c.RegistrationFormURL,
		IsActive:            isActive,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateExperienceRequest struct {
	Name                string  `json:"name"                  validate:"required,max=150"`
	ShortDescription    string  `json:"short_description"     validate:"required,max=300"`
	LongDescription     string  `json:"long_description"      validate:"omitempty"`
	Date                string  `json:"date"                  validate:"required"`
	Time                string  `json:"time"                  validate:"required,max=50"`
	RegistrationFee     float64 `json:"registration_fee"      validate:"gte=0"`
	ArtistName          string  `json:"artist_name"           validate:"required,max=100"`
	ArtistInstagram     string  `json:"artist_instagram"      validate:"omitempty,max=100"`
	ArtistLink          string  `json:"artist_link"           validate:"omitempty,url"`
	ArtistBio           string  `json:"artist_bio"            validate:"omitempty"`
	ImageURL            string  `json:"image_url"             validate:"omitempty,url"`
	VideoURL            string  `json:"video_url"             validate:"omitempty,url"`
	NumberOfSeats       int     `json:"number_of_seats"       validate:"required,min=1"`
	RegistrationFormURL string  `json:"registration_form_url" validate:"omitempty,url"`
	IsActive            string  `json:"is_active"             validate:"omitempty"`

	Image     *multipart.FileHeader `json:"-" swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/gif,maxfilesize=5"`
	ImageFile multipart.File        `json:"-"`
}

func (u *UpdateExperienceRequest) FromForm(r *http.Request) error {
	u.Name = r.FormValue(model.FieldName)
	u.ShortDescription = r.FormValue(model.FieldShortDescription)
	u.LongDescription = r.FormValue(model.FieldLongDescription)
	u.Date = r.FormValue(model.FieldDate)
	u.Time = r.FormValue(model.FieldTime)
	u.ArtistName = r.FormValue(model.FieldArtistName)
	u.ArtistInstagram = r.FormValue(model.FieldArtistInstagram)
	u.ArtistLink = r.FormValue(model.FieldArtistLink)
	u.ArtistBio = r.FormValue(model.FieldArtistBio)
	u.ImageURL = r.FormValue(model.FieldImageURL)
	u.VideoURL = r.FormValue(model.FieldVideoURL)
	u.RegistrationFormURL = r.FormValue(model.FieldRegistrationFormURL)
	u.IsActive = r.FormValue(model.FieldIsActive)

	if fee := r.FormValue(model.FieldRegistrationFee); fee != constant.Empty {
		parsed, err := strconv.ParseFloat(fee, 64)
		if err != nil {
			return failure.BadRequestFromString("registration_fee must be a number") //nolint:wrapcheck
		}

		u.RegistrationFee = parsed
	}

	if seats := r.FormValue(model.FieldNumberOfSeats); seats != constant.Empty {
		parsed, err := strconv.Atoi(seats)
		if err != nil {
			return failure.BadRequestFromString("number_of_seats must be an integer") //nolint:wrapcheck
		}

		u.NumberOfSeats = parsed
	}

	return nil
}

// ToUpdateMap produces the full set of overwritten columns. Every field is
// replaced, the image reference keeps the existing value unless a new one
// was supplied.
func (u *UpdateExperienceRequest) ToUpdateMap(imageURL string, existing model.Experience, user string) (map[string]any, error) {
	date, err := time.Parse(dateLayout, u.Date)
	if err != nil {
		return nil, failure.BadRequestFromString("date must be in YYYY-MM-DD format") //nolint:wrapcheck
	}

	isActive := existing.IsActive
	if u.IsActive != constant.Empty {
		parsed := shared.ConvertStringToBool(u.IsActive)
		isActive = parsed != nil && *parsed
	}

	return map[string]any{
		model.FieldName:                u.Name,
		model.FieldShortDescription:    u.ShortDescription,
		model.FieldLongDescription:     u.LongDescription,
		model.FieldDate:                date,
		model.FieldDay:                 date.Weekday().String(),
		model.FieldTime:                u.Time,
		model.FieldRegistrationFee:     u.RegistrationFee,
		model.FieldArtistName:          u.ArtistName,
		model.FieldArtistInstagram:     u.ArtistInstagram,
		model.FieldArtistLink:          u.ArtistLink,
		model.FieldArtistBio:           u.ArtistBio,
		model.FieldImageURL:            imageURL,
		model.FieldVideoURL:            u.VideoURL,
		model.FieldNumberOfSeats:       u.NumberOfSeats,
		model.FieldRegistrationFormURL: u.RegistrationFormURL,
		model.FieldIsActive:            isActive,
		constant.FieldModifiedAt:       timezone.Now(),
		constant.FieldModifiedBy:       user,
	}, nil
}

type UpdateExperienceStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type ExperienceResponse struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	ShortDescription    string  `json:"short_description"`
	LongDescription     string  `json:"long_description"`
	Date                string  `json:"date"`
	Day                 string  `json:"day"`
	Time                string  `json:"time"`
	RegistrationFee     float64 `json:"registration_fee"`
	ArtistName          string  `json:"artist_name"`
	ArtistInstagram     string  `json:"artist_instagram"`
	ArtistLink          string  `json:"artist_link"`
	ArtistBio           string  `json:"artist_bio"`
	ImageURL            string  `json:"image_url"`
	VideoURL            string  `json:"video_url"`
	NumberOfSeats       int     `json:"number_of_seats"`
	RegistrationFormURL string  `json:"registration_form_url"`
	IsActive            bool    `json:"is_active"`
	gDto.Metadata
}

func (r *ExperienceResponse) FromModel(model model.Experience) {
	r.ID = model.ID
	r.Name = model.Name
	r.ShortDescription = model.ShortDescription
	r.LongDescription = model.LongDescription
	r.Date = model.Date.Format(dateLayout)
	r.Day = model.Day
	r.Time = model.Time
	r.RegistrationFee = model.RegistrationFee
	r.ArtistName = model.ArtistName
	r.ArtistInstagram = model.ArtistInstagram
	r.ArtistLink = model.ArtistLink
	r.ArtistBio = model.ArtistBio
	r.ImageURL = model.ImageURL
	r.VideoURL = model.VideoURL
	r.NumberOfSeats = model.NumberOfSeats
	r.RegistrationFormURL = model.RegistrationFormURL
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

type GetExperiencesResponse struct {
	Experiences []ExperienceResponse `json:"experiences"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetExperiencesResponse) FromModels(models []model.Experience, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Experiences = make([]ExperienceResponse, len(models))
	for i, m := range models {
		r.Experiences[i].FromModel(m)
	}
}
