package bulletin

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/crpaedu/backstage/core"
)

// Announcement audiences
const (
	AudienceAll      = "ALL"
	AudienceStudents = "STUDENT"
	AudienceTeachers = "TEACHER"
)

type (
	// Announcement is a dated notice targeted at an audience.
	Announcement struct {
		ID        string    `json:"id"`
		Title     string    `json:"title"`
		Content   string    `json:"content"`
		Date      string    `json:"date"` // YYYY-MM-DD
		Audience  string    `json:"audience"`
		Author    string    `json:"author"`
		ImageURL  string    `json:"image_url,omitempty"`
		CreatedAt time.Time `json:"created_at"` // UTC
		UpdatedAt time.Time `json:"updated_at"` // UTC
	}

	// Show is an upcoming production; Description may carry rich text.
	Show struct {
		ID          string    `json:"id"`
		Title       string    `json:"title"`
		Date        string    `json:"date"` // YYYY-MM-DD
		Description string    `json:"description"`
		Location    string    `json:"location"`
		ImageURL    string    `json:"image_url,omitempty"` // poster
		CreatedAt   time.Time `json:"created_at"`          // UTC
		UpdatedAt   time.Time `json:"updated_at"`          // UTC
	}
)

// VisibleTo reports whether the announcement targets the given audience.
func (a *Announcement) VisibleTo(audience string) bool {
	return a.Audience == AudienceAll || a.Audience == audience
}

// NewAnnouncement contains information needed to publish an announcement.
type NewAnnouncement struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Date     string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Audience string `json:"audience" validate:"omitempty,oneof=ALL STUDENT TEACHER"`
	Author   string `json:"author"`
	ImageURL string `json:"image_url"`
}

func (na *NewAnnouncement) Validate(validate *validator.Validate, translator ut.Translator) error {
	na.Title = core.CleanString(na.Title)
	na.Author = core.CleanString(na.Author)
	return validate.Struct(na)
}

// UpdateAnnouncement defines what may change on an existing announcement.
type UpdateAnnouncement struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Date     string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Audience string  `json:"audience" validate:"omitempty,oneof=ALL STUDENT TEACHER"`
	ImageURL *string `json:"image_url"`
}

func (ua *UpdateAnnouncement) Validate(validate *validator.Validate, translator ut.Translator) error {
	ua.Title = core.CleanString(ua.Title)
	return validate.Struct(ua)
}

// NewShow contains information needed to announce a show.
type NewShow struct {
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Description string `json:"description"`
	Location    string `json:"location"`
	ImageURL    string `json:"image_url"`
}

func (ns *NewShow) Validate(validate *validator.Validate, translator ut.Translator) error {
	ns.Title = core.CleanString(ns.Title)
	ns.Location = core.CleanString(ns.Location)
	return validate.Struct(ns)
}

// UpdateShow defines what may change on an existing show.
type UpdateShow struct {
	Title       string  `json:"title"`
	Date        string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	ImageURL    *string `json:"image_url"`
}

func (us *UpdateShow) Validate(validate *validator.Validate, translator ut.Translator) error {
	us.Title = core.CleanString(us.Title)
	us.Location = core.CleanString(us.Location)
	return validate.Struct(us)
}
