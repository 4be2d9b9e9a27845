package bulletin

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// errors
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrShowNotFound         = errors.New("show not found")
)

type (
	Repository interface {
		CreateAnnouncement(a Announcement) (Announcement, error)
		QueryAllAnnouncements() ([]Announcement, error)
		GetAnnouncementByID(id string) (Announcement, error)
		UpdateAnnouncement(a Announcement) (Announcement, error)
		DeleteAnnouncementsByID(ids ...string) error

		CreateShow(s Show) (Show, error)
		QueryAllShows() ([]Show, error)
		GetShowByID(id string) (Show, error)
		UpdateShow(s Show) (Show, error)
		DeleteShowsByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) PublishAnnouncement(na NewAnnouncement) (Announcement, error) {
	now := time.Now().UTC()
	audience := na.Audience
	if audience == "" {
		audience = AudienceAll
	}
	date := na.Date
	if date == "" {
		date = now.Format("2006-01-02")
	}
	a := Announcement{
		ID:        uuid.NewString(),
		Title:     na.Title,
		Content:   na.Content,
		Date:      date,
		Audience:  audience,
		Author:    na.Author,
		ImageURL:  na.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateAnnouncement(a)
}

// QueryAnnouncements returns announcements visible to the given audience;
// an empty audience means everything (the admin view).
func (svc *Service) QueryAnnouncements(audience string) ([]Announcement, error) {
	all, err := svc.repo.QueryAllAnnouncements()
	if err != nil {
		return nil, err
	}
	if audience == "" {
		return all, nil
	}
	visible := make([]Announcement, 0, len(all))
	for _, a := range all {
		if a.VisibleTo(audience) {
			visible = append(visible, a)
		}
	}
	return visible, nil
}

func (svc *Service) GetAnnouncementByID(id string) (Announcement, error) {
	return svc.repo.GetAnnouncementByID(id)
}

func (svc *Service) UpdateAnnouncement(orig Announcement, ua UpdateAnnouncement) (Announcement, error) {
	a := orig
	if ua.Title != "" {
		a.Title = ua.Title
	}
	if ua.Content != "" {
		a.Content = ua.Content
	}
	if ua.Date != "" {
		a.Date = ua.Date
	}
	if ua.Audience != "" {
		a.Audience = ua.Audience
	}
	if ua.ImageURL != nil {
		a.ImageURL = *ua.ImageURL
	}
	a.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateAnnouncement(a)
}

func (svc *Service) DeleteAnnouncements(ids ...string) error {
	return svc.repo.DeleteAnnouncementsByID(ids...)
}

func (svc *Service) CreateShow(ns NewShow) (Show, error) {
	now := time.Now().UTC()
	s := Show{
		ID:          uuid.NewString(),
		Title:       ns.Title,
		Date:        ns.Date,
		Description: ns.Description,
		Location:    ns.Location,
		ImageURL:    ns.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateShow(s)
}

func (svc *Service) QueryShows() ([]Show, error) {
	return svc.repo.QueryAllShows()
}

func (svc *Service) GetShowByID(id string) (Show, error) {
	return svc.repo.GetShowByID(id)
}

func (svc *Service) UpdateShow(orig Show, us UpdateShow) (Show, error) {
	s := orig
	if us.Title != "" {
		s.Title = us.Title
	}
	if us.Date != "" {
		s.Date = us.Date
	}
	if us.Description != "" {
		s.Description = us.Description
	}
	if us.Location != "" {
		s.Location = us.Location
	}
	if us.ImageURL != nil {
		s.ImageURL = *us.ImageURL
	}
	s.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateShow(s)
}

func (svc *Service) DeleteShows(ids ...string) error {
	return svc.repo.DeleteShowsByID(ids...)
}
