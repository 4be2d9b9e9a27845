package bulletin_test

import (
	"errors"
	"testing"
	"time"

	"github.com/crpaedu/backstage/core/bulletin"
	inmemdb "github.com/crpaedu/backstage/storage/database/inmem"
)

func setup(t *testing.T) *bulletin.Service {
	t.Helper()
	return bulletin.NewService(inmemdb.NewBulletinRepository(inmemdb.Open()))
}

func TestService_PublishAnnouncement_defaults(t *testing.T) {
	svc := setup(t)

	a, err := svc.PublishAnnouncement(bulletin.NewAnnouncement{Title: "Recital", Content: "Saturday 7pm"})
	if err != nil {
		t.Fatalf("PublishAnnouncement() failed: %v", err)
	}
	if a.Audience != bulletin.AudienceAll {
		t.Errorf("Audience = %q, want %q", a.Audience, bulletin.AudienceAll)
	}
	if a.Date != time.Now().UTC().Format("2006-01-02") {
		t.Errorf("Date = %q, want today", a.Date)
	}
}

func TestService_QueryAnnouncements_audience(t *testing.T) {
	svc := setup(t)

	publish := func(title, audience string) {
		if _, err := svc.PublishAnnouncement(bulletin.NewAnnouncement{
			Title: title, Content: "c", Audience: audience,
		}); err != nil {
			t.Fatalf("PublishAnnouncement(%s) failed: %v", title, err)
		}
	}
	publish("everyone", bulletin.AudienceAll)
	publish("students only", bulletin.AudienceStudents)
	publish("teachers only", bulletin.AudienceTeachers)

	tests := []struct {
		name     string
		audience string
		want     int
	}{
		{name: "admin sees all", audience: "", want: 3},
		{name: "students", audience: bulletin.AudienceStudents, want: 2},
		{name: "teachers", audience: bulletin.AudienceTeachers, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.QueryAnnouncements(tt.audience)
			if err != nil {
				t.Fatalf("QueryAnnouncements() failed: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d announcements, want %d", len(got), tt.want)
			}
		})
	}
}

func TestService_Shows(t *testing.T) {
	svc := setup(t)

	s, err := svc.CreateShow(bulletin.NewShow{Title: "A Midsummer Night's Dream", Date: "2026-12-05", Location: "Main Hall"})
	if err != nil {
		t.Fatalf("CreateShow() failed: %v", err)
	}

	s, err = svc.UpdateShow(s, bulletin.UpdateShow{Location: "Amphitheatre"})
	if err != nil {
		t.Fatalf("UpdateShow() failed: %v", err)
	}
	if s.Location != "Amphitheatre" || s.Title != "A Midsummer Night's Dream" {
		t.Errorf("show = %+v", s)
	}

	if err = svc.DeleteShows(s.ID); err != nil {
		t.Fatalf("DeleteShows() failed: %v", err)
	}
	if _, err = svc.GetShowByID(s.ID); !errors.Is(err, bulletin.ErrShowNotFound) {
		t.Errorf("GetShowByID() after delete = %v, want %v", err, bulletin.ErrShowNotFound)
	}
}
