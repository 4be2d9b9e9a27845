package inmemdb

import (
	"github.com/crpaedu/backstage/core/bulletin"
)

type bulletinRepository struct {
	announcements *announcementTable
	shows         *showTable
}

var _ bulletin.Repository = (*bulletinRepository)(nil)

func NewBulletinRepository(db *DB) bulletin.Repository {
	return &bulletinRepository{announcements: db.announcements, shows: db.shows}
}

func (repo *bulletinRepository) CreateAnnouncement(a bulletin.Announcement) (bulletin.Announcement, error) {
	repo.announcements.mutex.Lock()
	defer repo.announcements.mutex.Unlock()

	repo.announcements.table[a.ID] = &a
	return a, nil
}

func (repo *bulletinRepository) QueryAllAnnouncements() ([]bulletin.Announcement, error) {
	repo.announcements.mutex.RLock()
	defer repo.announcements.mutex.RUnlock()

	announcements := make([]bulletin.Announcement, 0, len(repo.announcements.table))
	for _, a := range repo.announcements.table {
		announcements = append(announcements, *a)
	}
	return announcements, nil
}

func (repo *bulletinRepository) GetAnnouncementByID(id string) (bulletin.Announcement, error) {
	repo.announcements.mutex.RLock()
	defer repo.announcements.mutex.RUnlock()

	if a, ok := repo.announcements.table[id]; ok {
		return *a, nil
	}
	return bulletin.Announcement{}, bulletin.ErrAnnouncementNotFound
}

func (repo *bulletinRepository) UpdateAnnouncement(a bulletin.Announcement) (bulletin.Announcement, error) {
	repo.announcements.mutex.Lock()
	defer repo.announcements.mutex.Unlock()

	if _, ok := repo.announcements.table[a.ID]; !ok {
		return bulletin.Announcement{}, bulletin.ErrAnnouncementNotFound
	}
	repo.announcements.table[a.ID] = &a
	return a, nil
}

func (repo *bulletinRepository) DeleteAnnouncementsByID(ids ...string) error {
	repo.announcements.mutex.Lock()
	defer repo.announcements.mutex.Unlock()
	for _, id := range ids {
		delete(repo.announcements.table, id)
	}
	return nil
}

func (repo *bulletinRepository) CreateShow(s bulletin.Show) (bulletin.Show, error) {
	repo.shows.mutex.Lock()
	defer repo.shows.mutex.Unlock()

	repo.shows.table[s.ID] = &s
	return s, nil
}

func (repo *bulletinRepository) QueryAllShows() ([]bulletin.Show, error) {
	repo.shows.mutex.RLock()
	defer repo.shows.mutex.RUnlock()

	shows := make([]bulletin.Show, 0, len(repo.shows.table))
	for _, s := range repo.shows.table {
		shows = append(shows, *s)
	}
	return shows, nil
}

func (repo *bulletinRepository) GetShowByID(id string) (bulletin.Show, error) {
	repo.shows.mutex.RLock()
	defer repo.shows.mutex.RUnlock()

	if s, ok := repo.shows.table[id]; ok {
		return *s, nil
	}
	return bulletin.Show{}, bulletin.ErrShowNotFound
}

func (repo *bulletinRepository) UpdateShow(s bulletin.Show) (bulletin.Show, error) {
	repo.shows.mutex.Lock()
	defer repo.shows.mutex.Unlock()

	if _, ok := repo.shows.table[s.ID]; !ok {
		return bulletin.Show{}, bulletin.ErrShowNotFound
	}
	repo.shows.table[s.ID] = &s
	return s, nil
}

func (repo *bulletinRepository) DeleteShowsByID(ids ...string) error {
	repo.shows.mutex.Lock()
	defer repo.shows.mutex.Unlock()
	for _, id := range ids {
		delete(repo.shows.table, id)
	}
	return nil
}
