package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/littleheartschool/backend/core/content"
)

type contentRepository struct {
	db *contentTable
}

var _ content.Repository = (*contentRepository)(nil)

func NewContentRepository(db *DB) *contentRepository {
	return &contentRepository{db: db.contents}
}

// Slider

func (repo *contentRepository) CreateSliderImage(_ context.Context, img content.SliderImage) (content.SliderImage, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	img.ID = uuid.New().String()
	repo.db.slider[img.ID] = &img
	return img, nil
}

func (repo *contentRepository) QuerySliderImages(_ context.Context) ([]content.SliderImage, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	imgs := make([]content.SliderImage, 0, len(repo.db.slider))
	for _, img := range repo.db.slider {
		imgs = append(imgs, *img)
	}
	sort.Slice(imgs, func(i, j int) bool {
		if imgs[i].Position != imgs[j].Position {
			return imgs[i].Position < imgs[j].Position
		}
		return imgs[i].CreatedAt.Before(imgs[j].CreatedAt)
	})
	return imgs, nil
}

func (repo *contentRepository) GetSliderImageByID(_ context.Context, id string) (content.SliderImage, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if img, ok := repo.db.slider[id]; ok {
		return *img, nil
	}
	return content.SliderImage{}, content.ErrNotFound
}

func (repo *contentRepository) DeleteSliderImage(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.slider[id]; !ok {
		return content.ErrNotFound
	}
	delete(repo.db.slider, id)
	return nil
}

// Gallery

func (repo *contentRepository) CreateGalleryPhoto(_ context.Context, photo content.GalleryPhoto) (content.GalleryPhoto, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	photo.ID = uuid.New().String()
	repo.db.gallery[photo.ID] = &photo
	return photo, nil
}

func (repo *contentRepository) QueryGalleryPhotos(_ context.Context, category string) ([]content.GalleryPhoto, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	photos := make([]content.GalleryPhoto, 0, len(repo.db.gallery))
	for _, photo := range repo.db.gallery {
		if category == "" || photo.Category == category {
			photos = append(photos, *photo)
		}
	}
	sort.Slice(photos, func(i, j int) bool { return photos[i].CreatedAt.After(photos[j].CreatedAt) })
	return photos, nil
}

func (repo *contentRepository) GetGalleryPhotoByID(_ context.Context, id string) (content.GalleryPhoto, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if photo, ok := repo.db.gallery[id]; ok {
		return *photo, nil
	}
	return content.GalleryPhoto{}, content.ErrNotFound
}

func (repo *contentRepository) DeleteGalleryPhoto(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.gallery[id]; !ok {
		return content.ErrNotFound
	}
	delete(repo.db.gallery, id)
	return nil
}

// Faculty

func (repo *contentRepository) CreateFacultyMember(_ context.Context, m content.FacultyMember) (content.FacultyMember, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	m.ID = uuid.New().String()
	repo.db.faculty[m.ID] = &m
	return m, nil
}

func (repo *contentRepository) QueryFacultyMembers(_ context.Context) ([]content.FacultyMember, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	members := make([]content.FacultyMember, 0, len(repo.db.faculty))
	for _, m := range repo.db.faculty {
		members = append(members, *m)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })
	return members, nil
}

func (repo *contentRepository) GetFacultyMemberByID(_ context.Context, id string) (content.FacultyMember, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if m, ok := repo.db.faculty[id]; ok {
		return *m, nil
	}
	return content.FacultyMember{}, content.ErrNotFound
}

func (repo *contentRepository) UpdateFacultyMember(_ context.Context, m content.FacultyMember) (content.FacultyMember, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.faculty[m.ID]; !ok {
		return content.FacultyMember{}, content.ErrNotFound
	}
	repo.db.faculty[m.ID] = &m
	return m, nil
}

func (repo *contentRepository) DeleteFacultyMember(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.faculty[id]; !ok {
		return content.ErrNotFound
	}
	delete(repo.db.faculty, id)
	return nil
}
