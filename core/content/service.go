package content

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/littleheartschool/backend/core"
)

var ErrNotFound = errors.New("content item not found")

type (
	// AssetHost is the third-party image host collaborator. Uploads happen
	// outside this core; records arrive holding the returned URL and public
	// id, and deletion by that id is the only call made from here.
	AssetHost interface {
		DeleteAsset(ctx context.Context, publicID string) error
	}

	Repository interface {
		CreateSliderImage(ctx context.Context, img SliderImage) (SliderImage, error)
		QuerySliderImages(ctx context.Context) ([]SliderImage, error) // ordered by position
		GetSliderImageByID(ctx context.Context, id string) (SliderImage, error)
		DeleteSliderImage(ctx context.Context, id string) error

		CreateGalleryPhoto(ctx context.Context, photo GalleryPhoto) (GalleryPhoto, error)
		QueryGalleryPhotos(ctx context.Context, category string) ([]GalleryPhoto, error)
		GetGalleryPhotoByID(ctx context.Context, id string) (GalleryPhoto, error)
		DeleteGalleryPhoto(ctx context.Context, id string) error

		CreateFacultyMember(ctx context.Context, m FacultyMember) (FacultyMember, error)
		QueryFacultyMembers(ctx context.Context) ([]FacultyMember, error)
		GetFacultyMemberByID(ctx context.Context, id string) (FacultyMember, error)
		UpdateFacultyMember(ctx context.Context, m FacultyMember) (FacultyMember, error)
		DeleteFacultyMember(ctx context.Context, id string) error
	}

	Service struct {
		repo   Repository
		assets AssetHost
		log    core.Logger
		notify core.Notifier
	}
)

func NewService(repo Repository, assets AssetHost, log core.Logger, notify core.Notifier) *Service {
	return &Service{repo: repo, assets: assets, log: log, notify: notify}
}

// deleteAsset is best effort: a dangling asset costs storage, a blocked
// delete costs the editor their flow.
func (svc *Service) deleteAsset(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	if err := svc.assets.DeleteAsset(ctx, publicID); err != nil {
		svc.log.Warn("asset delete failed", map[string]interface{}{"public_id": publicID, "err": err.Error()})
	}
}

// Slider

func (svc *Service) AddSliderImage(ctx context.Context, ns NewSliderImage) (SliderImage, error) {
	if err := ns.Validate(); err != nil {
		return SliderImage{}, err
	}
	img := SliderImage{
		Title:     ns.Title,
		URL:       ns.URL,
		AssetID:   ns.AssetID,
		Position:  ns.Position,
		CreatedAt: time.Now().UTC(),
	}
	img, err := svc.repo.CreateSliderImage(ctx, img)
	if err != nil {
		return SliderImage{}, err
	}
	svc.notify.Success("Slider image added")
	return img, nil
}

func (svc *Service) ListSliderImages(ctx context.Context) ([]SliderImage, error) {
	return svc.repo.QuerySliderImages(ctx)
}

func (svc *Service) DeleteSliderImage(ctx context.Context, id string) error {
	img, err := svc.repo.GetSliderImageByID(ctx, id)
	if err != nil {
		return err
	}
	if err = svc.repo.DeleteSliderImage(ctx, id); err != nil {
		return err
	}
	svc.deleteAsset(ctx, img.AssetID)
	svc.notify.Success("Slider image removed")
	return nil
}

// Gallery

func (svc *Service) AddGalleryPhoto(ctx context.Context, ng NewGalleryPhoto) (GalleryPhoto, error) {
	if err := ng.Validate(); err != nil {
		return GalleryPhoto{}, err
	}
	photo := GalleryPhoto{
		Title:     ng.Title,
		Category:  ng.Category,
		URL:       ng.URL,
		AssetID:   ng.AssetID,
		CreatedAt: time.Now().UTC(),
	}
	photo, err := svc.repo.CreateGalleryPhoto(ctx, photo)
	if err != nil {
		return GalleryPhoto{}, err
	}
	svc.notify.Success("Photo added to gallery")
	return photo, nil
}

// ListGalleryPhotos returns all photos, or only the given category when set
// ("All" and "" both mean everything).
func (svc *Service) ListGalleryPhotos(ctx context.Context, category string) ([]GalleryPhoto, error) {
	category = core.CleanString(category)
	if category == "All" {
		category = ""
	}
	return svc.repo.QueryGalleryPhotos(ctx, category)
}

func (svc *Service) DeleteGalleryPhoto(ctx context.Context, id string) error {
	photo, err := svc.repo.GetGalleryPhotoByID(ctx, id)
	if err != nil {
		return err
	}
	if err = svc.repo.DeleteGalleryPhoto(ctx, id); err != nil {
		return err
	}
	svc.deleteAsset(ctx, photo.AssetID)
	svc.notify.Success("Photo removed from gallery")
	return nil
}

// Faculty

func (svc *Service) AddFacultyMember(ctx context.Context, nf NewFacultyMember) (FacultyMember, error) {
	if err := nf.Validate(); err != nil {
		return FacultyMember{}, err
	}
	m := FacultyMember{
		Name:          nf.Name,
		Designation:   nf.Designation,
		Subject:       nf.Subject,
		Qualification: nf.Qualification,
		Experience:    nf.Experience,
		PhotoURL:      nf.PhotoURL,
		PhotoAssetID:  nf.PhotoAssetID,
		CreatedAt:     time.Now().UTC(),
	}
	m, err := svc.repo.CreateFacultyMember(ctx, m)
	if err != nil {
		return FacultyMember{}, err
	}
	svc.notify.Success("Faculty member added")
	return m, nil
}

func (svc *Service) ListFacultyMembers(ctx context.Context) ([]FacultyMember, error) {
	return svc.repo.QueryFacultyMembers(ctx)
}

func (svc *Service) UpdateFacultyMember(ctx context.Context, id string, uf UpdateFacultyMember) (FacultyMember, error) {
	if err := uf.Validate(); err != nil {
		return FacultyMember{}, err
	}
	m, err := svc.repo.GetFacultyMemberByID(ctx, id)
	if err != nil {
		return FacultyMember{}, err
	}
	oldAsset := m.PhotoAssetID
	m = uf.Apply(m)
	m, err = svc.repo.UpdateFacultyMember(ctx, m)
	if err != nil {
		return FacultyMember{}, err
	}
	if uf.PhotoAssetID != "" && oldAsset != "" && oldAsset != uf.PhotoAssetID {
		svc.deleteAsset(ctx, oldAsset)
	}
	svc.notify.Success("Faculty member updated")
	return m, nil
}

func (svc *Service) DeleteFacultyMember(ctx context.Context, id string) error {
	m, err := svc.repo.GetFacultyMemberByID(ctx, id)
	if err != nil {
		return err
	}
	if err = svc.repo.DeleteFacultyMember(ctx, id); err != nil {
		return err
	}
	svc.deleteAsset(ctx, m.PhotoAssetID)
	svc.notify.Success("Faculty member removed")
	return nil
}
