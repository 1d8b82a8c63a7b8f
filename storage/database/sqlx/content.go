package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/littleheartschool/backend/core"
	"github.com/littleheartschool/backend/core/content"
)

type contentRepository struct {
	db *sqlx.DB
}

var _ content.Repository = (*contentRepository)(nil) // interface compliance check

func NewContentRepository(db *sqlx.DB) *contentRepository {
	return &contentRepository{db: db}
}

func trapContentErr(err error, op string) error {
	if err == sql.ErrNoRows {
		return content.ErrNotFound
	}
	return core.NewStoreUnavailableError(op, err)
}

func checkAffected(res sql.Result) error {
	if count, err := res.RowsAffected(); err == nil && count == 0 {
		return content.ErrNotFound
	}
	return nil
}

// Slider

func (repo *contentRepository) CreateSliderImage(ctx context.Context, img content.SliderImage) (content.SliderImage, error) {
	img.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO slider_image (id, title, url, asset_id, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		img.ID, img.Title, img.URL, img.AssetID, img.Position, img.CreatedAt.UTC())
	if err != nil {
		return content.SliderImage{}, trapContentErr(err, "inserting slider image")
	}
	return img, nil
}

func (repo *contentRepository) QuerySliderImages(ctx context.Context) ([]content.SliderImage, error) {
	imgs := make([]content.SliderImage, 0)
	err := repo.db.SelectContext(ctx, &imgs, `
		SELECT id, title, url, asset_id, position, created_at
		FROM slider_image ORDER BY position, created_at`)
	if err != nil {
		return nil, trapContentErr(err, "querying slider images")
	}
	return imgs, nil
}

func (repo *contentRepository) GetSliderImageByID(ctx context.Context, id string) (content.SliderImage, error) {
	if _, err := uuid.Parse(id); err != nil {
		return content.SliderImage{}, content.ErrNotFound
	}
	var img content.SliderImage
	err := repo.db.GetContext(ctx, &img, `
		SELECT id, title, url, asset_id, position, created_at
		FROM slider_image WHERE id = $1`, id)
	if err != nil {
		return content.SliderImage{}, trapContentErr(err, "getting slider image")
	}
	return img, nil
}

func (repo *contentRepository) DeleteSliderImage(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM slider_image WHERE id = $1`, id)
	if err != nil {
		return trapContentErr(err, "deleting slider image")
	}
	return checkAffected(res)
}

// Gallery

func (repo *contentRepository) CreateGalleryPhoto(ctx context.Context, photo content.GalleryPhoto) (content.GalleryPhoto, error) {
	photo.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO gallery_photo (id, title, category, url, asset_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		photo.ID, photo.Title, photo.Category, photo.URL, photo.AssetID, photo.CreatedAt.UTC())
	if err != nil {
		return content.GalleryPhoto{}, trapContentErr(err, "inserting gallery photo")
	}
	return photo, nil
}

func (repo *contentRepository) QueryGalleryPhotos(ctx context.Context, category string) ([]content.GalleryPhoto, error) {
	photos := make([]content.GalleryPhoto, 0)
	query := `SELECT id, title, category, url, asset_id, created_at FROM gallery_photo`
	var args []interface{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	err := repo.db.SelectContext(ctx, &photos, query+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, trapContentErr(err, "querying gallery photos")
	}
	return photos, nil
}

func (repo *contentRepository) GetGalleryPhotoByID(ctx context.Context, id string) (content.GalleryPhoto, error) {
	if _, err := uuid.Parse(id); err != nil {
		return content.GalleryPhoto{}, content.ErrNotFound
	}
	var photo content.GalleryPhoto
	err := repo.db.GetContext(ctx, &photo, `
		SELECT id, title, category, url, asset_id, created_at
		FROM gallery_photo WHERE id = $1`, id)
	if err != nil {
		return content.GalleryPhoto{}, trapContentErr(err, "getting gallery photo")
	}
	return photo, nil
}

func (repo *contentRepository) DeleteGalleryPhoto(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM gallery_photo WHERE id = $1`, id)
	if err != nil {
		return trapContentErr(err, "deleting gallery photo")
	}
	return checkAffected(res)
}

// Faculty

func (repo *contentRepository) CreateFacultyMember(ctx context.Context, m content.FacultyMember) (content.FacultyMember, error) {
	m.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO faculty_member (id, name, designation, subject, qualification, experience, photo_url, photo_asset_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.Name, m.Designation, m.Subject, m.Qualification, m.Experience, m.PhotoURL, m.PhotoAssetID, m.CreatedAt.UTC())
	if err != nil {
		return content.FacultyMember{}, trapContentErr(err, "inserting faculty member")
	}
	return m, nil
}

func (repo *contentRepository) QueryFacultyMembers(ctx context.Context) ([]content.FacultyMember, error) {
	members := make([]content.FacultyMember, 0)
	err := repo.db.SelectContext(ctx, &members, `
		SELECT id, name, designation, subject, qualification, experience, photo_url, photo_asset_id, created_at
		FROM faculty_member ORDER BY name`)
	if err != nil {
		return nil, trapContentErr(err, "querying faculty members")
	}
	return members, nil
}

func (repo *contentRepository) GetFacultyMemberByID(ctx context.Context, id string) (content.FacultyMember, error) {
	if _, err := uuid.Parse(id); err != nil {
		return content.FacultyMember{}, content.ErrNotFound
	}
	var m content.FacultyMember
	err := repo.db.GetContext(ctx, &m, `
		SELECT id, name, designation, subject, qualification, experience, photo_url, photo_asset_id, created_at
		FROM faculty_member WHERE id = $1`, id)
	if err != nil {
		return content.FacultyMember{}, trapContentErr(err, "getting faculty member")
	}
	return m, nil
}

func (repo *contentRepository) UpdateFacultyMember(ctx context.Context, m content.FacultyMember) (content.FacultyMember, error) {
	res, err := repo.db.ExecContext(ctx, `
		UPDATE faculty_member
		SET name = $2, designation = $3, subject = $4, qualification = $5,
		    experience = $6, photo_url = $7, photo_asset_id = $8
		WHERE id = $1`,
		m.ID, m.Name, m.Designation, m.Subject, m.Qualification, m.Experience, m.PhotoURL, m.PhotoAssetID)
	if err != nil {
		return content.FacultyMember{}, trapContentErr(err, "updating faculty member")
	}
	if err = checkAffected(res); err != nil {
		return content.FacultyMember{}, err
	}
	return m, nil
}

func (repo *contentRepository) DeleteFacultyMember(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM faculty_member WHERE id = $1`, id)
	if err != nil {
		return trapContentErr(err, "deleting faculty member")
	}
	return checkAffected(res)
}
