package content

import (
	"time"

	"github.com/littleheartschool/backend/core"
)

// SliderImage is one home-page slider slide. Position drives display order.
type SliderImage struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	URL       string    `json:"url" db:"url"`
	AssetID   string    `json:"asset_id" db:"asset_id"` // asset-host public id
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
}

// GalleryPhoto is a photo on the public gallery page.
type GalleryPhoto struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Category  string    `json:"category" db:"category"` // e.g. Events, Sports, Campus
	URL       string    `json:"url" db:"url"`
	AssetID   string    `json:"asset_id" db:"asset_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"` // UTC
}

// FacultyMember is a staff record shown on the faculty page.
type FacultyMember struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Designation   string    `json:"designation" db:"designation"`
	Subject       string    `json:"subject,omitempty" db:"subject"`
	Qualification string    `json:"qualification,omitempty" db:"qualification"`
	Experience    string    `json:"experience,omitempty" db:"experience"`
	PhotoURL      string    `json:"photo_url,omitempty" db:"photo_url"`
	PhotoAssetID  string    `json:"photo_asset_id,omitempty" db:"photo_asset_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"` // UTC
}

type NewSliderImage struct {
	Title    string `json:"title" validate:"omitempty"`
	URL      string `json:"url" validate:"required,url"`
	AssetID  string `json:"asset_id" validate:"required"`
	Position int    `json:"position" validate:"gte=0"`
}

func (ns *NewSliderImage) Validate() error {
	ns.Title = core.CleanString(ns.Title)
	return core.Validate.Struct(ns)
}

type NewGalleryPhoto struct {
	Title    string `json:"title" validate:"omitempty"`
	Category string `json:"category" validate:"required"`
	URL      string `json:"url" validate:"required,url"`
	AssetID  string `json:"asset_id" validate:"required"`
}

func (ng *NewGalleryPhoto) Validate() error {
	ng.Title = core.CleanString(ng.Title)
	ng.Category = core.CleanString(ng.Category)
	return core.Validate.Struct(ng)
}

type NewFacultyMember struct {
	Name          string `json:"name" validate:"required"`
	Designation   string `json:"designation" validate:"required"`
	Subject       string `json:"subject" validate:"omitempty"`
	Qualification string `json:"qualification" validate:"omitempty"`
	Experience    string `json:"experience" validate:"omitempty"`
	PhotoURL      string `json:"photo_url" validate:"omitempty,url"`
	PhotoAssetID  string `json:"photo_asset_id" validate:"required_with=PhotoURL"`
}

func (nf *NewFacultyMember) Validate() error {
	nf.Name = core.CleanString(nf.Name)
	nf.Designation = core.CleanString(nf.Designation)
	nf.Subject = core.CleanString(nf.Subject)
	return core.Validate.Struct(nf)
}

// UpdateFacultyMember is a partial update: empty fields keep their
// stored value.
type UpdateFacultyMember struct {
	Name          string `json:"name" validate:"omitempty"`
	Designation   string `json:"designation" validate:"omitempty"`
	Subject       string `json:"subject" validate:"omitempty"`
	Qualification string `json:"qualification" validate:"omitempty"`
	Experience    string `json:"experience" validate:"omitempty"`
	PhotoURL      string `json:"photo_url" validate:"omitempty,url"`
	PhotoAssetID  string `json:"photo_asset_id" validate:"omitempty"`
}

func (uf *UpdateFacultyMember) Validate() error {
	uf.Name = core.CleanString(uf.Name)
	uf.Designation = core.CleanString(uf.Designation)
	return core.Validate.Struct(uf)
}

func (uf *UpdateFacultyMember) Apply(m FacultyMember) FacultyMember {
	if uf.Name != "" {
		m.Name = uf.Name
	}
	if uf.Designation != "" {
		m.Designation = uf.Designation
	}
	if uf.Subject != "" {
		m.Subject = uf.Subject
	}
	if uf.Qualification != "" {
		m.Qualification = uf.Qualification
	}
	if uf.Experience != "" {
		m.Experience = uf.Experience
	}
	if uf.PhotoURL != "" {
		m.PhotoURL = uf.PhotoURL
		m.PhotoAssetID = uf.PhotoAssetID
	}
	return m
}
