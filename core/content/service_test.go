package content

import (
	"context"
	"sort"
	"strconv"
	"testing"

	"github.com/pkg/errors"

	"github.com/littleheartschool/backend/core"
)

type testLogger struct {
	t     *testing.T
	warns []string
}

func (l *testLogger) Debug(msg string, args ...interface{}) { l.t.Logf("DEBUG: %s %v", msg, args) }
func (l *testLogger) Info(msg string, args ...interface{})  { l.t.Logf("INFO: %s %v", msg, args) }
func (l *testLogger) Warn(msg string, args ...interface{}) {
	l.warns = append(l.warns, msg)
	l.t.Logf("WARN: %s %v", msg, args)
}
func (l *testLogger) Error(msg string, args ...interface{}) { l.t.Logf("ERROR: %s %v", msg, args) }
func (l *testLogger) Fatal(msg string, args ...interface{}) { l.t.Fatalf("FATAL: %s %v", msg, args) }

// fakeHost records deletions and can be made to fail.
type fakeHost struct {
	deleted []string
	err     error
}

func (h *fakeHost) DeleteAsset(_ context.Context, publicID string) error {
	if h.err != nil {
		return h.err
	}
	h.deleted = append(h.deleted, publicID)
	return nil
}

type fakeRepo struct {
	slides  map[string]SliderImage
	photos  map[string]GalleryPhoto
	faculty map[string]FacultyMember
	nextID  int
}

var _ Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		slides:  make(map[string]SliderImage),
		photos:  make(map[string]GalleryPhoto),
		faculty: make(map[string]FacultyMember),
	}
}

func (r *fakeRepo) id() string {
	r.nextID++
	return "content-" + strconv.Itoa(r.nextID)
}

func (r *fakeRepo) CreateSliderImage(_ context.Context, img SliderImage) (SliderImage, error) {
	img.ID = r.id()
	r.slides[img.ID] = img
	return img, nil
}

func (r *fakeRepo) QuerySliderImages(_ context.Context) ([]SliderImage, error) {
	images := make([]SliderImage, 0, len(r.slides))
	for _, img := range r.slides {
		images = append(images, img)
	}
	sort.Slice(images, func(i, j int) bool { return images[i].Position < images[j].Position })
	return images, nil
}

func (r *fakeRepo) GetSliderImageByID(_ context.Context, id string) (SliderImage, error) {
	if img, ok := r.slides[id]; ok {
		return img, nil
	}
	return SliderImage{}, ErrNotFound
}

func (r *fakeRepo) DeleteSliderImage(_ context.Context, id string) error {
	if _, ok := r.slides[id]; !ok {
		return ErrNotFound
	}
	delete(r.slides, id)
	return nil
}

func (r *fakeRepo) CreateGalleryPhoto(_ context.Context, photo GalleryPhoto) (GalleryPhoto, error) {
	photo.ID = r.id()
	r.photos[photo.ID] = photo
	return photo, nil
}

func (r *fakeRepo) QueryGalleryPhotos(_ context.Context, category string) ([]GalleryPhoto, error) {
	photos := make([]GalleryPhoto, 0, len(r.photos))
	for _, photo := range r.photos {
		if category == "" || photo.Category == category {
			photos = append(photos, photo)
		}
	}
	sort.Slice(photos, func(i, j int) bool { return photos[i].ID < photos[j].ID })
	return photos, nil
}

func (r *fakeRepo) GetGalleryPhotoByID(_ context.Context, id string) (GalleryPhoto, error) {
	if photo, ok := r.photos[id]; ok {
		return photo, nil
	}
	return GalleryPhoto{}, ErrNotFound
}

func (r *fakeRepo) DeleteGalleryPhoto(_ context.Context, id string) error {
	if _, ok := r.photos[id]; !ok {
		return ErrNotFound
	}
	delete(r.photos, id)
	return nil
}

func (r *fakeRepo) CreateFacultyMember(_ context.Context, m FacultyMember) (FacultyMember, error) {
	m.ID = r.id()
	r.faculty[m.ID] = m
	return m, nil
}

func (r *fakeRepo) QueryFacultyMembers(_ context.Context) ([]FacultyMember, error) {
	members := make([]FacultyMember, 0, len(r.faculty))
	for _, m := range r.faculty {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}

func (r *fakeRepo) GetFacultyMemberByID(_ context.Context, id string) (FacultyMember, error) {
	if m, ok := r.faculty[id]; ok {
		return m, nil
	}
	return FacultyMember{}, ErrNotFound
}

func (r *fakeRepo) UpdateFacultyMember(_ context.Context, m FacultyMember) (FacultyMember, error) {
	if _, ok := r.faculty[m.ID]; !ok {
		return FacultyMember{}, ErrNotFound
	}
	r.faculty[m.ID] = m
	return m, nil
}

func (r *fakeRepo) DeleteFacultyMember(_ context.Context, id string) error {
	if _, ok := r.faculty[id]; !ok {
		return ErrNotFound
	}
	delete(r.faculty, id)
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeRepo, *fakeHost, *testLogger) {
	t.Helper()
	repo := newFakeRepo()
	host := &fakeHost{}
	logger := &testLogger{t: t}
	svc := NewService(repo, host, logger, core.LogNotifier{Log: logger})
	return svc, repo, host, logger
}

func TestService_slider(t *testing.T) {
	svc, _, host, _ := newTestService(t)
	ctx := context.Background()

	t.Run("add requires url and asset id", func(t *testing.T) {
		if _, err := svc.AddSliderImage(ctx, NewSliderImage{Title: "Welcome"}); err == nil {
			t.Fatal("AddSliderImage() expected error; got nil")
		}
		if _, err := svc.AddSliderImage(ctx, NewSliderImage{URL: "not a url", AssetID: "a"}); err == nil {
			t.Fatal("AddSliderImage() expected error for malformed url; got nil")
		}
	})

	t.Run("list ordered by position", func(t *testing.T) {
		for i, pos := range []int{2, 0, 1} {
			_, err := svc.AddSliderImage(ctx, NewSliderImage{
				Title:    "Slide " + strconv.Itoa(i),
				URL:      "https://img.example.com/slide-" + strconv.Itoa(i) + ".jpg",
				AssetID:  "slider/slide-" + strconv.Itoa(i),
				Position: pos,
			})
			if err != nil {
				t.Fatalf("AddSliderImage() failed: %v", err)
			}
		}
		images, err := svc.ListSliderImages(ctx)
		if err != nil {
			t.Fatalf("ListSliderImages() failed: %v", err)
		}
		if len(images) != 3 {
			t.Fatalf("images = %d; want 3", len(images))
		}
		for i, img := range images {
			if img.Position != i {
				t.Errorf("images[%d].Position = %d; want %d", i, img.Position, i)
			}
		}
	})

	t.Run("delete removes hosted asset", func(t *testing.T) {
		images, _ := svc.ListSliderImages(ctx)
		victim := images[0]
		if err := svc.DeleteSliderImage(ctx, victim.ID); err != nil {
			t.Fatalf("DeleteSliderImage() failed: %v", err)
		}
		if len(host.deleted) != 1 || host.deleted[0] != victim.AssetID {
			t.Errorf("deleted assets = %v; want [%s]", host.deleted, victim.AssetID)
		}
		if images, _ = svc.ListSliderImages(ctx); len(images) != 2 {
			t.Errorf("images = %d; want 2", len(images))
		}
	})

	t.Run("delete unknown", func(t *testing.T) {
		if err := svc.DeleteSliderImage(ctx, "nope"); err != ErrNotFound {
			t.Errorf("DeleteSliderImage() error = %v; want ErrNotFound", err)
		}
	})
}

func TestService_slider_assetDeleteFailureIsNonFatal(t *testing.T) {
	svc, _, host, logger := newTestService(t)
	ctx := context.Background()

	img, err := svc.AddSliderImage(ctx, NewSliderImage{
		URL:     "https://img.example.com/banner.jpg",
		AssetID: "slider/banner",
	})
	if err != nil {
		t.Fatalf("AddSliderImage() failed: %v", err)
	}

	host.err = errors.New("host unreachable")
	if err = svc.DeleteSliderImage(ctx, img.ID); err != nil {
		t.Fatalf("DeleteSliderImage() failed: %v", err)
	}
	if images, _ := svc.ListSliderImages(ctx); len(images) != 0 {
		t.Error("record kept after delete")
	}
	if len(logger.warns) != 1 {
		t.Errorf("warnings = %d; want 1", len(logger.warns))
	}
}

func TestService_gallery(t *testing.T) {
	svc, _, host, _ := newTestService(t)
	ctx := context.Background()

	seed := []NewGalleryPhoto{
		{Title: "Annual day", Category: "Events", URL: "https://img.example.com/g1.jpg", AssetID: "gallery/g1"},
		{Title: "Sports meet", Category: "Sports", URL: "https://img.example.com/g2.jpg", AssetID: "gallery/g2"},
		{Title: "Library", Category: "Campus", URL: "https://img.example.com/g3.jpg", AssetID: "gallery/g3"},
		{Title: "Science fair", Category: "Events", URL: "https://img.example.com/g4.jpg", AssetID: "gallery/g4"},
	}
	for _, ng := range seed {
		if _, err := svc.AddGalleryPhoto(ctx, ng); err != nil {
			t.Fatalf("AddGalleryPhoto(%s) failed: %v", ng.Title, err)
		}
	}

	t.Run("missing category rejected", func(t *testing.T) {
		_, err := svc.AddGalleryPhoto(ctx, NewGalleryPhoto{URL: "https://img.example.com/x.jpg", AssetID: "gallery/x"})
		if err == nil {
			t.Fatal("AddGalleryPhoto() expected error; got nil")
		}
	})

	t.Run("list by category", func(t *testing.T) {
		tests := []struct {
			category string
			want     int
		}{
			{"", 4},
			{"All", 4},
			{"Events", 2},
			{"Sports", 1},
			{"  Campus  ", 1}, // whitespace trimmed
			{"Music", 0},
		}
		for _, tt := range tests {
			photos, err := svc.ListGalleryPhotos(ctx, tt.category)
			if err != nil {
				t.Fatalf("ListGalleryPhotos(%q) failed: %v", tt.category, err)
			}
			if len(photos) != tt.want {
				t.Errorf("ListGalleryPhotos(%q) = %d photos; want %d", tt.category, len(photos), tt.want)
			}
		}
	})

	t.Run("delete removes hosted asset", func(t *testing.T) {
		photos, _ := svc.ListGalleryPhotos(ctx, "Sports")
		if err := svc.DeleteGalleryPhoto(ctx, photos[0].ID); err != nil {
			t.Fatalf("DeleteGalleryPhoto() failed: %v", err)
		}
		if len(host.deleted) != 1 || host.deleted[0] != "gallery/g2" {
			t.Errorf("deleted assets = %v; want [gallery/g2]", host.deleted)
		}
		if photos, _ = svc.ListGalleryPhotos(ctx, ""); len(photos) != 3 {
			t.Errorf("photos = %d; want 3", len(photos))
		}
	})
}

func TestService_faculty(t *testing.T) {
	svc, _, host, _ := newTestService(t)
	ctx := context.Background()

	t.Run("add", func(t *testing.T) {
		m, err := svc.AddFacultyMember(ctx, NewFacultyMember{
			Name:          "Mrs. Kavita Joshi",
			Designation:   "Principal",
			Qualification: "M.Ed",
			Experience:    "18 years",
			PhotoURL:      "https://img.example.com/kavita.jpg",
			PhotoAssetID:  "faculty/kavita",
		})
		if err != nil {
			t.Fatalf("AddFacultyMember() failed: %v", err)
		}
		if m.ID == "" {
			t.Error("ID not assigned")
		}
		if m.CreatedAt.IsZero() {
			t.Error("CreatedAt not stamped")
		}
	})

	t.Run("name and designation required", func(t *testing.T) {
		if _, err := svc.AddFacultyMember(ctx, NewFacultyMember{Name: "No Role"}); err == nil {
			t.Fatal("AddFacultyMember() expected error; got nil")
		}
	})

	t.Run("photo url requires asset id", func(t *testing.T) {
		_, err := svc.AddFacultyMember(ctx, NewFacultyMember{
			Name:        "Mr. Ajay Singh",
			Designation: "Sports Teacher",
			PhotoURL:    "https://img.example.com/ajay.jpg",
		})
		if err == nil {
			t.Fatal("AddFacultyMember() expected error; got nil")
		}
	})

	t.Run("partial update keeps unset fields", func(t *testing.T) {
		members, _ := svc.ListFacultyMembers(ctx)
		m := members[0]
		got, err := svc.UpdateFacultyMember(ctx, m.ID, UpdateFacultyMember{Designation: "Director"})
		if err != nil {
			t.Fatalf("UpdateFacultyMember() failed: %v", err)
		}
		if got.Designation != "Director" {
			t.Errorf("Designation = %s; want Director", got.Designation)
		}
		if got.Name != m.Name || got.Qualification != m.Qualification {
			t.Errorf("unset fields changed: %+v", got)
		}
		if len(host.deleted) != 0 {
			t.Errorf("asset deleted on non-photo update: %v", host.deleted)
		}
	})

	t.Run("replacing the photo deletes the old asset", func(t *testing.T) {
		members, _ := svc.ListFacultyMembers(ctx)
		m := members[0]
		got, err := svc.UpdateFacultyMember(ctx, m.ID, UpdateFacultyMember{
			PhotoURL:     "https://img.example.com/kavita-2026.jpg",
			PhotoAssetID: "faculty/kavita-2026",
		})
		if err != nil {
			t.Fatalf("UpdateFacultyMember() failed: %v", err)
		}
		if got.PhotoAssetID != "faculty/kavita-2026" {
			t.Errorf("PhotoAssetID = %s; want faculty/kavita-2026", got.PhotoAssetID)
		}
		if len(host.deleted) != 1 || host.deleted[0] != "faculty/kavita" {
			t.Errorf("deleted assets = %v; want [faculty/kavita]", host.deleted)
		}
	})

	t.Run("update unknown", func(t *testing.T) {
		if _, err := svc.UpdateFacultyMember(ctx, "nope", UpdateFacultyMember{Name: "X"}); err != ErrNotFound {
			t.Errorf("UpdateFacultyMember() error = %v; want ErrNotFound", err)
		}
	})

	t.Run("delete removes member and photo asset", func(t *testing.T) {
		members, _ := svc.ListFacultyMembers(ctx)
		m := members[0]
		if err := svc.DeleteFacultyMember(ctx, m.ID); err != nil {
			t.Fatalf("DeleteFacultyMember() failed: %v", err)
		}
		if members, _ = svc.ListFacultyMembers(ctx); len(members) != 0 {
			t.Errorf("members = %d; want 0", len(members))
		}
		if host.deleted[len(host.deleted)-1] != "faculty/kavita-2026" {
			t.Errorf("deleted assets = %v; want trailing faculty/kavita-2026", host.deleted)
		}
	})
}
