package admission

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"testing"

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

// fakeRepo is a map-backed Repository for white box service tests.
type fakeRepo struct {
	mu     sync.Mutex
	apps   map[string]Application
	seq    map[int]int
	nextID int
	err    error // when set, every call fails with it
}

var _ Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{apps: make(map[string]Application), seq: make(map[int]int)}
}

func (r *fakeRepo) CreateApplication(_ context.Context, app Application) (Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return Application{}, r.err
	}
	for _, existing := range r.apps {
		if existing.ReferenceCode == app.ReferenceCode {
			return Application{}, ErrReferenceExists
		}
	}
	r.nextID++
	app.ID = "app-" + strconv.Itoa(r.nextID)
	r.apps[app.ID] = app
	return app, nil
}

func (r *fakeRepo) GetApplicationByID(_ context.Context, id string) (Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return Application{}, r.err
	}
	if app, ok := r.apps[id]; ok {
		return app, nil
	}
	return Application{}, ErrNotFound
}

func (r *fakeRepo) GetApplicationByReference(_ context.Context, ref string) (Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return Application{}, r.err
	}
	for _, app := range r.apps {
		if app.ReferenceCode == ref {
			return app, nil
		}
	}
	return Application{}, ErrNotFound
}

func (r *fakeRepo) QueryAllApplications(_ context.Context) ([]Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return r.query(), nil
}

func (r *fakeRepo) FilterApplications(_ context.Context, filter QueryFilter) ([]Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	matches := make([]Application, 0)
	for _, app := range r.query() {
		if filter.Match(app) {
			matches = append(matches, app)
		}
	}
	return matches, nil
}

func (r *fakeRepo) UpdateApplication(_ context.Context, app Application) (Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return Application{}, r.err
	}
	if _, ok := r.apps[app.ID]; !ok {
		return Application{}, ErrNotFound
	}
	r.apps[app.ID] = app
	return app, nil
}

func (r *fakeRepo) DeleteApplication(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.apps[id]; !ok {
		return ErrNotFound
	}
	delete(r.apps, id)
	return nil
}

func (r *fakeRepo) NextReferenceSequence(_ context.Context, year int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	r.seq[year]++
	return r.seq[year], nil
}

func (r *fakeRepo) query() []Application {
	apps := make([]Application, 0, len(r.apps))
	for _, app := range r.apps {
		apps = append(apps, app)
	}
	sort.Slice(apps, func(i, j int) bool {
		if !apps[i].AppliedAt.Equal(apps[j].AppliedAt) {
			return apps[i].AppliedAt.After(apps[j].AppliedAt)
		}
		return apps[i].ReferenceCode > apps[j].ReferenceCode
	})
	return apps
}

// put stores an application verbatim, bypassing the service. For seeding
// historical records.
func (r *fakeRepo) put(app Application) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	if app.ID == "" {
		app.ID = "app-" + strconv.Itoa(r.nextID)
	}
	r.apps[app.ID] = app
}

func newTestService(t *testing.T) (*Service, *fakeRepo, *testLogger) {
	t.Helper()
	repo := newFakeRepo()
	logger := &testLogger{t: t}
	conf := &core.Config{
		AppName: "LHS Backend",
		Admission: core.AdmissionConfig{
			ReferencePrefix: "LHS",
			CycleYear:       2024,
		},
	}
	svc := NewService(repo, logger, core.LogNotifier{Log: logger}, conf)
	return svc, repo, logger
}

func validTestDraft(student, class string) NewApplication {
	return NewApplication{
		StudentName:      student,
		DateOfBirth:      "2018-04-12",
		Gender:           "Male",
		ApplyingForClass: class,
		PreviousSchool:   "Sunrise Public School",
		FatherName:       "Suresh Kumar",
		FatherPhone:      "+91 9876543210",
		FatherEmail:      "suresh@example.com",
		MotherName:       "Anita Kumar",
		Address:          "12 MG Road",
		City:             "Jaipur",
		Pincode:          "302001",
		Documents: []DocumentFile{
			{Type: DocBirthCertificate, Filename: "birth.pdf", Size: 1 << 10},
			{Type: DocPreviousMarksheet, Filename: "marks.pdf", Size: 2 << 10},
			{Type: DocPhotograph, Filename: "photo.jpg", Size: 1 << 9},
		},
		DeclarationAccepted: true,
	}
}
