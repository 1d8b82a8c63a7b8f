package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/littleheartschool/backend/core/admission"
)

type applicationRepository struct {
	db *applicationTable
}

var _ admission.Repository = (*applicationRepository)(nil)

func NewApplicationRepository(db *DB) *applicationRepository {
	return &applicationRepository{db: db.applications}
}

// query returns a snapshot sorted the way the store orders: newest first.
func (repo *applicationRepository) query() []admission.Application {
	apps := make([]admission.Application, 0, len(repo.db.table))
	for _, app := range repo.db.table {
		apps = append(apps, *app)
	}
	sort.Slice(apps, func(i, j int) bool {
		if !apps[i].AppliedAt.Equal(apps[j].AppliedAt) {
			return apps[i].AppliedAt.After(apps[j].AppliedAt)
		}
		return apps[i].ReferenceCode > apps[j].ReferenceCode
	})
	return apps
}

func (repo *applicationRepository) CreateApplication(_ context.Context, app admission.Application) (admission.Application, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, existing := range repo.db.table {
		if existing.ReferenceCode == app.ReferenceCode {
			return admission.Application{}, admission.ErrReferenceExists
		}
	}
	app.ID = uuid.New().String()
	repo.db.table[app.ID] = &app
	return app, nil
}

func (repo *applicationRepository) GetApplicationByID(_ context.Context, id string) (admission.Application, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if app, ok := repo.db.table[id]; ok {
		return *app, nil
	}
	return admission.Application{}, admission.ErrNotFound
}

func (repo *applicationRepository) GetApplicationByReference(_ context.Context, ref string) (admission.Application, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, app := range repo.db.table {
		if app.ReferenceCode == ref {
			return *app, nil
		}
	}
	return admission.Application{}, admission.ErrNotFound
}

func (repo *applicationRepository) QueryAllApplications(_ context.Context) ([]admission.Application, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *applicationRepository) FilterApplications(_ context.Context, filter admission.QueryFilter) ([]admission.Application, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	apps := make([]admission.Application, 0)
	for _, app := range repo.query() {
		if filter.Match(app) {
			apps = append(apps, app)
		}
	}
	return apps, nil
}

func (repo *applicationRepository) UpdateApplication(_ context.Context, app admission.Application) (admission.Application, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.table[app.ID]
	if !ok {
		return admission.Application{}, admission.ErrNotFound
	}
	// reference code and applied date are immutable
	app.ReferenceCode = orig.ReferenceCode
	app.AppliedAt = orig.AppliedAt
	repo.db.table[app.ID] = &app
	return app, nil
}

func (repo *applicationRepository) DeleteApplication(_ context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return admission.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}

func (repo *applicationRepository) NextReferenceSequence(_ context.Context, year int) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.sequence[year]++
	return repo.db.sequence[year], nil
}
