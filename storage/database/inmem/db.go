package inmemdb

import (
	"sync"

	"github.com/littleheartschool/backend/core/admission"
	"github.com/littleheartschool/backend/core/content"
)

// DB is a mutex-guarded in-memory store used by tests and local runs.
type DB struct {
	applications *applicationTable
	contents     *contentTable
}

type applicationTable struct {
	mutex    sync.RWMutex
	table    map[string]*admission.Application
	sequence map[int]int // cycle year -> last allocated sequence
}

type contentTable struct {
	mutex   sync.RWMutex
	slider  map[string]*content.SliderImage
	gallery map[string]*content.GalleryPhoto
	faculty map[string]*content.FacultyMember
}

func Open() (*DB, error) {
	db := &DB{
		applications: &applicationTable{
			table:    make(map[string]*admission.Application),
			sequence: make(map[int]int),
		},
		contents: &contentTable{
			slider:  make(map[string]*content.SliderImage),
			gallery: make(map[string]*content.GalleryPhoto),
			faculty: make(map[string]*content.FacultyMember),
		},
	}
	return db, nil
}
