package inmemdb

import (
	"sync"

	"github.com/manhreal/web-2-grw-sub000/core/advising"
	"github.com/manhreal/web-2-grw-sub000/core/catalog"
	"github.com/manhreal/web-2-grw-sub000/core/freetest"
	"github.com/manhreal/web-2-grw-sub000/core/user"
)

// DB is a mutex-guarded in-memory store, one table per entity. It backs the
// test suites and local hacking; Postgres is the real store.
type DB struct {
	mutex sync.RWMutex
	seq   int // shared pk counter for all int-keyed tables

	users      map[string]*user.User
	candidates map[int]*freetest.Candidate
	tests      map[int]*freetest.Test
	courses    map[int]*catalog.Course
	teachers   map[int]*catalog.Teacher
	news       map[int]*catalog.News
	partners   map[int]*catalog.Partner
	banners    map[int]*catalog.Banner
	students   map[int]*catalog.Student
	advising   map[int]*advising.Request
}

func Open() (*DB, error) {
	return &DB{
		users:      make(map[string]*user.User),
		candidates: make(map[int]*freetest.Candidate),
		tests:      make(map[int]*freetest.Test),
		courses:    make(map[int]*catalog.Course),
		teachers:   make(map[int]*catalog.Teacher),
		news:       make(map[int]*catalog.News),
		partners:   make(map[int]*catalog.Partner),
		banners:    make(map[int]*catalog.Banner),
		students:   make(map[int]*catalog.Student),
		advising:   make(map[int]*advising.Request),
	}, nil
}

// nextID must be called with the write lock held.
func (db *DB) nextID() int {
	db.seq++
	return db.seq
}
