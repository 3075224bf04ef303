package inmemdb

import (
	"sort"

	"github.com/manhreal/web-2-grw-sub000/core/advising"
)

type advisingRepository struct {
	db *DB
}

func NewAdvisingRepository(db *DB) advising.Repository {
	return &advisingRepository{db: db}
}

func (repo *advisingRepository) CreateRequest(req advising.Request) (advising.Request, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	req.ID = repo.db.nextID()
	repo.db.advising[req.ID] = &req
	return req, nil
}

func (repo *advisingRepository) QueryRequests() ([]advising.Request, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	out := make([]advising.Request, 0, len(repo.db.advising))
	for _, req := range repo.db.advising {
		out = append(out, *req)
	}
	// newest first
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (repo *advisingRepository) GetRequestByID(id int) (advising.Request, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	if req, ok := repo.db.advising[id]; ok {
		return *req, nil
	}
	return advising.Request{}, advising.ErrNotFound
}

func (repo *advisingRepository) SetRequestHandled(id int, handled bool) (advising.Request, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	req, ok := repo.db.advising[id]
	if !ok {
		return advising.Request{}, advising.ErrNotFound
	}
	req.Handled = handled
	return *req, nil
}
