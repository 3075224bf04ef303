package inmemdb

import (
	"sort"

	"github.com/manhreal/web-2-grw-sub000/core/freetest"
)

type freetestRepository struct {
	db *DB
}

func NewFreetestRepository(db *DB) freetest.Repository {
	return &freetestRepository{db: db}
}

// Test definitions

func (repo *freetestRepository) CreateTest(t freetest.Test) (freetest.Test, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	t.ID = repo.db.nextID()
	for i := range t.Questions {
		t.Questions[i].ID = i + 1
	}
	repo.db.tests[t.ID] = &t
	return t, nil
}

func (repo *freetestRepository) QueryAllTests() ([]freetest.Test, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	tests := make([]freetest.Test, 0, len(repo.db.tests))
	for _, t := range repo.db.tests {
		tests = append(tests, *t)
	}
	sort.Slice(tests, func(i, j int) bool { return tests[i].ID < tests[j].ID })
	return tests, nil
}

func (repo *freetestRepository) GetTestByID(id int) (freetest.Test, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if t, ok := repo.db.tests[id]; ok {
		return *t, nil
	}
	return freetest.Test{}, freetest.ErrTestNotFound
}

func (repo *freetestRepository) UpdateTest(t freetest.Test) (freetest.Test, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.tests[t.ID]; !ok {
		return freetest.Test{}, freetest.ErrTestNotFound
	}
	repo.db.tests[t.ID] = &t
	return t, nil
}

func (repo *freetestRepository) DeleteTest(id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.tests[id]; !ok {
		return freetest.ErrTestNotFound
	}
	delete(repo.db.tests, id)
	return nil
}

// Candidates

func (repo *freetestRepository) CreateCandidate(cand freetest.Candidate) (freetest.Candidate, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	cand.ID = repo.db.nextID()
	repo.db.candidates[cand.ID] = &cand
	return cand, nil
}

func (repo *freetestRepository) GetCandidateByEmail(email string) (freetest.Candidate, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, cand := range repo.db.candidates {
		if cand.Email == email {
			out := *cand
			out.History = append([]freetest.Attempt(nil), cand.History...)
			return out, nil
		}
	}
	return freetest.Candidate{}, freetest.ErrCandidateNotFound
}

func (repo *freetestRepository) UpdateCandidateContact(cand freetest.Candidate) (freetest.Candidate, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.candidates[cand.ID]
	if !ok {
		return freetest.Candidate{}, freetest.ErrCandidateNotFound
	}
	orig.FullName = cand.FullName
	orig.Phone = cand.Phone
	orig.Address = cand.Address
	return *orig, nil
}

func (repo *freetestRepository) ReplaceHistory(candidateID int, history []freetest.Attempt) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	cand, ok := repo.db.candidates[candidateID]
	if !ok {
		return freetest.ErrCandidateNotFound
	}
	cand.History = append([]freetest.Attempt(nil), history...)
	return nil
}

func (repo *freetestRepository) QueryCandidatesWithAttempts() ([]freetest.Candidate, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	cands := make([]freetest.Candidate, 0, len(repo.db.candidates))
	for _, cand := range repo.db.candidates {
		if len(cand.History) == 0 {
			continue
		}
		out := *cand
		out.History = append([]freetest.Attempt(nil), cand.History...)
		cands = append(cands, out)
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].ID < cands[j].ID })
	return cands, nil
}
