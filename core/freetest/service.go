package freetest

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrTestNotFound      = errors.New("test not found")
)

type (
	Repository interface {
		// test definitions
		CreateTest(test Test) (Test, error)
		QueryAllTests() ([]Test, error)
		GetTestByID(id int) (Test, error)
		UpdateTest(test Test) (Test, error)
		DeleteTest(id int) error

		// candidates
		CreateCandidate(cand Candidate) (Candidate, error)
		GetCandidateByEmail(email string) (Candidate, error)
		UpdateCandidateContact(cand Candidate) (Candidate, error)
		// ReplaceHistory atomically rewrites a candidate's retained attempts.
		ReplaceHistory(candidateID int, history []Attempt) error
		// QueryCandidatesWithAttempts returns every candidate with at least one
		// attempt, history included.
		QueryCandidatesWithAttempts() ([]Candidate, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Test definitions

func (svc *Service) CreateTest(t Test) (Test, error) {
	now := time.Now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	return svc.repo.CreateTest(t)
}

func (svc *Service) QueryTests() ([]Test, error) {
	return svc.repo.QueryAllTests()
}

func (svc *Service) GetTest(id int) (Test, error) {
	return svc.repo.GetTestByID(id)
}

func (svc *Service) UpdateTest(t Test) (Test, error) {
	t.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTest(t)
}

func (svc *Service) DeleteTest(id int) error {
	return svc.repo.DeleteTest(id)
}

// Candidates

// Register creates a Candidate for a new email, or refreshes the contact
// fields in place when the email is already registered. Either way the caller
// gets the current record back; re-registering never duplicates a candidate
// and never touches their attempt history.
func (svc *Service) Register(nc NewCandidate) (Candidate, error) {
	existing, err := svc.repo.GetCandidateByEmail(nc.Email)
	switch errors.Cause(err) {
	case nil:
		existing.FullName = nc.FullName
		existing.Phone = nc.Phone
		existing.Address = nc.Address
		return svc.repo.UpdateCandidateContact(existing)
	case ErrCandidateNotFound:
		return svc.repo.CreateCandidate(Candidate{
			FullName:     nc.FullName,
			Email:        nc.Email,
			Phone:        nc.Phone,
			Address:      nc.Address,
			RegisteredAt: time.Now().UTC(),
		})
	default:
		return Candidate{}, errors.Wrap(err, "finding candidate by email")
	}
}

func (svc *Service) GetByEmail(email string) (Candidate, error) {
	return svc.repo.GetCandidateByEmail(email)
}

// Best-attempt merge

type SubmitStatus string

const (
	StatusSaved     SubmitStatus = "saved"
	StatusUpdated   SubmitStatus = "updated"
	StatusUnchanged SubmitStatus = "no update needed"
)

// SubmitOutcome reports what became of a submission. Attempt is the retained
// attempt after the call; on the unchanged path Rejected carries the losing
// submission for display purposes only.
type SubmitOutcome struct {
	Status   SubmitStatus `json:"status"`
	Attempt  Attempt      `json:"attempt"`
	Rejected *Attempt     `json:"rejected,omitempty"`
}

// beats reports whether a supersedes b: a strictly better score, or an equal
// score in strictly less time.
func beats(a, b Attempt) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.TimeTaken.TotalSeconds < b.TimeTaken.TotalSeconds
}

// SubmitResult merges a newly submitted result into the candidate's history,
// retaining a single best attempt per question-count kind.
//
// Attempts are grouped by TotalQuestions equality alone: two distinct tests
// that happen to share a question count collapse into one kind. That is the
// site's long-standing grouping policy, kept on purpose; switching the
// discriminator to the test ID would orphan the history rows recorded before
// test IDs were reported.
func (svc *Service) SubmitResult(sub Submission) (SubmitOutcome, error) {
	if err := sub.Validate(); err != nil {
		return SubmitOutcome{}, err
	}

	cand, err := svc.repo.GetCandidateByEmail(sub.Email)
	if err != nil {
		if errors.Cause(err) == ErrCandidateNotFound {
			return SubmitOutcome{}, ErrCandidateNotFound
		}
		return SubmitOutcome{}, errors.Wrap(err, "finding candidate by email")
	}

	newAttempt := Attempt{
		TestID:         sub.TestID,
		Score:          sub.Score,
		TotalQuestions: sub.TotalQuestions,
		Percentage:     percentage(sub.Score, sub.TotalQuestions),
		TimeTaken:      NewDuration(sub.TimeTakenSeconds),
		SubmittedAt:    time.Now().UTC(),
	}

	// find the retained best of the same kind
	best := -1
	for i, att := range cand.History {
		if att.TotalQuestions != sub.TotalQuestions {
			continue
		}
		if best == -1 || beats(att, cand.History[best]) {
			best = i
		}
	}

	if best == -1 {
		// first attempt of this kind
		cand.History = append(cand.History, newAttempt)
		if err := svc.repo.ReplaceHistory(cand.ID, cand.History); err != nil {
			return SubmitOutcome{}, errors.Wrap(err, "saving attempt")
		}
		return SubmitOutcome{Status: StatusSaved, Attempt: newAttempt}, nil
	}

	if !beats(newAttempt, cand.History[best]) {
		return SubmitOutcome{Status: StatusUnchanged, Attempt: cand.History[best], Rejected: &newAttempt}, nil
	}

	// the new result supersedes the retained attempt: mutate it in place
	retained := &cand.History[best]
	retained.Score = newAttempt.Score
	retained.Percentage = newAttempt.Percentage
	retained.TimeTaken = newAttempt.TimeTaken
	retained.SubmittedAt = newAttempt.SubmittedAt
	if !retained.TestID.Valid && newAttempt.TestID.Valid {
		retained.TestID = newAttempt.TestID
	}
	if err := svc.repo.ReplaceHistory(cand.ID, cand.History); err != nil {
		return SubmitOutcome{}, errors.Wrap(err, "saving attempt")
	}
	return SubmitOutcome{Status: StatusUpdated, Attempt: *retained}, nil
}

func percentage(score, total int) int {
	return int(math.Round(float64(score) / float64(total) * 100))
}
