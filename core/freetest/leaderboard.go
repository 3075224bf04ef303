package freetest

import "sort"

const DefaultLeaderboardSize = 5

// TopCandidates ranks candidates by their single best percentage across their
// whole history (not per question-count kind) and returns the top limit rows.
// Exact percentage ties keep their relative candidate order; both tied
// candidates appear when limit allows. No candidate with a scored attempt is
// ever an error case: an empty store yields an empty board.
func (svc *Service) TopCandidates(limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	cands, err := svc.repo.QueryCandidatesWithAttempts()
	if err != nil {
		return nil, err
	}

	rows := make([]LeaderboardRow, 0, len(cands))
	for _, cand := range cands {
		if len(cand.History) == 0 {
			continue
		}

		best := cand.History[0].Percentage
		for _, att := range cand.History[1:] {
			if att.Percentage > best {
				best = att.Percentage
			}
		}

		// display the first attempt matching the best percentage
		for _, att := range cand.History {
			if att.Percentage != best {
				continue
			}
			rows = append(rows, LeaderboardRow{
				CandidateID:    cand.ID,
				FullName:       cand.FullName,
				Email:          cand.Email,
				BestScore:      att.Score,
				TotalQuestions: att.TotalQuestions,
				Percentage:     best,
				TimeTaken:      att.TimeTaken,
				SubmittedAt:    att.SubmittedAt,
			})
			break
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Percentage > rows[j].Percentage })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}
