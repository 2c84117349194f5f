package question

import (
	"context"

	"github.com/gokatarajesh/trivia-api/internal/metrics"
)

// NextQuestion draws a question from categoryID whose id is not in previousIDs,
// uniformly at random among the remaining candidates. The bool is false when nothing
// is left to ask, including when the category has no questions at all.
func (s *Service) NextQuestion(ctx context.Context, categoryID int, previousIDs []int) (Question, bool, error) {
	const op = "question.NextQuestion"
	rows, err := s.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return Question{}, false, s.lookupFailed(ctx, op, err)
	}

	seen := make(map[int]struct{}, len(previousIDs))
	for _, id := range previousIDs {
		seen[id] = struct{}{}
	}
	candidates := make([]Question, 0, len(rows))
	for _, q := range toDomain(rows) {
		if _, asked := seen[q.ID]; !asked {
			candidates = append(candidates, q)
		}
	}

	if len(candidates) == 0 {
		metrics.QuizDraws.WithLabelValues("exhausted").Inc()
		return Question{}, false, nil
	}
	metrics.QuizDraws.WithLabelValues("question").Inc()
	return candidates[s.intN(len(candidates))], true, nil
}
