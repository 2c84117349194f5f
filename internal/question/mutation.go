package question

import (
	"context"
	"errors"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
)

// AddQuestion validates in and inserts it, returning the stored question.
// Missing fields and store failures are Unprocessable.
func (s *Service) AddQuestion(ctx context.Context, in CreateQuestionInput) (Question, error) {
	const op = "question.AddQuestion"
	if err := in.Validate(); err != nil {
		return Question{}, newError(KindUnprocessable, op, err)
	}
	row, err := s.repo.Insert(ctx, repository.InsertQuestionParams{
		Question:   in.Question,
		Answer:     in.Answer,
		Category:   int(*in.Category),
		Difficulty: int(*in.Difficulty),
	})
	if err != nil {
		s.log(ctx).Error().Err(err).Str("op", op).Msg("insert failed")
		return Question{}, newError(KindUnprocessable, op, err)
	}
	metrics.Mutations.WithLabelValues("create").Inc()
	return toDomain([]repository.Question{row})[0], nil
}

// Create adds a question and returns it with a refreshed page of all questions.
func (s *Service) Create(ctx context.Context, in CreateQuestionInput, page int) (CreateResult, error) {
	const op = "question.Create"
	q, err := s.AddQuestion(ctx, in)
	if err != nil {
		return CreateResult{}, err
	}
	refreshed, err := s.refresh(ctx, op, page)
	if err != nil {
		return CreateResult{}, err
	}
	return CreateResult{Page: refreshed, Question: q}, nil
}

// Delete removes a question and returns a refreshed page of all questions.
// Unknown ids are NotFound; store failures are Unprocessable.
func (s *Service) Delete(ctx context.Context, id, page int) (DeleteResult, error) {
	const op = "question.Delete"
	if _, err := s.repo.Get(ctx, id); err != nil {
		return DeleteResult{}, s.mutationFailed(ctx, op, err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return DeleteResult{}, s.mutationFailed(ctx, op, err)
	}
	metrics.Mutations.WithLabelValues("delete").Inc()

	refreshed, err := s.refresh(ctx, op, page)
	if err != nil {
		return DeleteResult{}, err
	}
	return DeleteResult{Page: refreshed, DeletedID: id}, nil
}

func (s *Service) refresh(ctx context.Context, op string, page int) (Page, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return Page{}, s.mutationFailed(ctx, op, err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return Page{}, s.mutationFailed(ctx, op, err)
	}
	return Page{Questions: Paginate(toDomain(rows), page, s.pageSize), Total: total}, nil
}

func (s *Service) mutationFailed(ctx context.Context, op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return newError(KindNotFound, op, ErrUnknownQuestion)
	}
	s.log(ctx).Error().Err(err).Str("op", op).Msg("store mutation failed")
	return newError(KindUnprocessable, op, err)
}
