package question

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/logging"
)

// CategoryCache defines cache behavior (implemented by Redis-backed Cache).
type CategoryCache interface {
	Get(ctx context.Context) (CategoryLabels, error)
	Set(ctx context.Context, labels CategoryLabels) error
}

// Service answers listing, search, quiz and mutation requests against the question store.
type Service struct {
	repo     *repository.QuestionRepository
	cache    CategoryCache
	pageSize int
	logger   zerolog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

type ServiceOptions struct {
	// PageSize is the number of questions per page; DefaultPageSize when zero.
	PageSize int
	// Rand drives quiz draws. Nil uses the global source.
	Rand *rand.Rand
}

// NewService builds a Service. cache may be nil.
func NewService(repo *repository.QuestionRepository, cache CategoryCache, opts ServiceOptions, logger zerolog.Logger) *Service {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		repo:     repo,
		cache:    cache,
		pageSize: pageSize,
		rng:      opts.Rand,
		logger:   logger.With().Str("component", "question_service").Logger(),
	}
}

// ListCategories returns every category label; NotFound when none exist.
func (s *Service) ListCategories(ctx context.Context) (CategoryLabels, error) {
	const op = "question.ListCategories"
	labels, err := s.categoryLabels(ctx)
	if err != nil {
		return nil, s.lookupFailed(ctx, op, err)
	}
	if len(labels) == 0 {
		return nil, newError(KindNotFound, op, ErrNoCategories)
	}
	return labels, nil
}

// ListAll returns one page of all questions ordered by id, with every category
// label. An empty page is NotFound, whether the store is empty or page is past the end.
func (s *Service) ListAll(ctx context.Context, page int) (ListResult, error) {
	const op = "question.ListAll"
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return ListResult{}, s.lookupFailed(ctx, op, err)
	}
	items := Paginate(toDomain(rows), page, s.pageSize)
	if len(items) == 0 {
		return ListResult{}, newError(KindNotFound, op, ErrEmptyPage)
	}
	labels, err := s.categoryLabels(ctx)
	if err != nil {
		return ListResult{}, s.lookupFailed(ctx, op, err)
	}
	return ListResult{
		Page:       Page{Questions: items, Total: len(rows)},
		Categories: labels,
	}, nil
}

// ListByCategory returns one page of a category's questions ordered by id.
// Unknown categories are NotFound; empty pages are not an error.
func (s *Service) ListByCategory(ctx context.Context, categoryID, page int) (CategoryResult, error) {
	const op = "question.ListByCategory"
	category, err := s.repo.Category(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return CategoryResult{}, newError(KindNotFound, op, ErrUnknownCategory)
		}
		return CategoryResult{}, s.lookupFailed(ctx, op, err)
	}
	rows, err := s.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return CategoryResult{}, s.lookupFailed(ctx, op, err)
	}
	return CategoryResult{
		Page:            Page{Questions: Paginate(toDomain(rows), page, s.pageSize), Total: len(rows)},
		CurrentCategory: category.Type,
	}, nil
}

// Search returns one page of questions whose text contains term, ignoring case.
// An empty term matches every question.
func (s *Service) Search(ctx context.Context, term string, page int) (Page, error) {
	const op = "question.Search"
	var (
		rows []repository.Question
		err  error
	)
	if term == "" {
		rows, err = s.repo.ListAll(ctx)
	} else {
		rows, err = s.repo.Search(ctx, term)
	}
	if err != nil {
		return Page{}, s.lookupFailed(ctx, op, err)
	}
	return Page{Questions: Paginate(toDomain(rows), page, s.pageSize), Total: len(rows)}, nil
}

// Ping checks the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *Service) categoryLabels(ctx context.Context) (CategoryLabels, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil && len(cached) > 0 {
			return cached, nil
		} else if err != nil {
			s.log(ctx).Warn().Err(err).Msg("category cache read failed")
		}
	}

	rows, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	labels := make(CategoryLabels, len(rows))
	for _, c := range rows {
		labels[c.ID] = c.Type
	}

	if s.cache != nil && len(labels) > 0 {
		if err := s.cache.Set(ctx, labels); err != nil {
			s.log(ctx).Warn().Err(err).Msg("category cache write failed")
		}
	}
	return labels, nil
}

// lookupFailed hides a store failure behind NotFound, logging the cause.
func (s *Service) lookupFailed(ctx context.Context, op string, err error) error {
	s.log(ctx).Error().Err(err).Str("op", op).Msg("store lookup failed")
	return newError(KindNotFound, op, err)
}

// log prefers the request-scoped logger so lines carry the request id.
func (s *Service) log(ctx context.Context) *zerolog.Logger {
	if l := logging.FromContext(ctx); l.GetLevel() != zerolog.Disabled {
		l = l.With().Str("component", "question_service").Logger()
		return &l
	}
	return &s.logger
}

func (s *Service) intN(n int) int {
	if s.rng == nil {
		return rand.IntN(n)
	}
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.IntN(n)
}

func toDomain(rows []repository.Question) []Question {
	out := make([]Question, len(rows))
	for i, row := range rows {
		out[i] = Question{
			ID:         row.ID,
			Question:   row.Question,
			Answer:     row.Answer,
			Category:   row.Category,
			Difficulty: row.Difficulty,
		}
	}
	return out
}
