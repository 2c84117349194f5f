package question

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/db/repository"
)

// memoryStore is an in-memory question store with injectable failures.
type memoryStore struct {
	mu         sync.Mutex
	nextID     int
	questions  []repository.Question
	categories []repository.Category
	calls      map[string]int

	failReads  error
	failInsert error
	failDelete error
}

func newMemoryStore(categories ...string) *memoryStore {
	s := &memoryStore{nextID: 1, calls: map[string]int{}}
	for i, label := range categories {
		s.categories = append(s.categories, repository.Category{ID: i + 1, Type: label})
	}
	return s
}

func (s *memoryStore) add(text string, category int) repository.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := repository.Question{
		ID:         s.nextID,
		Question:   text,
		Answer:     "answer " + text,
		Category:   category,
		Difficulty: 1,
	}
	s.nextID++
	s.questions = append(s.questions, q)
	return q
}

func (s *memoryStore) seed(n, category int) {
	for i := 0; i < n; i++ {
		s.add(fmt.Sprintf("question %d", i+1), category)
	}
}

func (s *memoryStore) count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func (s *memoryStore) record(name string) error {
	s.calls[name]++
	return s.failReads
}

func (s *memoryStore) sorted(keep func(repository.Question) bool) []repository.Question {
	out := make([]repository.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memoryStore) ListQuestions(ctx context.Context) ([]repository.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("ListQuestions"); err != nil {
		return nil, err
	}
	return s.sorted(func(repository.Question) bool { return true }), nil
}

func (s *memoryStore) ListQuestionsByCategory(ctx context.Context, categoryID int) ([]repository.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("ListQuestionsByCategory"); err != nil {
		return nil, err
	}
	return s.sorted(func(q repository.Question) bool { return q.Category == categoryID }), nil
}

func (s *memoryStore) SearchQuestions(ctx context.Context, term string) ([]repository.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("SearchQuestions"); err != nil {
		return nil, err
	}
	needle := strings.ToLower(term)
	return s.sorted(func(q repository.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), needle)
	}), nil
}

func (s *memoryStore) GetQuestion(ctx context.Context, id int) (repository.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("GetQuestion"); err != nil {
		return repository.Question{}, err
	}
	for _, q := range s.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return repository.Question{}, repository.ErrNotFound
}

func (s *memoryStore) InsertQuestion(ctx context.Context, arg repository.InsertQuestionParams) (repository.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["InsertQuestion"]++
	if s.failInsert != nil {
		return repository.Question{}, s.failInsert
	}
	q := repository.Question{
		ID:         s.nextID,
		Question:   arg.Question,
		Answer:     arg.Answer,
		Category:   arg.Category,
		Difficulty: arg.Difficulty,
	}
	s.nextID++
	s.questions = append(s.questions, q)
	return q, nil
}

func (s *memoryStore) DeleteQuestion(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["DeleteQuestion"]++
	if s.failDelete != nil {
		return s.failDelete
	}
	for i, q := range s.questions {
		if q.ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *memoryStore) CountQuestions(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("CountQuestions"); err != nil {
		return 0, err
	}
	return len(s.questions), nil
}

func (s *memoryStore) ListCategories(ctx context.Context) ([]repository.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("ListCategories"); err != nil {
		return nil, err
	}
	return append([]repository.Category(nil), s.categories...), nil
}

func (s *memoryStore) GetCategory(ctx context.Context, id int) (repository.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("GetCategory"); err != nil {
		return repository.Category{}, err
	}
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return repository.Category{}, repository.ErrNotFound
}

func (s *memoryStore) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failReads
}

type memoryCache struct {
	mu     sync.Mutex
	labels CategoryLabels
	sets   int
}

func (c *memoryCache) Get(_ context.Context) (CategoryLabels, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.labels, nil
}

func (c *memoryCache) Set(_ context.Context, labels CategoryLabels) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.labels = labels
	c.sets++
	return nil
}

func newTestService(store *memoryStore, opts ServiceOptions) *Service {
	return NewService(repository.NewQuestionRepository(store), nil, opts, zerolog.New(io.Discard))
}

func ids(qs []Question) []int {
	out := make([]int, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func intPtr(n int) *FlexInt {
	v := FlexInt(n)
	return &v
}
