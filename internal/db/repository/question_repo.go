package repository

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when a row lookup or delete matches nothing.
var ErrNotFound = errors.New("record not found")

// Question is a row of the questions table.
type Question struct {
	ID         int
	Question   string
	Answer     string
	Category   int
	Difficulty int
}

// Category is a row of the categories table.
type Category struct {
	ID   int
	Type string
}

// InsertQuestionParams carries the columns written on insert; the id is store-assigned.
type InsertQuestionParams struct {
	Question   string
	Answer     string
	Category   int
	Difficulty int
}

// DefaultCategories are seeded into empty stores, ids 1..n in this order.
var DefaultCategories = []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}

type questionStore interface {
	ListQuestions(ctx context.Context) ([]Question, error)
	ListQuestionsByCategory(ctx context.Context, categoryID int) ([]Question, error)
	SearchQuestions(ctx context.Context, term string) ([]Question, error)
	GetQuestion(ctx context.Context, id int) (Question, error)
	InsertQuestion(ctx context.Context, arg InsertQuestionParams) (Question, error)
	DeleteQuestion(ctx context.Context, id int) error
	CountQuestions(ctx context.Context) (int, error)
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id int) (Category, error)
	Ping(ctx context.Context) error
}

// QuestionRepository wraps a SQL store for question and category access.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// ListAll returns every question ordered by ascending id.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]Question, error) {
	rows, err := r.store.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return rows, nil
}

// ListByCategory returns the questions of one category ordered by ascending id.
func (r *QuestionRepository) ListByCategory(ctx context.Context, categoryID int) ([]Question, error) {
	rows, err := r.store.ListQuestionsByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list questions for category %d: %w", categoryID, err)
	}
	return rows, nil
}

// Search returns questions whose text contains term, ignoring case, ordered by id.
func (r *QuestionRepository) Search(ctx context.Context, term string) ([]Question, error) {
	rows, err := r.store.SearchQuestions(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return rows, nil
}

// Get returns a single question; ErrNotFound when the id is unknown.
func (r *QuestionRepository) Get(ctx context.Context, id int) (Question, error) {
	row, err := r.store.GetQuestion(ctx, id)
	if err != nil {
		return Question{}, fmt.Errorf("get question %d: %w", id, err)
	}
	return row, nil
}

// Insert stores a new question and returns it with its assigned id.
func (r *QuestionRepository) Insert(ctx context.Context, params InsertQuestionParams) (Question, error) {
	row, err := r.store.InsertQuestion(ctx, params)
	if err != nil {
		return Question{}, fmt.Errorf("insert question: %w", err)
	}
	return row, nil
}

// Delete removes a question; ErrNotFound when the id is unknown.
func (r *QuestionRepository) Delete(ctx context.Context, id int) error {
	if err := r.store.DeleteQuestion(ctx, id); err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	return nil
}

func (r *QuestionRepository) Count(ctx context.Context) (int, error) {
	n, err := r.store.CountQuestions(ctx)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

// Categories returns all categories ordered by id.
func (r *QuestionRepository) Categories(ctx context.Context) ([]Category, error) {
	rows, err := r.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return rows, nil
}

// Category returns one category; ErrNotFound when the id is unknown.
func (r *QuestionRepository) Category(ctx context.Context, id int) (Category, error) {
	row, err := r.store.GetCategory(ctx, id)
	if err != nil {
		return Category{}, fmt.Errorf("get category %d: %w", id, err)
	}
	return row, nil
}

func (r *QuestionRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}
