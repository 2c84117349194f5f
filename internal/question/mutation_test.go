package question

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() CreateQuestionInput {
	return CreateQuestionInput{
		Question:   "What is the capital of France?",
		Answer:     "Paris",
		Category:   intPtr(3),
		Difficulty: intPtr(1),
	}
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore("Science", "Art", "Geography")
	store.seed(3, 1)
	svc := newTestService(store, ServiceOptions{})

	res, err := svc.Create(ctx, validInput(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Question.ID)
	assert.Equal(t, "Paris", res.Question.Answer)
	assert.Equal(t, 3, res.Question.Category)
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(res.Questions))

	list, err := svc.ListAll(ctx, 1)
	require.NoError(t, err)
	found := 0
	for _, q := range list.Questions {
		if q.ID == res.Question.ID {
			found++
		}
	}
	assert.Equal(t, 1, found)
}

func TestServiceCreateTrimsText(t *testing.T) {
	in := validInput()
	in.Question = "  Who painted the Mona Lisa?  "
	q, err := newTestService(newMemoryStore("Art"), ServiceOptions{}).AddQuestion(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Who painted the Mona Lisa?", q.Question)
}

func TestServiceCreateRejectsMissingFields(t *testing.T) {
	cases := map[string]func(*CreateQuestionInput){
		"question":       func(in *CreateQuestionInput) { in.Question = "" },
		"blank question": func(in *CreateQuestionInput) { in.Question = "   " },
		"answer":         func(in *CreateQuestionInput) { in.Answer = "" },
		"category":       func(in *CreateQuestionInput) { in.Category = nil },
		"difficulty":     func(in *CreateQuestionInput) { in.Difficulty = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			store := newMemoryStore("Science")
			in := validInput()
			mutate(&in)

			_, err := newTestService(store, ServiceOptions{}).Create(context.Background(), in, 1)
			assert.Equal(t, KindUnprocessable, KindOf(err))
			assert.Equal(t, 0, store.count("InsertQuestion"))
		})
	}
}

func TestServiceCreateStoreFailure(t *testing.T) {
	store := newMemoryStore("Science")
	store.failInsert = errors.New("constraint violated")
	_, err := newTestService(store, ServiceOptions{}).Create(context.Background(), validInput(), 1)
	assert.Equal(t, KindUnprocessable, KindOf(err))
}

func TestServiceDelete(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore("Science")
	store.seed(12, 1)
	svc := newTestService(store, ServiceOptions{})

	res, err := svc.Delete(ctx, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, res.DeletedID)
	assert.Equal(t, 11, res.Total)
	assert.NotContains(t, ids(res.Questions), 5)

	for page := 1; page <= 2; page++ {
		list, err := svc.ListAll(ctx, page)
		require.NoError(t, err)
		assert.NotContains(t, ids(list.Questions), 5)
	}

	_, err = svc.Delete(ctx, 5, 1)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.ErrorIs(t, err, ErrUnknownQuestion)
}

func TestServiceDeleteMissing(t *testing.T) {
	store := newMemoryStore("Science")
	_, err := newTestService(store, ServiceOptions{}).Delete(context.Background(), 1000, 1)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, 0, store.count("DeleteQuestion"))
}

func TestServiceDeleteStoreFailure(t *testing.T) {
	store := newMemoryStore("Science")
	store.seed(1, 1)
	store.failDelete = errors.New("disk full")
	_, err := newTestService(store, ServiceOptions{}).Delete(context.Background(), 1, 1)
	assert.Equal(t, KindUnprocessable, KindOf(err))
}
