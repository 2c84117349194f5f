package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenTDBClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api.php", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("amount"))
		assert.Equal(t, "easy", r.URL.Query().Get("difficulty"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response_code":0,"results":[
			{"category":"Science &amp; Nature","type":"multiple","difficulty":"easy",
			 "question":"What is the chemical symbol for &quot;gold&quot;?","correct_answer":"Au","incorrect_answers":["Ag","Go","Gd"]},
			{"category":"History","type":"boolean","difficulty":"easy",
			 "question":"Rome wasn&#039;t built in a day.","correct_answer":"True","incorrect_answers":["False"]}
		]}`))
	}))
	defer srv.Close()

	items, err := NewOpenTDBClient(srv.URL, srv.Client()).Fetch(context.Background(), 2, "easy")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, Item{
		Source:     "opentdb",
		Category:   "Science & Nature",
		Difficulty: "easy",
		Question:   `What is the chemical symbol for "gold"?`,
		Answer:     "Au",
	}, items[0])
	assert.Equal(t, "Rome wasn't built in a day.", items[1].Question)
}

func TestOpenTDBClientRejectsResponseCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response_code":1,"results":[]}`))
	}))
	defer srv.Close()

	_, err := NewOpenTDBClient(srv.URL, srv.Client()).Fetch(context.Background(), 5, "")
	assert.Error(t, err)
}

func TestTriviaAPIClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/questions", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[{"id":"x1","category":"Geography","question":"Capital of France?",
			"difficulty":"medium","type":"Multiple Choice","correctAnswer":"Paris","incorrectAnswers":["Lyon"]}]`))
	}))
	defer srv.Close()

	items, err := NewTriviaAPIClient(srv.URL, "secret", srv.Client()).Fetch(context.Background(), 3, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "triviaapi", items[0].Source)
	assert.Equal(t, "Paris", items[0].Answer)
}

func TestTriviaAPIClientNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewTriviaAPIClient(srv.URL, "", srv.Client()).Fetch(context.Background(), 1, "")
	assert.Error(t, err)
}
