package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/config"
)

func sqliteConfig() *config.App {
	return &config.App{
		Name:                    "trivia-api-test",
		Env:                     "test",
		HTTPAddr:                "127.0.0.1:0",
		GracefulShutdownTimeout: time.Second,
		Store:                   config.Store{Driver: config.DriverSQLite, SQLiteDSN: ":memory:"},
		Trivia:                  config.Trivia{PageSize: 10},
		CORS:                    config.CORS{AllowedOrigins: []string{"*"}},
	}
}

func call(t *testing.T, h http.Handler, method, target, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func TestApplicationEndToEnd(t *testing.T) {
	a, err := New(context.Background(), sqliteConfig())
	require.NoError(t, err)
	t.Cleanup(a.Close)
	h := a.Handler()

	code, body := call(t, h, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["categories"], 6)

	code, _ = call(t, h, http.MethodGet, "/questions", "")
	assert.Equal(t, http.StatusNotFound, code, "empty store has no first page")

	for _, q := range []string{
		`{"question":"What is the boiling point of water in Celsius?","answer":"100","category":1,"difficulty":1}`,
		`{"question":"Who painted the Mona Lisa?","answer":"Leonardo da Vinci","category":"2","difficulty":"2"}`,
		`{"question":"What is the largest ocean?","answer":"Pacific","category":3,"difficulty":1}`,
	} {
		code, body = call(t, h, http.MethodPost, "/questions", q)
		require.Equal(t, http.StatusOK, code, body)
	}
	assert.Equal(t, float64(3), body["total_questions"])

	code, body = call(t, h, http.MethodPost, "/questions/search", `{"searchTerm":"mona"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["total_questions"])

	code, body = call(t, h, http.MethodGet, "/categories/1/questions", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Science", body["current_category"])

	code, body = call(t, h, http.MethodPost, "/quizzes", `{"previous_questions":[],"quiz_category":{"id":3}}`)
	require.Equal(t, http.StatusOK, code)
	q := body["question"].(map[string]interface{})
	assert.Equal(t, float64(3), q["id"])

	code, body = call(t, h, http.MethodPost, "/quizzes", `{"previous_questions":[3],"quiz_category":{"id":3}}`)
	require.Equal(t, http.StatusOK, code)
	assert.Nil(t, body["question"])

	code, body = call(t, h, http.MethodDelete, "/questions/2", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["total_questions"])

	code, body = call(t, h, http.MethodDelete, "/questions/2", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, body["success"])

	code, _ = call(t, h, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestOpenStoreRejectsUnknownDriver(t *testing.T) {
	cfg := sqliteConfig()
	cfg.Store.Driver = "mongo"
	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNewRedisDisabledWithoutAddr(t *testing.T) {
	assert.Nil(t, NewRedis(sqliteConfig()))

	cfg := sqliteConfig()
	cfg.Redis.Addr = "127.0.0.1:6379"
	client := NewRedis(cfg)
	require.NotNil(t, client)
	assert.NoError(t, client.Close())
}
