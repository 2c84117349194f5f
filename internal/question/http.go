package question

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const maxBodyBytes = 1 << 20

// HTTPHandler exposes the question endpoints.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a question HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "question_http").Logger(),
	}
}

// Routes mounts the question endpoints on r.
func (h *HTTPHandler) Routes(r chi.Router) {
	r.Get("/categories", h.GetCategories)
	r.Get("/categories/{id}/questions", h.GetCategoryQuestions)
	r.Get("/questions", h.ListQuestions)
	r.Post("/questions", h.CreateQuestion)
	r.Post("/questions/search", h.SearchQuestions)
	r.Delete("/questions/{id}", h.DeleteQuestion)
	r.Post("/quizzes", h.PlayQuiz)
}

// GetCategories handles GET /categories
func (h *HTTPHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	labels, err := h.svc.ListCategories(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"categories": labels,
	})
}

// ListQuestions handles GET /questions?page=N
func (h *HTTPHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListAll(r.Context(), pageParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        res.Questions,
		"total_questions":  res.Total,
		"categories":       res.Categories,
		"current_category": nil,
	})
}

// GetCategoryQuestions handles GET /categories/{id}/questions?page=N
func (h *HTTPHandler) GetCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondBadRequest(w)
		return
	}
	res, err := h.svc.ListByCategory(r.Context(), id, pageParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"questions":        res.Questions,
		"total_questions":  res.Total,
		"current_category": res.CurrentCategory,
	})
}

// CreateQuestion handles POST /questions
func (h *HTTPHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var in CreateQuestionInput
	if err := decodeBody(w, r, &in, KindUnprocessable); err != nil {
		h.respondError(w, r, err)
		return
	}
	res, err := h.svc.Create(r.Context(), in, pageParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"added":           res.Question.ID,
		"questions":       res.Questions,
		"total_questions": res.Total,
	})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondBadRequest(w)
		return
	}
	res, err := h.svc.Delete(r.Context(), id, pageParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"deleted":         res.DeletedID,
		"questions":       res.Questions,
		"total_questions": res.Total,
	})
}

// SearchQuestions handles POST /questions/search
func (h *HTTPHandler) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := decodeBody(w, r, &req, KindBadRequest); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(w, r, newError(KindBadRequest, "question.SearchQuestions", err))
		return
	}
	res, err := h.svc.Search(r.Context(), *req.SearchTerm, pageParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"questions":       res.Questions,
		"total_questions": res.Total,
	})
}

// PlayQuiz handles POST /quizzes. The question is null once the category is exhausted.
func (h *HTTPHandler) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	var req QuizRequest
	if err := decodeBody(w, r, &req, KindBadRequest); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(w, r, newError(KindBadRequest, "question.PlayQuiz", err))
		return
	}
	q, ok, err := h.svc.NextQuestion(r.Context(), int(*req.QuizCategory.ID), req.PreviousIDs())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	var payload interface{}
	if ok {
		payload = q
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"question": payload,
	})
}

func (h *HTTPHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	logger := logging.FromContext(r.Context())
	if logger.GetLevel() == zerolog.Disabled {
		logger = h.logger
	}
	evt := logger.Debug()
	if status >= http.StatusInternalServerError {
		evt = logger.Error()
	}
	evt.Err(err).Int("status", status).Msg("request failed")
	httperrors.RespondStatus(w, status)
}

// StatusFor maps an error Kind to its HTTP status.
func StatusFor(err error) int {
	switch KindOf(err) {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnprocessable:
		return http.StatusUnprocessableEntity
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads a JSON object into dst. Missing or syntactically broken
// bodies are BadRequest; well-formed JSON with wrongly typed fields gets fieldKind.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, fieldKind Kind) error {
	const op = "question.decodeBody"
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}
	var syntaxErr *json.SyntaxError
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF),
		errors.As(err, &syntaxErr), errors.As(err, &maxErr):
		return newError(KindBadRequest, op, err)
	default:
		return newError(fieldKind, op, err)
	}
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

func pageParam(r *http.Request) int {
	return ParsePage(r.URL.Query().Get("page"))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
