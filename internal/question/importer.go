package question

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/question/external"
)

// Source is an upstream trivia provider.
type Source interface {
	Name() string
	Fetch(ctx context.Context, amount int, difficulty string) ([]external.Item, error)
}

// ImportReport summarizes one import run.
type ImportReport struct {
	Fetched  int
	Imported int
	Skipped  int
}

// Importer copies upstream questions into the store through the Service, so
// they get the same validation as API-created questions.
type Importer struct {
	svc    *Service
	source Source
	logger zerolog.Logger
}

func NewImporter(svc *Service, source Source, logger zerolog.Logger) *Importer {
	return &Importer{
		svc:    svc,
		source: source,
		logger: logger.With().Str("component", "importer").Str("source", source.Name()).Logger(),
	}
}

// Import fetches amount questions and stores those whose category matches an
// existing category label. Unmatched or invalid items are skipped.
func (i *Importer) Import(ctx context.Context, amount int, difficulty string) (ImportReport, error) {
	labels, err := i.svc.ListCategories(ctx)
	if err != nil {
		return ImportReport{}, fmt.Errorf("load categories: %w", err)
	}
	items, err := i.source.Fetch(ctx, amount, difficulty)
	if err != nil {
		return ImportReport{}, fmt.Errorf("fetch from %s: %w", i.source.Name(), err)
	}

	report := ImportReport{Fetched: len(items)}
	for _, item := range items {
		categoryID, ok := MatchCategory(labels, item.Category)
		if !ok {
			report.Skipped++
			i.logger.Debug().Str("category", item.Category).Msg("no matching category")
			continue
		}
		cat := FlexInt(categoryID)
		diff := FlexInt(DifficultyLevel(item.Difficulty))
		if _, err := i.svc.AddQuestion(ctx, CreateQuestionInput{
			Question:   item.Question,
			Answer:     item.Answer,
			Category:   &cat,
			Difficulty: &diff,
		}); err != nil {
			report.Skipped++
			i.logger.Warn().Err(err).Str("question", item.Question).Msg("import failed")
			continue
		}
		report.Imported++
	}

	i.logger.Info().
		Int("fetched", report.Fetched).
		Int("imported", report.Imported).
		Int("skipped", report.Skipped).
		Msg("import finished")
	return report, nil
}

// MatchCategory finds the lowest category id whose label appears as a word of
// name, ignoring case and a plural "s" ("Science & Nature" -> Science,
// "Sport & Leisure" -> Sports).
func MatchCategory(labels CategoryLabels, name string) (int, bool) {
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	best, found := 0, false
	for id, label := range labels {
		want := singular(strings.ToLower(label))
		for _, w := range words {
			if singular(w) == want && (!found || id < best) {
				best, found = id, true
			}
		}
	}
	return best, found
}

// DifficultyLevel maps easy/medium/hard to 1/2/3; anything else is medium.
func DifficultyLevel(s string) int {
	switch strings.ToLower(s) {
	case "easy":
		return 1
	case "hard":
		return 3
	default:
		return 2
	}
}

func singular(w string) string {
	if len(w) > 3 {
		return strings.TrimSuffix(w, "s")
	}
	return w
}
