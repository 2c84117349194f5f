package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/internal/app"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/question/external"
)

func main() {
	var (
		source     = flag.String("source", "opentdb", "Upstream source: opentdb or triviaapi")
		amount     = flag.Int("amount", 10, "Number of questions to fetch")
		difficulty = flag.String("difficulty", "", "easy, medium or hard; empty for any")
	)
	flag.Parse()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.New(cfg.Name+"-importer", cfg.Env)

	src, err := newSource(cfg, *source)
	if err != nil {
		logger.Fatal().Err(err).Msg("unknown source. Use: opentdb or triviaapi")
	}

	report, err := run(ctx, cfg, src, *amount, *difficulty, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("import failed")
	}
	logger.Info().Int("imported", report.Imported).Int("skipped", report.Skipped).Msg("done")
}

func newSource(cfg *config.App, name string) (question.Source, error) {
	httpClient := &http.Client{Timeout: cfg.Importer.HTTPTimeout}
	switch name {
	case "opentdb":
		return external.NewOpenTDBClient(cfg.Importer.OpenTDBURL, httpClient), nil
	case "triviaapi":
		return external.NewTriviaAPIClient(cfg.Importer.TriviaAPIURL, cfg.Importer.TriviaAPIKey, httpClient), nil
	default:
		return nil, fmt.Errorf("unknown source %q", name)
	}
}

// run opens the configured store and imports from src. Resources are released
// before it returns so main can exit non-zero on error.
func run(ctx context.Context, cfg *config.App, src question.Source, amount int, difficulty string, logger zerolog.Logger) (question.ImportReport, error) {
	store, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		return question.ImportReport{}, fmt.Errorf("open question store: %w", err)
	}
	defer store.Close()

	redisClient := app.NewRedis(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	svc := app.NewService(cfg, store, redisClient, logger)
	return question.NewImporter(svc, src, logger).Import(ctx, amount, difficulty)
}
