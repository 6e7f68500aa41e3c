// Command seed loads the sample catalog.  Movies that already exist are
// skipped, so it can be run repeatedly.
package main

import (
	"context"
	"errors"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/database"
	"github.com/iliyamo/movie-catalog/internal/logger"
	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/validation"
)

// MovieCreator is the write side of the movie repository.
type MovieCreator interface {
	Create(ctx context.Context, m *model.Movie) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Open(database.DSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName))
	if err != nil {
		zl.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}

	created, skipped, err := seed(ctx, repository.NewMovieRepo(db), validation.MustNew(), sampleMovies)
	if err != nil {
		zl.Fatal("seed failed", zap.Error(err), zap.Int("created", created))
	}
	zl.Info("seed complete", zap.Int("created", created), zap.Int("skipped", skipped))
}

// seed validates and inserts every entry.  Duplicates are counted as skipped;
// any other failure stops the run.
func seed(ctx context.Context, movies MovieCreator, v *validation.Validator, entries []validation.CreateMovieRequest) (created, skipped int, err error) {
	for i := range entries {
		req := entries[i]
		req.Normalize()
		if err := v.Validate(&req); err != nil {
			return created, skipped, err
		}
		if err := movies.Create(ctx, req.Movie()); err != nil {
			if errors.Is(err, repository.ErrMovieExists) {
				skipped++
				continue
			}
			return created, skipped, err
		}
		created++
	}
	return created, skipped, nil
}
