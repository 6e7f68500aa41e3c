package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/iliyamo/movie-catalog/internal/apperror"
	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/validation"
)

const (
	MsgMovieExists       = "Movie already exists with same title, language, and release year"
	MsgMovieCreateFailed = "Movie creation failed"
	MsgMovieUpdateFailed = "Movie update failed"
	MsgMovieDeleteFailed = "Movie deletion failed"
	msgMovieFetchFailed  = "Movie fetch failed"
)

// MovieService implements the catalog operations.
type MovieService struct {
	movies MovieStore
	log    *zap.Logger
}

func NewMovieService(movies MovieStore, log *zap.Logger) *MovieService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MovieService{movies: movies, log: log}
}

// Search returns one page of active movies.  It never fails: a storage
// error is logged and answered with an empty page that still echoes the
// requested page and limit.
func (s *MovieService) Search(ctx context.Context, q model.MovieQuery) model.MoviePage {
	if q.Page < 1 {
		q.Page = validation.DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = validation.DefaultLimit
	}
	q.Genres = validation.NormalizeGenres(q.Genres)

	empty := model.MoviePage{
		Movies:     []model.Movie{},
		Pagination: model.Pagination{Page: q.Page, Limit: q.Limit},
	}
	movies, total, err := s.movies.Search(ctx, q)
	if err != nil {
		s.log.Error("movie search failed", zap.Error(err))
		return empty
	}

	return model.MoviePage{
		Movies: movies,
		Pagination: model.Pagination{
			Page:         q.Page,
			Limit:        q.Limit,
			TotalRecords: total,
			TotalPages:   model.PageCount(total, q.Limit),
			HasMore:      total-int64(q.Offset()) > int64(len(movies)),
		},
	}
}

// GetByID returns the active movie, or nil when there is none.
func (s *MovieService) GetByID(ctx context.Context, id string) (*model.Movie, error) {
	if !model.ValidID(id) {
		return nil, nil
	}
	m, err := s.movies.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, apperror.Wrap(err, apperror.CodeInternal, msgMovieFetchFailed)
	}
	return m, nil
}

// Create stores a new movie.
func (s *MovieService) Create(ctx context.Context, m *model.Movie) (*model.Movie, error) {
	if err := s.movies.Create(ctx, m); err != nil {
		if errors.Is(err, repository.ErrMovieExists) {
			return nil, apperror.New(apperror.CodeConflict, MsgMovieExists)
		}
		return nil, apperror.Wrap(err, apperror.CodeInternal, MsgMovieCreateFailed)
	}
	return m, nil
}

// Update applies p and returns the updated movie, or nil when no active
// movie has that id.
func (s *MovieService) Update(ctx context.Context, id string, p model.MoviePatch) (*model.Movie, error) {
	if !model.ValidID(id) {
		return nil, nil
	}
	m, err := s.movies.Update(ctx, id, p)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, nil
		case errors.Is(err, repository.ErrMovieExists):
			return nil, apperror.New(apperror.CodeConflict, MsgMovieExists)
		default:
			return nil, apperror.Wrap(err, apperror.CodeInternal, MsgMovieUpdateFailed)
		}
	}
	return m, nil
}

// SoftDelete hides the movie and returns its final state, or nil when no
// active movie has that id.
func (s *MovieService) SoftDelete(ctx context.Context, id string) (*model.Movie, error) {
	if !model.ValidID(id) {
		return nil, nil
	}
	m, err := s.movies.SoftDelete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, apperror.Wrap(err, apperror.CodeInternal, MsgMovieDeleteFailed)
	}
	return m, nil
}

// Stats summarizes the active catalog; on failure it logs and reports an
// empty catalog.
func (s *MovieService) Stats(ctx context.Context) model.MovieStats {
	stats, err := s.movies.Stats(ctx)
	if err != nil {
		s.log.Error("movie stats failed", zap.Error(err))
		return model.MovieStats{LanguageCounts: []model.LanguageCount{}}
	}
	return stats
}
