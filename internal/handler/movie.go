package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/apperror"
	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/validation"
)

// Catalog is the part of service.MovieService the handlers use.  The
// lookups return (nil, nil) when no active movie matches.
type Catalog interface {
	Search(ctx context.Context, q model.MovieQuery) model.MoviePage
	GetByID(ctx context.Context, id string) (*model.Movie, error)
	Create(ctx context.Context, m *model.Movie) (*model.Movie, error)
	Update(ctx context.Context, id string, p model.MoviePatch) (*model.Movie, error)
	SoftDelete(ctx context.Context, id string) (*model.Movie, error)
	Stats(ctx context.Context) model.MovieStats
}

// MovieHandler serves /api/movies.
type MovieHandler struct {
	movies Catalog
}

func NewMovieHandler(movies Catalog) *MovieHandler { return &MovieHandler{movies: movies} }

// movieID reads the :movieId path parameter, rejecting malformed ids
// before any query runs.
func movieID(c echo.Context) (string, error) {
	id := c.Param("movieId")
	if !model.ValidID(id) {
		return "", apperror.New(apperror.CodeInvalid, MsgInvalidID)
	}
	return id, nil
}

var errMovieNotFound = apperror.New(apperror.CodeNotFound, MsgMovieNotFound)

// List searches the catalog.  Failures surface as an empty page.
func (h *MovieHandler) List(c echo.Context) error {
	q := validation.ParseMovieQuery(c.QueryParams())

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	page := h.movies.Search(ctx, q)
	return respond(c, http.StatusOK, "Movies fetched successfully", page)
}

func (h *MovieHandler) Get(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	m, err := h.movies.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return errMovieNotFound
	}
	return respond(c, http.StatusOK, "Movie fetched successfully", echo.Map{"movie": m})
}

func (h *MovieHandler) Create(c echo.Context) error {
	var req validation.CreateMovieRequest
	if err := validation.BindJSON(c, &req); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	m, err := h.movies.Create(ctx, req.Movie())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Movie created successfully", echo.Map{"movie": m})
}

func (h *MovieHandler) Update(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}
	var req validation.UpdateMovieRequest
	if err := validation.BindJSON(c, &req); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	m, err := h.movies.Update(ctx, id, req.Patch())
	if err != nil {
		return err
	}
	if m == nil {
		return errMovieNotFound
	}
	return respond(c, http.StatusOK, "Movie updated successfully", echo.Map{"movie": m})
}

func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	m, err := h.movies.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return errMovieNotFound
	}
	return respond(c, http.StatusOK, "Movie deleted successfully", nil)
}

func (h *MovieHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	stats := h.movies.Stats(ctx)
	return respond(c, http.StatusOK, "Stats fetched successfully", echo.Map{"stats": stats})
}
