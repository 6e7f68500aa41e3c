package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/validation"
)

type fakeMovies struct {
	seen map[string]bool
	fail error
}

func (f *fakeMovies) Create(_ context.Context, m *model.Movie) error {
	if f.fail != nil {
		return f.fail
	}
	if f.seen[m.Title] {
		return repository.ErrMovieExists
	}
	f.seen[m.Title] = true
	return nil
}

func TestSampleCatalogIsValid(t *testing.T) {
	require.Len(t, sampleMovies, 30)
	v := validation.MustNew()
	for _, m := range sampleMovies {
		req := m
		req.Normalize()
		assert.NoError(t, v.Validate(&req), m.Title)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	repo := &fakeMovies{seen: map[string]bool{}}
	v := validation.MustNew()

	created, skipped, err := seed(context.Background(), repo, v, sampleMovies)
	require.NoError(t, err)
	assert.Equal(t, 30, created)
	assert.Zero(t, skipped)

	created, skipped, err = seed(context.Background(), repo, v, sampleMovies)
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Equal(t, 30, skipped)
}

func TestSeedStopsOnStoreError(t *testing.T) {
	repo := &fakeMovies{seen: map[string]bool{}, fail: errors.New("db down")}

	created, _, err := seed(context.Background(), repo, validation.MustNew(), sampleMovies)
	require.Error(t, err)
	assert.Zero(t, created)
}

func TestSeedRejectsInvalidEntry(t *testing.T) {
	repo := &fakeMovies{seen: map[string]bool{}}
	bad := []validation.CreateMovieRequest{{Title: "", Language: "Klingon", Genres: []string{"Action"}}}

	_, _, err := seed(context.Background(), repo, validation.MustNew(), bad)
	assert.Error(t, err)
}
