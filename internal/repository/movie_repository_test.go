package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-catalog/internal/model"
)

func newMovieRepo(t *testing.T) (*MovieRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := NewMovieRepo(db)
	repo.now = func() model.Timestamp { return fixedNow }
	return repo, mock
}

func movieRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "language", "genres", "release_year", "is_deleted", "created_at", "updated_at"})
}

func TestMovieCreate(t *testing.T) {
	repo, mock := newMovieRepo(t)
	year := 2010
	mock.ExpectExec("INSERT INTO movies").
		WithArgs(sqlmock.AnyArg(), "Inception", "English", `["SCI-FI","THRILLER"]`, 2010, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	m := &model.Movie{Title: "Inception", Language: "English", Genres: []string{"SCI-FI", "THRILLER"}, ReleaseYear: &year}
	require.NoError(t, repo.Create(context.Background(), m))
	assert.True(t, model.ValidID(m.ID))
	assert.Equal(t, fixedNow, m.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieCreateWithoutYearStoresNull(t *testing.T) {
	repo, mock := newMovieRepo(t)
	mock.ExpectExec("INSERT INTO movies").
		WithArgs(sqlmock.AnyArg(), "Untitled", "Hindi", `[]`, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	m := &model.Movie{Title: "Untitled", Language: "Hindi"}
	require.NoError(t, repo.Create(context.Background(), m))
	assert.Equal(t, []string{}, m.Genres)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieCreateDuplicate(t *testing.T) {
	repo, mock := newMovieRepo(t)
	mock.ExpectExec("INSERT INTO movies").WillReturnError(&mysql.MySQLError{Number: 1062})

	err := repo.Create(context.Background(), &model.Movie{Title: "Inception", Language: "English"})
	assert.ErrorIs(t, err, ErrMovieExists)
}

func TestMovieGetActiveByID(t *testing.T) {
	repo, mock := newMovieRepo(t)
	id := model.NewID()
	mock.ExpectQuery("FROM movies WHERE id = \\? AND is_deleted = 0").
		WithArgs(id).
		WillReturnRows(movieRows().AddRow(id, "Dangal", "Hindi", []byte(`["DRAMA"]`), nil, 0, fixedNow.Time, fixedNow.Time))

	m, err := repo.GetActiveByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []string{"DRAMA"}, m.Genres)
	assert.Nil(t, m.ReleaseYear)

	mock.ExpectQuery("FROM movies WHERE id = \\?").WillReturnRows(movieRows())
	_, err = repo.GetActiveByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMovieUpdate(t *testing.T) {
	repo, mock := newMovieRepo(t)
	id := model.NewID()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE movies SET title = ?, genres = ?, release_year = NULL, updated_at = ? WHERE id = ? AND is_deleted = 0")).
		WithArgs("Dune", `["SCI-FI"]`, sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM movies WHERE id = \\?").
		WithArgs(id).
		WillReturnRows(movieRows().AddRow(id, "Dune", "English", `["SCI-FI"]`, nil, 0, fixedNow.Time, fixedNow.Time))
	mock.ExpectCommit()

	patch := model.MoviePatch{
		Title:       model.Some("Dune"),
		Genres:      model.Some([]string{"SCI-FI"}),
		ReleaseYear: model.Null[int](),
	}
	m, err := repo.Update(context.Background(), id, patch)
	require.NoError(t, err)
	assert.Equal(t, "Dune", m.Title)
	assert.Nil(t, m.ReleaseYear)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieUpdateMissing(t *testing.T) {
	repo, mock := newMovieRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE movies SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), model.NewID(), model.MoviePatch{ReleaseYear: model.Some(1999)})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieUpdateConflict(t *testing.T) {
	repo, mock := newMovieRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE movies SET").WillReturnError(&mysql.MySQLError{Number: 1062})
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), model.NewID(), model.MoviePatch{Title: model.Some("Taken")})
	assert.ErrorIs(t, err, ErrMovieExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieSoftDelete(t *testing.T) {
	repo, mock := newMovieRepo(t)
	id := model.NewID()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE movies SET is_deleted = 1").
		WithArgs(sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM movies WHERE id = \\?").
		WillReturnRows(movieRows().AddRow(id, "Dangal", "Hindi", `["DRAMA"]`, 2016, 1, fixedNow.Time, fixedNow.Time))
	mock.ExpectCommit()

	m, err := repo.SoftDelete(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1, m.IsDeleted)
	require.NotNil(t, m.ReleaseYear)
	assert.Equal(t, 2016, *m.ReleaseYear)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE movies SET is_deleted = 1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err = repo.SoftDelete(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieStats(t *testing.T) {
	repo, mock := newMovieRepo(t)
	mock.ExpectQuery("SELECT language, COUNT\\(\\*\\) AS cnt").
		WillReturnRows(sqlmock.NewRows([]string{"language", "cnt"}).
			AddRow("English", 5).
			AddRow("Hindi", 3))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(8), stats.TotalMovies)
	assert.Equal(t, []model.LanguageCount{{Language: "English", Count: 5}, {Language: "Hindi", Count: 3}}, stats.LanguageCounts)
}

func TestMovieStatsEmpty(t *testing.T) {
	repo, mock := newMovieRepo(t)
	mock.ExpectQuery("SELECT language").WillReturnRows(sqlmock.NewRows([]string{"language", "cnt"}))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalMovies)
	assert.NotNil(t, stats.LanguageCounts)
	assert.Empty(t, stats.LanguageCounts)
}
