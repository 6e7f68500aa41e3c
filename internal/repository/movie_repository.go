package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// MovieRepo stores catalog entries in the movies table.
type MovieRepo struct {
	db  *sql.DB
	now func() model.Timestamp
}

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db, now: model.Now} }

const movieColumns = "id, title, language, genres, release_year, is_deleted, created_at, updated_at"

func scanMovie(row scanner) (*model.Movie, error) {
	var (
		m      model.Movie
		genres []byte
		year   sql.NullInt64
	)
	if err := row.Scan(&m.ID, &m.Title, &m.Language, &genres, &year, &m.IsDeleted, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	m.Genres = []string{}
	if len(genres) > 0 {
		if err := json.Unmarshal(genres, &m.Genres); err != nil {
			return nil, err
		}
	}
	if year.Valid {
		y := int(year.Int64)
		m.ReleaseYear = &y
	}
	return &m, nil
}

func genresArg(genres []string) (string, error) {
	if genres == nil {
		genres = []string{}
	}
	b, err := json.Marshal(genres)
	return string(b), err
}

func yearArg(year *int) any {
	if year == nil {
		return nil
	}
	return *year
}

// Create inserts m and fills in its id and timestamps.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	genres, err := genresArg(m.Genres)
	if err != nil {
		return err
	}
	id, now := model.NewID(), r.now()
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO movies (id, title, language, genres, release_year, is_deleted, created_at, updated_at) VALUES (?, ?, ?, ?, ?, 0, ?, ?)",
		id, m.Title, m.Language, genres, yearArg(m.ReleaseYear), now, now)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrMovieExists
		}
		return err
	}
	m.ID, m.IsDeleted = id, 0
	m.CreatedAt, m.UpdatedAt = now, now
	if m.Genres == nil {
		m.Genres = []string{}
	}
	return nil
}

// GetActiveByID fetches a movie that is not soft-deleted.
func (r *MovieRepo) GetActiveByID(ctx context.Context, id string) (*model.Movie, error) {
	return scanMovie(r.db.QueryRowContext(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE id = ? AND is_deleted = 0", id))
}

// Update applies p to an active movie and returns the row as stored.  Only
// release_year can be cleared; a null title, language or genre list leaves
// the column unchanged.
func (r *MovieRepo) Update(ctx context.Context, id string, p model.MoviePatch) (_ *model.Movie, err error) {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	if p.Title.Present() {
		sets = append(sets, "title = ?")
		args = append(args, p.Title.Value)
	}
	if p.Language.Present() {
		sets = append(sets, "language = ?")
		args = append(args, p.Language.Value)
	}
	if p.Genres.Present() {
		g, err := genresArg(p.Genres.Value)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "genres = ?")
		args = append(args, g)
	}
	if p.ReleaseYear.Set {
		if p.ReleaseYear.Null {
			sets = append(sets, "release_year = NULL")
		} else {
			sets = append(sets, "release_year = ?")
			args = append(args, p.ReleaseYear.Value)
		}
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, r.now(), id)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"UPDATE movies SET "+strings.Join(sets, ", ")+" WHERE id = ? AND is_deleted = 0", args...)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrMovieExists
		}
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	m, err := scanMovie(tx.QueryRowContext(ctx, "SELECT "+movieColumns+" FROM movies WHERE id = ?", id))
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return m, nil
}

// SoftDelete marks an active movie deleted and returns its final state.
func (r *MovieRepo) SoftDelete(ctx context.Context, id string) (_ *model.Movie, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"UPDATE movies SET is_deleted = 1, updated_at = ? WHERE id = ? AND is_deleted = 0", r.now(), id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}

	m, err := scanMovie(tx.QueryRowContext(ctx, "SELECT "+movieColumns+" FROM movies WHERE id = ?", id))
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return m, nil
}

// Stats counts active movies per language, largest bucket first.  The total
// is the sum of the buckets so both come from the same snapshot.
func (r *MovieRepo) Stats(ctx context.Context) (model.MovieStats, error) {
	stats := model.MovieStats{LanguageCounts: []model.LanguageCount{}}
	rows, err := r.db.QueryContext(ctx,
		`SELECT language, COUNT(*) AS cnt
		FROM movies
		WHERE is_deleted = 0
		GROUP BY language
		ORDER BY cnt DESC, language ASC`)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var lc model.LanguageCount
		if err := rows.Scan(&lc.Language, &lc.Count); err != nil {
			return stats, err
		}
		stats.TotalMovies += lc.Count
		stats.LanguageCounts = append(stats.LanguageCounts, lc)
	}
	return stats, rows.Err()
}
