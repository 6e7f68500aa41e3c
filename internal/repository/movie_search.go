package repository

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// escapeLike neutralizes LIKE wildcards in user input; '!' is the escape
// character used by every pattern built here.
func escapeLike(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(s)
}

// Search returns one page of active movies matching q, newest first, plus
// the total number of matches.  Language is an exact match, genres match if
// any of them is present, and the free-text term is a case-insensitive
// substring of the title, the language or any genre.
func (r *MovieRepo) Search(ctx context.Context, q model.MovieQuery) ([]model.Movie, int64, error) {
	where := []string{"is_deleted = 0"}
	args := []any{}

	if lang := strings.TrimSpace(q.Language); lang != "" {
		where = append(where, "language = ?")
		args = append(args, lang)
	}
	if len(q.Genres) > 0 {
		g, err := json.Marshal(q.Genres)
		if err != nil {
			return nil, 0, err
		}
		where = append(where, "JSON_OVERLAPS(genres, CAST(? AS JSON))")
		args = append(args, string(g))
	}
	if term := strings.TrimSpace(q.Search); term != "" {
		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
		where = append(where, `(LOWER(title) LIKE ? ESCAPE '!'
			OR LOWER(language) LIKE ? ESCAPE '!'
			OR JSON_SEARCH(LOWER(genres), 'one', ?, '!') IS NOT NULL)`)
		args = append(args, pattern, pattern, pattern)
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := "SELECT " + movieColumns + `
		FROM movies
		WHERE ` + cond + `
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), q.Limit, q.Offset())

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Movie, 0, model.PageCap(q.Limit))
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
