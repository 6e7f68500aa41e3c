package validation

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/iliyamo/movie-catalog/internal/model"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ParseMovieQuery cleans the listing filters.  It never fails: malformed
// paging falls back to the defaults and blank genres are dropped.  Genres
// may arrive as one comma-separated value or as repeated parameters
// (genres=a&genres=b or genres[]=a&genres[]=b).
func ParseMovieQuery(q url.Values) model.MovieQuery {
	page, limit := ParsePaging(q)
	return model.MovieQuery{
		Search:   strings.TrimSpace(q.Get("search")),
		Language: strings.TrimSpace(q.Get("language")),
		Genres:   parseGenres(q),
		Page:     page,
		Limit:    limit,
	}
}

func parseGenres(q url.Values) []string {
	raw := append(append([]string{}, q["genres"]...), q["genres[]"]...)
	if len(raw) == 1 {
		raw = strings.Split(raw[0], ",")
	}
	out := make([]string, 0, len(raw))
	for _, g := range raw {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}

// ParsePaging reads page and limit, keeping the defaults unless the value
// is a positive integer.
func ParsePaging(q url.Values) (page, limit int) {
	return positiveInt(q.Get("page"), DefaultPage), positiveInt(q.Get("limit"), DefaultLimit)
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
