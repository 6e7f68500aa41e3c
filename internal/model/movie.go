package model

import "math"

// Movie represents a catalog entry in the `movies` table.
//
// Fields:
//  ID          – 24-char object id.
//  Title       – trimmed title.
//  Language    – trimmed language from the allow-list.
//  Genres      – canonical genre names (e.g. SCI-FI).
//  ReleaseYear – optional release year.
//  IsDeleted   – 1 once soft-deleted; such rows are invisible to reads.
//  CreatedAt   – creation time, drives newest-first ordering.
//  UpdatedAt   – refreshed by every update and by soft delete.
type Movie struct {
	ID          string    `json:"Movie-Id"`
	Title       string    `json:"Title"`
	Language    string    `json:"Language"`
	Genres      []string  `json:"Genres"`
	ReleaseYear *int      `json:"Release-Year"`
	IsDeleted   int       `json:"Is-Deleted"`
	CreatedAt   Timestamp `json:"Created-At"`
	UpdatedAt   Timestamp `json:"Updated-At"`
}

// MoviePatch lists the fields of a partial update.  Absent fields are left
// untouched; ReleaseYear may also be explicitly cleared with null.
type MoviePatch struct {
	Title       Optional[string]
	Language    Optional[string]
	Genres      Optional[[]string]
	ReleaseYear Optional[int]
}

// Empty reports whether the patch changes nothing.
func (p MoviePatch) Empty() bool {
	return !p.Title.Set && !p.Language.Set && !p.Genres.Set && !p.ReleaseYear.Set
}

// MovieQuery holds the search filters and paging of a movie listing.
type MovieQuery struct {
	Search   string
	Language string
	Genres   []string
	Page     int
	Limit    int
}

// Offset is the number of rows skipped before the requested page.
func (q MovieQuery) Offset() int { return PageOffset(q.Page, q.Limit) }

// PageOffset is (page-1)*limit, saturating at math.MaxInt.
func PageOffset(page, limit int) int {
	if page <= 1 || limit <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// PageCount is the number of pages of size limit that hold total rows.
func PageCount(total int64, limit int) int64 {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total-1)/int64(limit) + 1
}

// PageCap bounds the initial capacity of a page buffer; limit is caller input.
func PageCap(limit int) int { return min(max(limit, 0), maxPageCap) }

const maxPageCap = 100

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	Page         int   `json:"page"`
	Limit        int   `json:"limit"`
	TotalRecords int64 `json:"totalRecords"`
	TotalPages   int64 `json:"totalPages"`
	HasMore      bool  `json:"hasMore"`
}

// MoviePage is one page of search results.
type MoviePage struct {
	Movies     []Movie    `json:"movies"`
	Pagination Pagination `json:"pagination"`
}

// LanguageCount is one bucket of the per-language statistics.
type LanguageCount struct {
	Language string `json:"_id"`
	Count    int64  `json:"count"`
}

// MovieStats summarizes the active catalog.
type MovieStats struct {
	TotalMovies    int64           `json:"totalMovies"`
	LanguageCounts []LanguageCount `json:"languageCounts"`
}
