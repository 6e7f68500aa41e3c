package validation

import (
	"strings"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// normalizer is implemented by request bodies that clean their fields before
// the rules run.
type normalizer interface {
	Normalize()
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func lowerTrimPtr(s *string) {
	if s != nil {
		*s = strings.ToLower(strings.TrimSpace(*s))
	}
}

func trimAll(ss []string) {
	for i := range ss {
		ss[i] = strings.TrimSpace(ss[i])
	}
}

// RegisterRequest is the body of both registration endpoints.  An absent
// role means "user".
type RegisterRequest struct {
	Name            string  `json:"name" validate:"required,person_name,max=20"`
	Email           string  `json:"email" validate:"required,email_basic,max=40"`
	Password        string  `json:"password" validate:"required,password_strength"`
	ConfirmPassword string  `json:"confirmPassword" validate:"required,eqfield=Password"`
	Role            *string `json:"role" validate:"nonblank,oneof=user admin"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Password = strings.TrimSpace(r.Password)
	r.ConfirmPassword = strings.TrimSpace(r.ConfirmPassword)
	if r.Role == nil {
		role := model.RoleUser
		r.Role = &role
	}
	trimPtr(r.Role)
}

// RoleValue returns the requested role.
func (r *RegisterRequest) RoleValue() string {
	if r.Role == nil {
		return model.RoleUser
	}
	return *r.Role
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email_basic,max=40"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Password = strings.TrimSpace(r.Password)
}

// UpdateProfileRequest changes the name and/or email; nil means unchanged.
type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitnil,nonblank,person_name,max=20"`
	Email *string `json:"email" validate:"omitnil,nonblank,email_basic,max=40"`
}

func (r *UpdateProfileRequest) Normalize() {
	trimPtr(r.Name)
	lowerTrimPtr(r.Email)
}

func (r *UpdateProfileRequest) empty() bool { return r.Name == nil && r.Email == nil }

type ChangePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword" validate:"required"`
	NewPassword        string `json:"newPassword" validate:"required,password_strength"`
	ConfirmNewPassword string `json:"confirmNewPassword" validate:"required,eqfield=NewPassword"`
}

func (r *ChangePasswordRequest) Normalize() {
	r.CurrentPassword = strings.TrimSpace(r.CurrentPassword)
	r.NewPassword = strings.TrimSpace(r.NewPassword)
	r.ConfirmNewPassword = strings.TrimSpace(r.ConfirmNewPassword)
}

type CreateMovieRequest struct {
	Title       string   `json:"title" validate:"required,movie_title,max=40"`
	Language    string   `json:"language" validate:"required,max=30,allowed_language"`
	Genres      []string `json:"genres" validate:"min=1,max=10,dive,nonblank,allowed_genre,max=30,genre_chars"`
	ReleaseYear *int     `json:"releaseYear" validate:"omitnil,release_year"`
}

func (r *CreateMovieRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Language = strings.TrimSpace(r.Language)
	trimAll(r.Genres)
}

// Movie builds the entity to insert, with language and genres in canonical
// upper-case form.
func (r *CreateMovieRequest) Movie() *model.Movie {
	return &model.Movie{
		Title:       r.Title,
		Language:    NormalizeLanguage(r.Language),
		Genres:      NormalizeGenres(r.Genres),
		ReleaseYear: r.ReleaseYear,
	}
}

// UpdateMovieRequest is a partial update.  A null title, language or genre
// list counts as absent; a null releaseYear clears the year.
type UpdateMovieRequest struct {
	Title       *string             `json:"title" validate:"omitnil,nonblank,movie_title,max=100"`
	Language    *string             `json:"language" validate:"omitnil,nonblank,max=30,allowed_language"`
	Genres      []string            `json:"genres" validate:"omitnil,min=1,max=10,dive,nonblank,allowed_genre,max=30,genre_chars"`
	ReleaseYear model.Optional[int] `json:"releaseYear" validate:"-"`
}

func (r *UpdateMovieRequest) Normalize() {
	trimPtr(r.Title)
	trimPtr(r.Language)
	trimAll(r.Genres)
}

func (r *UpdateMovieRequest) empty() bool {
	return r.Title == nil && r.Language == nil && r.Genres == nil && !r.ReleaseYear.Set
}

// Patch converts the request into the repository's partial update.
func (r *UpdateMovieRequest) Patch() model.MoviePatch {
	var p model.MoviePatch
	if r.Title != nil {
		p.Title = model.Some(*r.Title)
	}
	if r.Language != nil {
		p.Language = model.Some(NormalizeLanguage(*r.Language))
	}
	if r.Genres != nil {
		p.Genres = model.Some(NormalizeGenres(r.Genres))
	}
	p.ReleaseYear = r.ReleaseYear
	return p
}
