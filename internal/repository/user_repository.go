package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// RoleResolver decides the role a new account is stored with, given whether
// an active admin already exists.  Returning an error aborts the insert.
type RoleResolver func(adminExists bool) (string, error)

// UserRepo stores accounts in the users table.
type UserRepo struct {
	db  *sql.DB
	now func() model.Timestamp
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db, now: model.Now} }

const userColumns = "id, name, email, password_hash, role, is_deleted, created_at, updated_at"

// deadlocked bootstrap transactions are retried this many times in total
const maxTxAttempts = 3

func normalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

func scanUser(row scanner) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.IsDeleted, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts u.  The admin lookup, the role decision, the email check
// and the insert run in one transaction; the locking read on the admin
// range serializes concurrent first registrations so exactly one of them
// becomes the bootstrap admin.  On success u carries its id, role and
// timestamps.
func (r *UserRepo) Create(ctx context.Context, u *model.User, resolve RoleResolver) error {
	u.Email = normalizeEmail(u.Email)
	u.Name = strings.TrimSpace(u.Name)
	var err error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		if err = r.create(ctx, u, resolve); !isDeadlock(err) {
			return err
		}
	}
	return err
}

func (r *UserRepo) create(ctx context.Context, u *model.User, resolve RoleResolver) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var adminID string
	adminExists := true
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM users WHERE role = 'admin' AND is_deleted = 0 LIMIT 1 FOR UPDATE").Scan(&adminID)
	if errors.Is(err, sql.ErrNoRows) {
		adminExists, err = false, nil
	}
	if err != nil {
		return err
	}

	role, err := resolve(adminExists)
	if err != nil {
		return err
	}

	var one int
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE email = ? AND is_deleted = 0 LIMIT 1", u.Email).Scan(&one)
	switch {
	case err == nil:
		return ErrEmailExists
	case !errors.Is(err, sql.ErrNoRows):
		return err
	}

	id, now := model.NewID(), r.now()
	_, err = tx.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password_hash, role, is_deleted, created_at, updated_at) VALUES (?, ?, ?, ?, ?, 0, ?, ?)",
		id, u.Name, u.Email, u.PasswordHash, role, now, now)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrEmailExists
		}
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}

	u.ID, u.Role, u.IsDeleted = id, role, false
	u.CreatedAt, u.UpdatedAt = now, now
	return nil
}

// AdminExists reports whether any active admin account exists.
func (r *UserRepo) AdminExists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE role = 'admin' AND is_deleted = 0)").Scan(&exists)
	return exists, err
}

// GetActiveByEmail fetches an active user by case-folded email.
func (r *UserRepo) GetActiveByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ? AND is_deleted = 0 LIMIT 1", normalizeEmail(email)))
}

// GetActiveByID fetches an active user by id.
func (r *UserRepo) GetActiveByID(ctx context.Context, id string) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ? AND is_deleted = 0 LIMIT 1", id))
}

// UpdateProfile changes the supplied fields (nil = unchanged) and always
// refreshes updated_at.
func (r *UserRepo) UpdateProfile(ctx context.Context, id string, name, email *string) (*model.User, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if name != nil {
		sets = append(sets, "name = ?")
		args = append(args, strings.TrimSpace(*name))
	}
	if email != nil {
		sets = append(sets, "email = ?")
		args = append(args, normalizeEmail(*email))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, r.now(), id)

	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ? AND is_deleted = 0", args...)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return r.GetActiveByID(ctx, id)
}

// UpdatePassword replaces the stored hash of an active user.
func (r *UserRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ? AND is_deleted = 0",
		hash, r.now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
