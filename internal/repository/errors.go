// Package repository contains the MySQL data access for users, movies and
// activity logs.  Sentinel errors let the service layer tell the expected
// outcomes (not found, uniqueness conflicts, forbidden role) apart from
// genuine storage failures.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when no active row matches.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when an active account already uses the email.
var ErrEmailExists = errors.New("email already exists")

// ErrMovieExists is returned when an active movie already holds the same
// (title, release year, language).
var ErrMovieExists = errors.New("movie already exists")

// ErrForbidden is returned by a RoleResolver that refuses the requested role.
var ErrForbidden = errors.New("forbidden")

// ErrDuplicate is returned when a row with the same primary key exists.
var ErrDuplicate = errors.New("duplicate")

const (
	errDupEntry = 1062 // ER_DUP_ENTRY
	errDeadlock = 1213 // ER_LOCK_DEADLOCK
)

func mysqlErrNumber(err error) uint16 {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}

func isDuplicateKey(err error) bool { return err != nil && mysqlErrNumber(err) == errDupEntry }

func isDeadlock(err error) bool { return err != nil && mysqlErrNumber(err) == errDeadlock }

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
