package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Uniqueness among active rows is enforced with stored generated columns:
// they hold the natural key while is_deleted = 0 and NULL otherwise, and
// MySQL UNIQUE indexes ignore NULLs.  Soft-deleted rows therefore never block
// a new row with the same email or (title, release year, language).
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            CHAR(24)     NOT NULL,
		name          VARCHAR(64)  NOT NULL,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role          ENUM('user','admin') NOT NULL DEFAULT 'user',
		is_deleted    TINYINT(1)   NOT NULL DEFAULT 0,
		created_at    DATETIME(3)  NOT NULL,
		updated_at    DATETIME(3)  NOT NULL,
		active_email  VARCHAR(255) GENERATED ALWAYS AS (IF(is_deleted = 0, email, NULL)) STORED,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_active_email (active_email),
		KEY idx_users_role (role, is_deleted)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS movies (
		id           CHAR(24)     NOT NULL,
		title        VARCHAR(100) NOT NULL,
		language     VARCHAR(30)  NOT NULL,
		genres       JSON         NOT NULL,
		release_year SMALLINT     NULL,
		is_deleted   TINYINT(1)   NOT NULL DEFAULT 0,
		created_at   DATETIME(3)  NOT NULL,
		updated_at   DATETIME(3)  NOT NULL,
		active_key   VARCHAR(191) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin
			GENERATED ALWAYS AS (IF(is_deleted = 0, CONCAT_WS('|', title, IFNULL(release_year, ''), language), NULL)) STORED,
		PRIMARY KEY (id),
		UNIQUE KEY uq_movies_active_key (active_key),
		KEY idx_movies_created (is_deleted, created_at),
		KEY idx_movies_language (is_deleted, language)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

	`CREATE TABLE IF NOT EXISTS activity_logs (
		id            CHAR(24)      NOT NULL,
		activity_type VARCHAR(32)   NOT NULL,
		method        VARCHAR(10)   NOT NULL,
		url           VARCHAR(2048) NOT NULL,
		status_code   SMALLINT      NOT NULL,
		ip            VARCHAR(64)   NOT NULL DEFAULT '',
		user_agent    VARCHAR(512)  NOT NULL DEFAULT '',
		user_id       VARCHAR(24)   NOT NULL DEFAULT '',
		user_email    VARCHAR(255)  NOT NULL DEFAULT '',
		role          VARCHAR(16)   NOT NULL DEFAULT '',
		request_body  JSON          NULL,
		query_params  JSON          NULL,
		route_params  JSON          NULL,
		response_body JSON          NULL,
		duration_ms   BIGINT        NOT NULL DEFAULT 0,
		created_at    DATETIME(3)   NOT NULL,
		PRIMARY KEY (id),
		KEY idx_activity_created (created_at),
		KEY idx_activity_user (user_id),
		KEY idx_activity_status (status_code)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
}

// Migrate creates the tables when they do not exist.  It is idempotent and
// runs at startup when DB_AUTO_MIGRATE is enabled.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
