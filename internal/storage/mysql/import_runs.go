package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"technet-admin/internal/storage"
)

const importRunsSchema = `
CREATE TABLE IF NOT EXISTS import_runs (
	id               CHAR(36)     NOT NULL PRIMARY KEY,
	filename         VARCHAR(255) NOT NULL,
	file_sha256      CHAR(64)     NOT NULL,
	total_rows       INT          NOT NULL DEFAULT 0,
	transformed      INT          NOT NULL DEFAULT 0,
	created          INT          NOT NULL DEFAULT 0,
	failed           INT          NOT NULL DEFAULT 0,
	duplicate_groups INT          NOT NULL DEFAULT 0,
	status           VARCHAR(16)  NOT NULL,
	error            TEXT         NULL,
	created_at       DATETIME(3)  NOT NULL,
	KEY idx_import_runs_created_at (created_at)
)`

func (s *Storage) EnsureSchema(ctx context.Context) error {
	const op = "storage.mysql.EnsureSchema"

	if _, err := s.db.ExecContext(ctx, importRunsSchema); err != nil {
		return fmt.Errorf("%s: ошибка создания таблицы import_runs: %w", op, err)
	}

	return nil
}

func (s *Storage) SaveImportRun(ctx context.Context, run storage.ImportRun) error {
	const op = "storage.mysql.SaveImportRun"

	var errText sql.NullString
	if run.Error != "" {
		errText = sql.NullString{String: run.Error, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO import_runs (id, filename, file_sha256, total_rows, transformed, created, failed, duplicate_groups, status, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.Filename, run.FileSHA256, run.TotalRows, run.Transformed,
		run.Created, run.Failed, run.DuplicateGroups, run.Status, errText, run.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("%s: ошибка сохранения импорта %s: %w", op, run.ID, err)
	}

	return nil
}

// ListImportRuns последние запуски, новые первыми.
func (s *Storage) ListImportRuns(ctx context.Context, limit int) ([]storage.ImportRun, error) {
	const op = "storage.mysql.ListImportRuns"

	if limit <= 0 || limit > 500 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, filename, file_sha256, total_rows, transformed, created, failed, duplicate_groups, status, error, created_at
		FROM import_runs
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения импортов: %w", op, err)
	}
	defer rows.Close()

	runs := make([]storage.ImportRun, 0)
	for rows.Next() {
		var (
			run     storage.ImportRun
			id      string
			errText sql.NullString
		)

		err := rows.Scan(&id, &run.Filename, &run.FileSHA256, &run.TotalRows, &run.Transformed,
			&run.Created, &run.Failed, &run.DuplicateGroups, &run.Status, &errText, &run.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строки: %w", op, err)
		}

		run.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("%s: некорректный id %q: %w", op, id, err)
		}
		run.Error = errText.String

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return runs, nil
}
