package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/benni94/mazeChromeBE/internal/models"
	"github.com/benni94/mazeChromeBE/pkg/database"
)

// ErrDuplicateName is returned by Insert when the name is already taken,
// compared case-insensitively.
var ErrDuplicateName = fmt.Errorf("name already exists")

type ProgressRepository struct {
	db *database.DB
}

func NewProgressRepository(db *database.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// EnsureSchema creates the records table, the case-insensitive unique index
// on the player name and the ranked view. AUTOINCREMENT guarantees ids are
// never reused, even after rows are deleted.
func (r *ProgressRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS game_progress (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			level INTEGER NOT NULL DEFAULT 0,
			function_details TEXT NOT NULL DEFAULT '{}',
			total_functions INTEGER NOT NULL DEFAULT 0,
			completion_time_ms INTEGER NOT NULL DEFAULT 0,
			completion_time_formatted TEXT NOT NULL DEFAULT '00:00:00',
			timestamp TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_game_progress_name
			ON game_progress (name COLLATE NOCASE)`,
		`CREATE VIEW IF NOT EXISTS ranked_game_progress AS
			SELECT id, name, level, function_details, total_functions,
			       completion_time_ms, completion_time_formatted, timestamp
			FROM game_progress
			ORDER BY (completion_time_formatted = '00:00:00') ASC,
			         completion_time_ms ASC,
			         id ASC`,
	}

	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	return nil
}

// ExistsName reports whether a record with this name exists, ignoring case.
func (r *ProgressRepository) ExistsName(ctx context.Context, name string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `
		SELECT 1 FROM game_progress WHERE name = ? COLLATE NOCASE LIMIT 1
	`, name).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check name: %w", err)
	}

	return true, nil
}

// Insert stores a new record and returns its assigned id. A name collision
// surfaces as ErrDuplicateName whether it is caught by the caller's check or
// by the unique index.
func (r *ProgressRepository) Insert(ctx context.Context, rec *models.GameProgressRecord) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO game_progress
			(name, level, function_details, total_functions,
			 completion_time_ms, completion_time_formatted, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.Name, rec.Level, rec.FunctionDetails, rec.TotalFunctions,
		rec.CompletionTimeMs, rec.CompletionTimeFormatted, rec.Timestamp)

	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateName
		}
		return 0, fmt.Errorf("failed to insert record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}

	return id, nil
}

// InsertBatch stores all records in one transaction. If any insert fails,
// none of the rows become visible.
func (r *ProgressRepository) InsertBatch(ctx context.Context, records []models.GameProgressRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO game_progress
			(name, level, function_details, total_functions,
			 completion_time_ms, completion_time_formatted, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		rec := &records[i]
		if _, err := stmt.ExecContext(ctx, rec.Name, rec.Level, rec.FunctionDetails,
			rec.TotalFunctions, rec.CompletionTimeMs, rec.CompletionTimeFormatted,
			rec.Timestamp); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateName
			}
			return fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}

	return nil
}

// ListRanked reads every record in ranking order: records without a real
// completion time last, the rest by ascending time, ties by id. The ORDER BY
// is repeated here because SQLite does not guarantee a view's internal order
// for callers of the view.
func (r *ProgressRepository) ListRanked(ctx context.Context) ([]models.GameProgressRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, level, function_details, total_functions,
		       completion_time_ms, completion_time_formatted, timestamp
		FROM ranked_game_progress
		ORDER BY (completion_time_formatted = '00:00:00') ASC,
		         completion_time_ms ASC,
		         id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranked records: %w", err)
	}
	defer rows.Close()

	var records []models.GameProgressRecord
	for rows.Next() {
		var rec models.GameProgressRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Name,
			&rec.Level,
			&rec.FunctionDetails,
			&rec.TotalFunctions,
			&rec.CompletionTimeMs,
			&rec.CompletionTimeFormatted,
			&rec.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ranked records: %w", err)
	}

	return records, nil
}

// Rename updates every record whose stored name equals findName exactly
// (case-sensitive) and returns the number of rows changed. Zero is a valid
// outcome the caller can distinguish from a hit.
func (r *ProgressRepository) Rename(ctx context.Context, findName, replaceName string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE game_progress SET name = ? WHERE name = ? COLLATE BINARY
	`, replaceName, findName)

	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateName
		}
		return 0, fmt.Errorf("failed to rename: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}

// DeleteAll removes every row from the records table. The table definition,
// the ranked view and the id sequence survive, so cleared ids are not reused.
func (r *ProgressRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM game_progress`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear table: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}

// Count returns the number of stored records.
func (r *ProgressRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM game_progress`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// isUniqueViolation matches the driver's unique constraint failure without
// tying the repository to a driver-specific error type.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
