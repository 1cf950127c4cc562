package center

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"beacon/internal/config"
	"beacon/internal/notify"
)

const recordColumns = `uid, level, title, body, action, position, dismissible,
    auto_dismiss_ms, status, created_at, expires_at, dismissed_at`

// Store manages notification persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore initializes or connects to the notification database.
func OpenStore(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Insert persists a newly shown notification.
func (s *Store) Insert(ctx context.Context, record *Record) error {
	if record == nil {
		return errors.New("record is nil")
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO notifications (
            uid, level, title, body, action, position, dismissible,
            auto_dismiss_ms, status, created_at, expires_at, dismissed_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.UID,
		string(record.Level),
		nullableString(record.Title),
		nullableString(record.Body),
		nullableString(record.Action),
		string(record.Position),
		boolToInt(record.Dismissible),
		record.AutoDismiss.Milliseconds(),
		string(record.Status),
		record.CreatedAt.UTC().Format(time.RFC3339Nano),
		nullableTime(record.ExpiresAt),
		nullableTime(record.DismissedAt),
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// Get fetches a notification by uid. Returns nil without error when absent.
func (s *Store) Get(ctx context.Context, uid string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM notifications WHERE uid = ?`, uid)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return record, nil
}

// Transition moves an active notification to a terminal status. Returns false
// when the uid is unknown or the record already left the active state, which
// callers treat as a benign no-op.
func (s *Store) Transition(ctx context.Context, uid string, to Status, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE notifications SET status = ?, dismissed_at = ? WHERE uid = ? AND status = ?`,
		string(to),
		at.UTC().Format(time.RFC3339Nano),
		uid,
		string(StatusActive),
	)
	if err != nil {
		return false, fmt.Errorf("transition notification: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// ExpireOverdue transitions every active notification whose expiry has passed.
func (s *Store) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	timestamp := now.UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE notifications SET status = ?, dismissed_at = ?
         WHERE status = ? AND expires_at IS NOT NULL AND expires_at <= ?`,
		string(StatusExpired),
		timestamp,
		string(StatusActive),
		timestamp,
	)
	if err != nil {
		return 0, fmt.Errorf("expire overdue: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

// Active returns shown notifications ordered by creation time.
func (s *Store) Active(ctx context.Context) ([]*Record, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+recordColumns+` FROM notifications WHERE status = ? ORDER BY created_at`,
		string(StatusActive),
	)
	if err != nil {
		return nil, fmt.Errorf("query active: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// History returns terminal notifications, newest first, up to limit. A
// non-positive limit returns everything.
func (s *Store) History(ctx context.Context, limit int) ([]*Record, error) {
	query := `SELECT ` + recordColumns + ` FROM notifications WHERE status != ? ORDER BY created_at DESC`
	args := []any{string(StatusActive)}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// ClearHistory deletes all terminal notifications.
func (s *Store) ClearHistory(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notifications WHERE status != ?`, string(StatusActive))
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

// PruneHistory deletes terminal notifications created before the cutoff.
func (s *Store) PruneHistory(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(
		ctx,
		`DELETE FROM notifications WHERE status != ? AND created_at < ?`,
		string(StatusActive),
		before.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

// Stats aggregates stored notification counts per lifecycle state.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM notifications GROUP BY status`)
	if err != nil {
		return Stats{}, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var stats Stats
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return Stats{}, fmt.Errorf("scan stats: %w", err)
		}
		switch Status(status) {
		case StatusActive:
			stats.Active = count
		case StatusDismissed:
			stats.Dismissed = count
		case StatusExpired:
			stats.Expired = count
		}
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterate stats: %w", err)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(scanner rowScanner) (*Record, error) {
	var (
		record      Record
		level       string
		title       sql.NullString
		body        sql.NullString
		action      sql.NullString
		position    string
		dismissible int
		autoDismiss int64
		status      string
		createdAt   string
		expiresAt   sql.NullString
		dismissedAt sql.NullString
	)
	if err := scanner.Scan(
		&record.UID, &level, &title, &body, &action, &position, &dismissible,
		&autoDismiss, &status, &createdAt, &expiresAt, &dismissedAt,
	); err != nil {
		return nil, err
	}

	record.Level = notify.Level(level)
	record.Title = title.String
	record.Body = body.String
	record.Action = action.String
	record.Position = notify.Position(position)
	record.Dismissible = dismissible != 0
	record.AutoDismiss = time.Duration(autoDismiss) * time.Millisecond
	record.Status = Status(status)

	created, err := parseTimeString(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	record.CreatedAt = created

	if expiresAt.Valid {
		parsed, err := parseTimeString(expiresAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse expires_at: %w", err)
		}
		record.ExpiresAt = &parsed
	}
	if dismissedAt.Valid {
		parsed, err := parseTimeString(dismissedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse dismissed_at: %w", err)
		}
		record.DismissedAt = &parsed
	}
	return &record, nil
}

func collectRecords(rows *sql.Rows) ([]*Record, error) {
	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}
	return records, nil
}

func parseTimeString(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
