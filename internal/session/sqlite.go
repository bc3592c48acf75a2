package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vinayprograms/agentkit/logging"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a SQLite database.
type SQLiteStore struct {
	db       *sql.DB
	notifier Notifier
	logger   *logging.Logger
}

// NewSQLite opens (or creates) the session database at dbPath. An empty
// notifier is allowed.
func NewSQLite(dbPath string, notifier Notifier) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	// WAL keeps concurrent session readers off the writers' backs.
	dsn := dbPath + "?_journal=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{
		db:       db,
		notifier: notifier,
		logger:   logging.New().WithComponent("session"),
	}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS drafting_sessions (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		phase TEXT NOT NULL,
		previous_phase TEXT NOT NULL DEFAULT '',
		document_type TEXT NOT NULL DEFAULT '',
		jurisdiction TEXT NOT NULL DEFAULT '',
		court_type TEXT NOT NULL DEFAULT '',
		case_category TEXT NOT NULL DEFAULT '',
		case_title TEXT NOT NULL DEFAULT '',
		draft_content TEXT NOT NULL DEFAULT '',
		error_message TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 1
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_owner ON drafting_sessions(owner_id) WHERE is_active = 1;
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Create inserts a new session in the INITIALIZED phase.
func (s *SQLiteStore) Create(ctx context.Context, id, ownerID, documentType string) (*Session, error) {
	now := time.Now()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO drafting_sessions (id, owner_id, phase, document_type, created_at, updated_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, 1)`,
		id, ownerID, string(PhaseInitialized), documentType, now.UnixMilli(), now.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.logger.Info("session created", map[string]interface{}{
		"session": id,
		"owner":   ownerID,
	})
	return s.Get(ctx, id)
}

const selectColumns = `id, owner_id, phase, previous_phase, document_type, jurisdiction,
	court_type, case_category, case_title, draft_content, error_message,
	created_at, updated_at, is_active`

// Get returns the active session with the given id, or nil when absent.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+selectColumns+`
		FROM drafting_sessions WHERE id = ? AND is_active = 1`, id)
	return scanSession(row)
}

// GetActiveByOwner returns the owner's most recently updated active
// session, or nil.
func (s *SQLiteStore) GetActiveByOwner(ctx context.Context, ownerID string) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+selectColumns+`
		FROM drafting_sessions WHERE owner_id = ? AND is_active = 1
		ORDER BY updated_at DESC LIMIT 1`, ownerID)
	return scanSession(row)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*Session, error) {
	var (
		sess                 Session
		phase, previous      string
		createdAt, updatedAt int64
		isActive             int
	)
	err := row.Scan(
		&sess.ID, &sess.OwnerID, &phase, &previous, &sess.DocumentType,
		&sess.Jurisdiction, &sess.CourtType, &sess.CaseCategory, &sess.CaseTitle,
		&sess.DraftContent, &sess.ErrorMessage, &createdAt, &updatedAt, &isActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	sess.Phase = Phase(phase)
	sess.PreviousPhase = Phase(previous)
	sess.CreatedAt = time.UnixMilli(createdAt)
	sess.UpdatedAt = time.UnixMilli(updatedAt)
	sess.IsActive = isActive == 1
	return &sess, nil
}

// UpdatePhase moves a session to newPhase when the transition table allows
// it. The read, validation, and write happen inside one transaction so two
// concurrent callers cannot race past the guard.
func (s *SQLiteStore) UpdatePhase(ctx context.Context, id string, newPhase Phase, errorMessage string) (bool, error) {
	evt, ok, err := s.transition(ctx, id, func(current *Session) (Phase, string, bool) {
		if !CanTransition(current.Phase, newPhase) {
			s.logger.Warn("invalid phase transition", map[string]interface{}{
				"session": id,
				"from":    string(current.Phase),
				"to":      string(newPhase),
			})
			return "", "", false
		}
		return newPhase, errorMessage, true
	})
	if err != nil || !ok {
		return false, err
	}
	s.publish(evt)
	return true, nil
}

// Pause moves a session to PAUSED from any phase, recording the reason.
func (s *SQLiteStore) Pause(ctx context.Context, id, reason string) (bool, error) {
	evt, ok, err := s.transition(ctx, id, func(current *Session) (Phase, string, bool) {
		if reason == "" {
			reason = fmt.Sprintf("Paused from %s", current.Phase)
		}
		return PhasePaused, reason, true
	})
	if err != nil || !ok {
		return false, err
	}
	s.publish(evt)
	return true, nil
}

// Resume moves a PAUSED session back to a working phase. An empty target
// selects the stored previous phase, falling back to CLARIFICATION when a
// session was paused before any phase was recorded.
func (s *SQLiteStore) Resume(ctx context.Context, id string, target Phase) (bool, error) {
	evt, ok, err := s.transition(ctx, id, func(current *Session) (Phase, string, bool) {
		if current.Phase != PhasePaused {
			s.logger.Warn("resume refused: not paused", map[string]interface{}{
				"session": id,
				"phase":   string(current.Phase),
			})
			return "", "", false
		}
		resolved := target
		if resolved == "" {
			resolved = current.PreviousPhase
		}
		if resolved == "" {
			resolved = PhaseClarification
		}
		return resolved, "", true
	})
	if err != nil || !ok {
		return false, err
	}
	s.publish(evt)
	return true, nil
}

// transition runs one atomic read-validate-write. decide returns the target
// phase, the error_message value, and whether to proceed.
func (s *SQLiteStore) transition(ctx context.Context, id string, decide func(*Session) (Phase, string, bool)) (PhaseEvent, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PhaseEvent{}, false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT `+selectColumns+`
		FROM drafting_sessions WHERE id = ? AND is_active = 1`, id)
	current, err := scanSession(row)
	if err != nil {
		return PhaseEvent{}, false, err
	}
	if current == nil {
		s.logger.Warn("session not found", map[string]interface{}{"session": id})
		return PhaseEvent{}, false, nil
	}

	target, note, ok := decide(current)
	if !ok {
		return PhaseEvent{}, false, nil
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx, `
		UPDATE drafting_sessions
		SET previous_phase = ?, phase = ?, error_message = ?, updated_at = ?
		WHERE id = ?`,
		string(current.Phase), string(target), note, now.UnixMilli(), id,
	)
	if err != nil {
		return PhaseEvent{}, false, fmt.Errorf("update phase: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return PhaseEvent{}, false, fmt.Errorf("commit transition: %w", err)
	}

	s.logger.Info("phase updated", map[string]interface{}{
		"session": id,
		"from":    string(current.Phase),
		"to":      string(target),
	})
	return PhaseEvent{
		SessionID: id,
		OwnerID:   current.OwnerID,
		From:      current.Phase,
		To:        target,
		Note:      note,
		At:        now,
	}, true, nil
}

func (s *SQLiteStore) publish(evt PhaseEvent) {
	if s.notifier != nil {
		s.notifier.PhaseChanged(evt)
	}
}

// UpdateMetadata patches the session's domain metadata.
func (s *SQLiteStore) UpdateMetadata(ctx context.Context, id string, meta Metadata) (bool, error) {
	set := ""
	args := make([]interface{}, 0, 6)
	add := func(column string, value *string) {
		if value == nil {
			return
		}
		if set != "" {
			set += ", "
		}
		set += column + " = ?"
		args = append(args, *value)
	}
	add("document_type", meta.DocumentType)
	add("jurisdiction", meta.Jurisdiction)
	add("court_type", meta.CourtType)
	add("case_category", meta.CaseCategory)
	add("case_title", meta.CaseTitle)
	if set == "" {
		return false, nil
	}
	set += ", updated_at = ?"
	args = append(args, time.Now().UnixMilli(), id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE drafting_sessions SET "+set+" WHERE id = ? AND is_active = 1", args...)
	if err != nil {
		return false, fmt.Errorf("update metadata: %w", err)
	}
	return touched(res)
}

// SaveDraft persists generated draft content.
func (s *SQLiteStore) SaveDraft(ctx context.Context, id, content string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE drafting_sessions SET draft_content = ?, updated_at = ?
		WHERE id = ? AND is_active = 1`,
		content, time.Now().UnixMilli(), id)
	if err != nil {
		return false, fmt.Errorf("save draft: %w", err)
	}
	return touched(res)
}

// Deactivate soft-deletes a session.
func (s *SQLiteStore) Deactivate(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE drafting_sessions SET is_active = 0, updated_at = ?
		WHERE id = ? AND is_active = 1`,
		time.Now().UnixMilli(), id)
	if err != nil {
		return false, fmt.Errorf("deactivate session: %w", err)
	}
	return touched(res)
}

func touched(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
