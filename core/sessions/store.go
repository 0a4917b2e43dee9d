package sessions

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	purpose TEXT NOT NULL,
	source TEXT NOT NULL,
	start_time TEXT NOT NULL,
	end_time TEXT,
	summary TEXT
);

CREATE TABLE IF NOT EXISTS transcript_entries (
	session_id TEXT NOT NULL,
	role TEXT NOT NULL,
	content TEXT NOT NULL,
	timestamp TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS transcript_entries_session
	ON transcript_entries (session_id);

CREATE TABLE IF NOT EXISTS prompt_templates (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	template TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT 'general'
);
`

// defaultTemplates are seeded on first open so a fresh install has
// usable per-purpose prompts.
var defaultTemplates = []PromptTemplate{
	{Name: "Sales Call", Category: "sales", Template: "You're helping during a sales call. Focus on: identifying pain points, suggesting product features that match needs, and crafting compelling value propositions."},
	{Name: "Job Interview", Category: "interview", Template: "You're helping during a job interview. Focus on: structured answers using STAR method, highlighting relevant experience, asking insightful questions."},
	{Name: "Technical Discussion", Category: "technical", Template: "You're helping during a technical discussion. Focus on: clear explanations, suggesting best practices, identifying potential issues, and providing code snippets when helpful."},
	{Name: "Presentation", Category: "presentation", Template: "You're helping during a presentation. Focus on: keeping on track, suggesting transition phrases, anticipating audience questions, and highlighting key data points."},
}

// PromptTemplate is a reusable per-purpose system prompt.
type PromptTemplate struct {
	ID       string
	Name     string
	Template string
	Category string
}

// Summary is a session row without its transcript, for listing.
type Summary struct {
	ID        string
	Title     string
	StartTime string
	EndTime   string
	Summary   string
}

// StoreConfig holds the parameters for opening a session store.
type StoreConfig struct {
	// Path is the filesystem path to the SQLite database file. The
	// parent directory must exist. Use ":memory:" with PoolSize 1 for
	// tests.
	Path string

	// PoolSize is the number of connections in the pool. Defaults to 2
	// if zero or negative; writes are rare and serialized by SQLite
	// anyway.
	PoolSize int

	// Logger receives operational messages. If nil, a no-op logger is
	// used.
	Logger *slog.Logger
}

// Store persists ended sessions, their transcripts, and prompt
// templates in SQLite. The in-memory session state owned by the
// orchestrator is authoritative while a session runs; the store is a
// best-effort mirror plus the durable record after the session ends.
type Store struct {
	pool   *sqlitex.Pool
	logger *slog.Logger
}

// OpenStore opens the session database, creating the file and schema
// when missing and seeding default prompt templates on first open.
func OpenStore(cfg StoreConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sessions store: Path is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 2
	}

	pool, err := sqlitex.NewPool(cfg.Path, sqlitex.PoolOptions{
		PoolSize: poolSize,
		PrepareConn: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, schema, nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sessions store: opening %s: %w", cfg.Path, err)
	}

	store := &Store{pool: pool, logger: logger}
	if err := store.seedTemplates(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("sessions store: seeding templates: %w", err)
	}

	logger.Info("session store opened", "path", cfg.Path)
	return store, nil
}

func (s *Store) seedTemplates(ctx context.Context) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	var count int64
	err = sqlitex.Execute(conn, "SELECT COUNT(*) FROM prompt_templates", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			count = stmt.ColumnInt64(0)
			return nil
		},
	})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, template := range defaultTemplates {
		err := sqlitex.Execute(conn,
			"INSERT INTO prompt_templates (id, name, template, category) VALUES (?, ?, ?, ?)",
			&sqlitex.ExecOptions{
				Args: []any{uuid.NewString(), template.Name, template.Template, template.Category},
			})
		if err != nil {
			return err
		}
	}

	return nil
}

// SaveSession upserts a session and replaces its stored transcript.
func (s *Store) SaveSession(ctx context.Context, session Session, transcript []TranscriptEntry) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("failed to take connection: %w", err)
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer endTransaction(&err)

	var endTime string
	if session.EndTime != nil {
		endTime = session.EndTime.UTC().Format(time.RFC3339)
	}

	err = sqlitex.Execute(conn,
		`INSERT OR REPLACE INTO sessions (id, title, purpose, source, start_time, end_time, summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{Args: []any{
			session.ID,
			session.Title,
			string(session.Purpose),
			string(session.Source),
			session.StartTime.UTC().Format(time.RFC3339),
			endTime,
			session.Summary,
		}})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	err = sqlitex.Execute(conn,
		"DELETE FROM transcript_entries WHERE session_id = ?",
		&sqlitex.ExecOptions{Args: []any{session.ID}})
	if err != nil {
		return fmt.Errorf("failed to clear stored transcript: %w", err)
	}

	for _, entry := range transcript {
		err = sqlitex.Execute(conn,
			"INSERT INTO transcript_entries (session_id, role, content, timestamp) VALUES (?, ?, ?, ?)",
			&sqlitex.ExecOptions{Args: []any{session.ID, string(entry.Role), entry.Content, entry.Timestamp}})
		if err != nil {
			return fmt.Errorf("failed to save transcript entry: %w", err)
		}
	}

	return nil
}

// AppendTranscriptEntry mirrors one transcript entry into the store.
func (s *Store) AppendTranscriptEntry(ctx context.Context, sessionID string, entry TranscriptEntry) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("failed to take connection: %w", err)
	}
	defer s.pool.Put(conn)

	err = sqlitex.Execute(conn,
		"INSERT INTO transcript_entries (session_id, role, content, timestamp) VALUES (?, ?, ?, ?)",
		&sqlitex.ExecOptions{Args: []any{sessionID, string(entry.Role), entry.Content, entry.Timestamp}})
	if err != nil {
		return fmt.Errorf("failed to append transcript entry: %w", err)
	}
	return nil
}

// Transcript returns the stored transcript for a session in insertion
// order.
func (s *Store) Transcript(ctx context.Context, sessionID string) ([]TranscriptEntry, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to take connection: %w", err)
	}
	defer s.pool.Put(conn)

	var entries []TranscriptEntry
	err = sqlitex.Execute(conn,
		"SELECT role, content, timestamp FROM transcript_entries WHERE session_id = ? ORDER BY rowid",
		&sqlitex.ExecOptions{
			Args: []any{sessionID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				entries = append(entries, TranscriptEntry{
					Role:      Role(stmt.ColumnText(0)),
					Content:   stmt.ColumnText(1),
					Timestamp: stmt.ColumnText(2),
				})
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}
	return entries, nil
}

// ListSessions returns stored session summaries, newest first.
func (s *Store) ListSessions(ctx context.Context) ([]Summary, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to take connection: %w", err)
	}
	defer s.pool.Put(conn)

	var summaries []Summary
	err = sqlitex.Execute(conn,
		"SELECT id, title, start_time, end_time, summary FROM sessions ORDER BY start_time DESC",
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				summaries = append(summaries, Summary{
					ID:        stmt.ColumnText(0),
					Title:     stmt.ColumnText(1),
					StartTime: stmt.ColumnText(2),
					EndTime:   stmt.ColumnText(3),
					Summary:   stmt.ColumnText(4),
				})
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return summaries, nil
}

// PromptTemplates returns all stored prompt templates.
func (s *Store) PromptTemplates(ctx context.Context) ([]PromptTemplate, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to take connection: %w", err)
	}
	defer s.pool.Put(conn)

	var templates []PromptTemplate
	err = sqlitex.Execute(conn,
		"SELECT id, name, template, category FROM prompt_templates ORDER BY name",
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				templates = append(templates, PromptTemplate{
					ID:       stmt.ColumnText(0),
					Name:     stmt.ColumnText(1),
					Template: stmt.ColumnText(2),
					Category: stmt.ColumnText(3),
				})
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list prompt templates: %w", err)
	}
	return templates, nil
}

// Close closes all pooled connections.
func (s *Store) Close() error {
	return s.pool.Close()
}
