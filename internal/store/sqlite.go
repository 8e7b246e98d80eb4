package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tuxprep/trainer/internal/domain/history"
)

const schema = `
CREATE TABLE IF NOT EXISTS totals (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    attempts INTEGER NOT NULL,
    correct INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS question_stats (
    text TEXT PRIMARY KEY,
    attempts INTEGER NOT NULL,
    correct INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS question_attempts (
    question_text TEXT NOT NULL,
    at TEXT NOT NULL,
    correct INTEGER NOT NULL,
    position INTEGER NOT NULL,
    FOREIGN KEY (question_text) REFERENCES question_stats(text)
);

CREATE TABLE IF NOT EXISTS category_stats (
    name TEXT PRIMARY KEY,
    attempts INTEGER NOT NULL,
    correct INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS incorrect_review (
    question_text TEXT PRIMARY KEY,
    position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    started_at TEXT NOT NULL,
    mode TEXT NOT NULL,
    category TEXT NOT NULL,
    answered INTEGER NOT NULL,
    correct INTEGER NOT NULL,
    position INTEGER NOT NULL
);
`

// SQLite persists the history store in a local SQLite database, the
// alternate backend. Save replaces the whole document, matching the JSON
// backend's semantics, so the two are interchangeable.
type SQLite struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLite opens (or creates) the database at dbPath.
func NewSQLite(dbPath string, logger *slog.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &SQLite{db: db, logger: logger}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// Load reconstructs the history aggregate from the tables. A fresh database
// yields an empty store; a query failure is treated like a corrupt document
// and recovered silently.
func (s *SQLite) Load() (*history.Store, error) {
	st := history.NewStore()

	err := s.db.QueryRow("SELECT attempts, correct FROM totals WHERE id = 1").
		Scan(&st.TotalAttempts, &st.TotalCorrect)
	if err != nil && err != sql.ErrNoRows {
		s.logger.Warn("history database unreadable, starting fresh", "error", err)
		return history.NewStore(), nil
	}

	if err := s.loadQuestions(st); err != nil {
		s.logger.Warn("history database unreadable, starting fresh", "error", err)
		return history.NewStore(), nil
	}
	if err := s.loadCategories(st); err != nil {
		s.logger.Warn("history database unreadable, starting fresh", "error", err)
		return history.NewStore(), nil
	}
	if err := s.loadReview(st); err != nil {
		s.logger.Warn("history database unreadable, starting fresh", "error", err)
		return history.NewStore(), nil
	}
	if err := s.loadSessions(st); err != nil {
		s.logger.Warn("history database unreadable, starting fresh", "error", err)
		return history.NewStore(), nil
	}

	return st, nil
}

func (s *SQLite) loadQuestions(st *history.Store) error {
	rows, err := s.db.Query("SELECT text, attempts, correct FROM question_stats")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var text string
		qs := &history.QuestionStat{History: []history.Attempt{}}
		if err := rows.Scan(&text, &qs.Attempts, &qs.Correct); err != nil {
			return err
		}
		st.Questions[text] = qs
	}
	if err := rows.Err(); err != nil {
		return err
	}

	attemptRows, err := s.db.Query(
		"SELECT question_text, at, correct FROM question_attempts ORDER BY question_text, position")
	if err != nil {
		return err
	}
	defer attemptRows.Close()

	for attemptRows.Next() {
		var text, at string
		var correct bool
		if err := attemptRows.Scan(&text, &at, &correct); err != nil {
			return err
		}
		ts, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return err
		}
		if qs, ok := st.Questions[text]; ok {
			qs.History = append(qs.History, history.Attempt{Timestamp: ts, Correct: correct})
		}
	}
	return attemptRows.Err()
}

func (s *SQLite) loadCategories(st *history.Store) error {
	rows, err := s.db.Query("SELECT name, attempts, correct FROM category_stats")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		cs := &history.CategoryStat{}
		if err := rows.Scan(&name, &cs.Attempts, &cs.Correct); err != nil {
			return err
		}
		st.Categories[name] = cs
	}
	return rows.Err()
}

func (s *SQLite) loadReview(st *history.Store) error {
	rows, err := s.db.Query("SELECT question_text FROM incorrect_review ORDER BY position")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return err
		}
		st.Review = append(st.Review, text)
	}
	return rows.Err()
}

func (s *SQLite) loadSessions(st *history.Store) error {
	rows, err := s.db.Query(
		"SELECT id, started_at, mode, category, answered, correct FROM sessions ORDER BY position")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var sum history.SessionSummary
		var startedAt string
		if err := rows.Scan(&sum.ID, &startedAt, &sum.Mode, &sum.Category, &sum.Answered, &sum.Correct); err != nil {
			return err
		}
		ts, err := time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return err
		}
		sum.StartedAt = ts
		st.Sessions = append(st.Sessions, sum)
	}
	return rows.Err()
}

// Save replaces the stored document with the given store in one transaction.
func (s *SQLite) Save(st *history.Store) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{
		"totals", "question_stats", "question_attempts",
		"category_stats", "incorrect_review", "sessions",
	} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("save history: clear %s: %w", table, err)
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO totals (id, attempts, correct) VALUES (1, ?, ?)",
		st.TotalAttempts, st.TotalCorrect,
	); err != nil {
		return fmt.Errorf("save history: totals: %w", err)
	}

	for text, qs := range st.Questions {
		if _, err := tx.Exec(
			"INSERT INTO question_stats (text, attempts, correct) VALUES (?, ?, ?)",
			text, qs.Attempts, qs.Correct,
		); err != nil {
			return fmt.Errorf("save history: question stats: %w", err)
		}
		for i, a := range qs.History {
			if _, err := tx.Exec(
				"INSERT INTO question_attempts (question_text, at, correct, position) VALUES (?, ?, ?, ?)",
				text, a.Timestamp.Format(time.RFC3339Nano), a.Correct, i,
			); err != nil {
				return fmt.Errorf("save history: question attempts: %w", err)
			}
		}
	}

	for name, cs := range st.Categories {
		if _, err := tx.Exec(
			"INSERT INTO category_stats (name, attempts, correct) VALUES (?, ?, ?)",
			name, cs.Attempts, cs.Correct,
		); err != nil {
			return fmt.Errorf("save history: category stats: %w", err)
		}
	}

	for i, text := range st.Review {
		if _, err := tx.Exec(
			"INSERT INTO incorrect_review (question_text, position) VALUES (?, ?)",
			text, i,
		); err != nil {
			return fmt.Errorf("save history: review list: %w", err)
		}
	}

	for i, sum := range st.Sessions {
		if _, err := tx.Exec(
			"INSERT INTO sessions (id, started_at, mode, category, answered, correct, position) VALUES (?, ?, ?, ?, ?, ?, ?)",
			sum.ID, sum.StartedAt.Format(time.RFC3339Nano), sum.Mode, sum.Category, sum.Answered, sum.Correct, i,
		); err != nil {
			return fmt.Errorf("save history: sessions: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}
