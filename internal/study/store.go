// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package study persists study results and drives spaced-repetition review.
// Results produced by the pipeline are indexed into a SQLite database with
// full-text search over flashcards, and review schedules can be queried for
// due cards and marked complete.
package study

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/mindmesh/study-engine/pkg/types"
)

const (
	resultsDir = "results"
	indexDir   = "index"
	dbFile     = "study.db"

	resultSuffix = "-study.yaml"
)

// Store manages the study SQLite database.
type Store struct {
	db         *sql.DB
	studyDir   string
	maxResults int
}

// NewStore opens or creates the study database at studyDir/index/study.db,
// creating the schema if it does not exist.
func NewStore(cfg types.StudyBaseConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.StudyDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		studyDir:   cfg.StudyDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			source_label TEXT,
			summary TEXT,
			word_count INTEGER,
			sentence_count INTEGER,
			paragraph_count INTEGER,
			heading_count INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS keywords (
			document_id TEXT NOT NULL REFERENCES documents(id),
			rank INTEGER NOT NULL,
			text TEXT NOT NULL,
			score REAL,
			category TEXT,
			related TEXT,
			PRIMARY KEY (document_id, rank)
		)`,
		`CREATE TABLE IF NOT EXISTS cards (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			document_id TEXT NOT NULL REFERENCES documents(id),
			type TEXT NOT NULL,
			keyword TEXT,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			difficulty TEXT,
			category TEXT,
			hint TEXT,
			related TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_document_id ON cards(document_id)`,
		`CREATE INDEX IF NOT EXISTS idx_cards_type ON cards(type)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			card_id TEXT NOT NULL REFERENCES cards(id),
			review_number INTEGER NOT NULL,
			due_date TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (card_id, review_number)
		)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			document_id TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='cards_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE cards_fts USING fts5(question, answer, content=cards, content_rowid=rowid)`,
			`CREATE TRIGGER cards_ai AFTER INSERT ON cards BEGIN
				INSERT INTO cards_fts(rowid, question, answer) VALUES (new.rowid, new.question, new.answer);
			END`,
			`CREATE TRIGGER cards_ad AFTER DELETE ON cards BEGIN
				INSERT INTO cards_fts(cards_fts, rowid, question, answer) VALUES('delete', old.rowid, old.question, old.answer);
			END`,
			`CREATE TRIGGER cards_au AFTER UPDATE ON cards BEGIN
				INSERT INTO cards_fts(cards_fts, rowid, question, answer) VALUES('delete', old.rowid, old.question, old.answer);
				INSERT INTO cards_fts(rowid, question, answer) VALUES (new.rowid, new.question, new.answer);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from a study indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of result files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads study result YAML files from studyDir/results/ and populates
// the database. It detects new, changed, and unchanged files for incremental
// updates. On success it refreshes export.yaml.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	resDir := filepath.Join(s.studyDir, resultsDir)

	entries, err := os.ReadDir(resDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading results directory %s: %w", resDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), resultSuffix) {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		docID := strings.TrimSuffix(entry.Name(), resultSuffix)
		filePath := filepath.Join(resDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE document_id = ?`, docID,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", docID)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		data, err := os.ReadFile(filePath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}

		var result types.StudyResult
		if err := yaml.Unmarshal(data, &result); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", docID, err)
			summary.Failed++
			continue
		}

		if err := s.ingestResult(ctx, docID, &result, modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", docID, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d cards)\n", docID, len(result.Flashcards))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d cards)\n", docID, len(result.Flashcards))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	if summary.Indexed > 0 || summary.Updated > 0 {
		if err := s.ExportYAML(ctx, QueryOptions{}); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}

	return summary, nil
}

func (s *Store) ingestResult(ctx context.Context, docID string, result *types.StudyResult, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Remove old rows if updating.
	if isUpdate {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM reviews WHERE card_id IN (SELECT id FROM cards WHERE document_id = ?)`, docID,
		); err != nil {
			return fmt.Errorf("deleting old reviews: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE document_id = ?`, docID); err != nil {
			return fmt.Errorf("deleting old cards: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM keywords WHERE document_id = ?`, docID); err != nil {
			return fmt.Errorf("deleting old keywords: %w", err)
		}
	}

	label := result.SourceLabel
	if label == "" {
		label = uuid.NewString()
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, source_label, summary, word_count, sentence_count, paragraph_count, heading_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			source_label=excluded.source_label, summary=excluded.summary,
			word_count=excluded.word_count, sentence_count=excluded.sentence_count,
			paragraph_count=excluded.paragraph_count, heading_count=excluded.heading_count`,
		docID, label, result.Summary,
		result.Stats.WordCount, result.Stats.SentenceCount,
		result.Stats.ParagraphCount, result.Stats.HeadingCount,
	)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}

	for i, kw := range result.Keywords {
		relatedJSON, _ := json.Marshal(kw.RelatedTerms)
		_, err := tx.ExecContext(ctx,
			`INSERT INTO keywords (document_id, rank, text, score, category, related)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			docID, i+1, kw.Text, kw.Score, string(kw.Category), string(relatedJSON),
		)
		if err != nil {
			return fmt.Errorf("inserting keyword %q: %w", kw.Text, err)
		}
	}

	cardStmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO cards (id, document_id, type, keyword, question, answer, difficulty, category, hint, related)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing card insert: %w", err)
	}
	defer cardStmt.Close()

	reviewStmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO reviews (card_id, review_number, due_date, completed)
		 VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing review insert: %w", err)
	}
	defer reviewStmt.Close()

	for _, card := range result.Flashcards {
		relatedJSON, _ := json.Marshal(card.RelatedTerms)
		_, err := cardStmt.ExecContext(ctx,
			card.ID, docID, string(card.Type), card.Keyword,
			card.Question, card.Answer, string(card.Difficulty),
			card.Category, card.Hint, string(relatedJSON),
		)
		if err != nil {
			return fmt.Errorf("inserting card %s: %w", card.ID, err)
		}

		for _, entry := range card.Schedule {
			completed := 0
			if entry.Completed {
				completed = 1
			}
			_, err := reviewStmt.ExecContext(ctx,
				card.ID, entry.ReviewNumber,
				entry.DueDate.UTC().Format(time.RFC3339Nano), completed,
			)
			if err != nil {
				return fmt.Errorf("inserting review %s#%d: %w", card.ID, entry.ReviewNumber, err)
			}
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (document_id, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(document_id) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		docID, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}
