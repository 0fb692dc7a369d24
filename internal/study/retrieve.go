// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package study

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mindmesh/study-engine/pkg/types"
)

// QueryOptions holds parameters for flashcard queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string, matched against card
	// questions and answers.
	Query string

	// Type filters by card type.
	Type types.CardType

	// Difficulty filters by card difficulty.
	Difficulty types.Difficulty

	// Category filters by keyword category.
	Category string

	// DocumentID filters by source document.
	DocumentID string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Type == "" && q.Difficulty == "" &&
		q.Category == "" && q.DocumentID == ""
}

// QueryResult is a flashcard with its source document's label.
type QueryResult struct {
	types.Flashcard
	DocumentID    string `json:"document_id" yaml:"document_id"`
	DocumentLabel string `json:"document_label" yaml:"document_label"`
}

// Retrieve queries the card index with optional full-text search and
// structured filters. Full-text queries are ranked by relevance;
// structured-only queries are sorted by document and keyword.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT c.id, c.document_id, c.type, c.keyword, c.question, c.answer,
				c.difficulty, c.category, c.hint, c.related,
				d.source_label, cards_fts.rank
			FROM cards_fts
			JOIN cards c ON c.rowid = cards_fts.rowid
			LEFT JOIN documents d ON c.document_id = d.id
			WHERE cards_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT c.id, c.document_id, c.type, c.keyword, c.question, c.answer,
				c.difficulty, c.category, c.hint, c.related,
				d.source_label, 0 AS rank
			FROM cards c
			LEFT JOIN documents d ON c.document_id = d.id
			WHERE 1=1`)
	}

	if opts.Type != "" {
		qb.WriteString(` AND c.type = ?`)
		args = append(args, string(opts.Type))
	}

	if opts.Difficulty != "" {
		qb.WriteString(` AND c.difficulty = ?`)
		args = append(args, string(opts.Difficulty))
	}

	if opts.Category != "" {
		qb.WriteString(` AND c.category = ?`)
		args = append(args, opts.Category)
	}

	if opts.DocumentID != "" {
		qb.WriteString(` AND c.document_id = ?`)
		args = append(args, opts.DocumentID)
	}

	if useFTS {
		qb.WriteString(` ORDER BY cards_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY c.document_id, c.keyword`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying cards: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr          QueryResult
			cardType    string
			difficulty  string
			relatedJSON sql.NullString
			label       sql.NullString
			rank        float64
		)

		if err := rows.Scan(
			&qr.ID, &qr.DocumentID, &cardType, &qr.Keyword, &qr.Question, &qr.Answer,
			&difficulty, &qr.Category, &qr.Hint, &relatedJSON,
			&label, &rank,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		qr.Type = types.CardType(cardType)
		qr.Difficulty = types.Difficulty(difficulty)

		if relatedJSON.Valid {
			json.Unmarshal([]byte(relatedJSON.String), &qr.RelatedTerms)
		}
		if label.Valid {
			qr.DocumentLabel = label.String
		}

		results = append(results, qr)
	}

	return results, rows.Err()
}

// DueCard is a flashcard whose next pending review is due.
type DueCard struct {
	QueryResult
	ReviewNumber int       `json:"review_number" yaml:"review_number"`
	DueDate      time.Time `json:"due_date" yaml:"due_date"`
}

// DueCards returns every card whose earliest incomplete review is due at or
// before now, ordered by due date then card ID.
func (s *Store) DueCards(ctx context.Context, now time.Time) ([]DueCard, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.document_id, c.type, c.keyword, c.question, c.answer,
			c.difficulty, c.category, c.hint, c.related,
			d.source_label, r.review_number, r.due_date
		FROM reviews r
		JOIN cards c ON c.id = r.card_id
		LEFT JOIN documents d ON c.document_id = d.id
		WHERE r.completed = 0
		  AND r.due_date <= ?
		  AND r.review_number = (
			SELECT MIN(review_number) FROM reviews
			WHERE card_id = r.card_id AND completed = 0
		  )
		ORDER BY r.due_date, c.id`,
		now.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("querying due cards: %w", err)
	}
	defer rows.Close()

	var due []DueCard
	for rows.Next() {
		var (
			dc          DueCard
			cardType    string
			difficulty  string
			relatedJSON sql.NullString
			label       sql.NullString
			dueDate     string
		)

		if err := rows.Scan(
			&dc.ID, &dc.DocumentID, &cardType, &dc.Keyword, &dc.Question, &dc.Answer,
			&difficulty, &dc.Category, &dc.Hint, &relatedJSON,
			&label, &dc.ReviewNumber, &dueDate,
		); err != nil {
			return nil, fmt.Errorf("scanning due card: %w", err)
		}

		dc.Type = types.CardType(cardType)
		dc.Difficulty = types.Difficulty(difficulty)

		if relatedJSON.Valid {
			json.Unmarshal([]byte(relatedJSON.String), &dc.RelatedTerms)
		}
		if label.Valid {
			dc.DocumentLabel = label.String
		}
		if t, err := time.Parse(time.RFC3339Nano, dueDate); err == nil {
			dc.DueDate = t
		}

		due = append(due, dc)
	}

	return due, rows.Err()
}

// CompleteReview marks one review of a card as done. It is an error when
// the card or review number does not exist or is already completed.
func (s *Store) CompleteReview(ctx context.Context, cardID string, reviewNumber int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE reviews SET completed = 1
		 WHERE card_id = ? AND review_number = ? AND completed = 0`,
		cardID, reviewNumber,
	)
	if err != nil {
		return fmt.Errorf("completing review: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking review update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("review %d of card %s not found or already completed", reviewNumber, cardID)
	}
	return nil
}
