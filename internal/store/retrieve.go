// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// QueryOptions holds parameters for index queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over names and notes.
	Query string

	// Gender filters individuals by gender code (e.g. "M", "F").
	Gender string

	// Place filters by birth or death place substring.
	Place string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Gender == "" && q.Place == ""
}

// QueryResult is one individual row with its derived relationship fields.
type QueryResult struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Gender      string   `json:"gender,omitempty" yaml:"gender,omitempty"`
	BirthDate   string   `json:"birth_date,omitempty" yaml:"birth_date,omitempty"`
	BirthPlace  string   `json:"birth_place,omitempty" yaml:"birth_place,omitempty"`
	DeathDate   string   `json:"death_date,omitempty" yaml:"death_date,omitempty"`
	DeathPlace  string   `json:"death_place,omitempty" yaml:"death_place,omitempty"`
	FatherName  string   `json:"father_name,omitempty" yaml:"father_name,omitempty"`
	MotherName  string   `json:"mother_name,omitempty" yaml:"mother_name,omitempty"`
	SpouseNames string   `json:"spouse_names,omitempty" yaml:"spouse_names,omitempty"`
	ChildNames  string   `json:"child_names,omitempty" yaml:"child_names,omitempty"`
	Notes       []string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Retrieve queries the index with optional full-text search and filters.
// Full-text results are ranked by relevance; filter-only results sort by
// name.
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
			`SELECT i.id, i.name, i.gender, i.birth_date, i.birth_place,
				i.death_date, i.death_place, i.father_name, i.mother_name,
				i.spouse_names, i.child_names, i.notes
			FROM individuals_fts
			JOIN individuals i ON i.rowid = individuals_fts.rowid
			WHERE individuals_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT i.id, i.name, i.gender, i.birth_date, i.birth_place,
				i.death_date, i.death_place, i.father_name, i.mother_name,
				i.spouse_names, i.child_names, i.notes
			FROM individuals i
			WHERE 1=1`)
	}

	if opts.Gender != "" {
		qb.WriteString(` AND i.gender = ?`)
		args = append(args, opts.Gender)
	}

	if opts.Place != "" {
		qb.WriteString(` AND (i.birth_place LIKE ? OR i.death_place LIKE ?)`)
		pattern := "%" + opts.Place + "%"
		args = append(args, pattern, pattern)
	}

	if useFTS {
		qb.WriteString(` ORDER BY individuals_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY i.name`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr        QueryResult
			notesJSON sql.NullString
		)
		if err := rows.Scan(
			&qr.ID, &qr.Name, &qr.Gender, &qr.BirthDate, &qr.BirthPlace,
			&qr.DeathDate, &qr.DeathPlace, &qr.FatherName, &qr.MotherName,
			&qr.SpouseNames, &qr.ChildNames, &notesJSON,
		); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		if notesJSON.Valid && notesJSON.String != "" {
			// Notes were stored as a JSON array; a decode failure leaves
			// them empty rather than failing the query.
			_ = json.Unmarshal([]byte(notesJSON.String), &qr.Notes)
		}
		results = append(results, qr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", err)
	}

	return results, nil
}
