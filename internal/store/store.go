// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists extracted genealogical entities in a SQLite index
// with full-text search over individual names and notes.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/gedcom-engine/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "gedcom.db"
)

// Store manages the SQLite index database.
type Store struct {
	db         *sql.DB
	dataDir    string
	maxResults int
}

// NewStore opens or creates the index database at dataDir/index/gedcom.db,
// creating the schema if it does not exist.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
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
		dataDir:    cfg.DataDir,
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
		`CREATE TABLE IF NOT EXISTS individuals (
			id TEXT PRIMARY KEY,
			name TEXT,
			gender TEXT,
			birth_date TEXT,
			birth_place TEXT,
			death_date TEXT,
			death_place TEXT,
			occupation TEXT,
			residence TEXT,
			father_id TEXT,
			father_name TEXT,
			mother_id TEXT,
			mother_name TEXT,
			spouse_ids TEXT,
			spouse_names TEXT,
			child_ids TEXT,
			child_names TEXT,
			notes TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS families (
			id TEXT PRIMARY KEY,
			husband_id TEXT,
			husband_name TEXT,
			wife_id TEXT,
			wife_name TEXT,
			marriage_date TEXT,
			marriage_place TEXT,
			child_ids TEXT,
			notes TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_id TEXT NOT NULL,
			type TEXT NOT NULL,
			date TEXT,
			place TEXT,
			cause TEXT,
			notes TEXT,
			source_ids TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_owner_id ON events(owner_id)`,
		`CREATE INDEX IF NOT EXISTS idx_individuals_gender ON individuals(gender)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table over names and notes, with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='individuals_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE individuals_fts USING fts5(name, notes, content=individuals, content_rowid=rowid)`,
			`CREATE TRIGGER individuals_ai AFTER INSERT ON individuals BEGIN
				INSERT INTO individuals_fts(rowid, name, notes) VALUES (new.rowid, new.name, new.notes);
			END`,
			`CREATE TRIGGER individuals_ad AFTER DELETE ON individuals BEGIN
				INSERT INTO individuals_fts(individuals_fts, rowid, name, notes) VALUES('delete', old.rowid, old.name, old.notes);
			END`,
			`CREATE TRIGGER individuals_au AFTER UPDATE ON individuals BEGIN
				INSERT INTO individuals_fts(individuals_fts, rowid, name, notes) VALUES('delete', old.rowid, old.name, old.notes);
				INSERT INTO individuals_fts(rowid, name, notes) VALUES (new.rowid, new.name, new.notes);
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

// IngestSummary holds counts from an index run.
type IngestSummary struct {
	Individuals int
	Families    int
	Events      int
}

// Ingest replaces the index contents with the entities of doc. The index
// holds one document at a time; re-ingesting refreshes it completely.
func (s *Store) Ingest(ctx context.Context, doc *types.Document, w io.Writer) (IngestSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"individuals", "families", "events"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return IngestSummary{}, fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	var summary IngestSummary

	indStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO individuals (id, name, gender, birth_date, birth_place,
			death_date, death_place, occupation, residence,
			father_id, father_name, mother_id, mother_name,
			spouse_ids, spouse_names, child_ids, child_names, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing individual insert: %w", err)
	}
	defer indStmt.Close()

	for _, id := range doc.IndividualIDs {
		ind := doc.Individuals[id]
		rel := doc.Relations[id]
		notesJSON, _ := json.Marshal(ind.Notes)
		_, err := indStmt.ExecContext(ctx,
			ind.ID, ind.Name, ind.Gender, ind.BirthDate, ind.BirthPlace,
			ind.DeathDate, ind.DeathPlace, ind.Occupation, ind.Residence,
			rel.FatherID, rel.FatherName, rel.MotherID, rel.MotherName,
			rel.SpouseIDs, rel.SpouseNames, rel.ChildIDs, rel.ChildNames,
			string(notesJSON),
		)
		if err != nil {
			return IngestSummary{}, fmt.Errorf("inserting individual %s: %w", id, err)
		}
		summary.Individuals++
	}

	famStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO families (id, husband_id, husband_name, wife_id, wife_name,
			marriage_date, marriage_place, child_ids, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing family insert: %w", err)
	}
	defer famStmt.Close()

	for _, id := range doc.FamilyIDs {
		fam := doc.Families[id]
		childJSON, _ := json.Marshal(fam.ChildIDs)
		notesJSON, _ := json.Marshal(fam.Notes)
		_, err := famStmt.ExecContext(ctx,
			fam.ID, fam.HusbandID, fam.HusbandName, fam.WifeID, fam.WifeName,
			fam.Marriage.Date, fam.Marriage.Place, string(childJSON), string(notesJSON),
		)
		if err != nil {
			return IngestSummary{}, fmt.Errorf("inserting family %s: %w", id, err)
		}
		summary.Families++
	}

	evStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO events (owner_id, type, date, place, cause, notes, source_ids)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing event insert: %w", err)
	}
	defer evStmt.Close()

	for _, ev := range doc.Events {
		_, err := evStmt.ExecContext(ctx,
			ev.OwnerID, ev.Type, ev.Date, ev.Place, ev.Cause, ev.Notes, ev.SourceIDs,
		)
		if err != nil {
			return IngestSummary{}, fmt.Errorf("inserting event for %s: %w", ev.OwnerID, err)
		}
		summary.Events++
	}

	if err := tx.Commit(); err != nil {
		return IngestSummary{}, fmt.Errorf("committing: %w", err)
	}

	fmt.Fprintf(w, "indexed: %d individuals, %d families, %d events\n",
		summary.Individuals, summary.Families, summary.Events)
	return summary, nil
}
