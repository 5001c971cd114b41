// Package export writes a loaded lexicon into a SQLite database so that
// downstream tools can query the graph with SQL instead of re-parsing the
// XML dump.
package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // sqlite driver

	"github.com/eslsoft/plwordnet/internal/entity"
	"github.com/eslsoft/plwordnet/internal/repository"
)

const defaultBatchSize = 512

// Service exports a lexicon into a SQLite file.
type Service struct {
	dsn       string
	batchSize int
}

// Option configures the export service.
type Option func(*Service)

// WithBatchSize overrides the number of rows inserted per statement batch.
func WithBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// NewService constructs an export service bound to the given SQLite DSN
// (typically a file path).
func NewService(dsn string, opts ...Option) (*Service, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("export: DSN is required")
	}

	svc := &Service{dsn: dsn, batchSize: defaultBatchSize}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS metadata (
		owner TEXT NOT NULL,
		date TEXT NOT NULL,
		version TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS lexical_units (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		pos TEXT NOT NULL,
		tagcount INTEGER NOT NULL,
		domain TEXT NOT NULL,
		description TEXT NOT NULL,
		workstate TEXT NOT NULL,
		source TEXT NOT NULL,
		variant INTEGER NOT NULL,
		language TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS synsets (
		id INTEGER PRIMARY KEY,
		workstate TEXT NOT NULL,
		split INTEGER NOT NULL,
		owner TEXT NOT NULL,
		definition TEXT NOT NULL,
		description TEXT NOT NULL,
		abstract INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS synset_units (
		synset_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		unit_id INTEGER NOT NULL,
		PRIMARY KEY (synset_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS relation_types (
		id INTEGER PRIMARY KEY,
		type TEXT NOT NULL,
		reverse INTEGER NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		posstr TEXT NOT NULL,
		display TEXT NOT NULL,
		shortcut TEXT NOT NULL,
		autoreverse INTEGER NOT NULL,
		pwn TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS relation_type_tests (
		relation_type_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		text TEXT NOT NULL,
		pos TEXT NOT NULL,
		PRIMARY KEY (relation_type_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS lexical_relations (
		parent INTEGER NOT NULL,
		child INTEGER NOT NULL,
		relation INTEGER NOT NULL,
		valid INTEGER NOT NULL,
		owner TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS synset_relations (
		parent INTEGER NOT NULL,
		child INTEGER NOT NULL,
		relation INTEGER NOT NULL,
		valid INTEGER NOT NULL,
		owner TEXT NOT NULL
	)`,
}

// Export writes the whole lexicon into the target database inside a single
// transaction. Existing rows from a previous export are replaced.
func (s *Service) Export(ctx context.Context, lex *repository.Lexicon) (err error) {
	db, err := sql.Open("sqlite3", s.dsn)
	if err != nil {
		return fmt.Errorf("open sqlite database: %w", err)
	}
	defer db.Close()

	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{
		"metadata", "lexical_units", "synsets", "synset_units",
		"relation_types", "relation_type_tests", "lexical_relations", "synset_relations",
	} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear table %s: %w", table, err)
		}
	}

	if err = s.exportMetadata(ctx, tx, lex.Metadata()); err != nil {
		return err
	}
	if err = s.exportLexicalUnits(ctx, tx, lex); err != nil {
		return err
	}
	if err = s.exportSynsets(ctx, tx, lex); err != nil {
		return err
	}
	if err = s.exportRelationTypes(ctx, tx, lex); err != nil {
		return err
	}
	if err = s.exportRelations(ctx, tx, lex); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit export: %w", err)
	}
	return nil
}

func (s *Service) exportMetadata(ctx context.Context, tx *sql.Tx, meta entity.Metadata) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO metadata (owner, date, version) VALUES (?, ?, ?)`,
		meta.Owner, meta.Date, meta.Version,
	)
	if err != nil {
		return fmt.Errorf("insert metadata: %w", err)
	}
	return nil
}

func (s *Service) exportLexicalUnits(ctx context.Context, tx *sql.Tx, lex *repository.Lexicon) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO lexical_units
		(id, name, pos, tagcount, domain, description, workstate, source, variant, language)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare lexical_units insert: %w", err)
	}
	defer stmt.Close()

	for u := range lex.LexicalUnits() {
		_, err := stmt.ExecContext(ctx,
			u.ID, u.Name, u.Pos, u.TagCount, u.Domain, u.Desc,
			u.Workstate, u.Source, u.Variant, u.Language.Code(),
		)
		if err != nil {
			return fmt.Errorf("insert lexical unit %d: %w", u.ID, err)
		}
	}
	return nil
}

func (s *Service) exportSynsets(ctx context.Context, tx *sql.Tx, lex *repository.Lexicon) error {
	synsetStmt, err := tx.PrepareContext(ctx, `INSERT INTO synsets
		(id, workstate, split, owner, definition, description, abstract)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare synsets insert: %w", err)
	}
	defer synsetStmt.Close()

	memberStmt, err := tx.PrepareContext(ctx, `INSERT INTO synset_units
		(synset_id, position, unit_id) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare synset_units insert: %w", err)
	}
	defer memberStmt.Close()

	for syn := range lex.Synsets() {
		_, err := synsetStmt.ExecContext(ctx,
			syn.ID, syn.Workstate, syn.Split, syn.Owner, syn.Definition, syn.Desc, syn.Abstract,
		)
		if err != nil {
			return fmt.Errorf("insert synset %d: %w", syn.ID, err)
		}
		for pos, unitID := range syn.UnitIDs {
			if _, err := memberStmt.ExecContext(ctx, syn.ID, pos, unitID); err != nil {
				return fmt.Errorf("insert synset %d member at %d: %w", syn.ID, pos, err)
			}
		}
	}
	return nil
}

func (s *Service) exportRelationTypes(ctx context.Context, tx *sql.Tx, lex *repository.Lexicon) error {
	typeStmt, err := tx.PrepareContext(ctx, `INSERT INTO relation_types
		(id, type, reverse, name, description, posstr, display, shortcut, autoreverse, pwn)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare relation_types insert: %w", err)
	}
	defer typeStmt.Close()

	testStmt, err := tx.PrepareContext(ctx, `INSERT INTO relation_type_tests
		(relation_type_id, position, text, pos) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare relation_type_tests insert: %w", err)
	}
	defer testStmt.Close()

	for rt := range lex.RelationTypes() {
		_, err := typeStmt.ExecContext(ctx,
			rt.ID, rt.Type, rt.Reverse, rt.Name, rt.Description,
			rt.PosStr, rt.Display, rt.Shortcut, rt.AutoReverse, rt.PWN,
		)
		if err != nil {
			return fmt.Errorf("insert relation type %d: %w", rt.ID, err)
		}
		for pos, test := range rt.Tests {
			if _, err := testStmt.ExecContext(ctx, rt.ID, pos, test.Text, test.Pos); err != nil {
				return fmt.Errorf("insert relation type %d test at %d: %w", rt.ID, pos, err)
			}
		}
	}
	return nil
}

func (s *Service) exportRelations(ctx context.Context, tx *sql.Tx, lex *repository.Lexicon) error {
	if err := s.insertRelationRows(ctx, tx, "lexical_relations", asRelationRows(lex.LexicalRelations())); err != nil {
		return err
	}
	return s.insertRelationRows(ctx, tx, "synset_relations", synsetRelationRows(lex.SynsetRelations()))
}

type relationRow struct {
	parent   uint64
	child    uint64
	relation uint64
	valid    bool
	owner    string
}

func asRelationRows(rels []entity.LexicalRelation) []relationRow {
	rows := make([]relationRow, len(rels))
	for i, r := range rels {
		rows[i] = relationRow{r.Parent, r.Child, r.Relation, r.Valid, r.Owner}
	}
	return rows
}

func synsetRelationRows(rels []entity.SynsetRelation) []relationRow {
	rows := make([]relationRow, len(rels))
	for i, r := range rels {
		rows[i] = relationRow{r.Parent, r.Child, r.Relation, r.Valid, r.Owner}
	}
	return rows
}

// insertRelationRows batches edge inserts into multi-row VALUES statements;
// the edge lists dominate the dump so per-row round trips are avoided here.
func (s *Service) insertRelationRows(ctx context.Context, tx *sql.Tx, table string, rows []relationRow) error {
	const columns = "(parent, child, relation, valid, owner)"

	for start := 0; start < len(rows); start += s.batchSize {
		end := start + s.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]

		placeholders := make([]string, len(batch))
		args := make([]any, 0, len(batch)*5)
		for i, row := range batch {
			placeholders[i] = "(?, ?, ?, ?, ?)"
			args = append(args, row.parent, row.child, row.relation, row.valid, row.owner)
		}

		query := fmt.Sprintf("INSERT INTO %s %s VALUES %s", table, columns, strings.Join(placeholders, ", "))
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	return nil
}
