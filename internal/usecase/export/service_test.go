package export

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/eslsoft/plwordnet/internal/entity"
	"github.com/eslsoft/plwordnet/internal/repository"
)

func newExportLexicon() *repository.Lexicon {
	b := repository.NewBuilder("test", "2023-01-15", "4.2")

	b.AddLexicalUnit(&entity.LexicalUnit{
		ID: 1, Name: "kot", Pos: "rzeczownik", TagCount: 3,
		Language: entity.LanguagePolish,
	})
	b.AddLexicalUnit(&entity.LexicalUnit{
		ID: 2, Name: "cat", Pos: "noun pwn", TagCount: 7,
		Language: entity.LanguageEnglish,
	})

	b.AddSynset(&entity.Synset{ID: 100, Definition: "felis"})
	b.AppendSynsetUnit(100, 1)
	b.AppendSynsetUnit(100, 2)

	b.AddRelationType(&entity.RelationType{ID: 10, Name: "hiperonimia"})
	b.AppendRelationTypeTest(10, entity.RelationTypeTest{Text: "Test", Pos: "rzeczownik"})

	b.AddLexicalRelation(entity.LexicalRelation{Parent: 1, Child: 2, Relation: 10, Valid: true, Owner: "x"})
	b.AddSynsetRelation(entity.SynsetRelation{Parent: 100, Child: 999, Relation: 10, Valid: true, Owner: "y"})

	return b.Build()
}

func TestNewService_RequiresDSN(t *testing.T) {
	if _, err := NewService("  "); err == nil {
		t.Fatalf("expected error for empty DSN")
	}
}

func TestExport_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.db")

	svc, err := NewService(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Export(context.Background(), newExportLexicon()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("reopen database: %v", err)
	}
	defer db.Close()

	counts := map[string]int{
		"metadata":            1,
		"lexical_units":       2,
		"synsets":             1,
		"synset_units":        2,
		"relation_types":      1,
		"relation_type_tests": 1,
		"lexical_relations":   1,
		"synset_relations":    1,
	}
	for table, want := range counts {
		var got int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&got); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if got != want {
			t.Fatalf("table %s: expected %d rows, got %d", table, want, got)
		}
	}

	var owner, version string
	if err := db.QueryRow("SELECT owner, version FROM metadata").Scan(&owner, &version); err != nil {
		t.Fatalf("read metadata: %v", err)
	}
	if owner != "test" || version != "4.2" {
		t.Fatalf("unexpected metadata: %s %s", owner, version)
	}

	var name, language string
	if err := db.QueryRow("SELECT name, language FROM lexical_units WHERE id = 2").Scan(&name, &language); err != nil {
		t.Fatalf("read lexical unit: %v", err)
	}
	if name != "cat" || language != "en" {
		t.Fatalf("unexpected lexical unit row: %s %s", name, language)
	}

	rows, err := db.Query("SELECT unit_id FROM synset_units WHERE synset_id = 100 ORDER BY position")
	if err != nil {
		t.Fatalf("read synset members: %v", err)
	}
	defer rows.Close()
	var members []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			t.Fatalf("scan member: %v", err)
		}
		members = append(members, id)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("iterate members: %v", err)
	}
	if len(members) != 2 || members[0] != 1 || members[1] != 2 {
		t.Fatalf("expected members [1 2] in position order, got %v", members)
	}

	// Dangling edge endpoints are exported as-is.
	var child uint64
	if err := db.QueryRow("SELECT child FROM synset_relations").Scan(&child); err != nil {
		t.Fatalf("read synset relation: %v", err)
	}
	if child != 999 {
		t.Fatalf("expected dangling child 999, got %d", child)
	}
}

func TestExport_ReplacesPreviousRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.db")

	svc, err := NewService(path, WithBatchSize(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lex := newExportLexicon()
	if err := svc.Export(context.Background(), lex); err != nil {
		t.Fatalf("first export failed: %v", err)
	}
	if err := svc.Export(context.Background(), lex); err != nil {
		t.Fatalf("second export failed: %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("reopen database: %v", err)
	}
	defer db.Close()

	var got int
	if err := db.QueryRow("SELECT COUNT(*) FROM lexical_units").Scan(&got); err != nil {
		t.Fatalf("count lexical_units: %v", err)
	}
	if got != 2 {
		t.Fatalf("expected re-export to replace rows, got %d", got)
	}
}
