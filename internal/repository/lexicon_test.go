package repository

import (
	"slices"
	"testing"

	"github.com/eslsoft/plwordnet/internal/entity"
)

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder("owner", "2023-01-15", "4.2")
	// Insert out of id order; iteration must still come back sorted.
	b.AddLexicalUnit(&entity.LexicalUnit{ID: 30, Name: "trzy"})
	b.AddLexicalUnit(&entity.LexicalUnit{ID: 10, Name: "jeden"})
	b.AddLexicalUnit(&entity.LexicalUnit{ID: 20, Name: "dwa"})
	b.AddSynset(&entity.Synset{ID: 2})
	b.AddSynset(&entity.Synset{ID: 1})
	b.AppendSynsetUnit(1, 10)
	b.AppendSynsetUnit(1, 10)
	b.AppendSynsetUnit(999, 10)
	b.AddRelationType(&entity.RelationType{ID: 5, Name: "rel"})
	b.AppendRelationTypeTest(5, entity.RelationTypeTest{Text: "t", Pos: "p"})
	b.AppendRelationTypeTest(999, entity.RelationTypeTest{Text: "x", Pos: "y"})
	b.AddLexicalRelation(entity.LexicalRelation{Parent: 10, Child: 20, Relation: 5})
	b.AddSynsetRelation(entity.SynsetRelation{Parent: 1, Child: 2, Relation: 5})

	lex := b.Build()

	meta := lex.Metadata()
	if meta.Owner != "owner" || meta.LexicalUnits != 3 || meta.Synsets != 2 {
		t.Fatalf("unexpected metadata: %+v", meta)
	}

	var ids []uint64
	for u := range lex.LexicalUnits() {
		ids = append(ids, u.ID)
	}
	if !slices.Equal(ids, []uint64{10, 20, 30}) {
		t.Fatalf("expected ascending id iteration, got %v", ids)
	}

	s, ok := lex.Synset(1)
	if !ok {
		t.Fatalf("synset 1 missing")
	}
	if !slices.Equal(s.UnitIDs, []uint64{10, 10}) {
		t.Fatalf("expected duplicate members kept in order, got %v", s.UnitIDs)
	}

	rt, ok := lex.RelationType(5)
	if !ok || len(rt.Tests) != 1 {
		t.Fatalf("expected one test on relation type 5, got %+v", rt)
	}

	if _, ok := lex.LexicalUnit(999); ok {
		t.Fatalf("lookup of unknown id must fail")
	}

	if len(lex.LexicalRelations()) != 1 || len(lex.SynsetRelations()) != 1 {
		t.Fatalf("unexpected relation counts")
	}
}

func TestLexicon_IterationIsRestartable(t *testing.T) {
	b := NewBuilder("o", "d", "v")
	b.AddSynset(&entity.Synset{ID: 3})
	b.AddSynset(&entity.Synset{ID: 1})
	b.AddSynset(&entity.Synset{ID: 2})
	lex := b.Build()

	seq := lex.Synsets()
	var first, second []uint64
	for s := range seq {
		first = append(first, s.ID)
	}
	for s := range seq {
		second = append(second, s.ID)
		if s.ID == 1 {
			break
		}
	}
	if !slices.Equal(first, []uint64{1, 2, 3}) {
		t.Fatalf("expected sorted ids, got %v", first)
	}
	if !slices.Equal(second, []uint64{1}) {
		t.Fatalf("early break must stop the sequence, got %v", second)
	}
}
