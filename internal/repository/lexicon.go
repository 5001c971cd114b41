package repository

import (
	"iter"
	"slices"

	"github.com/eslsoft/plwordnet/internal/entity"
)

// Lexicon is the fully parsed lexical graph. It is assembled once by a
// Builder and never mutated afterwards, so it is safe to share between
// goroutines without locking.
type Lexicon struct {
	owner   string
	date    string
	version string

	units         map[uint64]*entity.LexicalUnit
	synsets       map[uint64]*entity.Synset
	relationTypes map[uint64]*entity.RelationType

	lexicalRelations []entity.LexicalRelation
	synsetRelations  []entity.SynsetRelation

	// Key slices sorted ascending by id. Go map iteration order is
	// randomized, so enumeration commits to id order explicitly to keep
	// query output deterministic.
	unitIDs         []uint64
	synsetIDs       []uint64
	relationTypeIDs []uint64
}

// Metadata returns the dump header together with collection counts.
func (l *Lexicon) Metadata() entity.Metadata {
	return entity.Metadata{
		Owner:            l.owner,
		Date:             l.date,
		Version:          l.version,
		LexicalUnits:     len(l.units),
		Synsets:          len(l.synsets),
		RelationTypes:    len(l.relationTypes),
		LexicalRelations: len(l.lexicalRelations),
		SynsetRelations:  len(l.synsetRelations),
	}
}

// LexicalUnit looks up a lexical unit by id.
func (l *Lexicon) LexicalUnit(id uint64) (*entity.LexicalUnit, bool) {
	u, ok := l.units[id]
	return u, ok
}

// Synset looks up a synset by id.
func (l *Lexicon) Synset(id uint64) (*entity.Synset, bool) {
	s, ok := l.synsets[id]
	return s, ok
}

// RelationType looks up a relation type by id.
func (l *Lexicon) RelationType(id uint64) (*entity.RelationType, bool) {
	rt, ok := l.relationTypes[id]
	return rt, ok
}

// LexicalUnits iterates all lexical units in ascending id order.
func (l *Lexicon) LexicalUnits() iter.Seq[*entity.LexicalUnit] {
	return func(yield func(*entity.LexicalUnit) bool) {
		for _, id := range l.unitIDs {
			if !yield(l.units[id]) {
				return
			}
		}
	}
}

// Synsets iterates all synsets in ascending id order.
func (l *Lexicon) Synsets() iter.Seq[*entity.Synset] {
	return func(yield func(*entity.Synset) bool) {
		for _, id := range l.synsetIDs {
			if !yield(l.synsets[id]) {
				return
			}
		}
	}
}

// RelationTypes iterates all relation types in ascending id order.
func (l *Lexicon) RelationTypes() iter.Seq[*entity.RelationType] {
	return func(yield func(*entity.RelationType) bool) {
		for _, id := range l.relationTypeIDs {
			if !yield(l.relationTypes[id]) {
				return
			}
		}
	}
}

// LexicalRelations returns the lexical relation edges in document order.
// Callers must not modify the returned slice.
func (l *Lexicon) LexicalRelations() []entity.LexicalRelation {
	return l.lexicalRelations
}

// SynsetRelations returns the synset relation edges in document order.
// Callers must not modify the returned slice.
func (l *Lexicon) SynsetRelations() []entity.SynsetRelation {
	return l.synsetRelations
}

// Builder accumulates entities during a parse and freezes them into a
// Lexicon. A Builder must not be reused after Build.
type Builder struct {
	lex *Lexicon
}

// NewBuilder creates a builder holding the dump header attributes.
func NewBuilder(owner, date, version string) *Builder {
	return &Builder{lex: &Lexicon{
		owner:         owner,
		date:          date,
		version:       version,
		units:         make(map[uint64]*entity.LexicalUnit),
		synsets:       make(map[uint64]*entity.Synset),
		relationTypes: make(map[uint64]*entity.RelationType),
	}}
}

// AddLexicalUnit inserts a lexical unit keyed by its id.
func (b *Builder) AddLexicalUnit(u *entity.LexicalUnit) {
	b.lex.units[u.ID] = u
}

// AddSynset inserts a synset keyed by its id.
func (b *Builder) AddSynset(s *entity.Synset) {
	b.lex.synsets[s.ID] = s
}

// AppendSynsetUnit appends a member lexical unit id to the synset, keeping
// document order and duplicates. Unknown synset ids are ignored.
func (b *Builder) AppendSynsetUnit(synsetID, unitID uint64) {
	if s, ok := b.lex.synsets[synsetID]; ok {
		s.UnitIDs = append(s.UnitIDs, unitID)
	}
}

// AddRelationType inserts a relation type keyed by its id.
func (b *Builder) AddRelationType(rt *entity.RelationType) {
	b.lex.relationTypes[rt.ID] = rt
}

// AppendRelationTypeTest appends a substitution test to the relation type.
// Unknown relation type ids are ignored.
func (b *Builder) AppendRelationTypeTest(relationTypeID uint64, test entity.RelationTypeTest) {
	if rt, ok := b.lex.relationTypes[relationTypeID]; ok {
		rt.Tests = append(rt.Tests, test)
	}
}

// AddLexicalRelation appends a lexical relation edge in document order.
func (b *Builder) AddLexicalRelation(rel entity.LexicalRelation) {
	b.lex.lexicalRelations = append(b.lex.lexicalRelations, rel)
}

// AddSynsetRelation appends a synset relation edge in document order.
func (b *Builder) AddSynsetRelation(rel entity.SynsetRelation) {
	b.lex.synsetRelations = append(b.lex.synsetRelations, rel)
}

// Build freezes the accumulated entities and returns the finished Lexicon.
func (b *Builder) Build() *Lexicon {
	lex := b.lex
	b.lex = nil

	lex.unitIDs = sortedKeys(lex.units)
	lex.synsetIDs = sortedKeys(lex.synsets)
	lex.relationTypeIDs = sortedKeys(lex.relationTypes)
	return lex
}

func sortedKeys[V any](m map[uint64]V) []uint64 {
	keys := make([]uint64, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	slices.Sort(keys)
	return keys
}
