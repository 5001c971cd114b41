package usecase

import (
	"fmt"
	"iter"
	"strings"

	"github.com/eslsoft/plwordnet/internal/entity"
	"github.com/eslsoft/plwordnet/internal/repository"
	"github.com/eslsoft/plwordnet/pkg/filterexpr"
)

// LexiconUsecase defines the read-only query surface over a loaded lexicon.
// All operations are pure functions of the store and safe for concurrent
// use; sequences are lazy and restartable by re-ranging.
type LexiconUsecase interface {
	Metadata() entity.Metadata

	GetLexicalUnit(id uint64) (*LexicalUnitView, error)
	GetSynset(id uint64) (*SynsetView, error)
	GetRelationType(id uint64) (*RelationTypeView, error)

	LexicalUnits() iter.Seq[LexicalUnitView]
	Synsets() iter.Seq[SynsetView]
	RelationTypes() iter.Seq[RelationTypeView]

	SynsetsByLanguage(lang entity.Language) iter.Seq[SynsetView]
	LexicalRelationsByType(relationTypeID uint64) iter.Seq[entity.LexicalRelation]
	SynsetRelationsByType(relationTypeID uint64) iter.Seq[entity.SynsetRelation]

	ResolveLexicalRelation(rel entity.LexicalRelation) LexicalRelationView
	ResolveSynsetRelation(rel entity.SynsetRelation) SynsetRelationView

	LexicalUnitsForSynset(synsetID uint64) ([]LexicalUnitView, error)
	LexicalUnitsForSynsets(synsetIDs []uint64) []LexicalUnitView

	RenderSynset(synsetID uint64) (string, error)
	RenderSynsets(synsetIDs []uint64) string

	FilterLexicalUnits(filter string) ([]LexicalUnitView, error)
}

type lexiconUsecase struct {
	lex *repository.Lexicon
}

// NewLexiconUsecase wraps a loaded lexicon with the query API.
func NewLexiconUsecase(lex *repository.Lexicon) LexiconUsecase {
	return &lexiconUsecase{lex: lex}
}

func (uc *lexiconUsecase) Metadata() entity.Metadata {
	return uc.lex.Metadata()
}

func (uc *lexiconUsecase) GetLexicalUnit(id uint64) (*LexicalUnitView, error) {
	u, ok := uc.lex.LexicalUnit(id)
	if !ok {
		return nil, entity.ErrLexicalUnitNotFound
	}
	view := newLexicalUnitView(u)
	return &view, nil
}

func (uc *lexiconUsecase) GetSynset(id uint64) (*SynsetView, error) {
	s, ok := uc.lex.Synset(id)
	if !ok {
		return nil, entity.ErrSynsetNotFound
	}
	view := newSynsetView(uc.lex, s)
	return &view, nil
}

func (uc *lexiconUsecase) GetRelationType(id uint64) (*RelationTypeView, error) {
	rt, ok := uc.lex.RelationType(id)
	if !ok {
		return nil, entity.ErrRelationTypeNotFound
	}
	view := newRelationTypeView(rt)
	return &view, nil
}

func (uc *lexiconUsecase) LexicalUnits() iter.Seq[LexicalUnitView] {
	return func(yield func(LexicalUnitView) bool) {
		for u := range uc.lex.LexicalUnits() {
			if !yield(newLexicalUnitView(u)) {
				return
			}
		}
	}
}

func (uc *lexiconUsecase) Synsets() iter.Seq[SynsetView] {
	return func(yield func(SynsetView) bool) {
		for s := range uc.lex.Synsets() {
			if !yield(newSynsetView(uc.lex, s)) {
				return
			}
		}
	}
}

func (uc *lexiconUsecase) RelationTypes() iter.Seq[RelationTypeView] {
	return func(yield func(RelationTypeView) bool) {
		for rt := range uc.lex.RelationTypes() {
			if !yield(newRelationTypeView(rt)) {
				return
			}
		}
	}
}

// SynsetsByLanguage partitions synsets by language: a synset is Polish iff
// every member that resolves is Polish, English otherwise. This is a
// stricter rule than the per-view first-member language and the two are
// intentionally independent.
func (uc *lexiconUsecase) SynsetsByLanguage(lang entity.Language) iter.Seq[SynsetView] {
	return func(yield func(SynsetView) bool) {
		for s := range uc.lex.Synsets() {
			if uc.partitionLanguage(s) != lang {
				continue
			}
			if !yield(newSynsetView(uc.lex, s)) {
				return
			}
		}
	}
}

func (uc *lexiconUsecase) partitionLanguage(s *entity.Synset) entity.Language {
	for _, id := range s.UnitIDs {
		u, ok := uc.lex.LexicalUnit(id)
		if ok && u.Language != entity.LanguagePolish {
			return entity.LanguageEnglish
		}
	}
	return entity.LanguagePolish
}

func (uc *lexiconUsecase) LexicalRelationsByType(relationTypeID uint64) iter.Seq[entity.LexicalRelation] {
	return func(yield func(entity.LexicalRelation) bool) {
		for _, rel := range uc.lex.LexicalRelations() {
			if rel.Relation != relationTypeID {
				continue
			}
			if !yield(rel) {
				return
			}
		}
	}
}

func (uc *lexiconUsecase) SynsetRelationsByType(relationTypeID uint64) iter.Seq[entity.SynsetRelation] {
	return func(yield func(entity.SynsetRelation) bool) {
		for _, rel := range uc.lex.SynsetRelations() {
			if rel.Relation != relationTypeID {
				continue
			}
			if !yield(rel) {
				return
			}
		}
	}
}

func (uc *lexiconUsecase) ResolveLexicalRelation(rel entity.LexicalRelation) LexicalRelationView {
	return newLexicalRelationView(uc.lex, rel)
}

func (uc *lexiconUsecase) ResolveSynsetRelation(rel entity.SynsetRelation) SynsetRelationView {
	return newSynsetRelationView(uc.lex, rel)
}

// LexicalUnitsForSynset resolves the member list of one synset, dropping
// dangling ids.
func (uc *lexiconUsecase) LexicalUnitsForSynset(synsetID uint64) ([]LexicalUnitView, error) {
	s, ok := uc.lex.Synset(synsetID)
	if !ok {
		return nil, entity.ErrSynsetNotFound
	}
	return uc.resolveUnits(s.UnitIDs), nil
}

// LexicalUnitsForSynsets resolves members across several synsets in the
// order given; unknown synset ids and dangling members are skipped.
func (uc *lexiconUsecase) LexicalUnitsForSynsets(synsetIDs []uint64) []LexicalUnitView {
	var out []LexicalUnitView
	for _, id := range synsetIDs {
		if s, ok := uc.lex.Synset(id); ok {
			out = append(out, uc.resolveUnits(s.UnitIDs)...)
		}
	}
	return out
}

func (uc *lexiconUsecase) resolveUnits(ids []uint64) []LexicalUnitView {
	out := make([]LexicalUnitView, 0, len(ids))
	for _, id := range ids {
		if u, ok := uc.lex.LexicalUnit(id); ok {
			out = append(out, newLexicalUnitView(u))
		}
	}
	return out
}

// RenderSynset returns the comma-joined names of the synset's resolved
// members; dangling members are omitted.
func (uc *lexiconUsecase) RenderSynset(synsetID uint64) (string, error) {
	s, ok := uc.lex.Synset(synsetID)
	if !ok {
		return "", entity.ErrSynsetNotFound
	}
	return uc.renderSynset(s), nil
}

func (uc *lexiconUsecase) renderSynset(s *entity.Synset) string {
	var b strings.Builder
	for _, id := range s.UnitIDs {
		u, ok := uc.lex.LexicalUnit(id)
		if !ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(u.Name)
	}
	return b.String()
}

// RenderSynsets renders each synset in the order given and joins the parts
// with commas; unknown synset ids are skipped.
func (uc *lexiconUsecase) RenderSynsets(synsetIDs []uint64) string {
	var b strings.Builder
	for _, id := range synsetIDs {
		s, ok := uc.lex.Synset(id)
		if !ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(uc.renderSynset(s))
	}
	return b.String()
}

// unitFilterSchema whitelists the fields and operators accepted in lexical
// unit filter expressions and maps each to its UnitFilter slot.
var unitFilterSchema = map[string]filterexpr.FilterField{
	"name": {Kind: filterexpr.KindString, Ops: map[filterexpr.Op]string{
		filterexpr.OpEQ: "Name",
		filterexpr.OpSW: "NamePrefix",
		filterexpr.OpIN: "Names",
	}},
	"pos": {Kind: filterexpr.KindString, Ops: map[filterexpr.Op]string{
		filterexpr.OpEQ: "Pos",
		filterexpr.OpSW: "PosPrefix",
	}},
	"domain": {Kind: filterexpr.KindString, Ops: map[filterexpr.Op]string{
		filterexpr.OpEQ: "Domain",
	}},
	"workstate": {Kind: filterexpr.KindString, Ops: map[filterexpr.Op]string{
		filterexpr.OpEQ: "Workstate",
	}},
	"language": {Kind: filterexpr.KindString, Ops: map[filterexpr.Op]string{
		filterexpr.OpEQ: "Language",
	}},
	"tagcount": {Kind: filterexpr.KindNumber, Ops: map[filterexpr.Op]string{
		filterexpr.OpGTE: "TagCountMin",
		filterexpr.OpLTE: "TagCountMax",
	}},
	"variant": {Kind: filterexpr.KindNumber, Ops: map[filterexpr.Op]string{
		filterexpr.OpEQ: "Variant",
	}},
}

// FilterLexicalUnits evaluates a filter expression such as
// `pos == "noun" && tagcount >= 5` against all lexical units and returns the
// matching views in ascending id order.
func (uc *lexiconUsecase) FilterLexicalUnits(filter string) ([]LexicalUnitView, error) {
	var params entity.UnitFilter
	if err := filterexpr.Bind(filter, &params, unitFilterSchema); err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}

	var out []LexicalUnitView
	for u := range uc.lex.LexicalUnits() {
		if params.Matches(u) {
			out = append(out, newLexicalUnitView(u))
		}
	}
	return out, nil
}
