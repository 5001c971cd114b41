package usecase

import (
	"github.com/samber/lo"

	"github.com/eslsoft/plwordnet/internal/entity"
	"github.com/eslsoft/plwordnet/internal/repository"
)

// Views are projections over the store, rebuilt on every call. The store is
// immutable, so there is nothing to cache or invalidate; string fields share
// backing storage with the stored entities.

// LexicalUnitView mirrors a lexical unit. Language is recomputed from the
// pos suffix so a view stays self-consistent even when constructed outside
// the parse path; the rule is identical to the one applied at parse time.
type LexicalUnitView struct {
	ID        uint64          `json:"id"`
	Name      string          `json:"name"`
	Pos       string          `json:"pos"`
	TagCount  int32           `json:"tagcount"`
	Domain    string          `json:"domain"`
	Desc      string          `json:"desc"`
	Workstate string          `json:"workstate"`
	Source    string          `json:"source"`
	Variant   int32           `json:"variant"`
	Language  entity.Language `json:"language"`
}

// SynsetView mirrors a synset with its member ids resolved into lexical unit
// views. Members whose id does not resolve are dropped silently.
type SynsetView struct {
	ID         uint64 `json:"id"`
	Workstate  string `json:"workstate"`
	Split      int32  `json:"split"`
	Owner      string `json:"owner"`
	Definition string `json:"definition"`
	Desc       string `json:"desc"`
	Abstract   bool   `json:"abstract"`

	Units []LexicalUnitView `json:"units"`

	// Language follows the first resolved member, defaulting to Polish when
	// no member resolves. This is deliberately a different rule from the
	// all-members partition used by SynsetsByLanguage.
	Language entity.Language `json:"language"`
}

// RelationTypeView mirrors a relation type. Substitution tests are not
// exposed on the view.
type RelationTypeView struct {
	ID          uint64 `json:"id"`
	Type        string `json:"type"`
	Reverse     uint64 `json:"reverse"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PosStr      string `json:"posstr"`
	Display     string `json:"display"`
	Shortcut    string `json:"shortcut"`
	AutoReverse bool   `json:"autoreverse"`
	PWN         string `json:"pwn"`
}

// LexicalRelationView is a lexical relation edge with each endpoint and the
// relation type resolved where possible; unresolved references are nil.
type LexicalRelationView struct {
	Parent   *LexicalUnitView  `json:"parent,omitempty"`
	Child    *LexicalUnitView  `json:"child,omitempty"`
	Relation *RelationTypeView `json:"relation,omitempty"`
	Valid    bool              `json:"valid"`
	Owner    string            `json:"owner"`
}

// SynsetRelationView is a synset relation edge with resolved references;
// unresolved references are nil.
type SynsetRelationView struct {
	Parent   *SynsetView       `json:"parent,omitempty"`
	Child    *SynsetView       `json:"child,omitempty"`
	Relation *RelationTypeView `json:"relation,omitempty"`
	Valid    bool              `json:"valid"`
	Owner    string            `json:"owner"`
}

func newLexicalUnitView(u *entity.LexicalUnit) LexicalUnitView {
	return LexicalUnitView{
		ID:        u.ID,
		Name:      u.Name,
		Pos:       u.Pos,
		TagCount:  u.TagCount,
		Domain:    u.Domain,
		Desc:      u.Desc,
		Workstate: u.Workstate,
		Source:    u.Source,
		Variant:   u.Variant,
		Language:  entity.DetectLanguage(u.Pos),
	}
}

func newSynsetView(lex *repository.Lexicon, s *entity.Synset) SynsetView {
	units := lo.FilterMap(s.UnitIDs, func(id uint64, _ int) (LexicalUnitView, bool) {
		u, ok := lex.LexicalUnit(id)
		if !ok {
			return LexicalUnitView{}, false
		}
		return newLexicalUnitView(u), true
	})

	language := entity.LanguagePolish
	if len(units) > 0 {
		language = units[0].Language
	}

	return SynsetView{
		ID:         s.ID,
		Workstate:  s.Workstate,
		Split:      s.Split,
		Owner:      s.Owner,
		Definition: s.Definition,
		Desc:       s.Desc,
		Abstract:   s.Abstract,
		Units:      units,
		Language:   language,
	}
}

func newRelationTypeView(rt *entity.RelationType) RelationTypeView {
	return RelationTypeView{
		ID:          rt.ID,
		Type:        rt.Type,
		Reverse:     rt.Reverse,
		Name:        rt.Name,
		Description: rt.Description,
		PosStr:      rt.PosStr,
		Display:     rt.Display,
		Shortcut:    rt.Shortcut,
		AutoReverse: rt.AutoReverse,
		PWN:         rt.PWN,
	}
}

func newLexicalRelationView(lex *repository.Lexicon, rel entity.LexicalRelation) LexicalRelationView {
	view := LexicalRelationView{Valid: rel.Valid, Owner: rel.Owner}
	if u, ok := lex.LexicalUnit(rel.Parent); ok {
		parent := newLexicalUnitView(u)
		view.Parent = &parent
	}
	if u, ok := lex.LexicalUnit(rel.Child); ok {
		child := newLexicalUnitView(u)
		view.Child = &child
	}
	if rt, ok := lex.RelationType(rel.Relation); ok {
		relation := newRelationTypeView(rt)
		view.Relation = &relation
	}
	return view
}

func newSynsetRelationView(lex *repository.Lexicon, rel entity.SynsetRelation) SynsetRelationView {
	view := SynsetRelationView{Valid: rel.Valid, Owner: rel.Owner}
	if s, ok := lex.Synset(rel.Parent); ok {
		parent := newSynsetView(lex, s)
		view.Parent = &parent
	}
	if s, ok := lex.Synset(rel.Child); ok {
		child := newSynsetView(lex, s)
		view.Child = &child
	}
	if rt, ok := lex.RelationType(rel.Relation); ok {
		relation := newRelationTypeView(rt)
		view.Relation = &relation
	}
	return view
}
