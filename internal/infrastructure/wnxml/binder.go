package wnxml

import (
	"encoding/xml"
	"strconv"

	"github.com/eslsoft/plwordnet/internal/entity"
)

// fieldSpec maps one XML attribute to a typed destination. Each entity kind
// declares a fixed table of these, so the default and error policy is
// applied uniformly instead of per-entity ad hoc code.
type fieldSpec struct {
	attr string
	bind func(value string) error
}

// bindAttrs assigns element attributes through the field table. An attribute
// absent from the element leaves its destination at the type's zero value;
// an attribute present but not coercible to the declared type aborts with
// InvalidAttributeValueError. The asymmetry is inherited from the reference
// loader and is relied upon by existing dumps.
func bindAttrs(el xml.StartElement, fields []fieldSpec) error {
	for _, attr := range el.Attr {
		for _, f := range fields {
			if attr.Name.Local != f.attr {
				continue
			}
			if err := f.bind(attr.Value); err != nil {
				return &entity.InvalidAttributeValueError{
					Tag:   el.Name.Local,
					Attr:  f.attr,
					Value: attr.Value,
				}
			}
			break
		}
	}
	return nil
}

func text(attr string, dst *string) fieldSpec {
	return fieldSpec{attr: attr, bind: func(value string) error {
		*dst = value
		return nil
	}}
}

func identifier(attr string, dst *uint64) fieldSpec {
	return fieldSpec{attr: attr, bind: func(value string) error {
		id, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		*dst = id
		return nil
	}}
}

func integer(attr string, dst *int32) fieldSpec {
	return fieldSpec{attr: attr, bind: func(value string) error {
		n, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return err
		}
		*dst = int32(n)
		return nil
	}}
}

// boolean treats exactly "true" as true and any other value as false; it
// never fails.
func boolean(attr string, dst *bool) fieldSpec {
	return fieldSpec{attr: attr, bind: func(value string) error {
		*dst = value == "true"
		return nil
	}}
}

type dumpHeader struct {
	Owner   string
	Date    string
	Version string
}

func bindHeader(el xml.StartElement) (dumpHeader, error) {
	var h dumpHeader
	err := bindAttrs(el, []fieldSpec{
		text("owner", &h.Owner),
		text("date", &h.Date),
		text("version", &h.Version),
	})
	return h, err
}

func bindLexicalUnit(el xml.StartElement) (*entity.LexicalUnit, error) {
	u := &entity.LexicalUnit{}
	err := bindAttrs(el, []fieldSpec{
		identifier("id", &u.ID),
		text("name", &u.Name),
		text("pos", &u.Pos),
		integer("tagcount", &u.TagCount),
		text("domain", &u.Domain),
		text("desc", &u.Desc),
		text("workstate", &u.Workstate),
		text("source", &u.Source),
		integer("variant", &u.Variant),
	})
	if err != nil {
		return nil, err
	}
	u.Language = entity.DetectLanguage(u.Pos)
	return u, nil
}

func bindSynset(el xml.StartElement) (*entity.Synset, error) {
	s := &entity.Synset{}
	err := bindAttrs(el, []fieldSpec{
		identifier("id", &s.ID),
		text("workstate", &s.Workstate),
		integer("split", &s.Split),
		text("owner", &s.Owner),
		text("definition", &s.Definition),
		text("desc", &s.Desc),
		boolean("abstract", &s.Abstract),
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func bindRelationType(el xml.StartElement) (*entity.RelationType, error) {
	rt := &entity.RelationType{}
	err := bindAttrs(el, []fieldSpec{
		identifier("id", &rt.ID),
		text("type", &rt.Type),
		identifier("reverse", &rt.Reverse),
		text("name", &rt.Name),
		text("description", &rt.Description),
		text("posstr", &rt.PosStr),
		text("display", &rt.Display),
		text("shortcut", &rt.Shortcut),
		boolean("autoreverse", &rt.AutoReverse),
		text("pwn", &rt.PWN),
	})
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func bindRelationTypeTest(el xml.StartElement) (entity.RelationTypeTest, error) {
	var t entity.RelationTypeTest
	err := bindAttrs(el, []fieldSpec{
		text("text", &t.Text),
		text("pos", &t.Pos),
	})
	return t, err
}

func bindLexicalRelation(el xml.StartElement) (entity.LexicalRelation, error) {
	var rel entity.LexicalRelation
	err := bindAttrs(el, []fieldSpec{
		identifier("parent", &rel.Parent),
		identifier("child", &rel.Child),
		identifier("relation", &rel.Relation),
		boolean("valid", &rel.Valid),
		text("owner", &rel.Owner),
	})
	return rel, err
}

func bindSynsetRelation(el xml.StartElement) (entity.SynsetRelation, error) {
	var rel entity.SynsetRelation
	err := bindAttrs(el, []fieldSpec{
		identifier("parent", &rel.Parent),
		identifier("child", &rel.Child),
		identifier("relation", &rel.Relation),
		boolean("valid", &rel.Valid),
		text("owner", &rel.Owner),
	})
	return rel, err
}
