package wnxml

import (
	"errors"
	"strings"
	"testing"

	"github.com/eslsoft/plwordnet/internal/entity"
	"github.com/eslsoft/plwordnet/internal/repository"
)

const sampleDump = `<?xml version="1.0" encoding="UTF-8"?>
<array-list owner="wordnet team" date="2023-01-15" version="4.2">
  <lexical-unit id="1" name="kot" pos="rzeczownik" tagcount="3" domain="zw" desc="domowy" workstate="ok" source="user" variant="1"/>
  <lexical-unit id="2" name="cat" pos="noun pwn" tagcount="7" domain="animal" desc="feline" workstate="ok" source="pwn" variant="1"/>
  <lexical-unit id="3" name="pies" pos="rzeczownik" variant="2"/>
  <synset id="100" workstate="ok" split="1" owner="x" definition="felis" desc="" abstract="false">
    <unit-id>1</unit-id>
    <unit-id>2</unit-id>
  </synset>
  <synset id="101" abstract="true">3 3</synset>
  <relationtypes id="10" type="relacja" reverse="11" name="hiperonimia" description="opis" posstr="n" display="&lt;x&gt; jest hiperonimem &lt;y&gt;" shortcut="hiper" autoreverse="true" pwn="hypernym">
    <test text="Każdy kot jest zwierzęciem" pos="rzeczownik"/>
    <test text="Drugi test" pos="czasownik"/>
  </relationtypes>
  <relationtypes id="11" type="relacja" name="hiponimia"/>
  <lexicalrelations parent="1" child="3" relation="10" valid="true" owner="x"/>
  <lexicalrelations parent="3" child="1" relation="11" valid="false" owner="x"/>
  <synsetrelations parent="100" child="101" relation="10" valid="true" owner="y"/>
  <synsetrelations parent="100" child="999" relation="5" valid="true" owner="x"/>
</array-list>`

func parseSample(t *testing.T) *repository.Lexicon {
	t.Helper()
	lex, err := Parse(strings.NewReader(sampleDump))
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return lex
}

func TestParse_Metadata(t *testing.T) {
	lex := parseSample(t)

	meta := lex.Metadata()
	if meta.Owner != "wordnet team" || meta.Date != "2023-01-15" || meta.Version != "4.2" {
		t.Fatalf("unexpected header: %+v", meta)
	}
	if meta.LexicalUnits != 3 {
		t.Fatalf("expected 3 lexical units, got %d", meta.LexicalUnits)
	}
	if meta.Synsets != 2 {
		t.Fatalf("expected 2 synsets, got %d", meta.Synsets)
	}
	if meta.RelationTypes != 2 {
		t.Fatalf("expected 2 relation types, got %d", meta.RelationTypes)
	}
	if meta.LexicalRelations != 2 || meta.SynsetRelations != 2 {
		t.Fatalf("unexpected relation counts: %+v", meta)
	}
}

func TestParse_LanguageDerivedFromPos(t *testing.T) {
	lex := parseSample(t)

	kot, ok := lex.LexicalUnit(1)
	if !ok {
		t.Fatalf("lexical unit 1 missing")
	}
	if kot.Language != entity.LanguagePolish {
		t.Fatalf("expected pl for pos %q, got %s", kot.Pos, kot.Language)
	}

	cat, ok := lex.LexicalUnit(2)
	if !ok {
		t.Fatalf("lexical unit 2 missing")
	}
	if cat.Language != entity.LanguageEnglish {
		t.Fatalf("expected en for pos %q, got %s", cat.Pos, cat.Language)
	}
}

func TestParse_SynsetMembersKeepOrderAndDuplicates(t *testing.T) {
	lex := parseSample(t)

	wrapped, ok := lex.Synset(100)
	if !ok {
		t.Fatalf("synset 100 missing")
	}
	if len(wrapped.UnitIDs) != 2 || wrapped.UnitIDs[0] != 1 || wrapped.UnitIDs[1] != 2 {
		t.Fatalf("unexpected members for synset 100: %v", wrapped.UnitIDs)
	}

	bare, ok := lex.Synset(101)
	if !ok {
		t.Fatalf("synset 101 missing")
	}
	if len(bare.UnitIDs) != 2 || bare.UnitIDs[0] != 3 || bare.UnitIDs[1] != 3 {
		t.Fatalf("expected duplicate members [3 3], got %v", bare.UnitIDs)
	}
	if !bare.Abstract {
		t.Fatalf("expected synset 101 to be abstract")
	}
}

func TestParse_RelationTypeTestsNested(t *testing.T) {
	lex := parseSample(t)

	rt, ok := lex.RelationType(10)
	if !ok {
		t.Fatalf("relation type 10 missing")
	}
	if rt.Reverse != 11 || !rt.AutoReverse || rt.PWN != "hypernym" {
		t.Fatalf("unexpected relation type fields: %+v", rt)
	}
	if len(rt.Tests) != 2 {
		t.Fatalf("expected 2 tests, got %d", len(rt.Tests))
	}
	if rt.Tests[0].Text != "Każdy kot jest zwierzęciem" || rt.Tests[1].Pos != "czasownik" {
		t.Fatalf("unexpected tests: %+v", rt.Tests)
	}

	leaf, ok := lex.RelationType(11)
	if !ok {
		t.Fatalf("relation type 11 missing")
	}
	if len(leaf.Tests) != 0 {
		t.Fatalf("expected no tests for self-closing relation type, got %d", len(leaf.Tests))
	}
}

func TestParse_MissingAttributesDefault(t *testing.T) {
	lex := parseSample(t)

	pies, ok := lex.LexicalUnit(3)
	if !ok {
		t.Fatalf("lexical unit 3 missing")
	}
	if pies.TagCount != 0 || pies.Domain != "" || pies.Desc != "" || pies.Source != "" {
		t.Fatalf("expected zero defaults for absent attributes, got %+v", pies)
	}
	if pies.Variant != 2 {
		t.Fatalf("expected variant 2, got %d", pies.Variant)
	}
}

func TestParse_InvalidAttributeValueAborts(t *testing.T) {
	doc := `<array-list owner="o" date="d" version="v">
		<lexical-unit id="1" name="kot" pos="rzeczownik" tagcount="not-a-number"/>
	</array-list>`

	_, err := Parse(strings.NewReader(doc))
	var attrErr *entity.InvalidAttributeValueError
	if !errors.As(err, &attrErr) {
		t.Fatalf("expected InvalidAttributeValueError, got %v", err)
	}
	if attrErr.Tag != "lexical-unit" || attrErr.Attr != "tagcount" || attrErr.Value != "not-a-number" {
		t.Fatalf("unexpected error detail: %+v", attrErr)
	}
}

func TestParse_TestOutsideRelationTypeIsStructuralError(t *testing.T) {
	doc := `<array-list owner="o" date="d" version="v">
		<test text="zabłąkany" pos="rzeczownik"/>
	</array-list>`

	_, err := Parse(strings.NewReader(doc))
	var elemErr *entity.UnexpectedElementError
	if !errors.As(err, &elemErr) {
		t.Fatalf("expected UnexpectedElementError, got %v", err)
	}
	if elemErr.Tag != "test" {
		t.Fatalf("unexpected tag: %q", elemErr.Tag)
	}
}

func TestParse_UnknownElementIsStructuralError(t *testing.T) {
	doc := `<array-list owner="o" date="d" version="v">
		<mystery id="1"/>
	</array-list>`

	_, err := Parse(strings.NewReader(doc))
	var elemErr *entity.UnexpectedElementError
	if !errors.As(err, &elemErr) {
		t.Fatalf("expected UnexpectedElementError, got %v", err)
	}
	if elemErr.Tag != "mystery" {
		t.Fatalf("unexpected tag: %q", elemErr.Tag)
	}
}

func TestParse_RootMustComeFirst(t *testing.T) {
	_, err := Parse(strings.NewReader(`<lexical-unit id="1"/>`))
	var elemErr *entity.UnexpectedElementError
	if !errors.As(err, &elemErr) {
		t.Fatalf("expected UnexpectedElementError, got %v", err)
	}
}

func TestParse_MissingRoot(t *testing.T) {
	_, err := Parse(strings.NewReader(`<?xml version="1.0"?>`))
	if !errors.Is(err, entity.ErrMissingRoot) {
		t.Fatalf("expected ErrMissingRoot, got %v", err)
	}
}

func TestParse_MalformedXML(t *testing.T) {
	doc := `<array-list owner="o" date="d" version="v"><synset id="100"`

	_, err := Parse(strings.NewReader(doc))
	var xmlErr *entity.MalformedXMLError
	if !errors.As(err, &xmlErr) {
		t.Fatalf("expected MalformedXMLError, got %v", err)
	}
	if xmlErr.Offset <= 0 {
		t.Fatalf("expected a positive byte offset, got %d", xmlErr.Offset)
	}
}

func TestParse_InvalidSynsetMemberTextAborts(t *testing.T) {
	doc := `<array-list owner="o" date="d" version="v">
		<synset id="100">abc</synset>
	</array-list>`

	_, err := Parse(strings.NewReader(doc))
	var attrErr *entity.InvalidAttributeValueError
	if !errors.As(err, &attrErr) {
		t.Fatalf("expected InvalidAttributeValueError, got %v", err)
	}
	if attrErr.Value != "abc" {
		t.Fatalf("unexpected raw value: %q", attrErr.Value)
	}
}

func TestParse_DanglingReferencesTolerated(t *testing.T) {
	doc := `<array-list owner="o" date="d" version="v">
		<synset id="100">555</synset>
		<synsetrelations parent="100" child="999" relation="5" valid="true" owner="x"/>
	</array-list>`

	lex, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("dangling references must not fail the load: %v", err)
	}
	s, ok := lex.Synset(100)
	if !ok || len(s.UnitIDs) != 1 || s.UnitIDs[0] != 555 {
		t.Fatalf("expected raw member id 555 to be stored, got %+v", s)
	}
}
