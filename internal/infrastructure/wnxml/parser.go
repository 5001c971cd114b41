// Package wnxml loads a plWordNet XML dump into a repository.Lexicon in a
// single forward pass. The dump is far too large for a DOM load, so the
// parser consumes decoder tokens one at a time and tracks the currently open
// container element (synset or relation type) in an explicit state value.
package wnxml

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/plwordnet/internal/entity"
	"github.com/eslsoft/plwordnet/internal/repository"
)

const (
	tagRoot            = "array-list"
	tagLexicalUnit     = "lexical-unit"
	tagSynset          = "synset"
	tagRelationType    = "relationtypes"
	tagTest            = "test"
	tagLexicalRelation = "lexicalrelations"
	tagSynsetRelation  = "synsetrelations"
	tagUnitID          = "unit-id"
)

const readBufferSize = 1 << 20

// Option configures a parse run.
type Option func(*parser)

// WithLogger attaches a logger for load progress reporting.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(p *parser) { p.logger = logger }
}

// Load parses the dump file at path.
func Load(path string, opts ...Option) (*repository.Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dump: %w", err)
	}
	defer f.Close()
	return Parse(bufio.NewReaderSize(f, readBufferSize), opts...)
}

// Parse consumes the whole event stream from r and returns the finished
// store. No partial store is ever returned: any failure aborts the load.
func Parse(r io.Reader, opts ...Option) (*repository.Lexicon, error) {
	p := &parser{
		decoder: xml.NewDecoder(r),
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p.run()
}

// stateKind enumerates which container element, if any, is currently open
// for the purpose of receiving nested children.
type stateKind uint8

const (
	stateIdle stateKind = iota
	stateInSynset
	stateInRelationType
)

// parseState is the whole parser context: the open container kind and its
// id. It is threaded through step as a value, never shared.
type parseState struct {
	kind   stateKind
	openID uint64
}

type parser struct {
	decoder *xml.Decoder
	builder *repository.Builder
	logger  logrus.FieldLogger
}

func (p *parser) run() (*repository.Lexicon, error) {
	state := parseState{kind: stateIdle}
	for {
		tok, err := p.decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			var syntaxErr *xml.SyntaxError
			if errors.As(err, &syntaxErr) {
				return nil, &entity.MalformedXMLError{Offset: p.decoder.InputOffset(), Err: err}
			}
			return nil, fmt.Errorf("read dump: %w", err)
		}

		state, err = p.step(state, tok)
		if err != nil {
			return nil, err
		}
	}

	if p.builder == nil {
		return nil, entity.ErrMissingRoot
	}
	lex := p.builder.Build()

	meta := lex.Metadata()
	p.logger.WithFields(logrus.Fields{
		"lexical_units":     meta.LexicalUnits,
		"synsets":           meta.Synsets,
		"relation_types":    meta.RelationTypes,
		"lexical_relations": meta.LexicalRelations,
		"synset_relations":  meta.SynsetRelations,
	}).Debug("dump loaded")

	return lex, nil
}

// step applies one decoder token to the current state and returns the next
// state. Self-closing elements arrive as a start token followed immediately
// by its end token, so a self-closing container opens and closes its context
// within the same source element.
func (p *parser) step(state parseState, tok xml.Token) (parseState, error) {
	switch t := tok.(type) {
	case xml.StartElement:
		return p.startElement(state, t)
	case xml.EndElement:
		if t.Name.Local == tagSynset || t.Name.Local == tagRelationType {
			return parseState{kind: stateIdle}, nil
		}
		return state, nil
	case xml.CharData:
		if state.kind != stateInSynset {
			return state, nil
		}
		return state, p.appendSynsetUnits(state.openID, t)
	default:
		// Comments, directives and processing instructions carry no data.
		return state, nil
	}
}

func (p *parser) startElement(state parseState, el xml.StartElement) (parseState, error) {
	if p.builder == nil {
		if el.Name.Local != tagRoot {
			return state, &entity.UnexpectedElementError{Tag: el.Name.Local}
		}
		header, err := bindHeader(el)
		if err != nil {
			return state, err
		}
		p.builder = repository.NewBuilder(header.Owner, header.Date, header.Version)
		return state, nil
	}

	switch el.Name.Local {
	case tagLexicalUnit:
		u, err := bindLexicalUnit(el)
		if err != nil {
			return state, err
		}
		p.builder.AddLexicalUnit(u)
		return state, nil

	case tagSynset:
		s, err := bindSynset(el)
		if err != nil {
			return state, err
		}
		p.builder.AddSynset(s)
		return parseState{kind: stateInSynset, openID: s.ID}, nil

	case tagRelationType:
		rt, err := bindRelationType(el)
		if err != nil {
			return state, err
		}
		p.builder.AddRelationType(rt)
		return parseState{kind: stateInRelationType, openID: rt.ID}, nil

	case tagTest:
		if state.kind != stateInRelationType {
			return state, &entity.UnexpectedElementError{Tag: tagTest}
		}
		test, err := bindRelationTypeTest(el)
		if err != nil {
			return state, err
		}
		p.builder.AppendRelationTypeTest(state.openID, test)
		return state, nil

	case tagLexicalRelation:
		rel, err := bindLexicalRelation(el)
		if err != nil {
			return state, err
		}
		p.builder.AddLexicalRelation(rel)
		return state, nil

	case tagSynsetRelation:
		rel, err := bindSynsetRelation(el)
		if err != nil {
			return state, err
		}
		p.builder.AddSynsetRelation(rel)
		return state, nil

	case tagUnitID:
		// Wrapper around a synset member id; the id itself arrives as
		// character data.
		return state, nil

	default:
		return state, &entity.UnexpectedElementError{Tag: el.Name.Local}
	}
}

// appendSynsetUnits parses whitespace-separated lexical unit ids from synset
// character data and appends them to the open synset's member list in
// document order.
func (p *parser) appendSynsetUnits(synsetID uint64, data xml.CharData) error {
	for _, field := range strings.Fields(string(data)) {
		id, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return &entity.InvalidAttributeValueError{Tag: tagSynset, Attr: tagUnitID, Value: field}
		}
		p.builder.AppendSynsetUnit(synsetID, id)
	}
	return nil
}
