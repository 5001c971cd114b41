package entity

import (
	"errors"
	"fmt"
)

// Domain errors for the lexical graph and its query surface.
var (
	ErrMissingRoot          = errors.New("dump has no array-list root element")
	ErrLexicalUnitNotFound  = errors.New("lexical unit not found")
	ErrSynsetNotFound       = errors.New("synset not found")
	ErrRelationTypeNotFound = errors.New("relation type not found")
)

// InvalidAttributeValueError reports an attribute that was present on an
// element but could not be coerced to its declared type. A missing attribute
// is not an error; it silently takes the type's zero value.
type InvalidAttributeValueError struct {
	Tag   string
	Attr  string
	Value string
}

func (e *InvalidAttributeValueError) Error() string {
	return fmt.Sprintf("invalid value %q for attribute %q on <%s>", e.Value, e.Attr, e.Tag)
}

// UnexpectedElementError reports a tag encountered outside any valid
// state-machine transition, such as a <test> element outside a relation
// type.
type UnexpectedElementError struct {
	Tag string
}

func (e *UnexpectedElementError) Error() string {
	return fmt.Sprintf("unexpected element <%s>", e.Tag)
}

// MalformedXMLError wraps a syntax error from the underlying tokenizer
// together with the byte offset at which it was reported.
type MalformedXMLError struct {
	Offset int64
	Err    error
}

func (e *MalformedXMLError) Error() string {
	return fmt.Sprintf("malformed xml at byte %d: %v", e.Offset, e.Err)
}

func (e *MalformedXMLError) Unwrap() error { return e.Err }
