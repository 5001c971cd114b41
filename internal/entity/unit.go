package entity

import (
	"slices"
	"strings"
)

// LexicalUnit is a single word sense: one word form with its part of speech
// and sense-specific metadata.
type LexicalUnit struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Pos       string `json:"pos"`
	TagCount  int32  `json:"tagcount"`
	Domain    string `json:"domain"`
	Desc      string `json:"desc"`
	Workstate string `json:"workstate"`
	Source    string `json:"source"`
	Variant   int32  `json:"variant"`

	// Language is not read from the dump; it is derived once at parse time
	// from the pos suffix. See DetectLanguage.
	Language Language `json:"language"`
}

// UnitFilter defines filtering options when listing lexical units. It is the
// binding target for filter expressions, so every field reachable from a
// filter has a dedicated slot here.
type UnitFilter struct {
	Name       string
	NamePrefix string
	Names      []string

	Pos       string
	PosPrefix string

	Domain    string
	Workstate string
	Language  string

	TagCountMin *int32
	TagCountMax *int32
	Variant     *int32
}

// Matches reports whether the lexical unit satisfies every constraint set on
// the filter. Zero-valued constraints are ignored.
func (f *UnitFilter) Matches(u *LexicalUnit) bool {
	if f.Name != "" && u.Name != f.Name {
		return false
	}
	if f.NamePrefix != "" && !strings.HasPrefix(u.Name, f.NamePrefix) {
		return false
	}
	if len(f.Names) > 0 && !slices.Contains(f.Names, u.Name) {
		return false
	}
	if f.Pos != "" && u.Pos != f.Pos {
		return false
	}
	if f.PosPrefix != "" && !strings.HasPrefix(u.Pos, f.PosPrefix) {
		return false
	}
	if f.Domain != "" && u.Domain != f.Domain {
		return false
	}
	if f.Workstate != "" && u.Workstate != f.Workstate {
		return false
	}
	if f.Language != "" && u.Language.Code() != f.Language {
		return false
	}
	if f.TagCountMin != nil && u.TagCount < *f.TagCountMin {
		return false
	}
	if f.TagCountMax != nil && u.TagCount > *f.TagCountMax {
		return false
	}
	if f.Variant != nil && u.Variant != *f.Variant {
		return false
	}
	return true
}
