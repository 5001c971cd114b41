package entity

import "strings"

// Language represents the source language of a lexical unit or synset.
type Language string

const (
	LanguagePolish  Language = "pl"
	LanguageEnglish Language = "en"
)

// pwnSuffix marks entries imported from Princeton WordNet.
const pwnSuffix = " pwn"

// DetectLanguage derives the language of a lexical unit from its part of
// speech tag. Entries mapped from Princeton WordNet carry a pos ending in
// " pwn" and are English; everything else in the dump is Polish.
func DetectLanguage(pos string) Language {
	if strings.HasSuffix(pos, pwnSuffix) {
		return LanguageEnglish
	}
	return LanguagePolish
}

// ParseLanguage converts an arbitrary string into a supported Language value.
func ParseLanguage(code string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "pl", "polish":
		return LanguagePolish, true
	case "en", "english":
		return LanguageEnglish, true
	default:
		return "", false
	}
}

// Code returns the lowercase language code.
func (l Language) Code() string {
	return string(l)
}

// Metadata summarizes a loaded dump: the free-text header attributes of the
// root element plus the sizes of the five collections.
type Metadata struct {
	Owner   string `json:"owner"`
	Date    string `json:"date"`
	Version string `json:"version"`

	LexicalUnits     int `json:"lexical_units"`
	Synsets          int `json:"synsets"`
	RelationTypes    int `json:"relation_types"`
	LexicalRelations int `json:"lexical_relations"`
	SynsetRelations  int `json:"synset_relations"`
}
