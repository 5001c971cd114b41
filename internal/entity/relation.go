package entity

// RelationType is a named kind of semantic or lexical relation, optionally
// declaring its inverse via Reverse (0 when none).
type RelationType struct {
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

	// Tests hold substitution test sentences declared as nested child
	// elements of the relation type.
	Tests []RelationTypeTest `json:"tests"`
}

// RelationTypeTest is a substitution test attached to a relation type.
type RelationTypeTest struct {
	Text string `json:"text"`
	Pos  string `json:"pos"`
}

// LexicalRelation is a directed, typed edge between two lexical units.
// Parent, Child and Relation are raw ids; none of them is guaranteed to
// resolve in the store.
type LexicalRelation struct {
	Parent   uint64 `json:"parent"`
	Child    uint64 `json:"child"`
	Relation uint64 `json:"relation"`
	Valid    bool   `json:"valid"`
	Owner    string `json:"owner"`
}

// SynsetRelation is a directed, typed edge between two synsets.
type SynsetRelation struct {
	Parent   uint64 `json:"parent"`
	Child    uint64 `json:"child"`
	Relation uint64 `json:"relation"`
	Valid    bool   `json:"valid"`
	Owner    string `json:"owner"`
}
