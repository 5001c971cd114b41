package entity

// Synset groups lexical units considered synonymous under a shared
// definition.
type Synset struct {
	ID         uint64 `json:"id"`
	Workstate  string `json:"workstate"`
	Split      int32  `json:"split"`
	Owner      string `json:"owner"`
	Definition string `json:"definition"`
	Desc       string `json:"desc"`
	Abstract   bool   `json:"abstract"`

	// UnitIDs lists member lexical units in document order. Duplicates are
	// kept as encountered, and ids may dangle: a member is allowed to
	// reference a lexical unit absent from the dump.
	UnitIDs []uint64 `json:"unit_ids"`
}
