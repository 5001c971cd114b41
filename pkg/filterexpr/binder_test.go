package filterexpr

import (
	"slices"
	"strings"
	"testing"
)

type wordParams struct {
	Word       string
	WordPrefix string
	Words      []string
	Lang       string
	FreqMin    *int32
	FreqMax    *int32
}

var wordSchema = map[string]FilterField{
	"word": {Kind: KindString, Ops: map[Op]string{
		OpEQ: "Word",
		OpSW: "WordPrefix",
		OpIN: "Words",
	}},
	"lang": {Kind: KindString, Ops: map[Op]string{
		OpEQ: "Lang",
	}},
	"freq": {Kind: KindNumber, Ops: map[Op]string{
		OpGTE: "FreqMin",
		OpLTE: "FreqMax",
	}},
}

func TestBind_StringEquality(t *testing.T) {
	var params wordParams
	if err := Bind(`word == "kot"`, &params, wordSchema); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Word != "kot" {
		t.Fatalf("expected Word=kot, got %q", params.Word)
	}
}

func TestBind_StartsWith(t *testing.T) {
	var params wordParams
	if err := Bind(`word.startsWith("ko")`, &params, wordSchema); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.WordPrefix != "ko" {
		t.Fatalf("expected WordPrefix=ko, got %q", params.WordPrefix)
	}
}

func TestBind_InList(t *testing.T) {
	var params wordParams
	if err := Bind(`word in ["kot", "pies"]`, &params, wordSchema); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(params.Words, []string{"kot", "pies"}) {
		t.Fatalf("expected Words=[kot pies], got %v", params.Words)
	}
}

func TestBind_NumericRangeIntoPointers(t *testing.T) {
	var params wordParams
	if err := Bind(`freq >= 2 && freq <= 10`, &params, wordSchema); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.FreqMin == nil || *params.FreqMin != 2 {
		t.Fatalf("expected FreqMin=2, got %v", params.FreqMin)
	}
	if params.FreqMax == nil || *params.FreqMax != 10 {
		t.Fatalf("expected FreqMax=10, got %v", params.FreqMax)
	}
}

func TestBind_NestedConjunctionFlattened(t *testing.T) {
	var params wordParams
	if err := Bind(`word == "kot" && lang == "pl" && freq >= 1`, &params, wordSchema); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Word != "kot" || params.Lang != "pl" || params.FreqMin == nil || *params.FreqMin != 1 {
		t.Fatalf("unexpected params: %+v", params)
	}
}

func TestBind_EmptyFilterIsNoop(t *testing.T) {
	var params wordParams
	if err := Bind("  ", &params, wordSchema); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Word != "" || params.Words != nil || params.FreqMin != nil {
		t.Fatalf("expected untouched params, got %+v", params)
	}
}

func TestBind_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		want   string
	}{
		{"unknown field", `mystery == "x"`, "is not allowed"},
		{"disallowed op", `lang.startsWith("p")`, "not allowed for field"},
		{"or", `word == "a" || word == "b"`, "only AND is allowed"},
		{"negation", `!(word == "a")`, "only AND is allowed"},
		{"ternary", `word == "a" ? true : false`, "only AND is allowed"},
		{"non-literal rhs", `word == lang`, "must be a literal"},
		{"non-ident lhs", `"kot" == "kot"`, "must be an identifier"},
		{"string where number", `freq >= "x"`, "expected number literal"},
		{"empty list", `word in []`, "must not be empty"},
		{"fractional int", `freq >= 2.5`, "non-integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var params wordParams
			err := Bind(tt.filter, &params, wordSchema)
			if err == nil {
				t.Fatalf("expected error for filter %q", tt.filter)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestBind_SchemaFieldMustExistOnStruct(t *testing.T) {
	var params wordParams
	schema := map[string]FilterField{
		"word": {Kind: KindString, Ops: map[Op]string{OpEQ: "NoSuchField"}},
	}
	if err := Bind(`word == "kot"`, &params, schema); err == nil {
		t.Fatalf("expected error for unmapped destination field")
	}
}
