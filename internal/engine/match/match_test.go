package match

import (
	"testing"

	"theoremdex/internal/engine/scanner"
)

func candidates() []*scanner.Block {
	return []*scanner.Block{
		{Kind: "theorem", Name: "Fundamental Theorem", Label: "thm:fundamental",
			Statement: "Every integer factors uniquely into primes.", Ordinal: 1},
		{Kind: "lemma", Name: "Helper Lemma", Label: "lem:helper",
			Statement: "A small helper fact.", Ordinal: 2},
		{Kind: "corollary", Label: "cor:factor",
			Statement: "Factorization is computable.", Ordinal: 3},
		{Kind: "remark", Statement: "Nothing to see here.", Ordinal: 4},
	}
}

func TestBest_ExactLabelShortCircuits(t *testing.T) {
	res := Best(candidates(), "THM:FUNDAMENTAL", true)
	if !res.Found || res.Block.Label != "thm:fundamental" {
		t.Fatalf("expected exact label hit, got %+v", res)
	}
	if res.Score != 100 {
		t.Errorf("score = %d, want 100", res.Score)
	}
}

func TestBest_ExactName(t *testing.T) {
	res := Best(candidates(), "helper lemma", true)
	if !res.Found || res.Block.Label != "lem:helper" || res.Score != 100 {
		t.Fatalf("expected exact name hit, got %+v", res)
	}
}

func TestBest_LabelContains(t *testing.T) {
	res := Best(candidates(), "fundamental", true)
	if !res.Found || res.Block.Label != "thm:fundamental" {
		t.Fatalf("expected label containment hit, got %+v", res)
	}
	if res.Score != 80 {
		t.Errorf("score = %d, want 80", res.Score)
	}
}

func TestBest_NameContains(t *testing.T) {
	res := Best(candidates(), "helper l", true)
	if !res.Found || res.Block.Label != "lem:helper" || res.Score != 70 {
		t.Fatalf("expected name containment hit, got %+v", res)
	}
}

func TestBest_TokenOverlap(t *testing.T) {
	res := Best(candidates(), "integer primes", true)
	if !res.Found || res.Block.Label != "thm:fundamental" {
		t.Fatalf("expected statement overlap hit, got %+v", res)
	}
	if res.Score != 60 {
		t.Errorf("score = %d, want 60 (both words matched)", res.Score)
	}

	// one of two words matched scores 60 * 1 / 2 = 30, which does not
	// exceed the strict acceptance threshold
	if half := Best(candidates(), "integer pancakes", true); half.Found {
		t.Errorf("score equal to the threshold must not be accepted, got %+v", half)
	}
}

func TestBest_KindContains(t *testing.T) {
	res := Best(candidates(), "remark", true)
	if !res.Found || res.Block.Kind != "remark" || res.Score != 40 {
		t.Fatalf("expected kind containment hit, got %+v", res)
	}
}

func TestBest_TieBreaksFirstSeen(t *testing.T) {
	blocks := []*scanner.Block{
		{Kind: "lemma", Label: "lem:first", Statement: "shared unique phrase", Ordinal: 1},
		{Kind: "lemma", Label: "lem:second", Statement: "shared unique phrase", Ordinal: 2},
	}
	res := Best(blocks, "unique phrase", true)
	if !res.Found || res.Block.Label != "lem:first" {
		t.Fatalf("tie must go to the first-seen candidate, got %+v", res)
	}
}

func TestBest_NotFound(t *testing.T) {
	many := make([]*scanner.Block, 0, 8)
	for i := 0; i < 8; i++ {
		many = append(many, &scanner.Block{Kind: "theorem", Ordinal: i + 1, Statement: "xyz"})
	}
	res := Best(many, "zzzzzz", true)
	if res.Found {
		t.Fatal("expected a miss")
	}
	if len(res.Suggestions) != 5 {
		t.Errorf("suggestions = %d, want 5", len(res.Suggestions))
	}
	if res.Suggestions[0].Ordinal != 1 {
		t.Error("suggestions must be in document order")
	}
}

func TestBest_ExactMode(t *testing.T) {
	res := Best(candidates(), "Helper Lemma", false)
	if !res.Found || res.Block.Label != "lem:helper" {
		t.Fatalf("exact name equality must match in exact mode, got %+v", res)
	}
	if miss := Best(candidates(), "fundamental", false); miss.Found {
		t.Error("containment must not match in exact mode")
	}
}

func TestBest_EmptyQuery(t *testing.T) {
	if res := Best(candidates(), "  ", true); res.Found {
		t.Error("blank query must miss")
	}
}
