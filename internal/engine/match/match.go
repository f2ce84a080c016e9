// Package match resolves free-text queries against candidate blocks.
package match

import (
	"strings"

	"theoremdex/internal/engine/scanner"
)

// Scores per rule. Rules are alternatives: a candidate's score is the
// maximum across rules, never a sum.
const (
	scoreNameEqual     = 100
	scoreLabelContains = 80
	scoreNameContains  = 70
	scoreTokenOverlap  = 60 // ceiling, scaled by matched fraction
	scoreKindContains  = 40
	acceptanceScore    = 30 // strict: accepted only when score > this
	maxSuggestions     = 5
)

// Result is the structured outcome of a lookup. A miss is not an error: it
// carries up to five document-order suggestions instead.
type Result struct {
	Found       bool
	Block       *scanner.Block
	Score       int
	Suggestions []*scanner.Block
}

// Best resolves query against blocks. An exact case-insensitive label match
// short-circuits immediately. Otherwise the strictly highest-scoring
// candidate wins, first-seen order breaking ties, and is accepted only above
// the threshold. With fuzzy disabled, only exact label or name equality
// counts.
func Best(blocks []*scanner.Block, query string, fuzzy bool) Result {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return miss(blocks)
	}

	var best *scanner.Block
	bestScore := 0
	for _, b := range blocks {
		if strings.ToLower(b.Label) == q {
			return Result{Found: true, Block: b, Score: scoreNameEqual}
		}
		score := 0
		if strings.ToLower(b.Name) == q {
			score = scoreNameEqual
		} else if fuzzy {
			score = fuzzyScore(b, q)
		}
		if score > bestScore {
			bestScore = score
			best = b
		}
	}

	if best == nil || bestScore <= acceptanceScore {
		return miss(blocks)
	}
	return Result{Found: true, Block: best, Score: bestScore}
}

func fuzzyScore(b *scanner.Block, q string) int {
	score := 0
	if b.Label != "" && strings.Contains(strings.ToLower(b.Label), q) {
		score = scoreLabelContains
	}
	if strings.Contains(strings.ToLower(b.Name), q) && scoreNameContains > score {
		score = scoreNameContains
	}
	if overlap := tokenOverlap(b.Statement, q); overlap > score {
		score = overlap
	}
	if strings.Contains(strings.ToLower(b.Kind), q) && scoreKindContains > score {
		score = scoreKindContains
	}
	return score
}

// tokenOverlap scores how many query words longer than two characters occur
// in the lowercased statement, scaled against the token-overlap ceiling.
func tokenOverlap(statement, q string) int {
	words := strings.Fields(q)
	considered := 0
	matched := 0
	lower := strings.ToLower(statement)
	for _, w := range words {
		if len(w) <= 2 {
			continue
		}
		considered++
		if strings.Contains(lower, w) {
			matched++
		}
	}
	if considered == 0 || matched == 0 {
		return 0
	}
	return scoreTokenOverlap * matched / considered
}

func miss(blocks []*scanner.Block) Result {
	n := len(blocks)
	if n > maxSuggestions {
		n = maxSuggestions
	}
	return Result{Suggestions: append([]*scanner.Block(nil), blocks[:n]...)}
}
