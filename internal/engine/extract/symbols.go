package extract

import (
	"context"
	"regexp"
	"sort"

	"theoremdex/internal/core/errors"
)

var (
	commandPattern     = regexp.MustCompile(`\\([a-zA-Z]+)`)
	inlineMathPattern  = regexp.MustCompile(`\$([^$]+)\$`)
	displayMathPattern = regexp.MustCompile(`(?s)\\\[(.+?)\\\]`)
	equationEnvPattern = regexp.MustCompile(`(?s)\\begin\{equation\*?\}(.+?)\\end\{equation\*?\}`)
	alignEnvPattern    = regexp.MustCompile(`(?s)\\begin\{align\*?\}(.+?)\\end\{align\*?\}`)
	bareWordPattern    = regexp.MustCompile(`[a-zA-Z]+`)
)

// structuralCommands carry no mathematical content and are excluded from the
// symbol set.
var structuralCommands = map[string]bool{
	"begin": true, "end": true, "label": true, "ref": true, "eqref": true,
	"cite": true, "text": true, "textbf": true, "textit": true, "emph": true,
	"left": true, "right": true, "quad": true, "qquad": true, "item": true,
}

// mathGlyphs is the fixed set of mathematical Unicode glyphs recognized as
// symbols when they appear inside math spans.
var mathGlyphs = map[rune]bool{}

func init() {
	for _, r := range "∀∃∈∉⊂⊆⊃⊇∅∪∩∧∨¬⇒⇔→↔↦≤≥≠≈≡∼∞∑∏∫∂∇±×÷⋅" +
		"αβγδεζηθικλμνξοπρστυφχψω" +
		"ΓΔΘΛΞΠΣΥΦΨΩ" +
		"ℝℤℕℚℂ" {
		mathGlyphs[r] = true
	}
}

// mathSpanPatterns is the ordered set of span extractors: inline math,
// display math, and the two multi-line math environments. Patterns are
// independent and may overlap; duplicates are removed once at the end.
var mathSpanPatterns = []*regexp.Regexp{
	inlineMathPattern,
	displayMathPattern,
	equationEnvPattern,
	alignEnvPattern,
}

// Symbols extracts the normalized symbol tokens from a statement body:
// escaped-word commands anywhere in the text, plus commands, bare alphabetic
// words, and recognized Unicode glyphs inside math spans. Result is distinct
// and sorted lexicographically.
func Symbols(ctx context.Context, text string) ([]string, error) {
	seen := make(map[string]bool)

	for _, m := range commandPattern.FindAllStringSubmatch(text, -1) {
		if err := ctx.Err(); err != nil {
			return nil, errors.Cancelled(err, "symbol extraction cancelled")
		}
		if structuralCommands[m[1]] {
			continue
		}
		seen[m[1]] = true
	}

	for _, pattern := range mathSpanPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			if err := ctx.Err(); err != nil {
				return nil, errors.Cancelled(err, "symbol extraction cancelled")
			}
			harvestMathSpan(m[1], seen)
		}
	}

	symbols := make([]string, 0, len(seen))
	for sym := range seen {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	return symbols, nil
}

// harvestMathSpan pulls commands, bare words, and glyphs out of one math
// span's captured content. Commands are removed before the bare-word pass so
// a command name is not double-counted as prose.
func harvestMathSpan(span string, seen map[string]bool) {
	for _, m := range commandPattern.FindAllStringSubmatch(span, -1) {
		if !structuralCommands[m[1]] {
			seen[m[1]] = true
		}
	}
	stripped := commandPattern.ReplaceAllString(span, " ")
	for _, word := range bareWordPattern.FindAllString(stripped, -1) {
		seen[word] = true
	}
	for _, r := range span {
		if mathGlyphs[r] {
			seen[string(r)] = true
		}
	}
}
