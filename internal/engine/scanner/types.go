package scanner

import "fmt"

// Block is one recognized delimited region and its extracted metadata.
// References, Symbols, Dependencies and Dependents are populated after
// construction by the extract and index packages.
type Block struct {
	Kind        string
	Name        string // optional display name from the bracket group
	Label       string // optional cross-reference key
	Statement   string // cleaned body, formatting preserved
	StartLine   int    // 1-based
	EndLine     int
	StartOffset int // byte offset of the opening delimiter
	EndOffset   int // byte offset just past the closing delimiter
	Raw         string
	Ordinal     int // 1-based, assigned in closing-delimiter document order

	References   []string
	Symbols      []string
	Dependencies []string
	Dependents   []string
}

// ID returns the block's identifier: its label when present, otherwise the
// kind/ordinal fallback.
func (b *Block) ID() string {
	if b.Label != "" {
		return b.Label
	}
	return b.FallbackID()
}

// FallbackID returns the kind/ordinal identifier regardless of label.
func (b *Block) FallbackID() string {
	return fmt.Sprintf("%s_%d", b.Kind, b.Ordinal)
}

// DefaultKinds is the engine-owned list of recognized block kinds. All three
// tool surfaces share this one constant.
var DefaultKinds = []string{
	"theorem",
	"lemma",
	"proposition",
	"corollary",
	"definition",
	"remark",
	"example",
	"exercise",
	"claim",
	"conjecture",
}
