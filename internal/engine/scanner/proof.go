package scanner

import (
	"regexp"
	"strings"

	"theoremdex/internal/shared/util"
)

// ProofInfo describes the proof block associated with a theorem-like block,
// or its absence.
type ProofInfo struct {
	HasProof  bool
	Body      string
	Qualifier string // optional bracketed qualifier after \begin{proof}
	StartLine int
	EndLine   int
	Raw       string
}

var (
	proofOpenPattern  = regexp.MustCompile(`\\begin\{proof\}(\[[^\]]*\])?`)
	proofClosePattern = regexp.MustCompile(`\\end\{proof\}`)
	proofLabelPattern = regexp.MustCompile(`\\label\{[^}]*\}`)
)

// LocateProof searches the text following the block's recorded span for the
// first proof open/close pair. The block's own EndOffset is carried forward
// explicitly; the raw text is never re-located by content search, so
// duplicated block text elsewhere in the document cannot mislead the search.
// A missing open, or an open without a close, reports no proof.
func LocateProof(fullText string, block *Block) ProofInfo {
	if block == nil || block.EndOffset < 0 || block.EndOffset > len(fullText) {
		return ProofInfo{}
	}
	tail := fullText[block.EndOffset:]

	open := proofOpenPattern.FindStringSubmatchIndex(tail)
	if open == nil {
		return ProofInfo{}
	}
	rel := proofClosePattern.FindStringIndex(tail[open[1]:])
	if rel == nil {
		return ProofInfo{}
	}

	start := block.EndOffset + open[0]
	bodyStart := block.EndOffset + open[1]
	bodyEnd := bodyStart + rel[0]
	end := bodyStart + rel[1]

	qualifier := ""
	if open[2] >= 0 {
		qualifier = strings.TrimSpace(tail[open[2]+1 : open[3]-1])
	}

	// the body is cleaned like a statement: labeling commands removed,
	// surrounding blank lines trimmed
	body := proofLabelPattern.ReplaceAllString(fullText[bodyStart:bodyEnd], "")

	lines := newLineIndex(fullText)
	return ProofInfo{
		HasProof:  true,
		Body:      util.TrimBlankLines(body),
		Qualifier: qualifier,
		StartLine: lines.lineAt(start),
		EndLine:   lines.lineAt(end - 1),
		Raw:       fullText[start:end],
	}
}
