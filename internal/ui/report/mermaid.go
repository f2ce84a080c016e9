package report

import (
	"fmt"
	"strings"

	"theoremdex/internal/core/ports"
)

// RenderMermaid draws the dependency graph as a mermaid flowchart. Blocks that
// participate in a cycle are highlighted.
func RenderMermaid(res ports.IndexResult) string {
	var b strings.Builder
	b.WriteString("```mermaid\nflowchart TD\n")

	if res.Index == nil || len(res.Index.Blocks) == 0 {
		b.WriteString("    empty[\"no blocks\"]\n```\n")
		return b.String()
	}

	cyclic := make(map[string]bool)
	for _, cycle := range res.Cycles {
		for _, id := range cycle {
			cyclic[id] = true
		}
	}

	for _, id := range res.Index.IDs() {
		block := res.Index.Blocks[id]
		label := block.Kind
		if block.Name != "" {
			label = fmt.Sprintf("%s: %s", block.Kind, block.Name)
		}
		fmt.Fprintf(&b, "    %s[\"%s\"]\n", nodeID(id), escapeLabel(label))
	}

	for _, from := range res.Index.IDs() {
		for _, to := range res.Index.Forward[from] {
			fmt.Fprintf(&b, "    %s --> %s\n", nodeID(from), nodeID(to))
		}
	}

	if len(cyclic) > 0 {
		b.WriteString("    classDef cyclic fill:#f8d7da,stroke:#842029\n")
		for _, id := range res.Index.IDs() {
			if cyclic[id] {
				fmt.Fprintf(&b, "    class %s cyclic\n", nodeID(id))
			}
		}
	}

	b.WriteString("```\n")
	return b.String()
}

// nodeID maps a block identity to a mermaid-safe node name.
func nodeID(id string) string {
	var b strings.Builder
	b.WriteString("n_")
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
