package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"theoremdex/internal/core/ports"
	"theoremdex/internal/shared/util"
)

// RenderSummary produces the markdown report for one indexed document.
func RenderSummary(res ports.IndexResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Theorem Index: %s\n\n", res.Path)
	fmt.Fprintf(&b, "- Blocks: %d\n", res.Summary.Total)
	fmt.Fprintf(&b, "- References: %d\n", res.Summary.ReferenceCount)
	fmt.Fprintf(&b, "- Dependency edges: %d\n", res.Summary.DependencyCount)
	fmt.Fprintf(&b, "- Orphans: %d\n", res.Summary.OrphanCount)
	fmt.Fprintf(&b, "- Unique symbols: %d\n", len(res.Summary.Symbols))
	fmt.Fprintf(&b, "- Cycles: %d\n", len(res.Summary.Cycles))
	fmt.Fprintf(&b, "- Interdependent groups: %d\n\n", res.Summary.ComponentCount)

	if len(res.Summary.ByKind) > 0 {
		b.WriteString("## Blocks by kind\n\n")
		b.WriteString("| Kind | Count |\n|---|---|\n")
		for _, kind := range util.SortedStringKeys(res.Summary.ByKind) {
			fmt.Fprintf(&b, "| %s | %d |\n", kind, res.Summary.ByKind[kind])
		}
		b.WriteString("\n")
	}

	if len(res.Summary.Cycles) > 0 {
		b.WriteString("## Reference cycles\n\n")
		for _, cycle := range res.Summary.Cycles {
			fmt.Fprintf(&b, "- %s\n", strings.Join(cycle, " → "))
		}
		b.WriteString("\n")
	}

	hubs := topByFanIn(res, 5)
	if len(hubs) > 0 {
		b.WriteString("## Most referenced\n\n")
		for _, id := range hubs {
			fmt.Fprintf(&b, "- %s (%d dependents)\n", id, res.Summary.Metrics[id].FanIn)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func topByFanIn(res ports.IndexResult, limit int) []string {
	if res.Index == nil {
		return nil
	}
	ids := res.Index.IDs()
	sort.SliceStable(ids, func(i, j int) bool {
		return res.Summary.Metrics[ids[i]].FanIn > res.Summary.Metrics[ids[j]].FanIn
	})
	top := make([]string, 0, limit)
	for _, id := range ids {
		if res.Summary.Metrics[id].FanIn == 0 {
			break
		}
		top = append(top, id)
		if len(top) == limit {
			break
		}
	}
	return top
}

// InjectReport replaces the marked region of an existing markdown file with
// content, writing through a temp file so a crash cannot truncate it.
func InjectReport(filePath, marker, content string) error {
	existing, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read markdown file %q: %w", filePath, err)
	}

	next, err := ReplaceBetweenMarkers(string(existing), marker, content)
	if err != nil {
		return err
	}

	dir := filepath.Dir(filePath)
	tmp, err := os.CreateTemp(dir, ".report-inject-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %q: %w", filePath, err)
	}
	tmpName := tmp.Name()

	var writeErr error
	if _, err := tmp.WriteString(next); err != nil {
		writeErr = fmt.Errorf("write temp markdown file %q: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil && writeErr == nil {
		writeErr = fmt.Errorf("close temp markdown file %q: %w", tmpName, err)
	}
	if writeErr != nil {
		_ = os.Remove(tmpName)
		return writeErr
	}

	if err := os.Rename(tmpName, filePath); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace markdown file %q: %w", filePath, err)
	}
	return nil
}

// ReplaceBetweenMarkers swaps the content between the marker comments,
// preserving the file's newline convention.
func ReplaceBetweenMarkers(content, marker, replacement string) (string, error) {
	marker = strings.TrimSpace(marker)
	if marker == "" {
		return "", fmt.Errorf("markdown marker must not be empty")
	}

	newline := "\n"
	if strings.Contains(content, "\r\n") {
		newline = "\r\n"
	}

	start := fmt.Sprintf("<!-- theoremdex:%s:start -->", marker)
	end := fmt.Sprintf("<!-- theoremdex:%s:end -->", marker)

	if strings.Count(content, start) != 1 || strings.Count(content, end) != 1 {
		return "", fmt.Errorf("markdown marker %q must appear exactly once for start and end", marker)
	}

	startIdx := strings.Index(content, start)
	endIdx := strings.Index(content, end)
	if startIdx == -1 || endIdx == -1 || endIdx < startIdx {
		return "", fmt.Errorf("markers %q not found or malformed", marker)
	}

	var b strings.Builder
	b.WriteString(content[:startIdx+len(start)])
	b.WriteString(newline)
	b.WriteString(strings.TrimRight(replacement, "\r\n"))
	b.WriteString(newline)
	b.WriteString(content[endIdx:])
	return b.String(), nil
}
