package scanner

import "sort"

// lineIndex maps byte offsets to 1-based line numbers. Built once per scan so
// every block and proof can report positions without rescanning the text.
type lineIndex struct {
	starts []int // byte offset of each line start
}

func newLineIndex(text string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

func (li *lineIndex) lineAt(offset int) int {
	if offset < 0 {
		return 1
	}
	return sort.Search(len(li.starts), func(i int) bool {
		return li.starts[i] > offset
	})
}
