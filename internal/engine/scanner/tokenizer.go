package scanner

import (
	"context"
	"regexp"
	"strings"

	"theoremdex/internal/core/errors"
)

type eventType int

const (
	eventOpen eventType = iota
	eventClose
)

// delimiterEvent is one typed token in the scan stream. The tokenizer emits
// events in document order; the matching pass never mutates them.
type delimiterEvent struct {
	typ   eventType
	kind  string
	name  string // opens only, from the optional bracket group
	label string // opens only, from the optional brace group
	start int    // offset of the leading backslash
	end   int    // offset just past the delimiter, including optional groups
}

var delimiterPattern = regexp.MustCompile(`\\(begin|end)\{([a-zA-Z]+\*?)\}`)

// tokenize performs the single pass over the raw text, emitting open events
// for recognized kinds and close events for every kind. Unrecognized close
// kinds never pair with an open, so keeping them is harmless and spares a
// second filter.
func tokenize(ctx context.Context, text string, kinds []string) ([]delimiterEvent, error) {
	recognized := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		recognized[k] = true
	}

	var events []delimiterEvent
	for _, loc := range delimiterPattern.FindAllStringSubmatchIndex(text, -1) {
		if err := ctx.Err(); err != nil {
			return nil, errors.Cancelled(err, "block scan cancelled")
		}
		word := text[loc[2]:loc[3]]
		kind := text[loc[4]:loc[5]]
		if word == "begin" {
			if !recognized[kind] {
				continue
			}
			ev := delimiterEvent{typ: eventOpen, kind: kind, start: loc[0]}
			ev.name, ev.label, ev.end = parseOptionalGroups(text, loc[1])
			events = append(events, ev)
			continue
		}
		events = append(events, delimiterEvent{typ: eventClose, kind: kind, start: loc[0], end: loc[1]})
	}
	return events, nil
}

// parseOptionalGroups reads the optional [name] and {label} groups directly
// after an opening delimiter. Groups are taken up to the first closing
// bracket; nested braces inside them are out of scope for this scanner.
func parseOptionalGroups(text string, pos int) (name, label string, end int) {
	end = pos
	if end < len(text) && text[end] == '[' {
		if rel := strings.IndexByte(text[end:], ']'); rel > 0 {
			name = strings.TrimSpace(text[end+1 : end+rel])
			end += rel + 1
		}
	}
	if end < len(text) && text[end] == '{' {
		if rel := strings.IndexByte(text[end:], '}'); rel > 0 {
			label = strings.TrimSpace(text[end+1 : end+rel])
			end += rel + 1
		}
	}
	return name, label, end
}
