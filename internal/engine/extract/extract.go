// Package extract derives statement bodies, cross-references, and symbol
// sets from scanned blocks.
package extract

import (
	"context"
	"regexp"
	"strings"

	"theoremdex/internal/core/errors"
	"theoremdex/internal/engine/scanner"
	"theoremdex/internal/shared/util"
)

// Options selects which derived fields to populate. Statement and label
// adoption always run.
type Options struct {
	Symbols    bool
	References bool
}

// DefaultOptions enables everything.
var DefaultOptions = Options{Symbols: true, References: true}

var (
	labelPattern = regexp.MustCompile(`\\label\{([^}]*)\}`)
	refPattern   = regexp.MustCompile(`\\(ref|eqref)\{([^}]*)\}`)
	trailerSpace = regexp.MustCompile(`\s*$`)
)

// Content enriches a scanned block in place. If the opening delimiter carried
// no label, the first \label command inside the body is adopted. The only
// error is cancellation.
func Content(ctx context.Context, b *scanner.Block, opts Options) error {
	if err := ctx.Err(); err != nil {
		return errors.Cancelled(err, "content extraction cancelled")
	}

	if b.Label == "" {
		if m := labelPattern.FindStringSubmatch(b.Raw); m != nil {
			b.Label = strings.TrimSpace(m[1])
		}
	}
	b.Statement = statement(b)

	if opts.References {
		refs, err := references(ctx, b.Raw)
		if err != nil {
			return err
		}
		b.References = refs
	}
	if opts.Symbols {
		syms, err := Symbols(ctx, b.Statement)
		if err != nil {
			return err
		}
		b.Symbols = syms
	}
	return nil
}

// statement strips the opening delimiter with its optional groups, the
// closing delimiter, and any labeling commands. Interior formatting is
// preserved verbatim; only surrounding blank lines are trimmed.
func statement(b *scanner.Block) string {
	kind := regexp.QuoteMeta(b.Kind)
	opener := regexp.MustCompile(`^\\begin\{` + kind + `\}(\[[^\]]*\])?(\{[^}]*\})?`)
	closer := regexp.MustCompile(`\\end\{` + kind + `\}\s*$`)

	body := trailerSpace.ReplaceAllString(b.Raw, "")
	body = opener.ReplaceAllString(body, "")
	body = closer.ReplaceAllString(body, "")
	body = labelPattern.ReplaceAllString(body, "")
	return util.TrimBlankLines(body)
}

// references collects the arguments of every \ref and \eqref command in the
// raw block text, distinct, in first-seen order.
func references(ctx context.Context, raw string) ([]string, error) {
	seen := make(map[string]bool)
	refs := []string{}
	for _, m := range refPattern.FindAllStringSubmatch(raw, -1) {
		if err := ctx.Err(); err != nil {
			return nil, errors.Cancelled(err, "reference extraction cancelled")
		}
		refs = util.AppendUnique(refs, seen, m[2])
	}
	return refs, nil
}
