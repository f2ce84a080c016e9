package report

import (
	"fmt"
	"io"
	"strings"

	"theoremdex/internal/core/ports"
	"theoremdex/internal/engine/scanner"
)

// Console writes human-readable results to a writer, one surface per method.
type Console struct {
	Out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{Out: out}
}

func (c *Console) PresentExtract(res ports.ExtractResult) error {
	fmt.Fprintf(c.Out, "%s: %d blocks\n", res.Path, len(res.Blocks))
	for _, block := range res.Blocks {
		c.printBlock(block)
	}
	return nil
}

func (c *Console) PresentIndex(res ports.IndexResult) error {
	fmt.Fprint(c.Out, RenderSummary(res))
	return nil
}

func (c *Console) PresentLookup(res ports.LookupResult) error {
	if !res.Found {
		fmt.Fprintf(c.Out, "no match in %s\n", res.Path)
		if len(res.Suggestions) > 0 {
			fmt.Fprintln(c.Out, "did you mean:")
			for _, s := range res.Suggestions {
				fmt.Fprintf(c.Out, "  %s\n", describe(s))
			}
		}
		return nil
	}

	fmt.Fprintf(c.Out, "%s (score %d)\n", describe(res.Block), res.Score)
	if res.Block.Statement != "" {
		fmt.Fprintf(c.Out, "\n%s\n", res.Block.Statement)
	}
	if res.Proof.HasProof {
		qualifier := "proof"
		if res.Proof.Qualifier != "" {
			qualifier = res.Proof.Qualifier
		}
		fmt.Fprintf(c.Out, "\n%s (lines %d-%d):\n%s\n",
			qualifier, res.Proof.StartLine, res.Proof.EndLine, res.Proof.Body)
	} else {
		fmt.Fprintln(c.Out, "\nno proof found")
	}
	return nil
}

func (c *Console) printBlock(block *scanner.Block) {
	fmt.Fprintf(c.Out, "  %s (lines %d-%d)\n", describe(block), block.StartLine, block.EndLine)
	if len(block.References) > 0 {
		fmt.Fprintf(c.Out, "    refs: %s\n", strings.Join(block.References, ", "))
	}
	if len(block.Symbols) > 0 {
		fmt.Fprintf(c.Out, "    symbols: %s\n", strings.Join(block.Symbols, " "))
	}
}

func describe(block *scanner.Block) string {
	id := block.ID()
	if block.Name != "" {
		return fmt.Sprintf("%s [%s] %q", block.Kind, id, block.Name)
	}
	return fmt.Sprintf("%s [%s]", block.Kind, id)
}
