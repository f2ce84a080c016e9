package extract

import (
	"context"
	"reflect"
	"testing"
)

func TestSymbols(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "greek commands in inline math",
			text: `$\alpha + \beta$`,
			want: []string{"alpha", "beta"},
		},
		{
			name: "bare words inside math",
			text: `$x + y = z$`,
			want: []string{"x", "y", "z"},
		},
		{
			name: "display math",
			text: `\[\sum_{n} a_n\]`,
			want: []string{"a", "n", "sum"},
		},
		{
			name: "equation environment",
			text: "\\begin{equation}\n\\gamma^2\n\\end{equation}",
			want: []string{"gamma"},
		},
		{
			name: "align environment",
			text: "\\begin{align*}\nf(x) &= \\delta\n\\end{align*}",
			want: []string{"delta", "f", "x"},
		},
		{
			name: "unicode glyphs",
			text: `$∀x ∈ ℝ$`,
			want: []string{"x", "ℝ", "∀", "∈"},
		},
		{
			name: "deduplicated across overlapping patterns",
			text: `\alpha and $\alpha$`,
			want: []string{"alpha"},
		},
		{
			name: "structural commands excluded",
			text: `\textbf{bold} $\phi$ \ref{thm:x}`,
			want: []string{"phi"},
		},
		{
			name: "no math",
			text: `plain prose only`,
			want: []string{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Symbols(context.Background(), tc.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Symbols(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestSymbols_Sorted(t *testing.T) {
	got, err := Symbols(context.Background(), `$\omega + \alpha + \mu$`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"alpha", "mu", "omega"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected lexicographic order %v, got %v", want, got)
	}
}
