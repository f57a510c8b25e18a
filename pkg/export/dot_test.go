package export

import (
	"strings"
	"testing"

	"github.com/apcamargo/phylodraw/pkg/tree"
)

func lengthOf(v float64) *float64 { return &v }

func sampleTree() *tree.Tree {
	return &tree.Tree{
		Root: &tree.Node{
			Children: []*tree.Node{
				{
					Length: lengthOf(0.3),
					Children: []*tree.Node{
						{Name: "A", Length: lengthOf(0.1)},
						{Name: "B", Length: lengthOf(0.2)},
					},
				},
				{Name: "C", Length: lengthOf(0.5)},
			},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleTree(), Options{})

	for _, want := range []string{
		"digraph tree {",
		`"n0" -> "n0_0";`,
		`"n0_0" -> "n0_0_0";`,
		`label="A"`,
		`label="C"`,
		"shape=point",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	// Topology view carries no lengths unless asked.
	if strings.Contains(dot, "0.3") {
		t.Errorf("plain DOT leaked branch lengths:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sampleTree(), Options{Detailed: true})

	for _, want := range []string{
		`label="A\n0.1"`,
		`[label="0.5", fontsize=10]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("detailed DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDeterministic(t *testing.T) {
	a := ToDOT(sampleTree(), Options{Detailed: true})
	b := ToDOT(sampleTree(), Options{Detailed: true})
	if a != b {
		t.Error("identical trees produced different DOT")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="60pt" viewBox="0.00 0.00 100.50 60.25" xmlns="http://www.w3.org/2000/svg">rest</svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.50 60.25"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if strings.Contains(out, "pt") {
		t.Errorf("point units survived normalization: %s", out)
	}
}

func TestNormalizeViewBoxPassthrough(t *testing.T) {
	in := []byte("<svg>no viewbox</svg>")
	if got := string(normalizeViewBox(in)); got != string(in) {
		t.Errorf("unmatched input mutated: %s", got)
	}
}
