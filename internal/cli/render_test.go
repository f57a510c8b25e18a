package cli

import (
	"reflect"
	"testing"
)

func TestOutputPathDefaultsToInputName(t *testing.T) {
	got := outputPath("", "trees/primates.json", "svg", false)
	if got != "trees/primates.svg" {
		t.Errorf("outputPath() = %q, want %q", got, "trees/primates.svg")
	}
}

func TestOutputPathStdinUsesTreeBase(t *testing.T) {
	got := outputPath("", "-", "svg", false)
	if got != "tree.svg" {
		t.Errorf("outputPath() = %q, want %q", got, "tree.svg")
	}
}

func TestOutputPathExplicitSingleFormat(t *testing.T) {
	got := outputPath("out/figure.svg", "primates.json", "svg", false)
	if got != "out/figure.svg" {
		t.Errorf("outputPath() = %q, want %q", got, "out/figure.svg")
	}
}

func TestOutputPathMultiFormatActsAsBase(t *testing.T) {
	tests := []struct {
		output string
		format string
		want   string
	}{
		{"figure", "svg", "figure.svg"},
		{"figure", "json", "figure.json"},
		{"figure.svg", "json", "figure.json"},
	}
	for _, tt := range tests {
		got := outputPath(tt.output, "primates.json", tt.format, true)
		if got != tt.want {
			t.Errorf("outputPath(%q, %q) = %q, want %q", tt.output, tt.format, got, tt.want)
		}
	}
}

func TestParseFormatsDefaultsToSVG(t *testing.T) {
	got := parseFormats("")
	if !reflect.DeepEqual(got, []string{"svg"}) {
		t.Errorf("parseFormats(\"\") = %v, want [svg]", got)
	}
}

func TestParseFormatsSplitsOnComma(t *testing.T) {
	got := parseFormats("svg,json")
	if !reflect.DeepEqual(got, []string{"svg", "json"}) {
		t.Errorf("parseFormats() = %v, want [svg json]", got)
	}
}
