package text

import "testing"

func TestHeuristicMeasure(t *testing.T) {
	m := NewHeuristic()

	tests := []struct {
		name  string
		text  string
		size  float64
		style Style
		wantW float64
		wantH float64
	}{
		{
			name:  "empty string",
			text:  "",
			size:  10,
			wantW: 0,
			wantH: 7.2,
		},
		{
			name:  "single char",
			text:  "x",
			size:  10,
			wantW: 5.5,
			wantH: 7.2,
		},
		{
			name:  "multibyte runes count once",
			text:  "abé",
			size:  10,
			wantW: 16.5,
			wantH: 7.2,
		},
		{
			name:  "italic is wider",
			text:  "abc",
			size:  10,
			style: Style{Italic: true},
			wantW: 3 * 10 * charWidthRatio * italicStretch,
			wantH: 7.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Measure(tt.text, tt.size, tt.style)
			if !close(got.W, tt.wantW) || !close(got.H, tt.wantH) {
				t.Errorf("Measure(%q) = %+v, want W=%v H=%v", tt.text, got, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestHeuristicScalesWithSize(t *testing.T) {
	m := NewHeuristic()
	small := m.Measure("label", 8, Style{})
	large := m.Measure("label", 16, Style{})

	if !close(large.W, 2*small.W) {
		t.Errorf("width should scale linearly: %v vs %v", small.W, large.W)
	}
	if !close(large.H, 2*small.H) {
		t.Errorf("height should scale linearly: %v vs %v", small.H, large.H)
	}
}

func TestHeuristicDeterministic(t *testing.T) {
	m := NewHeuristic()
	a := m.Measure("Escherichia coli", 12, Style{Italic: true})
	b := m.Measure("Escherichia coli", 12, Style{Italic: true})
	if a != b {
		t.Errorf("repeated measurement differs: %+v vs %+v", a, b)
	}
}

func close(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
