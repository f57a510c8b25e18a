package layout

// Point is a 2D coordinate in layout units. The origin is the top-left
// corner; y grows downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Line is a stroked segment instruction.
type Line struct {
	From   Point   `json:"from"`
	To     Point   `json:"to"`
	Width  float64 `json:"width"`
	Color  string  `json:"color"`
	Dashed bool    `json:"dashed,omitempty"`
}

// Label is a positioned-text instruction. Pos anchors the top-left corner of
// the text box; Rotation is in degrees around the anchor.
type Label struct {
	Text     string  `json:"text"`
	Pos      Point   `json:"pos"`
	Size     float64 `json:"size"`
	Color    string  `json:"color"`
	Italic   bool    `json:"italic,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`
}

// Program is the abstract drawing program handed to an external renderer.
// Instruction order follows the pre-order traversal of the tree and must be
// preserved for deterministic output.
type Program struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Lines  []Line  `json:"lines"`
	Labels []Label `json:"labels"`
}

// AddLine appends a segment instruction.
func (p *Program) AddLine(l Line) { p.Lines = append(p.Lines, l) }

// AddLabel appends a text instruction.
func (p *Program) AddLabel(l Label) { p.Labels = append(p.Labels, l) }

// Rotated returns a copy of the program rotated a quarter turn
// counterclockwise: (x, y) maps to (y, W−x), the bounding box swaps its
// sides, and label rotations are reduced by 90°. This turns a
// horizontally-authored tree into its vertical rendering without a second
// drawer code path.
func (p *Program) Rotated() *Program {
	out := &Program{
		Width:  p.Height,
		Height: p.Width,
		Lines:  make([]Line, len(p.Lines)),
		Labels: make([]Label, len(p.Labels)),
	}

	rot := func(pt Point) Point {
		return Point{X: pt.Y, Y: p.Width - pt.X}
	}

	for i, l := range p.Lines {
		l.From = rot(l.From)
		l.To = rot(l.To)
		out.Lines[i] = l
	}
	for i, l := range p.Labels {
		l.Pos = rot(l.Pos)
		l.Rotation -= 90
		out.Labels[i] = l
	}

	return out
}
