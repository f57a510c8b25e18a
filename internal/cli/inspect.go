package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/apcamargo/phylodraw/pkg/layout"
	"github.com/apcamargo/phylodraw/pkg/tree"
)

// inspectCommand creates the interactive tree browser command.
func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse a tree document interactively",
		Long: `Inspect opens a terminal browser over the tree document. Navigate with
the arrow keys (or j/k), jump with g/G, and quit with q.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0])
		},
	}
	return cmd
}

func (c *CLI) runInspect(input string) error {
	data, err := readInput(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	t, err := tree.Decode(data)
	if err != nil {
		return err
	}

	m := newInspectModel(input, t)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run inspector: %w", err)
	}
	return nil
}

// inspectRow is one line of the flattened tree, pairing the input node with
// its layout measurements.
type inspectRow struct {
	node  *tree.Node
	meas  *layout.Measured
	depth int
	last  bool // last child of its parent
}

// inspectModel is the bubbletea model for the tree browser.
type inspectModel struct {
	title  string
	tree   *tree.Tree
	rows   []inspectRow
	cursor int
	offset int
	height int
	width  int
}

func newInspectModel(title string, t *tree.Tree) *inspectModel {
	m := &inspectModel{title: title, tree: t, height: 24, width: 80}
	m.flatten(t.Root, layout.Measure(t.Root, false), 0, true)
	return m
}

// flatten walks the input tree and the measured tree in lockstep; Measure
// preserves child order, so the two stay aligned.
func (m *inspectModel) flatten(n *tree.Node, meas *layout.Measured, depth int, last bool) {
	m.rows = append(m.rows, inspectRow{node: n, meas: meas, depth: depth, last: last})
	for i, child := range n.Children {
		m.flatten(child, meas.Kids[i].Node, depth+1, i == len(n.Children)-1)
	}
}

func (m *inspectModel) Init() tea.Cmd {
	return nil
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampOffset()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "g", "home":
			m.cursor = 0
		case "G", "end":
			m.cursor = len(m.rows) - 1
		case "pgup":
			m.cursor -= m.visibleRows()
			if m.cursor < 0 {
				m.cursor = 0
			}
		case "pgdown":
			m.cursor += m.visibleRows()
			if m.cursor > len(m.rows)-1 {
				m.cursor = len(m.rows) - 1
			}
		}
		m.clampOffset()
	}
	return m, nil
}

// visibleRows is the list area height, minus header and footer.
func (m *inspectModel) visibleRows() int {
	rows := m.height - 4
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *inspectModel) clampOffset() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

var (
	inspectHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	inspectCursorStyle = lipgloss.NewStyle().Foreground(colorWhite).Background(lipgloss.Color("238"))
	inspectLeafStyle   = lipgloss.NewStyle().Foreground(colorGreen).Italic(true)
	inspectInnerStyle  = lipgloss.NewStyle().Foreground(colorGray)
	inspectLengthStyle = lipgloss.NewStyle().Foreground(colorDim)
	inspectHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

func (m *inspectModel) View() string {
	var b strings.Builder

	rooted := "unrooted"
	if m.tree.Rooted {
		rooted = "rooted"
	}
	b.WriteString(inspectHeaderStyle.Render(fmt.Sprintf("%s · %d tips · %s", m.title, m.tree.Tips(), rooted)))
	b.WriteString("\n\n")

	visible := m.visibleRows()
	end := m.offset + visible
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(inspectHelpStyle.Render("↑/↓ move · g/G jump · q quit"))
	return b.String()
}

func (m *inspectModel) renderRow(i int) string {
	row := m.rows[i]

	indent := strings.Repeat("  ", row.depth)
	branch := ""
	if row.depth > 0 {
		branch = "├─ "
		if row.last {
			branch = "└─ "
		}
	}

	name := row.node.Name
	style := inspectLeafStyle
	if !row.node.IsLeaf() {
		style = inspectInnerStyle
		if name == "" {
			name = "•"
		}
	}

	line := indent + branch + style.Render(name)
	if row.node.Length != nil {
		line += " " + inspectLengthStyle.Render(fmt.Sprintf(":%g", *row.node.Length))
	}

	if i == m.cursor {
		values := fmt.Sprintf("  depth=%.3g height=%.3g y=%.3g",
			row.meas.Depth, row.meas.Height, row.meas.YLocal)
		return inspectCursorStyle.Render("> ") + line + inspectLengthStyle.Render(values)
	}
	return "  " + line
}
