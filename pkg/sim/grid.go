package sim

import (
	"errors"
	"io"
	"strings"
	"sync"
)

// Grid sizes of an SSD1306 128x64 panel in 8x8 terminal mode.
const (
	DefaultGridCols = 16
	DefaultGridRows = 8
)

var (
	// ErrNotInitialized indicates the display is used before Init.
	ErrNotInitialized = errors.New("display not initialized")
	// ErrCursorOutOfRange indicates SetCursor outside the grid.
	ErrCursorOutOfRange = errors.New("cursor out of range")
)

// Grid is an in-memory character-grid display.
// Text written past the last column is clipped; there is no wrapping.
type Grid struct {
	Cols int
	Rows int
	// Out, when set, receives a full redraw after every write.
	Out io.Writer

	cells  [][]byte
	col    int
	row    int
	writes int
	lock   sync.Mutex
}

// NewGrid creates a Grid.
func NewGrid(cols, rows int) *Grid {
	return &Grid{Cols: cols, Rows: rows}
}

// Init implements Display.
func (g *Grid) Init() error {
	g.lock.Lock()
	defer g.lock.Unlock()
	if g.Cols <= 0 {
		g.Cols = DefaultGridCols
	}
	if g.Rows <= 0 {
		g.Rows = DefaultGridRows
	}
	g.cells = make([][]byte, g.Rows)
	g.reset()
	return nil
}

// Clear implements Display.
func (g *Grid) Clear() error {
	g.lock.Lock()
	defer g.lock.Unlock()
	if g.cells == nil {
		return ErrNotInitialized
	}
	g.reset()
	return g.redraw()
}

// SetCursor implements Display.
func (g *Grid) SetCursor(col, row int) error {
	g.lock.Lock()
	defer g.lock.Unlock()
	if g.cells == nil {
		return ErrNotInitialized
	}
	if col < 0 || col >= g.Cols || row < 0 || row >= g.Rows {
		return ErrCursorOutOfRange
	}
	g.col, g.row = col, row
	return nil
}

// Write implements Display.
func (g *Grid) Write(text string) error {
	g.lock.Lock()
	defer g.lock.Unlock()
	if g.cells == nil {
		return ErrNotInitialized
	}
	line := g.cells[g.row]
	for i := 0; i < len(text) && g.col < g.Cols; i++ {
		line[g.col] = text[i]
		g.col++
	}
	g.writes++
	return g.redraw()
}

// Line returns a row with trailing blanks removed.
func (g *Grid) Line(row int) string {
	g.lock.Lock()
	defer g.lock.Unlock()
	if row < 0 || row >= len(g.cells) {
		return ""
	}
	return strings.TrimRight(string(g.cells[row]), " ")
}

// Text returns width characters starting at (col, row).
func (g *Grid) Text(col, row, width int) string {
	g.lock.Lock()
	defer g.lock.Unlock()
	if row < 0 || row >= len(g.cells) || col < 0 || col >= g.Cols {
		return ""
	}
	end := col + width
	if end > g.Cols {
		end = g.Cols
	}
	return string(g.cells[row][col:end])
}

// Writes returns the number of Write calls since Init.
func (g *Grid) Writes() int {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.writes
}

// String dumps all rows.
func (g *Grid) String() string {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.dump()
}

func (g *Grid) reset() {
	for n := range g.cells {
		g.cells[n] = []byte(strings.Repeat(" ", g.Cols))
	}
	g.col, g.row, g.writes = 0, 0, 0
}

func (g *Grid) dump() string {
	lines := make([]string, len(g.cells))
	for n, line := range g.cells {
		lines[n] = string(line)
	}
	return strings.Join(lines, "\n")
}

func (g *Grid) redraw() error {
	if g.Out == nil {
		return nil
	}
	// home the cursor and repaint in place.
	_, err := io.WriteString(g.Out, "\x1b[H\x1b[2J"+g.dump()+"\n")
	return err
}
