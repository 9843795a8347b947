package hw

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// CellSize is the width and height of one character cell in pixels.
const CellSize = 8

// Panel is the pixel device behind a TextDisplay.
type Panel interface {
	Bounds() image.Rectangle
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
}

// TextDisplay drives a monochrome panel as a grid of 8x8 character cells.
type TextDisplay struct {
	Panel Panel
	Cols  int
	Rows  int

	face  font.Face
	img   *image1bit.VerticalLSB
	cells [][]rune
	col   int
	row   int
	lock  sync.Mutex
}

// OpenSSD1306 opens a 128x64 SSD1306 on bus.
func OpenSSD1306(bus i2c.Bus) (*TextDisplay, error) {
	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return nil, fmt.Errorf("ssd1306: %w", err)
	}
	return NewTextDisplay(dev), nil
}

// NewTextDisplay creates a TextDisplay sized to the panel.
func NewTextDisplay(panel Panel) *TextDisplay {
	b := panel.Bounds()
	return &TextDisplay{
		Panel: panel,
		Cols:  b.Dx() / CellSize,
		Rows:  b.Dy() / CellSize,
	}
}

// Init implements render.Display.
func (d *TextDisplay) Init() error {
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    CellSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return err
	}
	d.lock.Lock()
	defer d.lock.Unlock()
	d.face = face
	d.img = image1bit.NewVerticalLSB(d.Panel.Bounds())
	d.cells = make([][]rune, d.Rows)
	for n := range d.cells {
		d.cells[n] = make([]rune, d.Cols)
	}
	d.blank()
	return nil
}

// Clear implements render.Display.
func (d *TextDisplay) Clear() error {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.img == nil {
		return ErrNotInitialized
	}
	d.blank()
	d.col, d.row = 0, 0
	return d.Panel.Draw(d.img.Bounds(), d.img, image.Point{})
}

// SetCursor implements render.Display.
func (d *TextDisplay) SetCursor(col, row int) error {
	if col < 0 || col >= d.Cols || row < 0 || row >= d.Rows {
		return ErrCursorOutOfRange
	}
	d.lock.Lock()
	d.col, d.row = col, row
	d.lock.Unlock()
	return nil
}

// Write implements render.Display.
// Text is written from the cursor and clipped at the end of the row; only
// the touched cells are pushed to the panel.
func (d *TextDisplay) Write(text string) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.img == nil {
		return ErrNotInitialized
	}
	start := d.col
	for _, c := range text {
		if d.col >= d.Cols {
			break
		}
		d.cells[d.row][d.col] = c
		d.drawCell(d.col, d.row)
		d.col++
	}
	if d.col == start {
		return nil
	}
	r := image.Rect(start*CellSize, d.row*CellSize, d.col*CellSize, (d.row+1)*CellSize)
	return d.Panel.Draw(r, d.img, r.Min)
}

// Line returns the text of a row.
func (d *TextDisplay) Line(row int) string {
	d.lock.Lock()
	defer d.lock.Unlock()
	if row < 0 || row >= len(d.cells) {
		return ""
	}
	return string(d.cells[row])
}

func (d *TextDisplay) blank() {
	for row := range d.cells {
		for col := range d.cells[row] {
			d.cells[row][col] = ' '
		}
	}
	b := d.img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			d.img.SetBit(x, y, image1bit.Off)
		}
	}
}

func (d *TextDisplay) drawCell(col, row int) {
	x0, y0 := col*CellSize, row*CellSize
	for y := y0; y < y0+CellSize; y++ {
		for x := x0; x < x0+CellSize; x++ {
			d.img.SetBit(x, y, image1bit.Off)
		}
	}
	dr := font.Drawer{
		Dst:  d.img,
		Src:  &image.Uniform{C: image1bit.On},
		Face: d.face,
		Dot:  fixed.P(x0, y0+CellSize-1),
	}
	dr.DrawString(string(d.cells[row][col]))
}
