// Package camera maps the cell grid onto the screen.
package camera

// Camera controls the viewport onto the field.
// At zoom 1 the whole field fits the viewport with square cells.
type Camera struct {
	// Offset of the field's top-left corner from the viewport's, in pixels
	// at the current zoom. Always <= 0 once the field overflows the viewport.
	X, Y float32

	// Zoom level (1.0 = whole field visible)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Field dimensions in cells
	Cols, Rows int

	MinZoom, MaxZoom float32
}

// New creates a camera showing the whole field.
func New(viewportW, viewportH float32, cols, rows int) *Camera {
	return &Camera{
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		Cols:      cols,
		Rows:      rows,
		MinZoom:   1.0,
		MaxZoom:   8.0,
	}
}

// BaseCellSize is the cell edge at zoom 1: the largest square cell that fits
// the whole field in the viewport.
func (c *Camera) BaseCellSize() float32 {
	return min(c.ViewportW/float32(c.Cols), c.ViewportH/float32(c.Rows))
}

// CellSize is the on-screen cell edge at the current zoom.
func (c *Camera) CellSize() float32 {
	return c.BaseCellSize() * c.Zoom
}

// FieldSize returns the on-screen field extent.
func (c *Camera) FieldSize() (w, h float32) {
	s := c.CellSize()
	return float32(c.Cols) * s, float32(c.Rows) * s
}

// CellToScreen returns the top-left corner of a cell on screen.
func (c *Camera) CellToScreen(row, col int) (sx, sy float32) {
	s := c.CellSize()
	return c.X + float32(col)*s, c.Y + float32(row)*s
}

// CellCenter returns the centre of a cell and the radius of its inscribed circle.
func (c *Camera) CellCenter(row, col int) (cx, cy, radius float32) {
	s := c.CellSize()
	sx, sy := c.CellToScreen(row, col)
	return sx + s/2, sy + s/2, s / 2
}

// ScreenToCell converts a screen position to a grid cell.
// ok is false outside the field.
func (c *Camera) ScreenToCell(sx, sy float32) (row, col int, ok bool) {
	s := c.CellSize()
	if s <= 0 {
		return 0, 0, false
	}
	fx := (sx - c.X) / s
	fy := (sy - c.Y) / s
	if fx < 0 || fy < 0 {
		return 0, 0, false
	}
	row, col = int(fy), int(fx)
	if row >= c.Rows || col >= c.Cols {
		return 0, 0, false
	}
	return row, col, true
}

// IsVisible reports whether any part of the cell is on screen.
func (c *Camera) IsVisible(row, col int) bool {
	s := c.CellSize()
	sx, sy := c.CellToScreen(row, col)
	return sx+s > 0 && sy+s > 0 && sx < c.ViewportW && sy < c.ViewportH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.clampOffset()
}

// Pan moves the view by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X -= dx
	c.Y -= dy
	c.clampOffset()
}

// ZoomAt changes zoom by factor, keeping the field point under (sx, sy) fixed.
func (c *Camera) ZoomAt(factor, sx, sy float32) {
	old := c.Zoom
	c.Zoom = clamp(c.Zoom*factor, c.MinZoom, c.MaxZoom)
	ratio := c.Zoom / old
	c.X = sx - (sx-c.X)*ratio
	c.Y = sy - (sy-c.Y)*ratio
	c.clampOffset()
}

// Reset returns to the whole-field view.
func (c *Camera) Reset() {
	c.X, c.Y = 0, 0
	c.Zoom = 1.0
}

// clampOffset keeps the field covering the viewport where it can.
func (c *Camera) clampOffset() {
	w, h := c.FieldSize()
	c.X = clamp(c.X, min(c.ViewportW-w, 0), 0)
	c.Y = clamp(c.Y, min(c.ViewportH-h, 0), 0)
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
