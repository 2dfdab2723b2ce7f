package raster

// Mask is a per-pixel coverage buffer with values in [0, 1].
type Mask struct {
	Width  int
	Height int
	Data   []float32
}

// NewMask allocates a zero-coverage mask.
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		Data:   make([]float32, width*height),
	}
}

// NewFullMask allocates a mask with full coverage everywhere.
func NewFullMask(width, height int) *Mask {
	m := NewMask(width, height)
	for i := range m.Data {
		m.Data[i] = 1
	}
	return m
}

// At returns the coverage at (x, y), or 0 outside the mask.
func (m *Mask) At(x, y int) float32 {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0
	}
	return m.Data[y*m.Width+x]
}

// Clear resets all coverage to zero.
func (m *Mask) Clear() {
	clear(m.Data)
}

// Clone returns a deep copy.
func (m *Mask) Clone() *Mask {
	if m == nil {
		return nil
	}
	c := &Mask{Width: m.Width, Height: m.Height, Data: make([]float32, len(m.Data))}
	copy(c.Data, m.Data)
	return c
}

// Intersect multiplies m by other in place. A nil other leaves m unchanged.
func (m *Mask) Intersect(other *Mask) {
	if other == nil {
		return
	}
	for i := range m.Data {
		if i < len(other.Data) {
			m.Data[i] *= other.Data[i]
		} else {
			m.Data[i] = 0
		}
	}
}

// Empty reports whether no pixel has coverage.
func (m *Mask) Empty() bool {
	for _, v := range m.Data {
		if v > 0 {
			return false
		}
	}
	return true
}

// Offset returns a copy of m shifted by whole pixels (dx, dy).
func (m *Mask) Offset(dx, dy int) *Mask {
	out := NewMask(m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		sy := y - dy
		if sy < 0 || sy >= m.Height {
			continue
		}
		for x := 0; x < m.Width; x++ {
			sx := x - dx
			if sx < 0 || sx >= m.Width {
				continue
			}
			out.Data[y*m.Width+x] = m.Data[sy*m.Width+sx]
		}
	}
	return out
}
