package canvas

// Path2D is a reusable path object, distinct from the renderer's current
// path. The renderer copies it into its Path2D slot for a single draw.
type Path2D struct {
	*Path
}

// NewPath2D creates an empty Path2D.
func NewPath2D() *Path2D {
	return &Path2D{Path: NewPath()}
}

// NewPath2DFromSVG creates a Path2D from SVG path data.
func NewPath2DFromSVG(d string) (*Path2D, error) {
	p, err := ParseSVGPath(d)
	if err != nil {
		return nil, err
	}
	return &Path2D{Path: p}, nil
}

// AddPath appends SVG path data to the Path2D.
func (p *Path2D) AddPath(d string) error {
	return p.AddSVGPath(d)
}

// AddPath2D appends the geometry of other.
func (p *Path2D) AddPath2D(other *Path2D) {
	if other == nil {
		return
	}
	p.Path.AddPath(other.Path, Identity())
}

// Transform multiplies the existing geometry by the canvas-order matrix
// (a, b, c, d, e, f).
func (p *Path2D) Transform(a, b, c, d, e, f float64) {
	p.ApplyTransform(CanvasMatrix(a, b, c, d, e, f))
}

// SetTransform applies (a, b, c, d, e, f) to the existing geometry. A Path2D
// keeps no matrix of its own, so it behaves as Transform.
func (p *Path2D) SetTransform(a, b, c, d, e, f float64) {
	p.Transform(a, b, c, d, e, f)
}

// PathBuilder owns the current path and the Path2D slot of a renderer,
// each with its own fill rule.
type PathBuilder struct {
	path       *Path
	path2d     *Path
	pathRule   FillRule
	path2dRule FillRule
}

// NewPathBuilder creates a builder with empty paths and nonzero rules.
func NewPathBuilder() *PathBuilder {
	return &PathBuilder{
		path:   NewPath(),
		path2d: NewPath(),
	}
}

// Path returns the current path.
func (b *PathBuilder) Path() *Path { return b.path }

// Path2D returns the Path2D slot.
func (b *PathBuilder) Path2D() *Path { return b.path2d }

// SetFillRuleForPath sets the fill rule of the current path.
func (b *PathBuilder) SetFillRuleForPath(rule FillRule) { b.pathRule = rule }

// SetFillRuleForPath2D sets the fill rule of the Path2D slot.
func (b *PathBuilder) SetFillRuleForPath2D(rule FillRule) { b.path2dRule = rule }

// FillRuleForPath returns the fill rule of the current path.
func (b *PathBuilder) FillRuleForPath() FillRule { return b.pathRule }

// FillRuleForPath2D returns the fill rule of the Path2D slot.
func (b *PathBuilder) FillRuleForPath2D() FillRule { return b.path2dRule }

// BeginPath discards the current path.
func (b *PathBuilder) BeginPath() { b.path.Reset() }

// LoadPath2D replaces the Path2D slot with the geometry of p.
func (b *PathBuilder) LoadPath2D(p *Path2D) {
	b.path2d.Reset()
	if p != nil && p.Path != nil {
		b.path2d.AddPath(p.Path, Identity())
	}
}

// ResetPath2D clears the Path2D slot after a fill or stroke.
func (b *PathBuilder) ResetPath2D() { b.path2d.Reset() }
