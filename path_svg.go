package canvas

import (
	"fmt"
	"math"

	"github.com/tdewolff/parse/v2/strconv"
)

// ParseSVGPath parses SVG path data ("M10 10 L20 20 Z") into a new path.
func ParseSVGPath(d string) (*Path, error) {
	p := NewPath()
	if err := p.AddSVGPath(d); err != nil {
		return nil, err
	}
	return p, nil
}

// AddSVGPath appends SVG path data. On a syntax error the commands parsed
// before the error remain in the path.
func (p *Path) AddSVGPath(d string) error {
	s := svgScanner{src: []byte(d)}
	var cmd byte
	var lastCtrl Point
	var lastCmd byte

	for {
		s.skipSeparators()
		if s.done() {
			return nil
		}
		if c := s.peek(); isSVGCommand(c) {
			cmd = c
			s.pos++
		} else if cmd == 0 {
			return fmt.Errorf("canvas: svg path: expected command at %d", s.pos)
		}

		cur := p.current
		rel := cmd >= 'a'
		base := Point{}
		if rel {
			base = cur
		}

		switch cmd {
		case 'M', 'm':
			pt, err := s.point()
			if err != nil {
				return err
			}
			pt = pt.Add(base)
			p.MoveTo(pt.X, pt.Y)
			// Subsequent pairs are implicit line-tos.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'L', 'l':
			pt, err := s.point()
			if err != nil {
				return err
			}
			pt = pt.Add(base)
			p.LineTo(pt.X, pt.Y)
		case 'H', 'h':
			x, err := s.number()
			if err != nil {
				return err
			}
			p.LineTo(x+base.X, cur.Y)
		case 'V', 'v':
			y, err := s.number()
			if err != nil {
				return err
			}
			p.LineTo(cur.X, y+base.Y)
		case 'C', 'c':
			pts, err := s.points(3)
			if err != nil {
				return err
			}
			c1, c2, end := pts[0].Add(base), pts[1].Add(base), pts[2].Add(base)
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			lastCtrl = c2
		case 'S', 's':
			pts, err := s.points(2)
			if err != nil {
				return err
			}
			c1 := cur
			if lastCmd == 'C' || lastCmd == 'S' {
				c1 = cur.Mul(2).Sub(lastCtrl)
			}
			c2, end := pts[0].Add(base), pts[1].Add(base)
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			lastCtrl = c2
		case 'Q', 'q':
			pts, err := s.points(2)
			if err != nil {
				return err
			}
			c, end := pts[0].Add(base), pts[1].Add(base)
			p.QuadraticTo(c.X, c.Y, end.X, end.Y)
			lastCtrl = c
		case 'T', 't':
			pt, err := s.point()
			if err != nil {
				return err
			}
			c := cur
			if lastCmd == 'Q' || lastCmd == 'T' {
				c = cur.Mul(2).Sub(lastCtrl)
			}
			end := pt.Add(base)
			p.QuadraticTo(c.X, c.Y, end.X, end.Y)
			lastCtrl = c
		case 'A', 'a':
			if err := p.svgArc(&s, base); err != nil {
				return err
			}
		case 'Z', 'z':
			p.Close()
			lastCmd = 'Z'
			cmd = 0
			continue
		}
		lastCmd = upper(cmd)
	}
}

// svgArc converts an endpoint-parameterized arc to center form
// (SVG 1.1 implementation notes, F.6.5).
func (p *Path) svgArc(s *svgScanner, base Point) error {
	rx, err := s.number()
	if err != nil {
		return err
	}
	ry, err := s.number()
	if err != nil {
		return err
	}
	rotDeg, err := s.number()
	if err != nil {
		return err
	}
	large, err := s.flag()
	if err != nil {
		return err
	}
	sweepFlag, err := s.flag()
	if err != nil {
		return err
	}
	end, err := s.point()
	if err != nil {
		return err
	}
	end = end.Add(base)
	start := p.current
	if !p.hasPoint {
		p.MoveTo(start.X, start.Y)
	}

	rx, ry = math.Abs(rx), math.Abs(ry)
	if start == end {
		return nil
	}
	if rx == 0 || ry == 0 {
		p.LineTo(end.X, end.Y)
		return nil
	}

	phi := degreesToRadians(rotDeg)
	sinPhi, cosPhi := math.Sincos(phi)
	dx2 := (start.X - end.X) / 2
	dy2 := (start.Y - end.Y) / 2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		k := math.Sqrt(lambda)
		rx *= k
		ry *= k
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	coef := 0.0
	if den != 0 && num > 0 {
		coef = math.Sqrt(num / den)
	}
	if large == sweepFlag {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx

	cx := cosPhi*cxp - sinPhi*cyp + (start.X+end.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (start.Y+end.Y)/2

	theta1 := math.Atan2((y1p-cyp)/ry, (x1p-cxp)/rx)
	theta2 := math.Atan2((-y1p-cyp)/ry, (-x1p-cxp)/rx)
	dtheta := theta2 - theta1
	if sweepFlag && dtheta < 0 {
		dtheta += 2 * math.Pi
	} else if !sweepFlag && dtheta > 0 {
		dtheta -= 2 * math.Pi
	}

	if phi != 0 {
		p.ApplyTransform(rotateAbout(-phi, cx, cy))
	}
	p.appendArc(cx, cy, rx, ry, radiansToDegrees(theta1), radiansToDegrees(dtheta))
	if phi != 0 {
		p.ApplyTransform(rotateAbout(phi, cx, cy))
	}
	return nil
}

func isSVGCommand(c byte) bool {
	switch upper(c) {
	case 'M', 'L', 'H', 'V', 'C', 'S', 'Q', 'T', 'A', 'Z':
		return true
	}
	return false
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

type svgScanner struct {
	src []byte
	pos int
}

func (s *svgScanner) done() bool { return s.pos >= len(s.src) }
func (s *svgScanner) peek() byte { return s.src[s.pos] }

func (s *svgScanner) skipSeparators() {
	for !s.done() {
		switch s.peek() {
		case ' ', '\t', '\n', '\r', ',':
			s.pos++
		default:
			return
		}
	}
}

func (s *svgScanner) number() (float64, error) {
	s.skipSeparators()
	v, n := strconv.ParseFloat(s.src[s.pos:])
	if n == 0 {
		return 0, fmt.Errorf("canvas: svg path: expected number at %d", s.pos)
	}
	s.pos += n
	return v, nil
}

func (s *svgScanner) flag() (bool, error) {
	s.skipSeparators()
	if s.done() {
		return false, fmt.Errorf("canvas: svg path: expected flag at %d", s.pos)
	}
	c := s.peek()
	if c != '0' && c != '1' {
		return false, fmt.Errorf("canvas: svg path: bad flag %q at %d", c, s.pos)
	}
	s.pos++
	return c == '1', nil
}

func (s *svgScanner) point() (Point, error) {
	x, err := s.number()
	if err != nil {
		return Point{}, err
	}
	y, err := s.number()
	if err != nil {
		return Point{}, err
	}
	return Pt(x, y), nil
}

func (s *svgScanner) points(n int) ([]Point, error) {
	pts := make([]Point, n)
	for i := range pts {
		pt, err := s.point()
		if err != nil {
			return nil, err
		}
		pts[i] = pt
	}
	return pts, nil
}
