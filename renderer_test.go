package canvas

import (
	"image"
	"image/color"
	"testing"
)

var (
	opaqueRed  = color.RGBA{255, 0, 0, 255}
	opaqueBlue = color.RGBA{0, 0, 255, 255}
	clearPixel = color.RGBA{}
)

func pixel(r *Renderer, x, y int) color.RGBA {
	return r.Image().RGBAAt(x, y)
}

func TestRendererFillTriangle(t *testing.T) {
	r := NewRenderer(20, 20)
	r.SetFillColor("#FF0000")
	r.BeginPath()
	r.MoveTo(0, 0)
	r.LineTo(10, 0)
	r.LineTo(10, 10)
	r.ClosePath()
	r.Fill()

	if got := pixel(r, 8, 2); got != opaqueRed {
		t.Errorf("inside pixel = %v, want %v", got, opaqueRed)
	}
	if got := pixel(r, 15, 15); got != clearPixel {
		t.Errorf("outside pixel = %v, want transparent", got)
	}
	if got := pixel(r, 5, 5); got != opaqueRed {
		t.Errorf("pixel (5,5) = %v, want %v", got, opaqueRed)
	}
}

func TestRendererFillTriangleAntialiased(t *testing.T) {
	r := NewRenderer(20, 20, WithAntialias(true))
	r.SetFillColor("#FF0000")
	r.BeginPath()
	r.MoveTo(0, 0)
	r.LineTo(10, 0)
	r.LineTo(10, 10)
	r.ClosePath()
	r.Fill()

	if got := pixel(r, 8, 2); got != opaqueRed {
		t.Errorf("inside pixel = %v, want %v", got, opaqueRed)
	}
	// (5,5) straddles the diagonal edge.
	if got := pixel(r, 5, 5); got.A == 0 || got.A == 255 || got.G != 0 || got.B != 0 {
		t.Errorf("edge pixel = %v, want partial red", got)
	}
}

func TestRendererCompositeOperations(t *testing.T) {
	tests := []struct {
		op          CompositeOperation
		inside      color.RGBA // under the blue source
		outside     color.RGBA // red destination only
		description string
	}{
		{CompositeSourceOver, opaqueBlue, opaqueRed, "draws directly"},
		{CompositeXor, clearPixel, opaqueRed, "overlap cancels"},
		{CompositeSourceIn, opaqueBlue, clearPixel, "clears outside the source"},
		{CompositeDestinationIn, opaqueRed, clearPixel, "keeps destination under the source"},
		{CompositeDestinationOver, opaqueRed, opaqueRed, "source goes behind"},
		{CompositeCopy, opaqueBlue, clearPixel, "replaces everything"},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			r := NewRenderer(4, 4)
			r.SetFillStyle(ColorStyle(Red))
			r.FillRect(0, 0, 4, 4)
			r.SetGlobalCompositeOperation(tt.op)
			r.SetFillStyle(ColorStyle(Blue))
			r.FillRect(0, 0, 2, 4)

			if got := pixel(r, 0, 1); got != tt.inside {
				t.Errorf("%s: inside = %v, want %v", tt.description, got, tt.inside)
			}
			if got := pixel(r, 3, 1); got != tt.outside {
				t.Errorf("%s: outside = %v, want %v", tt.description, got, tt.outside)
			}
			for _, v := range r.cache.Image().Pix {
				if v != 0 {
					t.Fatal("blend cache not cleared after the draw")
				}
			}
		})
	}
}

func TestRendererCompositeMatchesSingleBlend(t *testing.T) {
	for op := CompositeSourceIn; op <= CompositeXor; op++ {
		t.Run(op.String(), func(t *testing.T) {
			r := NewRenderer(6, 6)
			r.SetFillStyle(ColorStyle(RGBA2(1, 0, 0, 0.75)))
			r.FillRect(0, 0, 4, 6)
			r.SetGlobalCompositeOperation(op)
			r.SetFillStyle(ColorStyle(RGBA2(0, 0, 1, 0.5)))
			r.FillRect(2, 0, 4, 6)

			// The same draws done by hand: destination, then the source
			// rendered on a blank surface and blended once.
			dst := SoftwareBackend{}.NewSurface(6, 6)
			src := SoftwareBackend{}.NewSurface(6, 6)
			rect := func(x0, x1 int) *Coverage {
				c := fullCoverage(6, 6)
				for y := 0; y < 6; y++ {
					for x := 0; x < 6; x++ {
						if x < x0 || x >= x1 {
							c.mask.Data[y*6+x] = 0
						}
					}
				}
				return c
			}
			dst.FillCoverage(rect(0, 4), SolidShader{Color: RGBA2(1, 0, 0, 0.75)})
			src.FillCoverage(rect(2, 6), SolidShader{Color: RGBA2(0, 0, 1, 0.5)})
			dst.Composite(src, op, nil)

			got, want := r.Image(), dst.Image()
			for i := range want.Pix {
				if got.Pix[i] != want.Pix[i] {
					t.Fatalf("byte %d = %d, want %d", i, got.Pix[i], want.Pix[i])
				}
			}
		})
	}
}

func TestRendererClearRect(t *testing.T) {
	r := NewRenderer(4, 4)
	r.SetFillStyle(ColorStyle(Red))
	r.FillRect(0, 0, 4, 4)
	r.ClearRect(1, 1, 2, 2)

	if got := pixel(r, 1, 1); got != clearPixel {
		t.Errorf("cleared pixel = %v", got)
	}
	if got := pixel(r, 0, 0); got != opaqueRed {
		t.Errorf("kept pixel = %v", got)
	}
}

func TestRendererClipAndRestore(t *testing.T) {
	r := NewRenderer(4, 4)
	r.Save()
	r.Rect(0, 0, 2, 2)
	r.Clip()
	r.SetFillStyle(ColorStyle(Red))
	r.FillRect(0, 0, 4, 4)

	if got := pixel(r, 1, 1); got != opaqueRed {
		t.Errorf("inside clip = %v", got)
	}
	if got := pixel(r, 3, 3); got != clearPixel {
		t.Errorf("outside clip = %v", got)
	}

	r.Restore()
	r.FillRect(0, 0, 4, 4)
	if got := pixel(r, 3, 3); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("after restore = %v, want the restored black fill", got)
	}
}

func TestRendererEmptyClipHidesEverything(t *testing.T) {
	r := NewRenderer(4, 4)
	r.BeginPath()
	r.Clip()
	r.FillRect(0, 0, 4, 4)
	if got := pixel(r, 1, 1); got != clearPixel {
		t.Errorf("pixel = %v, want transparent", got)
	}
}

func TestRendererDeferredPipeline(t *testing.T) {
	r := NewRenderer(4, 4, WithPipeline(PipelineDeferred))
	r.SetFillColor("red")
	r.FillRect(0, 0, 4, 4)

	if got := r.Pending(); got != 2 {
		t.Fatalf("Pending() = %d, want 2", got)
	}
	if r.canvas != nil {
		t.Error("deferred renderer allocated surfaces before Flush")
	}
	if got := pixel(r, 2, 2); got != opaqueRed {
		t.Errorf("pixel after flush = %v", got)
	}
	if got := r.Pending(); got != 0 {
		t.Errorf("Pending() after flush = %d", got)
	}
}

func TestRendererResize(t *testing.T) {
	r := NewRenderer(4, 4)
	r.FillRect(0, 0, 4, 4)
	r.Resize(8, 6)

	img := r.Image()
	if got := img.Bounds(); got != image.Rect(0, 0, 8, 6) {
		t.Fatalf("bounds = %v", got)
	}
	if got := img.RGBAAt(1, 1); got != clearPixel {
		t.Errorf("resized canvas not cleared: %v", got)
	}
	if w, h := r.Size(); w != 8 || h != 6 {
		t.Errorf("Size() = %v, %v", w, h)
	}
}

func TestRendererViewScale(t *testing.T) {
	r := NewRenderer(5, 5, WithViewScale(2))
	r.SetFillStyle(ColorStyle(Red))
	r.FillRect(0, 0, 1, 1)

	img := r.Image()
	if got := img.Bounds().Dx(); got != 10 {
		t.Fatalf("device width = %d, want 10", got)
	}
	if got := img.RGBAAt(1, 1); got != opaqueRed {
		t.Errorf("scaled pixel = %v", got)
	}
	if got := img.RGBAAt(2, 2); got != clearPixel {
		t.Errorf("pixel past the scaled rect = %v", got)
	}
}

func TestRendererTransform(t *testing.T) {
	r := NewRenderer(6, 6)
	r.SetFillStyle(ColorStyle(Red))
	r.Translate(2, 0)
	r.Scale(2, 1)
	r.FillRect(0, 0, 1, 1)

	if got := pixel(r, 3, 0); got != opaqueRed {
		t.Errorf("transformed pixel = %v", got)
	}
	if got := pixel(r, 0, 0); got != clearPixel {
		t.Errorf("origin pixel = %v", got)
	}
	want := Translate(2, 0).Multiply(Scale(2, 1))
	if got := r.CurrentTransform(); got != want {
		t.Errorf("CurrentTransform() = %v, want %v", got, want)
	}

	r.SetTransform(1, 0, 0, 1, 0, 0)
	if !r.CurrentTransform().IsIdentity() {
		t.Error("SetTransform did not replace the transform")
	}
}

func TestRendererGlobalAlpha(t *testing.T) {
	r := NewRenderer(2, 2)
	r.SetFillStyle(ColorStyle(Red))
	r.SetGlobalAlpha(0.5)
	r.FillRect(0, 0, 2, 2)
	if got := pixel(r, 0, 0); got != (color.RGBA{128, 0, 0, 128}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestRendererShadowOffset(t *testing.T) {
	r := NewRenderer(10, 10)
	r.SetShadowColor(Black)
	r.SetShadowOffsetX(5)
	r.SetFillStyle(ColorStyle(Red))
	r.FillRect(0, 0, 3, 3)

	if got := pixel(r, 1, 1); got != opaqueRed {
		t.Errorf("shape pixel = %v", got)
	}
	if got := pixel(r, 6, 1); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("shadow pixel = %v", got)
	}
	if got := pixel(r, 9, 1); got != clearPixel {
		t.Errorf("pixel past the shadow = %v", got)
	}
}

func TestRendererStroke(t *testing.T) {
	r := NewRenderer(10, 10)
	r.SetStrokeStyle(ColorStyle(Red))
	r.SetLineWidth(2)
	r.BeginPath()
	r.MoveTo(0, 5)
	r.LineTo(10, 5)
	r.Stroke()

	for _, y := range []int{4, 5} {
		if got := pixel(r, 5, y); got != opaqueRed {
			t.Errorf("pixel (5,%d) = %v", y, got)
		}
	}
	if got := pixel(r, 5, 7); got != clearPixel {
		t.Errorf("pixel (5,7) = %v", got)
	}
}

func TestRendererDashedStroke(t *testing.T) {
	r := NewRenderer(20, 4)
	r.SetStrokeStyle(ColorStyle(Red))
	r.SetLineWidth(2)
	r.SetLineDash([]float64{4})
	r.BeginPath()
	r.MoveTo(0, 2)
	r.LineTo(20, 2)
	r.Stroke()

	if got := pixel(r, 1, 2); got != opaqueRed {
		t.Errorf("dash pixel = %v", got)
	}
	if got := pixel(r, 5, 2); got != clearPixel {
		t.Errorf("gap pixel = %v", got)
	}
}

func TestRendererGradientFill(t *testing.T) {
	r := NewRenderer(10, 1)
	g := r.CreateLinearGradient(0, 0, 10, 0)
	g.AddColorStop(0, Black)
	g.AddColorStop(1, White)
	r.SetFillStyle(GradientStyle(g))
	r.FillRect(0, 0, 10, 1)

	left, right := pixel(r, 0, 0), pixel(r, 9, 0)
	if left.A != 255 || right.A != 255 {
		t.Fatalf("gradient not opaque: %v %v", left, right)
	}
	if left.R >= right.R {
		t.Errorf("gradient does not brighten left to right: %v %v", left, right)
	}
}

func TestRendererPatternFill(t *testing.T) {
	tileImg := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	tileImg.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	tileImg.Set(1, 0, color.NRGBA{0, 0, 255, 255})

	t.Run("repeat", func(t *testing.T) {
		r := NewRenderer(4, 4)
		r.SetFillStyle(PatternStyle(r.CreatePattern(tileImg, "repeat")))
		r.FillRect(0, 0, 4, 4)
		if got := pixel(r, 2, 0); got != opaqueRed {
			t.Errorf("repeated pixel = %v", got)
		}
		if got := pixel(r, 3, 0); got != opaqueBlue {
			t.Errorf("repeated pixel = %v", got)
		}
	})
	t.Run("no-repeat", func(t *testing.T) {
		r := NewRenderer(4, 4)
		r.SetFillStyle(PatternStyle(r.CreatePattern(tileImg, "no-repeat")))
		r.FillRect(0, 0, 4, 4)
		if got := pixel(r, 2, 0); got != clearPixel {
			t.Errorf("pixel outside the image = %v", got)
		}
	})
	t.Run("unknown repetition", func(t *testing.T) {
		r := NewRenderer(4, 4)
		r.SetFillStyle(PatternStyle(r.CreatePattern(tileImg, "mirror")))
		r.FillRect(0, 0, 4, 4)
		if got := pixel(r, 0, 0); got != clearPixel {
			t.Errorf("pixel = %v, want nothing drawn", got)
		}
	})
	t.Run("ids are per renderer", func(t *testing.T) {
		a, b := NewRenderer(1, 1), NewRenderer(1, 1)
		id := a.CreatePattern(tileImg, "repeat")
		if _, ok := b.Pattern(id); ok {
			t.Error("pattern id resolved in another renderer")
		}
		if _, ok := a.Pattern(id); !ok {
			t.Error("pattern id not found in its renderer")
		}
	})
}

func TestRendererDrawImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.Set(x, y, color.NRGBA{255, 0, 0, 255})
		}
	}

	t.Run("natural size", func(t *testing.T) {
		r := NewRenderer(4, 4)
		r.DrawImage(src, ImageAt(1, 1))
		if got := pixel(r, 2, 2); got != opaqueRed {
			t.Errorf("image pixel = %v", got)
		}
		if got := pixel(r, 0, 0); got != clearPixel {
			t.Errorf("pixel outside image = %v", got)
		}
		if got := pixel(r, 3, 3); got != clearPixel {
			t.Errorf("pixel outside image = %v", got)
		}
	})
	t.Run("scaled", func(t *testing.T) {
		r := NewRenderer(4, 4)
		r.SetImageSmoothingEnabled(false)
		r.DrawImage(src, ImageScaled(0, 0, 4, 4))
		if got := pixel(r, 3, 3); got != opaqueRed {
			t.Errorf("scaled pixel = %v", got)
		}
	})
	t.Run("cropped", func(t *testing.T) {
		r := NewRenderer(4, 4)
		r.DrawImage(src, ImageCropped(0, 0, 1, 1, 2, 2, 2, 2))
		if got := pixel(r, 3, 3); got != opaqueRed {
			t.Errorf("cropped pixel = %v", got)
		}
		if got := pixel(r, 1, 1); got != clearPixel {
			t.Errorf("pixel outside destination = %v", got)
		}
	})
}

func TestRendererPath2D(t *testing.T) {
	r := NewRenderer(4, 4)
	p := NewPath2D()
	p.Rect(0, 0, 2, 2)
	r.SetFillStyle(ColorStyle(Red))
	r.FillPath2D(p)

	if got := pixel(r, 1, 1); got != opaqueRed {
		t.Errorf("Path2D fill pixel = %v", got)
	}
	if !r.PathBuilder().Path2D().IsEmpty() {
		t.Error("Path2D slot not reset after fill")
	}
	if !r.PathBuilder().Path().IsEmpty() {
		t.Error("FillPath2D touched the current path")
	}
}

func TestRendererEvenOdd(t *testing.T) {
	r := NewRenderer(6, 6)
	r.SetFillRuleForPath(FillRuleEvenOdd)
	r.SetFillStyle(ColorStyle(Red))
	r.Rect(0, 0, 6, 6)
	r.Rect(2, 2, 2, 2)
	r.Fill()

	if got := pixel(r, 3, 3); got != clearPixel {
		t.Errorf("hole pixel = %v", got)
	}
	if got := pixel(r, 0, 0); got != opaqueRed {
		t.Errorf("ring pixel = %v", got)
	}
	if got := r.PathBuilder().FillRuleForPath2D(); got != FillRuleNonZero {
		t.Errorf("Path2D rule = %v, want nonzero", got)
	}
}

func TestRendererZeroSize(t *testing.T) {
	r := NewRenderer(0, 0)
	r.FillRect(0, 0, 10, 10)
	if got := r.Image().Bounds(); !got.Empty() {
		t.Errorf("bounds = %v, want empty", got)
	}
}
