package canvas

import (
	"image/color"
	"testing"

	"github.com/gogpu/canvas/internal/raster"
)

func fullCoverage(w, h int) *Coverage {
	return newCoverage(raster.NewFullMask(w, h))
}

func TestSoftwareSurfaceFillCoverage(t *testing.T) {
	s := SoftwareBackend{}.NewSurface(4, 4)
	m := raster.NewMask(4, 4)
	m.Data[0] = 1
	m.Data[1] = 0.5
	s.FillCoverage(newCoverage(m), SolidShader{Color: Red})

	img := s.Image()
	if got := img.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("full coverage pixel = %v", got)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{128, 0, 0, 128}) {
		t.Errorf("half coverage pixel = %v", got)
	}
	if got := img.RGBAAt(2, 0); got != (color.RGBA{}) {
		t.Errorf("uncovered pixel = %v", got)
	}
}

func TestSoftwareSurfaceErase(t *testing.T) {
	s := SoftwareBackend{}.NewSurface(2, 1)
	s.FillCoverage(fullCoverage(2, 1), SolidShader{Color: Blue})

	m := raster.NewMask(2, 1)
	m.Data[0] = 1
	s.Erase(newCoverage(m))

	if got := s.Image().RGBAAt(0, 0); got != (color.RGBA{}) {
		t.Errorf("erased pixel = %v", got)
	}
	if got := s.Image().RGBAAt(1, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("kept pixel = %v", got)
	}
}

func TestSoftwareSurfaceComposite(t *testing.T) {
	tests := []struct {
		op   CompositeOperation
		want color.RGBA
	}{
		{CompositeSourceOver, color.RGBA{0, 0, 255, 255}},
		{CompositeDestinationOver, color.RGBA{255, 0, 0, 255}},
		{CompositeXor, color.RGBA{}},
		{CompositeCopy, color.RGBA{0, 0, 255, 255}},
		{CompositeDestinationOut, color.RGBA{}},
		{CompositeLighter, color.RGBA{255, 0, 255, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			dst := SoftwareBackend{}.NewSurface(2, 2)
			dst.FillCoverage(fullCoverage(2, 2), SolidShader{Color: Red})
			src := SoftwareBackend{}.NewSurface(2, 2)
			src.FillCoverage(fullCoverage(2, 2), SolidShader{Color: Blue})

			dst.Composite(src, tt.op, nil)
			if got := dst.Image().RGBAAt(1, 1); got != tt.want {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSoftwareSurfaceCompositeClip(t *testing.T) {
	dst := SoftwareBackend{}.NewSurface(2, 1)
	dst.FillCoverage(fullCoverage(2, 1), SolidShader{Color: Red})
	src := SoftwareBackend{}.NewSurface(2, 1)

	clip := raster.NewMask(2, 1)
	clip.Data[1] = 1
	dst.Composite(src, CompositeCopy, newCoverage(clip))

	if got := dst.Image().RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("pixel outside clip = %v", got)
	}
	if got := dst.Image().RGBAAt(1, 0); got != (color.RGBA{}) {
		t.Errorf("pixel inside clip = %v", got)
	}
}

func TestSoftwareSurfaceClear(t *testing.T) {
	s := SoftwareBackend{}.NewSurface(3, 3)
	s.FillCoverage(fullCoverage(3, 3), SolidShader{Color: White})
	s.Clear()
	for _, v := range s.Image().Pix {
		if v != 0 {
			t.Fatal("Clear left pixels behind")
		}
	}
	if s.Width() != 3 || s.Height() != 3 {
		t.Errorf("size = %dx%d", s.Width(), s.Height())
	}
}
