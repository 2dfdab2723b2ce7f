package gpu

import (
	"encoding/binary"
	"image"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/canvas"
)

// vertexStride is the byte stride per pixel vertex.
// Layout per vertex:
//
//	position (vec2<f32>)   = 8 bytes (location 0), clip space
//	color    (unorm8x4)    = 4 bytes (location 1), premultiplied RGBA
//
// Total = 12 bytes per vertex.
const vertexStride = 12

// blendFactors holds the source and destination factors of one
// Porter-Duff operator on premultiplied colors.
type blendFactors struct {
	src, dst gputypes.BlendFactor
}

var compositeFactors = map[canvas.CompositeOperation]blendFactors{
	canvas.CompositeSourceOver:      {gputypes.BlendFactorOne, gputypes.BlendFactorOneMinusSrcAlpha},
	canvas.CompositeSourceIn:        {gputypes.BlendFactorDstAlpha, gputypes.BlendFactorZero},
	canvas.CompositeSourceOut:       {gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorZero},
	canvas.CompositeSourceAtop:      {gputypes.BlendFactorDstAlpha, gputypes.BlendFactorOneMinusSrcAlpha},
	canvas.CompositeDestinationOver: {gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorOne},
	canvas.CompositeDestinationIn:   {gputypes.BlendFactorZero, gputypes.BlendFactorSrcAlpha},
	canvas.CompositeDestinationOut:  {gputypes.BlendFactorZero, gputypes.BlendFactorOneMinusSrcAlpha},
	canvas.CompositeDestinationAtop: {gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorSrcAlpha},
	canvas.CompositeLighter:         {gputypes.BlendFactorOne, gputypes.BlendFactorOne},
	canvas.CompositeCopy:            {gputypes.BlendFactorOne, gputypes.BlendFactorZero},
	canvas.CompositeXor:             {gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorOneMinusSrcAlpha},
}

// blendState returns the blend state for op. Color and alpha use the same
// factors.
func blendState(op canvas.CompositeOperation) (gputypes.BlendState, bool) {
	f, ok := compositeFactors[op]
	if !ok {
		return gputypes.BlendState{}, false
	}
	c := gputypes.BlendComponent{
		SrcFactor: f.src,
		DstFactor: f.dst,
		Operation: gputypes.BlendOperationAdd,
	}
	return gputypes.BlendState{Color: c, Alpha: c}, true
}

// keepsDestination reports whether a transparent source pixel leaves the
// destination unchanged under op. Such pixels need no vertex.
func keepsDestination(op canvas.CompositeOperation) bool {
	f, ok := compositeFactors[op]
	if !ok {
		return false
	}
	switch f.dst {
	case gputypes.BlendFactorOne, gputypes.BlendFactorOneMinusSrcAlpha:
		return true
	}
	return false
}

// pixelVertices encodes one point vertex per pixel of src within w x h,
// placed at the pixel center of a tw x th target, reusing buf. With
// skipClear, fully transparent pixels are left out. It returns the vertex
// data and the vertex count.
func pixelVertices(src *image.RGBA, w, h, tw, th int, skipClear bool, buf []byte) ([]byte, uint32) {
	buf = buf[:0]
	var n uint32
	var v [vertexStride]byte
	for y := 0; y < h; y++ {
		ny := 1 - (float32(y)+0.5)/float32(th)*2
		for x := 0; x < w; x++ {
			i := src.PixOffset(x, y)
			p := src.Pix[i : i+4 : i+4]
			if skipClear && p[3] == 0 && p[0]|p[1]|p[2] == 0 {
				continue
			}
			nx := (float32(x)+0.5)/float32(tw)*2 - 1
			binary.LittleEndian.PutUint32(v[0:], math.Float32bits(nx))
			binary.LittleEndian.PutUint32(v[4:], math.Float32bits(ny))
			copy(v[8:], p)
			buf = append(buf, v[:]...)
			n++
		}
	}
	return buf, n
}

// alignedRowBytes returns the bytes per row of a w pixel RGBA copy,
// padded to the 256 byte pitch texture copies require.
func alignedRowBytes(w uint32) uint32 {
	const copyPitchAlignment = 256
	return (w*4 + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
}

// unpadRows copies h rows of w RGBA pixels from padded readback data into
// dst.
func unpadRows(dst *image.RGBA, data []byte, w, h, pitch int) {
	for y := 0; y < h; y++ {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+w*4], data[y*pitch:y*pitch+w*4])
	}
}
