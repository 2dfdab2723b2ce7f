// Package gpu provides a canvas.Backend that composites on a wgpu device.
//
// The backend is compiled with the gpu build tag:
//
//	go build -tags gpu ./...
//
// Coverage fills and erases run on a CPU copy of every surface. Unclipped
// composite operations are uploaded to an offscreen texture, blended with
// fixed-function blend state and read back into the CPU copy, so
// Surface.Image always holds the current pixels:
//
//	b, err := gpu.NewBackend()
//	if err != nil {
//	    return err // no adapter; use canvas.SoftwareBackend
//	}
//	defer b.Close()
//	r := canvas.NewRenderer(w, h, canvas.WithBackend(b))
//
// Composites with a clip, and any operation after a device error, fall back
// to the software path.
package gpu
