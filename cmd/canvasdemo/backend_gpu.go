//go:build gpu

package main

import (
	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/backend/gpu"
)

// openBackend opens the wgpu backend. The returned close function
// releases the device.
func openBackend(name string) (canvas.Backend, func(), error) {
	if name != "gpu" {
		return softwareBackend(name)
	}
	b, err := gpu.NewBackend()
	if err != nil {
		return nil, nil, err
	}
	canvas.Logger().Debug("canvasdemo: using GPU backend", "adapter", b.Adapter())
	return b, b.Close, nil
}
