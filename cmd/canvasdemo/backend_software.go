//go:build !gpu

package main

import "github.com/gogpu/canvas"

// openBackend returns the software backend. Build with -tags gpu to
// enable the GPU backend.
func openBackend(name string) (canvas.Backend, func(), error) {
	return softwareBackend(name)
}
