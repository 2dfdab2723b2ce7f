package canvas

import "github.com/gogpu/canvas/internal/blend"

// CompositeOperation is the canvas globalCompositeOperation.
type CompositeOperation int

const (
	// CompositeSourceOver draws the source on top of the canvas.
	CompositeSourceOver CompositeOperation = iota
	// CompositeSourceIn keeps the source only where the canvas is opaque.
	CompositeSourceIn
	// CompositeSourceOut keeps the source only where the canvas is transparent.
	CompositeSourceOut
	// CompositeSourceAtop draws the source only over existing canvas content.
	CompositeSourceAtop
	// CompositeDestinationOver draws the source behind the canvas.
	CompositeDestinationOver
	// CompositeDestinationIn keeps the canvas only where the source is opaque.
	CompositeDestinationIn
	// CompositeDestinationOut keeps the canvas only where the source is transparent.
	CompositeDestinationOut
	// CompositeDestinationAtop keeps the canvas only where the source is
	// opaque and draws the source behind it.
	CompositeDestinationAtop
	// CompositeLighter adds source and canvas colors.
	CompositeLighter
	// CompositeCopy replaces the canvas with the source.
	CompositeCopy
	// CompositeXor keeps source and canvas where they do not overlap.
	CompositeXor
)

var compositeNames = [...]string{
	CompositeSourceOver:      "source-over",
	CompositeSourceIn:        "source-in",
	CompositeSourceOut:       "source-out",
	CompositeSourceAtop:      "source-atop",
	CompositeDestinationOver: "destination-over",
	CompositeDestinationIn:   "destination-in",
	CompositeDestinationOut:  "destination-out",
	CompositeDestinationAtop: "destination-atop",
	CompositeLighter:         "lighter",
	CompositeCopy:            "copy",
	CompositeXor:             "xor",
}

// compositeModes maps every composite operation to its blend mode.
var compositeModes = [...]blend.Mode{
	CompositeSourceOver:      blend.SourceOver,
	CompositeSourceIn:        blend.SourceIn,
	CompositeSourceOut:       blend.SourceOut,
	CompositeSourceAtop:      blend.SourceAtop,
	CompositeDestinationOver: blend.DestinationOver,
	CompositeDestinationIn:   blend.DestinationIn,
	CompositeDestinationOut:  blend.DestinationOut,
	CompositeDestinationAtop: blend.DestinationAtop,
	CompositeLighter:         blend.Lighter,
	CompositeCopy:            blend.Copy,
	CompositeXor:             blend.Xor,
}

// ParseCompositeOperation parses a canvas composite operation name.
func ParseCompositeOperation(s string) (CompositeOperation, bool) {
	for op, name := range compositeNames {
		if name == s {
			return CompositeOperation(op), true
		}
	}
	return CompositeSourceOver, false
}

// String returns the canvas name of the operation.
func (op CompositeOperation) String() string {
	if op < 0 || int(op) >= len(compositeNames) {
		return "unknown"
	}
	return compositeNames[op]
}

// direct reports whether the operation draws straight onto the canvas
// without the blend cache.
func (op CompositeOperation) direct() bool {
	return op == CompositeSourceOver
}

func (op CompositeOperation) blendMode() blend.Mode {
	if op < 0 || int(op) >= len(compositeModes) {
		return blend.SourceOver
	}
	return compositeModes[op]
}
