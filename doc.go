// Package canvas provides an HTML5-Canvas-compatible 2D drawing core.
//
// # Overview
//
// A Renderer owns a persistent off-screen bitmap and executes path, paint,
// image and text commands against it, in submission order. It is the
// engine a UI toolkit's script binding layer calls into: the binding
// converts script values to physical pixels and calls the typed methods
// here.
//
// # Quick Start
//
//	r := canvas.NewRenderer(200, 100, canvas.WithViewScale(2))
//
//	r.SetFillStyle(canvas.ColorStyle(canvas.Red))
//	r.BeginPath()
//	r.Arc(100, 50, 40, 0, 2*math.Pi, false)
//	r.Fill()
//
//	url := r.ToDataURL(`"image/png"`)
//
// # Architecture
//
//   - PathBuilder: current path and Path2D slot, arc sweep normalization,
//     SVG path import
//   - PaintState: fill/stroke styles, gradients, patterns, dash, shadow,
//     global alpha and composite operation
//   - Renderer: bitmap ownership, composite via blend cache, image data,
//     data URL encoding, deferred pipeline
//   - text: font parsing, shaping, metrics and baseline/alignment math
//   - selectoverlay: text-selection handle and menu state machine
//
// # Coordinate System
//
// Origin (0,0) at top-left, X increases right, Y increases down. Angles
// are in radians and increase clockwise on screen.
//
// # Concurrency
//
// A Renderer is not safe for concurrent use; drive it from one goroutine.
package canvas
