/*
Package sable is the core compositing and rasterization engine of a
layered image-editing library: a Canvas holds an ordered stack of Layers
(each with its own opacity, blend mode, and effects), nested child
canvases compose recursively, and Flatten renders the whole tree down to
a single pixel.Image.

	package main

	import (
		"fmt"

		"github.com/sable-img/sable"
		"github.com/sable-img/sable/pixel"
	)

	func main() {
		canvas := sable.NewCanvas("scene", 800, 600)
		if _, err := canvas.AddLayerFromColor("background", 800, 600,
			pixel.Color{R: 20, G: 20, B: 30, A: 255}, sable.DefaultLayerOptions()); err != nil {
			fmt.Println(err)
			return
		}

		flat, err := canvas.Flatten()
		if err != nil {
			fmt.Println(err)
			return
		}
		_ = flat
	}

The geometry, raster, and region packages underneath provide the path
flattening, area/coverage math, and scoped pixel pipeline a Layer's
effects and a Canvas's adjustment operations build on; detect and
settings provide the AI-assisted area detection and process-wide toggles a
caller wires them up to.
*/
package sable
