/*
Package scenepack serializes collections of drawable shapes into byte payloads
under different size/fidelity trade-offs. It was extracted from a canvas demo
which rendered thousands of draggable shapes and compared the size of their
JSON exports; the package keeps the reusable parts (the shape model, the
randomized scene generator and the encoding strategies) and leaves the
interactive canvas to the caller.

The four strategies are: regular (indented, self-describing JSON), minified
(the same document without insignificant whitespace), optimized (a compact
projection with the shared style factored out into a header) and compressed
(the optimized projection with delta-encoded positions). Regular and minified
round-trip the full shape state; optimized and compressed intentionally drop
the per-shape scaled geometry and restore nominal template values on decode.

The package provides a command line interface which generates a scene, exports
it with every strategy and prints a size comparison table. To check the
supported commands type:

	$ scenepack --help

In case you wish to integrate the API in a self constructed environment here
is a simple example:

	package main

	import (
		"fmt"
		"log"

		"github.com/esimov/scenepack"
	)

	func main() {
		gen := scenepack.NewGenerator()
		scene, err := gen.Generate(5000, 1920, 1080)
		if err != nil {
			log.Fatalf("Error generating the scene: %s", err.Error())
		}

		exports, err := scenepack.ExportAll(scene)
		if err != nil {
			log.Fatalf("Error exporting the scene: %s", err.Error())
		}

		for _, exp := range exports {
			fmt.Printf("%-12s %d bytes\n", exp.Strategy, exp.Size)
		}
	}
*/
package scenepack
