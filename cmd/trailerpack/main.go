// trailerpack is a trailer loading optimizer.
//
// Computes a layer-by-layer placement of boxes inside a trailer using a
// MaxRects best-short-side-fit heuristic, served over HTTP or driven from
// scenario files on the command line.
//
// Build:
//
//	go build -o trailerpack ./cmd/trailerpack
package main

import (
	"os"

	"github.com/loadwise/trailerpack/cmd/trailerpack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
