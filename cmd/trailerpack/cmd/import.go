package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loadwise/trailerpack/internal/apperrors"
	"github.com/loadwise/trailerpack/internal/importer"
	"github.com/loadwise/trailerpack/internal/model"
	"github.com/loadwise/trailerpack/internal/scenario"
)

var (
	importName    string
	importOut     string
	importLength  float64
	importWidth   float64
	importHeight  float64
	importUnit    string
	importLayers  int
	importNoStack bool
)

// importCmd builds a scenario file from a CSV or Excel box list
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a box list from CSV or Excel",
	Long: `Read a box list from a CSV or Excel file and write a scenario file
combining it with the trailer dimensions given on the command line.

The importer detects the delimiter and recognizes common header names
(sku/reference, length, width, height, quantity, rotation). Files without
a header row are read positionally.

Examples:
  trailerpack import boxes.csv --length 600 --width 240 --height 250 -o load.json
  trailerpack import boxes.xlsx --length 13.6 --width 2.45 --height 2.7 --unit m -o load.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importName, "name", "n", "", "scenario name (defaults to the input file name)")
	importCmd.Flags().StringVarP(&importOut, "output", "o", "scenario.json", "output scenario file")
	importCmd.Flags().Float64Var(&importLength, "length", 0, "trailer length")
	importCmd.Flags().Float64Var(&importWidth, "width", 0, "trailer width")
	importCmd.Flags().Float64Var(&importHeight, "height", 0, "trailer height")
	importCmd.Flags().StringVar(&importUnit, "unit", "cm", "dimension unit (cm, m)")
	importCmd.Flags().IntVar(&importLayers, "max-layers", model.MaxLayers, "maximum stacking layers")
	importCmd.Flags().BoolVar(&importNoStack, "no-stacking", false, "disable stacking (floor layer only)")
	_ = importCmd.MarkFlagRequired("length")
	_ = importCmd.MarkFlagRequired("width")
	_ = importCmd.MarkFlagRequired("height")
}

func runImport(cmd *cobra.Command, args []string) error {
	res := importer.ImportFile(args[0])

	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}
	for _, e := range res.Errors {
		fmt.Fprintf(os.Stderr, "Error: %s\n", e)
	}
	if len(res.Boxes) == 0 {
		return apperrors.Input("no boxes imported")
	}

	name := importName
	if name == "" {
		name = args[0]
	}

	s := scenario.Scenario{
		Name: name,
		OptimizeRequest: model.OptimizeRequest{
			Trailer: model.Trailer{
				Length: importLength,
				Width:  importWidth,
				Height: importHeight,
				Unit:   model.Unit(importUnit),
			},
			Boxes: res.Boxes,
			Stacking: model.StackingOptions{
				Enabled:   !importNoStack,
				MaxLayers: importLayers,
			},
			GlobalRotationAllowed: true,
		},
	}
	if err := s.OptimizeRequest.Validate(); err != nil {
		return err
	}

	if err := scenario.Save(importOut, s); err != nil {
		return err
	}
	fmt.Printf("Imported %d box type(s) into %s\n", len(res.Boxes), importOut)
	return nil
}
