package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/loadwise/trailerpack/internal/engine"
	"github.com/loadwise/trailerpack/internal/export"
	"github.com/loadwise/trailerpack/internal/logging"
	"github.com/loadwise/trailerpack/internal/model"
	"github.com/loadwise/trailerpack/internal/scenario"
)

var (
	outputFormat string
	pdfPath      string
	xlsxPath     string
	dxfPath      string
	labelsPath   string
	saveResult   string
)

// optimizeCmd runs the solver on a scenario file
var optimizeCmd = &cobra.Command{
	Use:   "optimize <scenario-file>",
	Short: "Optimize a loading scenario",
	Long: `Run the packing engine on a scenario file (.hcl or .json) and print
the resulting loading plan.

Examples:
  trailerpack optimize scenario.hcl
  trailerpack optimize scenario.json --format json
  trailerpack optimize scenario.hcl --pdf plan.pdf --xlsx manifest.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVarP(&outputFormat, "format", "f", "cli", "output format (cli, json)")
	optimizeCmd.Flags().StringVar(&pdfPath, "pdf", "", "write a PDF loading plan to this path")
	optimizeCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write an Excel manifest to this path")
	optimizeCmd.Flags().StringVar(&dxfPath, "dxf", "", "write a DXF floor drawing to this path")
	optimizeCmd.Flags().StringVar(&labelsPath, "labels", "", "write a PDF of QR box labels to this path")
	optimizeCmd.Flags().StringVar(&saveResult, "save", "", "write the scenario with its result back to this path")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	start := time.Now()

	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	if err := sc.OptimizeRequest.Validate(); err != nil {
		return err
	}

	result, err := engine.Solve(sc.OptimizeRequest)
	if err != nil {
		return err
	}

	logging.Debug("scenario solved",
		zap.String("file", args[0]),
		zap.Duration("duration", time.Since(start)))

	trailerCM := sc.Trailer.ToCM()

	if pdfPath != "" {
		if err := export.ExportPDF(pdfPath, trailerCM, result); err != nil {
			return fmt.Errorf("pdf export: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", pdfPath)
	}
	if xlsxPath != "" {
		if err := export.ExportManifest(xlsxPath, trailerCM, result); err != nil {
			return fmt.Errorf("xlsx export: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", xlsxPath)
	}
	if dxfPath != "" {
		if err := export.ExportDXF(dxfPath, trailerCM, result); err != nil {
			return fmt.Errorf("dxf export: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", dxfPath)
	}
	if labelsPath != "" {
		if err := export.ExportLabels(labelsPath, result); err != nil {
			return fmt.Errorf("labels export: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", labelsPath)
	}
	if saveResult != "" {
		sc.Result = &result
		if err := scenario.Save(saveResult, sc); err != nil {
			return fmt.Errorf("save scenario: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", saveResult)
	}

	switch outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		printResult(trailerCM, result)
		return nil
	}
}

// printResult renders the plan as a readable text report.
func printResult(trailer model.Trailer, result model.OptimizeResult) {
	fmt.Printf("Trailer: %.0f x %.0f x %.0f cm\n", trailer.Length, trailer.Width, trailer.Height)
	if result.Fits {
		fmt.Println("Fits: yes")
	} else {
		fmt.Println("Fits: no")
	}
	fmt.Printf("Placed: %d boxes in %d layer(s), fill rate %.1f%%\n\n",
		result.Stats.TotalBoxesPlaced, result.Stats.LayersUsed, result.Stats.FillRate*100)

	for _, layer := range result.Layers {
		fmt.Printf("Layer %d (z=%.0f, height=%.0f):\n", layer.LayerIndex, layer.ZBase, layer.LayerHeight)
		for _, p := range layer.Placements {
			rot := ""
			if p.Rotated {
				rot = "  [rotated]"
			}
			fmt.Printf("  %-12s at (%6.1f, %6.1f)  %5.1f x %5.1f x %5.1f%s\n",
				p.SKU, p.X, p.Y, p.Length, p.Width, p.Height, rot)
		}
		fmt.Println()
	}

	if len(result.Unplaced) > 0 {
		fmt.Println("Unplaced:")
		for _, u := range result.Unplaced {
			fmt.Printf("  %-12s x %d\n", u.SKU, u.Qty)
		}
	}
}
