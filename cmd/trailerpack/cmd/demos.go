package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loadwise/trailerpack/internal/apperrors"
	"github.com/loadwise/trailerpack/internal/scenario"
)

// demosCmd lists or prints the built-in demo scenarios
var demosCmd = &cobra.Command{
	Use:   "demos [id]",
	Short: "List or show built-in demo scenarios",
	Long: `Without arguments, list the built-in demo scenarios. With an id,
print that scenario as JSON so it can be saved to a file and edited.

Examples:
  trailerpack demos
  trailerpack demos small > small.json
  trailerpack optimize small.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDemos,
}

func runDemos(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		for _, id := range scenario.DemoIDs() {
			s, _ := scenario.Demo(id)
			fmt.Printf("%-12s %s  (%.0fx%.0fx%.0f %s, %d box types)\n",
				id, s.Name,
				s.Trailer.Length, s.Trailer.Width, s.Trailer.Height, s.Trailer.Unit,
				len(s.Boxes))
		}
		return nil
	}

	s, ok := scenario.Demo(args[0])
	if !ok {
		return apperrors.NotFound("demo scenario", args[0])
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
