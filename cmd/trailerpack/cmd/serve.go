package cmd

import (
	"github.com/spf13/cobra"

	"github.com/loadwise/trailerpack/internal/api"
	"github.com/loadwise/trailerpack/internal/config"
)

var serveAddr string

// serveCmd runs the HTTP API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Start the optimizer HTTP API.

Endpoints:
  POST /optimize    run an optimization
  GET  /health      health check
  GET  /demos       list demo scenarios
  GET  /demos/{id}  fetch one demo scenario`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := config.Get().Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	return api.NewServer(Version).ListenAndServe(addr)
}
