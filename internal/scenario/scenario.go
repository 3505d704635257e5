// Package scenario handles named loading scenarios: the built-in demos,
// JSON persistence, and the HCL scenario file format used by the CLI.
package scenario

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/loadwise/trailerpack/internal/apperrors"
	"github.com/loadwise/trailerpack/internal/model"
)

// Scenario is a named optimization request, optionally carrying the last
// result computed for it. The request fields are inlined in JSON so a
// scenario file reads the same as an /optimize request body plus a name.
type Scenario struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	model.OptimizeRequest
	Result *model.OptimizeResult `json:"result,omitempty"`
}

// DefaultDir returns the default directory for saved scenarios,
// ~/.trailerpack/scenarios.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".trailerpack", "scenarios"), nil
}

// Save writes the scenario to a JSON file, creating parent directories and
// assigning an ID when it has none.
func Save(path string, s Scenario) error {
	if s.ID == "" {
		s.ID = uuid.New().String()[:8]
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a scenario file, dispatching on the extension: .hcl files use
// the HCL scenario format, everything else is parsed as JSON.
func Load(path string) (Scenario, error) {
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		return LoadHCL(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Scenario{}, apperrors.NotFound("scenario file", path)
		}
		return Scenario{}, err
	}
	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return Scenario{}, apperrors.Wrap(apperrors.TypeInput, "invalid scenario file "+path, err)
	}
	return s, nil
}
