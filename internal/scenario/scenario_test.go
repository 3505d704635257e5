package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loadwise/trailerpack/internal/apperrors"
	"github.com/loadwise/trailerpack/internal/model"
)

func TestSaveLoad_JSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "load.json")
	original := Scenario{
		Name: "Test load",
		OptimizeRequest: model.OptimizeRequest{
			Trailer: model.Trailer{Length: 200, Width: 150, Height: 150, Unit: model.UnitCM},
			Boxes: []model.Box{
				{SKU: "BOX-A", Length: 40, Width: 30, Height: 30, Quantity: 5, RotationAllowed: true},
			},
			Stacking:              model.DefaultStacking(),
			GlobalRotationAllowed: true,
		},
	}

	require.NoError(t, Save(path, original))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, loaded.ID, "save assigns an id")
	assert.Equal(t, original.Name, loaded.Name)
	assert.Equal(t, original.Trailer, loaded.Trailer)
	assert.Equal(t, original.Boxes, loaded.Boxes)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeNotFound))
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	_, err := Load(path)

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeInput))
}

func TestParseHCL_FullScenario(t *testing.T) {
	src := []byte(`
name = "Small load"
global_rotation_allowed = true

trailer {
  length = 200
  width  = 150
  height = 150
  unit   = "cm"
}

box "BOX-A" {
  length   = 40
  width    = 30
  height   = 30
  quantity = 5
}

box "BOX-B" {
  length           = 50
  width            = 40
  height           = 25
  quantity         = 3
  rotation_allowed = false
}

stacking {
  enabled    = true
  max_layers = 2
}
`)

	s, err := ParseHCL(src, "test.hcl")

	require.NoError(t, err)
	assert.Equal(t, "Small load", s.Name)
	assert.Equal(t, 200.0, s.Trailer.Length)
	assert.Equal(t, model.UnitCM, s.Trailer.Unit)
	require.Len(t, s.Boxes, 2)
	assert.Equal(t, "BOX-A", s.Boxes[0].SKU)
	assert.True(t, s.Boxes[0].RotationAllowed, "rotation defaults to allowed")
	assert.False(t, s.Boxes[1].RotationAllowed)
	assert.Equal(t, 2, s.Stacking.MaxLayers)
	assert.True(t, s.GlobalRotationAllowed)
	assert.NoError(t, s.OptimizeRequest.Validate())
}

func TestParseHCL_Defaults(t *testing.T) {
	src := []byte(`
trailer {
  length = 100
  width  = 100
  height = 100
}

box "A" {
  length   = 10
  width    = 10
  height   = 10
  quantity = 1
}
`)

	s, err := ParseHCL(src, "min.hcl")

	require.NoError(t, err)
	assert.Equal(t, model.UnitCM, s.Trailer.Unit)
	assert.True(t, s.GlobalRotationAllowed)
	assert.Equal(t, model.DefaultStacking(), s.Stacking)
}

func TestParseHCL_SyntaxError(t *testing.T) {
	_, err := ParseHCL([]byte(`trailer { length = `), "bad.hcl")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeInput))
}

func TestLoadHCL_Dispatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "load.hcl")
	src := `
name = "From file"

trailer {
  length = 100
  width  = 100
  height = 100
}

box "A" {
  length   = 10
  width    = 10
  height   = 10
  quantity = 1
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	s, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "From file", s.Name)
}

func TestDemos_AllValid(t *testing.T) {
	ids := DemoIDs()
	require.Len(t, ids, 3)

	for _, id := range ids {
		s, ok := Demo(id)
		require.True(t, ok, "demo %s exists", id)
		assert.Equal(t, id, s.ID)
		assert.NoError(t, s.OptimizeRequest.Validate(), "demo %s is a valid request", id)
	}
}

func TestDemo_Unknown(t *testing.T) {
	_, ok := Demo("nope")
	assert.False(t, ok)
}
