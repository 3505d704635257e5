package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_MessageFormat(t *testing.T) {
	err := Input("bad box")
	assert.Equal(t, "[INPUT_ERROR] bad box", err.Error())

	wrapped := Wrap(TypeConfig, "cannot read file", errors.New("permission denied"))
	assert.Equal(t, "[CONFIG_ERROR] cannot read file: permission denied", wrapped.Error())
}

func TestIsType(t *testing.T) {
	err := Inputf("box %q too large", "A")

	assert.True(t, IsType(err, TypeInput))
	assert.False(t, IsType(err, TypeInternal))
	assert.False(t, IsType(errors.New("plain"), TypeInput))
}

func TestIsType_WrappedError(t *testing.T) {
	inner := NotFound("demo", "x")
	outer := fmt.Errorf("loading: %w", inner)

	assert.True(t, IsType(outer, TypeNotFound))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Internal("packer failed", cause)

	assert.ErrorIs(t, err, cause)
}
