package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigurationError(t *testing.T) {
	err := ConfigurationError("Only one of %s should be defined", "x")
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.False(t, errors.Is(err, ErrStructure))
	assert.Equal(t, EINVALID, Code(err))
	assert.Equal(t, "Only one of x should be defined", UserMessage(err))
	assert.Contains(t, err.Error(), "Only one of x")
}

func TestStructuralErrorWrapped(t *testing.T) {
	err := fmt.Errorf("render: %w", StructuralError("Expected a `root` node"))
	assert.True(t, errors.Is(err, ErrStructure))
	assert.Equal(t, ESTRUCTURE, Code(err))
}

func TestPlainErrors(t *testing.T) {
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, EINTERNAL, Code(errors.New("x")))
	assert.Equal(t, "internal error", UserMessage(errors.New("x")))
	err := ErrorWithCode(nil, EINVALID)
	assert.Equal(t, "invalid", UserMessage(err))
}
