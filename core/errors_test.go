package core_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core"
)

func TestTransportError(t *testing.T) {
	cause := errors.New("connection refused")
	err := core.NewTransportError("registry.addMember", cause)

	assert.Equal(t, "registry.addMember: connection refused", err.Error())
	assert.True(t, core.IsTransportError(err))
	assert.True(t, core.IsTransportError(errors.Wrap(err, "attaching participant")))
	assert.False(t, core.IsTransportError(cause))

	// the wrapped cause stays reachable through the std errors chain
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestIsShutdown(t *testing.T) {
	err := core.NewShutdownError("integrity issue")
	assert.True(t, core.IsShutdown(err))
	assert.True(t, core.IsShutdown(errors.Wrap(err, "handling request")))
	assert.False(t, core.IsShutdown(errors.New("nope")))
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Amina", core.CleanString("  Amina \n"))
	assert.Equal(t, "amina@test.cd", core.CleanString(" AMINA@Test.CD ", true))
	assert.Equal(t, "", core.CleanString("   "))
}
