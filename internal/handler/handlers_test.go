package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sivanov/vaulty/internal/authz"
	"github.com/sivanov/vaulty/internal/config"
	"github.com/sivanov/vaulty/internal/logger"
	"github.com/sivanov/vaulty/internal/service"
)

// newTestLogger returns a no-op logger suitable for use in tests.
func newTestLogger() *logger.Logger {
	return logger.Nop()
}

// newTestServices returns a nil *service.Services. NewHandlers and the
// constructors it calls only store the pointer without dereferencing it,
// so nil is safe for construction-time tests.
func newTestServices() *service.Services {
	return nil
}

func testConfig() *config.StructuredConfig {
	cfg := &config.StructuredConfig{}
	cfg.NodeName = "test-node"
	return cfg
}

// TestNewHandlers_ConstructsHTTPHandler verifies that NewHandlers always
// produces a non-nil HTTP handler, since the server exposes a single
// listener serving both the data plane and the admin channel.
func TestNewHandlers_ConstructsHTTPHandler(t *testing.T) {
	h := NewHandlers(newTestServices(), (*authz.DataPlane)(nil), testConfig(), newTestLogger())

	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP, "expected HTTP handler to be initialised")
}

// TestNewHandlers_ReturnType verifies that the returned value is of type
// *Handlers.
func TestNewHandlers_ReturnType(t *testing.T) {
	h := NewHandlers(newTestServices(), (*authz.DataPlane)(nil), testConfig(), newTestLogger())

	assert.IsType(t, &Handlers{}, h)
}

// TestNewHandlers_IndependentInstances verifies that two calls to
// NewHandlers produce independent *Handlers instances.
func TestNewHandlers_IndependentInstances(t *testing.T) {
	h1 := NewHandlers(newTestServices(), (*authz.DataPlane)(nil), testConfig(), newTestLogger())
	h2 := NewHandlers(newTestServices(), (*authz.DataPlane)(nil), testConfig(), newTestLogger())

	assert.NotSame(t, h1, h2)
	assert.NotSame(t, h1.HTTP, h2.HTTP)
}
