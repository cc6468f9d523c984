package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialDefaultMatchesDocumentedTable(t *testing.T) {
	c := InitialDefault()
	assert.True(t, c.UseConstantFolding)
	assert.True(t, c.UseConstantPropagation)
	assert.Equal(t, 1000, c.DomainProductThreshold)
	assert.Equal(t, BackendGini, c.Backend)
}

func TestBindFlagsDisablePairWins(t *testing.T) {
	c := InitialDefault()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	reconcile := c.BindFlags(fs)

	require.NoError(t, fs.Parse([]string{"--disable-constant-folding"}))
	require.NoError(t, reconcile())
	assert.False(t, c.UseConstantFolding)
}

func TestBindFlagsRejectsConflictingPair(t *testing.T) {
	c := InitialDefault()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	reconcile := c.BindFlags(fs)

	require.NoError(t, fs.Parse([]string{"--enable-verbose", "--disable-verbose"}))
	assert.Error(t, reconcile())
}

func TestBindFlagsUnknownBackend(t *testing.T) {
	c := InitialDefault()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	reconcile := c.BindFlags(fs)

	require.NoError(t, fs.Parse([]string{"--backend=quantum"}))
	assert.Error(t, reconcile())
}

func TestDefaultCellRoundTrips(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	custom := InitialDefault()
	custom.Verbose = true
	SetDefault(custom)
	assert.True(t, Default().Verbose)
}
