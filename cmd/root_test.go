package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	// Collect subcommand names.
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	// Verify expected subcommands are registered.
	expected := []string{"distance", "densify", "hausdorff"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "geodist", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestDistanceCommand_Flags(t *testing.T) {
	flag := distanceCmd.Flags().Lookup("pairs")
	require.NotNil(t, flag, "distance command should have --pairs flag")
}

func TestDensifyCommand_Flags(t *testing.T) {
	for _, flagName := range []string{"max-length", "max-angle", "cap", "out"} {
		flag := densifyCmd.Flags().Lookup(flagName)
		assert.NotNil(t, flag, "densify should have --%s flag", flagName)
	}
}

func TestHausdorffCommand_Flags(t *testing.T) {
	for _, flagName := range []string{"directed", "symmetric", "witness", "bbox", "max-length", "max-angle", "cap"} {
		flag := hausdorffCmd.Flags().Lookup(flagName)
		assert.NotNil(t, flag, "hausdorff should have --%s flag", flagName)
	}
}
