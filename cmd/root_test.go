package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "perlver.dev/pkg/perlver/internal/model"
)

func TestParsePaths(t *testing.T) {
	assert.Equal(t, []m.Path{"."}, parsePaths(nil))
	assert.Equal(t, []m.Path{"./lib/...", "bin"}, parsePaths([]string{"./lib/...", "bin"}))
}

func TestRootCmd_ShowsHelp(t *testing.T) {
	cmd := baseRootCmd()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, out.String(), "perlver")
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"scan", "explain", "view", "init", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	require.NotNil(t, rootCmd.PersistentFlags().Lookup(outputFlagName))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup(excludeFlagName))
}
