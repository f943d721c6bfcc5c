package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_RunsTasks(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"tasks", "--capacity", "4", "--limit", "300", "--dump=false", "--log-level", "error"})
	require.NoError(t, root.Execute())
}

func TestRootCommand_RunsBothUnpinned(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"--capacity", "3", "--limit", "200", "--pin=false", "--dump=false", "--log-level", "error"})
	require.NoError(t, root.Execute())
}

func TestRootCommand_RejectsZeroCapacity(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"threaded", "--capacity", "0"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacity must be greater than zero")
}
