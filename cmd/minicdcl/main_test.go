package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmdHasSolveSubcommand(t *testing.T) {
	cmd := newRootCmd()
	found := false
	for _, c := range cmd.Commands() {
		if c.Name() == "solve" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSolveCmdRequiresAtLeastOneArg(t *testing.T) {
	cmd := newSolveCmd()
	cmd.SetArgs([]string{})
	err := cmd.Args(cmd, cmd.Flags().Args())
	assert.Error(t, err)
}

func TestSolveCmdAcceptsInputAndOutputArgs(t *testing.T) {
	cmd := newSolveCmd()
	err := cmd.Args(cmd, []string{"in.cnf", "out.txt"})
	assert.NoError(t, err)
}
