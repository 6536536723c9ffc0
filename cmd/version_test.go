package cmd

import (
	"bytes"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	// Version output goes to stdout; the command must run without error.
	if err := cmd.Execute(); err != nil {
		t.Errorf("Execute() error = %v", err)
	}
}
