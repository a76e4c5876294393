/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("AUTOMAPPER_STORE", "memory")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	out := run(t, "version", "--json=false")
	assert.Contains(t, out, "automapper-demo 0.3.0 (commit unknown")

	out = run(t, "version", "--json")
	assert.Contains(t, out, `"version": "0.3.0"`)
	assert.Contains(t, out, `"goVersion": "go`)
}

func TestPlanCommand(t *testing.T) {
	out := run(t, "plan", "--dump")

	assert.Contains(t, out, "internal/demo.User -> github.com/suparena/automapper/internal/demo.UserDto")
	assert.Contains(t, out, "fullName")
	assert.Contains(t, out, "[convention]")
	assert.NotContains(t, out, "unresolved:")
	assert.Contains(t, out, "Ignore")
}
