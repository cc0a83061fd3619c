package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSession(t *testing.T, script string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := NewConfigureCommand(ConfigureConfig{In: strings.NewReader(script), Out: &out}, nil)
	require.NoError(t, cmd.Execute(context.Background()))
	return out.String()
}

func TestConfigureCommand_BuildsTwoLevels(t *testing.T) {
	out := runSession(t, strings.Join([]string{
		"new crossarm",
		"11", "A", "30", "1", "TPS3T", "T", "3",
		"show",
		"finish",
		"11", "A", "30", "1", "TPS3T", "T", "3",
		"finish",
		"list",
		"picklist",
		"quit",
	}, "\n"))

	assert.Contains(t, out, "XARM-11-A-30-1-TPS3T-T-3")
	assert.Contains(t, out, "King bolt: M16x325mm")
	assert.Contains(t, out, "Added #1 XARM-11-A-30-1-TPS3T-T-3 (16 line items)")
	assert.Contains(t, out, "Added #2")
	assert.Contains(t, out, "#2 crossarm")
	assert.Contains(t, out, "Pick List")
	assert.Contains(t, out, "Goodbye!")
}

func TestConfigureCommand_BackAndErrors(t *testing.T) {
	out := runSession(t, strings.Join([]string{
		"select 11",
		"new pole",
		"125",
		"Triple",
		"back",
		"back",
		"finish",
		"width 200",
		"bogus command",
	}, "\n"))

	assert.Contains(t, out, "no component in progress")
	assert.Contains(t, out, "POLE-125-—-—-—")
	assert.Contains(t, out, "code is not in the catalog")
	assert.Contains(t, out, "POLE-—-—-—-—")
	assert.Contains(t, out, "already at the first step")
	assert.Contains(t, out, "failed to finalize pole")
	assert.Contains(t, out, "pole width only applies to crossarms")
	assert.Contains(t, out, "unknown command")
}

func TestConfigureCommand_ResetAndEvents(t *testing.T) {
	out := runSession(t, strings.Join([]string{
		"new pole",
		"125", "Single", "BUSCK", "C",
		"finish",
		"reset",
		"list",
		"events",
	}, "\n"))

	assert.Contains(t, out, "Added #1 POLE-125-Single-BUSCK-C")
	assert.Contains(t, out, "Session cleared.")
	assert.Contains(t, out, "No components yet.")
	assert.Contains(t, out, "component.finalized")
	assert.Contains(t, out, "session.reset")
}
