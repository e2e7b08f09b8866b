package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfigCmd_ValidScenario(t *testing.T) {
	// GIVEN the high-demand preset and an explicit step count
	c := newFlagCommand(t)
	require.NoError(t, c.Flags().Set("scenario", "high-demand"))
	require.NoError(t, c.Flags().Set("steps", "12"))
	var out bytes.Buffer
	c.SetOut(&out)

	// WHEN validated
	err := validateConfigCmd.RunE(c, nil)

	// THEN the resolved configuration is summarized
	require.NoError(t, err)
	assert.Equal(t, "configuration valid: 12 steps, lead time 0.5, seed 42\n", out.String())
}

func TestValidateConfigCmd_UnknownScenario(t *testing.T) {
	c := newFlagCommand(t)
	require.NoError(t, c.Flags().Set("scenario", "no-such-preset"))
	c.SetOut(&bytes.Buffer{})

	err := validateConfigCmd.RunE(c, nil)

	assert.ErrorContains(t, err, "no-such-preset")
}
