package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction_KnownLabels(t *testing.T) {
	tests := []struct {
		label string
		want  Action
	}{
		{"supply", ActionSupply},
		{"manufacture", ActionManufacture},
		{"distribute", ActionDistribute},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParseAction(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.label, got.String())
		})
	}
}

func TestParseAction_UnknownLabel_FallsBackToSupply(t *testing.T) {
	// GIVEN a label outside the known set
	// WHEN it is parsed
	got, err := ParseAction("teleport")

	// THEN the action is unknown, reported as a typed error, and executes as supply
	assert.Equal(t, ActionUnknown, got)
	var uae *UnrecognizedActionError
	require.True(t, errors.As(err, &uae))
	assert.Equal(t, "teleport", uae.Label)
	assert.Contains(t, err.Error(), `"supply"`)
	assert.Equal(t, ActionSupply, got.Effective())
}

func TestParseAction_CaseSensitive(t *testing.T) {
	_, err := ParseAction("Supply")
	assert.Error(t, err)
}

func TestAction_Effective_KeepsKnownActions(t *testing.T) {
	assert.Equal(t, ActionManufacture, ActionManufacture.Effective())
	assert.Equal(t, ActionDistribute, ActionDistribute.Effective())
	assert.Equal(t, "unknown", ActionUnknown.String())
}

func TestValidActionLabels_AllParse(t *testing.T) {
	for _, label := range ValidActionLabels() {
		_, err := ParseAction(label)
		assert.NoError(t, err, label)
	}
}
