package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProjectName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expectErr bool
	}{
		{name: "non-empty", input: "analytics-pipeline", expectErr: false},
		{name: "empty", input: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewProjectName(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, n.String())
		})
	}
}

func TestNewDescriptionAllowsEmpty(t *testing.T) {
	d, err := NewDescription("")
	require.NoError(t, err)
	assert.Equal(t, "", d.String())
}

func TestNewThreshold(t *testing.T) {
	tests := []struct {
		name      string
		input     int32
		expectErr bool
	}{
		{name: "lower bound", input: 0, expectErr: false},
		{name: "upper bound", input: 100, expectErr: false},
		{name: "below range", input: -1, expectErr: true},
		{name: "above range", input: 101, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewThreshold(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewTokenCount(t *testing.T) {
	_, err := NewTokenCount(-1)
	assert.Error(t, err)

	c, err := NewTokenCount(3)
	require.NoError(t, err)
	assert.Equal(t, int32(3), c.Int32())
}

func TestNewArgsKeepsValidArgs(t *testing.T) {
	args := NewArgs([]string{"--flag", "value"})
	assert.Len(t, args, 2)
}
