package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTokenState(t *testing.T) {
	tests := []struct {
		input   string
		want    TokenState
		isFinal bool
	}{
		{"Waiting", TokenWaiting, false},
		{"ACTIVE", TokenActive, false},
		{"running", TokenRunning, false},
		{"Success", TokenSuccess, true},
		{"failure", TokenFailure, true},
		{"Error", TokenError, true},
	}
	for _, tt := range tests {
		got, err := ParseTokenState(tt.input)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.isFinal, got.IsFinal())
	}

	_, err := ParseTokenState("bogus")
	assert.Error(t, err)
}

func TestParseRunPriority(t *testing.T) {
	tests := []struct {
		input string
		want  RunPriority
	}{
		{"BackFill", PriorityBackFill},
		{"low", PriorityLow},
		{"Normal", PriorityNormal},
		{"HIGH", PriorityHigh},
	}
	for _, tt := range tests {
		got, err := ParseRunPriority(tt.input)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	assert.Equal(t, PriorityNormal, DefaultRunPriority)

	_, err := ParseRunPriority("bogus")
	assert.Error(t, err)
}

func TestRunPriorityOrdering(t *testing.T) {
	assert.True(t, PriorityBackFill < PriorityLow)
	assert.True(t, PriorityLow < PriorityNormal)
	assert.True(t, PriorityNormal < PriorityHigh)
}
