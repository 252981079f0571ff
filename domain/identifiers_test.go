package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProjectID(t *testing.T) {
	valid := uuid.New().String()
	id, err := NewProjectID(valid)
	require.NoError(t, err)
	assert.Equal(t, valid, id.String())

	_, err = NewProjectID("not-a-uuid")
	assert.Error(t, err)
}

func TestProjectIDEqual(t *testing.T) {
	v := uuid.New()
	a := ProjectIDFromUUID(v)
	b := ProjectIDFromUUID(v)
	c := ProjectIDFromUUID(uuid.New())
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
