package workforce

import (
	"testing"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeamstress(t *testing.T) {
	s, err := NewSeamstress(Profile{Name: "  Ana  ", City: "Recife"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", s.Name)
	assert.True(t, s.Active)
	assert.NoError(t, s.CanReceiveWork())

	_, err = NewSeamstress(Profile{})
	assert.Equal(t, "INVALID_NAME", shared.CodeOf(err))
}

func TestSeamstress_Activation(t *testing.T) {
	s, err := NewSeamstress(Profile{Name: "Bia"})
	require.NoError(t, err)

	s.Deactivate()
	assert.False(t, s.Active)
	assert.Equal(t, 2, s.Version)
	assert.Equal(t, "SEAMSTRESS_INACTIVE", shared.CodeOf(s.CanReceiveWork()))

	s.Deactivate()
	assert.Equal(t, 2, s.Version)

	s.Activate()
	assert.True(t, s.Active)
	assert.Equal(t, 3, s.Version)
}
