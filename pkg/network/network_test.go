package network

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_KeepsResolutionOrder(t *testing.T) {
	reg, err := NewRegistry(
		Network{Name: Spiritnet, Endpoint: "wss://spiritnet.kilt.io"},
		Network{Name: Peregrine, Endpoint: "wss://peregrine.kilt.io"},
	)
	require.NoError(t, err)

	ordered := reg.Ordered()
	require.Len(t, ordered, 2)
	assert.Equal(t, Peregrine, ordered[0].Name)
	assert.Equal(t, Spiritnet, ordered[1].Name)
}

func TestNewRegistry_RejectsDuplicatesAndUnknown(t *testing.T) {
	_, err := NewRegistry(Network{Name: Peregrine}, Network{Name: Peregrine})
	require.Error(t, err)

	_, err = NewRegistry(Network{Name: "kusama"})
	require.True(t, errors.Is(err, ErrUnknownNetwork))
}

func TestRegistry_Get(t *testing.T) {
	reg, err := NewRegistry(Network{Name: Peregrine})
	require.NoError(t, err)

	n, err := reg.Get(Peregrine)
	require.NoError(t, err)
	assert.Equal(t, Peregrine, n.Name)

	_, err = reg.Get(Spiritnet)
	require.ErrorIs(t, err, ErrUnknownNetwork)
}

func TestParse(t *testing.T) {
	n, err := Parse("spiritnet")
	require.NoError(t, err)
	assert.Equal(t, Spiritnet, n)

	_, err = Parse("SPIRITNET")
	require.ErrorIs(t, err, ErrUnknownNetwork)
}
