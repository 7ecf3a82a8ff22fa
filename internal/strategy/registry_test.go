package strategy

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryBuildsEveryStrategy(t *testing.T) {
	r := DefaultRegistry()
	names := r.Names()
	require.Len(t, names, 12)
	assert.Equal(t, "AlwaysCooperate", names[0])
	assert.Equal(t, "NeuralMultiLayer", names[len(names)-1])

	learners := 0
	for _, name := range names {
		s, err := r.New(name, rand.New(rand.NewSource(1)))
		require.NoError(t, err, name)
		assert.Equal(t, name, s.Name())
		if NewEntrant(s).CanLearn() {
			learners++
		}
	}
	assert.Equal(t, 3, learners)
}

func TestRegistryErrors(t *testing.T) {
	r := NewRegistry()
	_, err := r.New("missing", rand.New(rand.NewSource(1)))
	assert.True(t, errors.Is(err, ErrUnknownStrategy))

	factory := func(*rand.Rand) (Strategy, error) { return AlwaysCooperate{}, nil }
	require.NoError(t, r.Register("x", factory))
	assert.True(t, errors.Is(r.Register("x", factory), ErrStrategyExists))
	assert.Error(t, r.Register("", factory))
	assert.Error(t, r.Register("y", nil))
	assert.True(t, r.Has("x"))
	assert.False(t, r.Has("y"))

	_, err = r.New("x", nil)
	assert.Error(t, err)
}

func TestRegistryWrapsFactoryErrors(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	require.NoError(t, r.Register("bad", func(*rand.Rand) (Strategy, error) { return nil, boom }))
	_, err := r.New("bad", rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, boom)
}
