package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityActivation(name string) Activation {
	return Activation{
		Name:  name,
		Func:  func(x float64) float64 { return x },
		Slope: func(float64) float64 { return 1 },
	}
}

func TestRegisterAndLookupActivation(t *testing.T) {
	resetActivationRegistryForTests()
	t.Cleanup(resetActivationRegistryForTests)

	err := RegisterActivation(Activation{
		Name:  "quad",
		Func:  func(x float64) float64 { return x * x },
		Slope: func(y float64) float64 { return 2 * math.Sqrt(y) },
	})
	require.NoError(t, err)

	a, err := LookupActivation("quad")
	require.NoError(t, err)
	assert.Equal(t, 9.0, a.Func(3))
	assert.Equal(t, 6.0, a.Slope(9))
}

func TestRegisterActivationValidation(t *testing.T) {
	resetActivationRegistryForTests()
	t.Cleanup(resetActivationRegistryForTests)

	assert.Error(t, RegisterActivation(identityActivation("")), "empty name")
	assert.Error(t, RegisterActivation(Activation{Name: "nil", Slope: func(float64) float64 { return 1 }}), "nil function")
	assert.Error(t, RegisterActivation(Activation{Name: "noslope", Func: func(x float64) float64 { return x }}), "nil slope")
}

func TestRegisterActivationDuplicate(t *testing.T) {
	resetActivationRegistryForTests()
	t.Cleanup(resetActivationRegistryForTests)

	require.NoError(t, RegisterActivation(identityActivation("dup")))
	assert.ErrorIs(t, RegisterActivation(identityActivation("dup")), ErrActivationExists)
}

func TestLookupActivationNotFound(t *testing.T) {
	resetActivationRegistryForTests()
	t.Cleanup(resetActivationRegistryForTests)

	_, err := LookupActivation("missing")
	assert.ErrorIs(t, err, ErrActivationNotFound)
}

func TestListActivationsSorted(t *testing.T) {
	resetActivationRegistryForTests()
	t.Cleanup(resetActivationRegistryForTests)

	require.NoError(t, RegisterActivation(identityActivation("b")))
	require.NoError(t, RegisterActivation(identityActivation("a")))
	assert.Equal(t, []string{"a", "b", "sigmoid"}, ListActivations())
}

func TestBuiltinActivationsAreSigmoidOnly(t *testing.T) {
	resetActivationRegistryForTests()
	t.Cleanup(resetActivationRegistryForTests)

	assert.Equal(t, []string{"sigmoid"}, ListActivations())
	for _, name := range []string{"identity", "relu", "tanh"} {
		_, err := LookupActivation(name)
		assert.ErrorIs(t, err, ErrActivationNotFound, name)
	}
}

func TestSigmoidSlopeMatchesNumericDerivative(t *testing.T) {
	const h = 1e-6
	a, err := LookupActivation("sigmoid")
	require.NoError(t, err)
	for _, x := range []float64{-1.5, -0.2, 0.3, 2} {
		numeric := (a.Func(x+h) - a.Func(x-h)) / (2 * h)
		assert.InDelta(t, numeric, a.Slope(a.Func(x)), 1e-5, "x=%f", x)
	}
}
