package nn

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// MLP is a fully connected network with one hidden layer and a single
// output unit. InputHidden is laid out [input][hidden].
type MLP struct {
	InputHidden  *mat.Dense
	HiddenBias   *mat.VecDense
	HiddenOutput *mat.VecDense
	OutputBias   float64

	activation Activation
}

// NewMLP draws every weight and bias uniformly from [-1, 1). Draw order is
// input->hidden row by row, then per hidden unit its output weight and bias,
// then the output bias.
func NewMLP(inputs, hidden int, activation string, rng *rand.Rand) (*MLP, error) {
	if inputs <= 0 {
		return nil, fmt.Errorf("input count must be > 0")
	}
	if hidden <= 0 {
		return nil, fmt.Errorf("hidden count must be > 0")
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	a, err := LookupActivation(activation)
	if err != nil {
		return nil, err
	}

	m := &MLP{
		InputHidden:  mat.NewDense(inputs, hidden, nil),
		HiddenBias:   mat.NewVecDense(hidden, nil),
		HiddenOutput: mat.NewVecDense(hidden, nil),
		activation:   a,
	}
	for i := 0; i < inputs; i++ {
		for h := 0; h < hidden; h++ {
			m.InputHidden.Set(i, h, Uniform(rng))
		}
	}
	for h := 0; h < hidden; h++ {
		m.HiddenOutput.SetVec(h, Uniform(rng))
		m.HiddenBias.SetVec(h, Uniform(rng))
	}
	m.OutputBias = Uniform(rng)
	return m, nil
}

func (m *MLP) Inputs() int {
	r, _ := m.InputHidden.Dims()
	return r
}

func (m *MLP) Hidden() int {
	return m.HiddenBias.Len()
}

// Forward returns the activated hidden layer and the network output.
func (m *MLP) Forward(inputs []float64) (*mat.VecDense, float64) {
	x := mat.NewVecDense(len(inputs), inputs)

	hidden := mat.NewVecDense(m.Hidden(), nil)
	hidden.MulVec(m.InputHidden.T(), x)
	hidden.AddVec(hidden, m.HiddenBias)
	for h := 0; h < hidden.Len(); h++ {
		hidden.SetVec(h, m.activation.Func(hidden.AtVec(h)))
	}

	sum := mat.Dot(hidden, m.HiddenOutput) + m.OutputBias
	return hidden, m.activation.Func(sum)
}

func (m *MLP) Predict(inputs []float64) float64 {
	_, out := m.Forward(inputs)
	return out
}

// Step performs one backpropagation update toward target and returns the
// prediction computed before the update. Hidden deltas are taken against
// the output weights as they were before this step.
func (m *MLP) Step(inputs []float64, target, learningRate float64) float64 {
	hidden, prediction := m.Forward(inputs)

	outputGradient := (target - prediction) * m.activation.Slope(prediction)

	hiddenGradient := mat.NewVecDense(m.Hidden(), nil)
	for h := 0; h < hiddenGradient.Len(); h++ {
		hiddenGradient.SetVec(h, outputGradient*m.HiddenOutput.AtVec(h)*m.activation.Slope(hidden.AtVec(h)))
	}

	m.HiddenOutput.AddScaledVec(m.HiddenOutput, learningRate*outputGradient, hidden)
	m.OutputBias += learningRate * outputGradient

	var delta mat.Dense
	delta.Outer(learningRate, mat.NewVecDense(len(inputs), inputs), hiddenGradient)
	m.InputHidden.Add(m.InputHidden, &delta)
	m.HiddenBias.AddScaledVec(m.HiddenBias, learningRate, hiddenGradient)
	return prediction
}
