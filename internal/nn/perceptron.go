package nn

import (
	"fmt"
	"math/rand"
)

// Perceptron is a single neuron: weighted inputs plus bias through one
// activation.
type Perceptron struct {
	Weights []float64
	Bias    float64

	activation Activation
}

// NewPerceptron draws every weight and the bias uniformly from [-1, 1).
func NewPerceptron(inputs int, activation string, rng *rand.Rand) (*Perceptron, error) {
	if inputs <= 0 {
		return nil, fmt.Errorf("input count must be > 0")
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	a, err := LookupActivation(activation)
	if err != nil {
		return nil, err
	}
	p := &Perceptron{
		Weights:    make([]float64, inputs),
		activation: a,
	}
	for i := range p.Weights {
		p.Weights[i] = Uniform(rng)
	}
	p.Bias = Uniform(rng)
	return p, nil
}

// Predict runs the forward pass.
func (p *Perceptron) Predict(inputs []float64) float64 {
	sum := 0.0
	for i, w := range p.Weights {
		sum += w * inputs[i]
	}
	return p.activation.Func(sum + p.Bias)
}

// Step applies one gradient-descent update pulling the output toward target
// and returns the prediction computed before the update.
func (p *Perceptron) Step(inputs []float64, target, learningRate float64) float64 {
	prediction := p.Predict(inputs)
	gradient := (target - prediction) * p.activation.Slope(prediction)
	for i := range p.Weights {
		p.Weights[i] += learningRate * gradient * inputs[i]
	}
	p.Bias += learningRate * gradient
	return prediction
}
