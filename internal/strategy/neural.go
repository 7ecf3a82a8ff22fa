package strategy

import (
	"fmt"
	"math"
	"math/rand"

	"dilemma/internal/nn"
)

// NeuralConfig holds the constants shared by the network strategies.
type NeuralConfig struct {
	Activation   string
	LearningRate float64
	// RewardScale maps a payoff into the network's (0, 1) target range.
	RewardScale float64

	// Single layer exploration schedule.
	InitialExploration float64
	MinExploration     float64
	ExplorationDecay   float64

	// Multi layer shape and decision floor.
	HiddenUnits    int
	CooperateFloor float64
}

func DefaultNeuralConfig() NeuralConfig {
	return NeuralConfig{
		Activation:         "sigmoid",
		LearningRate:       0.05,
		RewardScale:        5,
		InitialExploration: 0.4,
		MinExploration:     0.05,
		ExplorationDecay:   0.9998,
		HiddenUnits:        3,
		CooperateFloor:     0.4,
	}
}

func (c NeuralConfig) validate() error {
	if c.RewardScale <= 0 {
		return fmt.Errorf("reward scale must be > 0")
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be > 0")
	}
	return nil
}

// memory is the short-term state fed to the networks: the opponent's last
// move and our own, both seeded to cooperation.
type memory struct {
	lastOpponent Move
	myLast       Move
}

func newMemory() memory {
	return memory{lastOpponent: Cooperate, myLast: Cooperate}
}

func (m memory) inputs() []float64 {
	return []float64{nn.Bipolar(bool(m.lastOpponent)), nn.Bipolar(bool(m.myLast))}
}

// NeuralSingleLayer is a single logistic neuron over the two remembered
// moves, with a decaying exploration rate that lifts the cooperation
// probability while it exceeds the network's own estimate.
type NeuralSingleLayer struct {
	cfg  NeuralConfig
	rng  *rand.Rand
	net  *nn.Perceptron
	mem  memory
	rate float64
}

func NewNeuralSingleLayer(cfg NeuralConfig, rng *rand.Rand) (*NeuralSingleLayer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	net, err := nn.NewPerceptron(2, cfg.Activation, rng)
	if err != nil {
		return nil, err
	}
	return &NeuralSingleLayer{
		cfg:  cfg,
		rng:  rng,
		net:  net,
		mem:  newMemory(),
		rate: cfg.InitialExploration,
	}, nil
}

func (s *NeuralSingleLayer) Name() string { return "NeuralSingleLayer" }

func (s *NeuralSingleLayer) Decide() Move {
	prediction := s.net.Predict(s.mem.inputs())

	threshold := prediction
	if s.rate > prediction {
		threshold = math.Max(s.rate, prediction)
	}
	s.mem.myLast = Move(s.rng.Float64() < threshold)

	s.rate = math.Max(s.cfg.MinExploration, s.rate*s.cfg.ExplorationDecay)
	return s.mem.myLast
}

func (s *NeuralSingleLayer) Observe(opponent Move) {
	s.mem.lastOpponent = opponent
}

func (s *NeuralSingleLayer) Reset() {
	s.mem = newMemory()
}

func (s *NeuralSingleLayer) Learn(reward float64) {
	s.net.Step(s.mem.inputs(), reward/s.cfg.RewardScale, s.cfg.LearningRate)
}

func (s *NeuralSingleLayer) ExplorationRate() float64 {
	return s.rate
}

// Parameters returns the opponent weight, self weight and bias.
func (s *NeuralSingleLayer) Parameters() []float64 {
	return []float64{s.net.Weights[0], s.net.Weights[1], s.net.Bias}
}

// NeuralMultiLayer is a 2-H-1 logistic network trained by backpropagation.
// It cooperates when its output beats both the cooperation floor and a
// fresh uniform draw.
type NeuralMultiLayer struct {
	cfg NeuralConfig
	rng *rand.Rand
	net *nn.MLP
	mem memory
}

func NewNeuralMultiLayer(cfg NeuralConfig, rng *rand.Rand) (*NeuralMultiLayer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	net, err := nn.NewMLP(2, cfg.HiddenUnits, cfg.Activation, rng)
	if err != nil {
		return nil, err
	}
	return &NeuralMultiLayer{
		cfg: cfg,
		rng: rng,
		net: net,
		mem: newMemory(),
	}, nil
}

func (s *NeuralMultiLayer) Name() string { return "NeuralMultiLayer" }

func (s *NeuralMultiLayer) Decide() Move {
	prediction := s.net.Predict(s.mem.inputs())
	s.mem.myLast = Move(prediction > math.Max(s.cfg.CooperateFloor, s.rng.Float64()))
	return s.mem.myLast
}

func (s *NeuralMultiLayer) Observe(opponent Move) {
	s.mem.lastOpponent = opponent
}

func (s *NeuralMultiLayer) Reset() {
	s.mem = newMemory()
}

func (s *NeuralMultiLayer) Learn(reward float64) {
	s.net.Step(s.mem.inputs(), reward/s.cfg.RewardScale, s.cfg.LearningRate)
}

// Parameters flattens input->hidden weights row by row, then hidden biases,
// hidden->output weights and the output bias.
func (s *NeuralMultiLayer) Parameters() []float64 {
	m := s.net
	out := make([]float64, 0, m.Inputs()*m.Hidden()+2*m.Hidden()+1)
	for i := 0; i < m.Inputs(); i++ {
		for h := 0; h < m.Hidden(); h++ {
			out = append(out, m.InputHidden.At(i, h))
		}
	}
	for h := 0; h < m.Hidden(); h++ {
		out = append(out, m.HiddenBias.AtVec(h))
	}
	for h := 0; h < m.Hidden(); h++ {
		out = append(out, m.HiddenOutput.AtVec(h))
	}
	return append(out, m.OutputBias)
}
