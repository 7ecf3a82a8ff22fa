package strategy

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
)

var (
	ErrStrategyExists  = errors.New("strategy already registered")
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Factory builds a fresh strategy owning rng as its only random source.
type Factory func(rng *rand.Rand) (Strategy, error)

// Registry maps display names to factories, remembering registration order.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	order     []string
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry holds the full roster in its canonical order.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister("AlwaysCooperate", func(*rand.Rand) (Strategy, error) { return AlwaysCooperate{}, nil })
	r.MustRegister("NeverCooperate", func(*rand.Rand) (Strategy, error) { return NeverCooperate{}, nil })
	r.MustRegister("Random", func(rng *rand.Rand) (Strategy, error) { return NewRandom(rng), nil })
	r.MustRegister("TitForTat", func(*rand.Rand) (Strategy, error) { return NewTitForTat(), nil })
	r.MustRegister("AlwaysSwitch", func(*rand.Rand) (Strategy, error) { return NewAlwaysSwitch(), nil })
	r.MustRegister("CooperateUntilBetrayed", func(*rand.Rand) (Strategy, error) { return NewCooperateUntilBetrayed(), nil })
	r.MustRegister("CooperateOnEvenTurns", func(*rand.Rand) (Strategy, error) { return NewCooperateOnEvenTurns(), nil })
	r.MustRegister("RandomOnEvenTurns", func(rng *rand.Rand) (Strategy, error) { return NewRandomOnEvenTurns(rng), nil })
	r.MustRegister("DefectWithProbability", func(rng *rand.Rand) (Strategy, error) { return NewDefectWithProbability(rng), nil })
	r.MustRegister("QLearning", func(rng *rand.Rand) (Strategy, error) {
		return NewQLearning(DefaultQLearningConfig(), rng)
	})
	r.MustRegister("NeuralSingleLayer", func(rng *rand.Rand) (Strategy, error) {
		return NewNeuralSingleLayer(DefaultNeuralConfig(), rng)
	})
	r.MustRegister("NeuralMultiLayer", func(rng *rand.Rand) (Strategy, error) {
		return NewNeuralMultiLayer(DefaultNeuralConfig(), rng)
	})
	return r
}

func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return errors.New("strategy name is required")
	}
	if factory == nil {
		return errors.New("strategy factory is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", ErrStrategyExists, name)
	}
	r.factories[name] = factory
	r.order = append(r.order, name)
	return nil
}

func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

func (r *Registry) New(name string, rng *rand.Rand) (Strategy, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	s, err := factory(rng)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}
	return s, nil
}

// Names lists registered strategies in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}
