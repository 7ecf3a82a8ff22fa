package strategy

import "math/rand"

type AlwaysCooperate struct{}

func (AlwaysCooperate) Name() string { return "AlwaysCooperate" }
func (AlwaysCooperate) Decide() Move { return Cooperate }
func (AlwaysCooperate) Observe(Move) {}
func (AlwaysCooperate) Reset() {}

type NeverCooperate struct{}

func (NeverCooperate) Name() string { return "NeverCooperate" }
func (NeverCooperate) Decide() Move { return Defect }
func (NeverCooperate) Observe(Move) {}
func (NeverCooperate) Reset() {}

// Random cooperates with probability CooperateProbability.
type Random struct {
	CooperateProbability float64
	rng                  *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random {
	return &Random{CooperateProbability: 0.5, rng: rng}
}

func (s *Random) Name() string { return "Random" }
func (s *Random) Decide() Move { return Move(s.rng.Float64() < s.CooperateProbability) }
func (s *Random) Observe(Move) {}
func (s *Random) Reset() {}

// DefectWithProbability plays the roster's historical rule: it cooperates
// only when a draw falls below CooperateProbability, so with the default 0.3
// it defects seven rounds in ten.
type DefectWithProbability struct {
	CooperateProbability float64
	rng                  *rand.Rand
}

func NewDefectWithProbability(rng *rand.Rand) *DefectWithProbability {
	return &DefectWithProbability{CooperateProbability: 0.3, rng: rng}
}

func (s *DefectWithProbability) Name() string { return "DefectWithProbability" }
func (s *DefectWithProbability) Decide() Move {
	return Move(s.rng.Float64() < s.CooperateProbability)
}
func (s *DefectWithProbability) Observe(Move) {}
func (s *DefectWithProbability) Reset() {}

// TitForTat repeats the opponent's previous move, opening with cooperation.
type TitForTat struct {
	lastOpponent Move
}

func NewTitForTat() *TitForTat {
	return &TitForTat{lastOpponent: Cooperate}
}

func (s *TitForTat) Name() string { return "TitForTat" }
func (s *TitForTat) Decide() Move { return s.lastOpponent }
func (s *TitForTat) Observe(opponent Move) { s.lastOpponent = opponent }
func (s *TitForTat) Reset() { s.lastOpponent = Cooperate }

// AlwaysSwitch alternates every round, opening with a defection.
type AlwaysSwitch struct {
	last Move
}

func NewAlwaysSwitch() *AlwaysSwitch {
	return &AlwaysSwitch{last: Cooperate}
}

func (s *AlwaysSwitch) Name() string { return "AlwaysSwitch" }
func (s *AlwaysSwitch) Decide() Move {
	s.last = !s.last
	return s.last
}
func (s *AlwaysSwitch) Observe(Move) {}
func (s *AlwaysSwitch) Reset() { s.last = Cooperate }

// CooperateUntilBetrayed defects forever after the first observed defection.
type CooperateUntilBetrayed struct {
	betrayed bool
}

func NewCooperateUntilBetrayed() *CooperateUntilBetrayed {
	return &CooperateUntilBetrayed{}
}

func (s *CooperateUntilBetrayed) Name() string { return "CooperateUntilBetrayed" }
func (s *CooperateUntilBetrayed) Decide() Move { return Move(!s.betrayed) }
func (s *CooperateUntilBetrayed) Observe(opponent Move) {
	if opponent == Defect {
		s.betrayed = true
	}
}
func (s *CooperateUntilBetrayed) Reset() { s.betrayed = false }

// CooperateOnEvenTurns counts its own decisions and cooperates on the odd
// ones (1st, 3rd, ...).
type CooperateOnEvenTurns struct {
	turn int
}

func NewCooperateOnEvenTurns() *CooperateOnEvenTurns {
	return &CooperateOnEvenTurns{}
}

func (s *CooperateOnEvenTurns) Name() string { return "CooperateOnEvenTurns" }
func (s *CooperateOnEvenTurns) Decide() Move {
	s.turn++
	return Move(s.turn%2 == 1)
}
func (s *CooperateOnEvenTurns) Observe(Move) {}
func (s *CooperateOnEvenTurns) Reset() { s.turn = 0 }

// Turn reports how many decisions have been made since the last reset.
func (s *CooperateOnEvenTurns) Turn() int { return s.turn }

// RandomOnEvenTurns defects on odd turns and flips a fair coin on even ones.
type RandomOnEvenTurns struct {
	turn int
	rng  *rand.Rand
}

func NewRandomOnEvenTurns(rng *rand.Rand) *RandomOnEvenTurns {
	return &RandomOnEvenTurns{rng: rng}
}

func (s *RandomOnEvenTurns) Name() string { return "RandomOnEvenTurns" }
func (s *RandomOnEvenTurns) Decide() Move {
	s.turn++
	if s.turn%2 != 0 {
		return Defect
	}
	return Move(s.rng.Float64() < 0.5)
}
func (s *RandomOnEvenTurns) Observe(Move) {}
func (s *RandomOnEvenTurns) Reset() { s.turn = 0 }

func (s *RandomOnEvenTurns) Turn() int { return s.turn }

// CanonicalPanel returns fresh instances of the fixed opponents used to warm
// up learning strategies.
func CanonicalPanel() []Strategy {
	return []Strategy{
		NewTitForTat(),
		AlwaysCooperate{},
		NeverCooperate{},
		NewCooperateUntilBetrayed(),
	}
}
