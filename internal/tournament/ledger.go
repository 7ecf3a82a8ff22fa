package tournament

import (
	"github.com/google/uuid"

	"dilemma/internal/strategy"
)

// Standing is an entrant's cumulative score and win count.
type Standing struct {
	Score int
	Wins  int
}

// Ledger keeps one standing per entrant ID for the duration of a generation.
type Ledger struct {
	entries map[uuid.UUID]*Standing
}

// NewLedger opens a zeroed entry for every entrant.
func NewLedger(population []*strategy.Entrant) *Ledger {
	l := &Ledger{entries: make(map[uuid.UUID]*Standing, len(population))}
	for _, e := range population {
		l.entries[e.ID] = &Standing{}
	}
	return l
}

func (l *Ledger) Get(id uuid.UUID) (Standing, bool) {
	s, ok := l.entries[id]
	if !ok {
		return Standing{}, false
	}
	return *s, true
}

func (l *Ledger) Has(id uuid.UUID) bool {
	_, ok := l.entries[id]
	return ok
}

func (l *Ledger) Remove(id uuid.UUID) {
	delete(l.entries, id)
}

func (l *Ledger) Len() int {
	return len(l.entries)
}

func (l *Ledger) record(id uuid.UUID, score int, won bool) {
	s := l.entries[id]
	s.Score += score
	if won {
		s.Wins++
	}
}
