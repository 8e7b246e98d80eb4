// Package selector implements accuracy-weighted adaptive question choice:
// questions answered incorrectly or rarely attempted surface more often.
package selector

import (
	"math"
	"math/rand"

	"github.com/tuxprep/trainer/internal/domain/history"
	"github.com/tuxprep/trainer/internal/domain/question"
	"github.com/tuxprep/trainer/internal/domain/session"
)

// Policy decides what happens when every candidate for a filter has already
// been served this session.
type Policy int

const (
	// PolicyEnd terminates the session on exhaustion.
	PolicyEnd Policy = iota
	// PolicyReset forgets the served set for the filter and keeps going.
	PolicyReset
)

// Weights are the tunable constants of the selection formula. Only their
// relative emphasis matters: incorrect answers and low-attempt questions must
// weigh heavier.
type Weights struct {
	Incorrect float64 // multiplies (1 - accuracy)
	Unseen    float64 // multiplies 1/(attempts+1)
	Floor     float64 // minimum weight, keeps every candidate drawable
}

// DefaultWeights returns the standard tuning.
func DefaultWeights() Weights {
	return Weights{Incorrect: 6.0, Unseen: 3.0, Floor: 0.1}
}

// For computes the selection weight for a question with the given attempt
// counts. Unseen questions get a neutral 0.5 accuracy prior.
func (w Weights) For(attempts, correct int) float64 {
	accuracy := 0.5
	if attempts > 0 {
		accuracy = float64(correct) / float64(attempts)
	}
	weight := (1.0-accuracy)*w.Incorrect + (1.0/float64(attempts+1))*w.Unseen
	if weight < w.Floor || math.IsNaN(weight) {
		weight = w.Floor
	}
	return weight
}

// Selector picks the next question for a session.
type Selector struct {
	bank    *question.Bank
	weights Weights
	policy  Policy
	rng     *rand.Rand
}

// New creates a selector with default weights and the end-on-exhaustion
// policy.
func New(bank *question.Bank) *Selector {
	return NewWithConfig(bank, DefaultWeights(), PolicyEnd, nil)
}

// NewWithConfig creates a selector with explicit tuning. A nil rng falls back
// to the shared global source; tests pass a seeded one.
func NewWithConfig(bank *question.Bank, w Weights, p Policy, rng *rand.Rand) *Selector {
	return &Selector{bank: bank, weights: w, policy: p, rng: rng}
}

// Next picks the next question among the bank indices matching the category
// filter (empty = all). The chosen index is added to the session's served
// set. ok is false when no question is available: either the filter matches
// nothing, or the session is exhausted under PolicyEnd.
func (s *Selector) Next(store *history.Store, state *session.State, category string) (question.Record, int, bool) {
	return s.pick(store, state, s.bank.Indices(category))
}

// NextOf is Next restricted to an explicit candidate index list, used for
// review sessions.
func (s *Selector) NextOf(store *history.Store, state *session.State, candidates []int) (question.Record, int, bool) {
	return s.pick(store, state, candidates)
}

func (s *Selector) pick(store *history.Store, state *session.State, candidates []int) (question.Record, int, bool) {
	if len(candidates) == 0 {
		return question.Record{}, 0, false
	}

	available := unserved(candidates, state)
	if len(available) == 0 {
		if s.policy == PolicyEnd {
			return question.Record{}, 0, false
		}
		state.Forget(candidates)
		available = candidates
	}

	weights := make([]float64, len(available))
	for i, idx := range available {
		stat := store.StatFor(s.bank.At(idx).Text)
		weights[i] = s.weights.For(stat.Attempts, stat.Correct)
	}

	chosen := available[s.draw(weights)]
	state.MarkServed(chosen)
	return s.bank.At(chosen), chosen, true
}

// draw returns an index into weights, sampled proportionally. A degenerate
// total falls back to a uniform draw rather than failing the session.
func (s *Selector) draw(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return s.intn(len(weights))
	}

	r := s.float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return i
		}
	}
	return len(weights) - 1
}

func unserved(candidates []int, state *session.State) []int {
	out := make([]int, 0, len(candidates))
	for _, i := range candidates {
		if !state.Served(i) {
			out = append(out, i)
		}
	}
	return out
}

func (s *Selector) intn(n int) int {
	if s.rng != nil {
		return s.rng.Intn(n)
	}
	return rand.Intn(n)
}

func (s *Selector) float64() float64 {
	if s.rng != nil {
		return s.rng.Float64()
	}
	return rand.Float64()
}
