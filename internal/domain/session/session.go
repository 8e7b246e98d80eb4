package session

// Mode selects when correctness feedback is shown.
type Mode int

const (
	// ModeStandard reveals correctness after every answer.
	ModeStandard Mode = iota
	// ModeVerify defers all feedback to an end-of-session report.
	ModeVerify
)

func (m Mode) String() string {
	switch m {
	case ModeVerify:
		return "verify"
	default:
		return "standard"
	}
}

// Config holds the constraints for one session.
type Config struct {
	Mode          Mode
	Category      string   // empty = all categories
	MaxQuestions  *int     // nil = no cap
	QuestionTexts []string // non-nil = restrict to these questions (review sessions)
}

// DefaultConfig returns a standard-mode config with no constraints.
func DefaultConfig() Config {
	return Config{Mode: ModeStandard}
}

// State is the ephemeral per-session bookkeeping. It is never persisted.
type State struct {
	Answered      map[int]struct{} // bank indices already served this session
	Score         int
	AnsweredCount int
}

// NewState returns a fresh state for the start of a session.
func NewState() *State {
	return &State{Answered: make(map[int]struct{})}
}

// MarkServed records that a bank index was served this session.
func (s *State) MarkServed(index int) {
	s.Answered[index] = struct{}{}
}

// Served reports whether a bank index was already served this session.
func (s *State) Served(index int) bool {
	_, ok := s.Answered[index]
	return ok
}

// Forget removes the given bank indices from the served set. Used by the
// reset exhaustion policy to allow another pass over a category.
func (s *State) Forget(indices []int) {
	for _, i := range indices {
		delete(s.Answered, i)
	}
}
