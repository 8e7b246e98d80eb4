package history

import (
	"sort"
	"time"
)

// Attempt is one entry in a question's append-only answer log.
type Attempt struct {
	Timestamp time.Time `json:"timestamp"`
	Correct   bool      `json:"correct"`
}

// QuestionStat accumulates results for a single question, keyed by its text.
type QuestionStat struct {
	Attempts int       `json:"attempts"`
	Correct  int       `json:"correct"`
	History  []Attempt `json:"history"`
}

// Accuracy returns correct/attempts, or 0 for an unattempted question.
func (qs *QuestionStat) Accuracy() float64 {
	if qs.Attempts == 0 {
		return 0
	}
	return float64(qs.Correct) / float64(qs.Attempts)
}

// CategoryStat accumulates results for one category.
type CategoryStat struct {
	Attempts int `json:"attempts"`
	Correct  int `json:"correct"`
}

// SessionSummary is the informational record appended for every finished
// session. It is never read back by the selector.
type SessionSummary struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Mode      string    `json:"mode"`
	Category  string    `json:"category,omitempty"`
	Answered  int       `json:"answered"`
	Correct   int       `json:"correct"`
}

// Store is the root aggregate of all attempt statistics. It is the only
// mutable shared state in the application: the session service writes it,
// the selector and reporting only read it. The struct marshals directly to
// the persisted JSON document.
type Store struct {
	TotalAttempts int                      `json:"total_attempts"`
	TotalCorrect  int                      `json:"total_correct"`
	Questions     map[string]*QuestionStat `json:"questions"`
	Categories    map[string]*CategoryStat `json:"categories"`
	Review        []string                 `json:"incorrect_review"`
	Sessions      []SessionSummary         `json:"sessions"`
}

// NewStore returns an empty, structurally valid store.
func NewStore() *Store {
	return &Store{
		Questions:  make(map[string]*QuestionStat),
		Categories: make(map[string]*CategoryStat),
		Review:     []string{},
		Sessions:   []SessionSummary{},
	}
}

// Normalize replaces nil maps and slices after deserialization so callers
// never have to nil-check. Loading a partial document is expected, not an
// error.
func (s *Store) Normalize() {
	if s.Questions == nil {
		s.Questions = make(map[string]*QuestionStat)
	}
	if s.Categories == nil {
		s.Categories = make(map[string]*CategoryStat)
	}
	if s.Review == nil {
		s.Review = []string{}
	}
	if s.Sessions == nil {
		s.Sessions = []SessionSummary{}
	}
	for _, qs := range s.Questions {
		if qs.History == nil {
			qs.History = []Attempt{}
		}
	}
}

// SeedCategories ensures a zero-valued CategoryStat exists for every given
// category, so never-attempted categories still show up in reports.
// Idempotent; existing stats are untouched.
func (s *Store) SeedCategories(categories []string) {
	for _, c := range categories {
		if _, ok := s.Categories[c]; !ok {
			s.Categories[c] = &CategoryStat{}
		}
	}
}

// RecordAnswer is the sole mutation entry point for answer outcomes. It
// updates the global counters, the per-question and per-category stats, and
// the incorrect-review set in one step.
func (s *Store) RecordAnswer(text, category string, correct bool, at time.Time) {
	s.TotalAttempts++
	if correct {
		s.TotalCorrect++
	}

	qs, ok := s.Questions[text]
	if !ok {
		qs = &QuestionStat{History: []Attempt{}}
		s.Questions[text] = qs
	}
	qs.Attempts++
	if correct {
		qs.Correct++
	}
	qs.History = append(qs.History, Attempt{Timestamp: at, Correct: correct})

	cs, ok := s.Categories[category]
	if !ok {
		cs = &CategoryStat{}
		s.Categories[category] = cs
	}
	cs.Attempts++
	if correct {
		cs.Correct++
	}

	if correct {
		s.RemoveFromReview(text)
	} else {
		s.addToReview(text)
	}
}

// StatFor returns the stat for a question text, or a zero-valued stat if the
// question has never been answered. The returned value is a copy.
func (s *Store) StatFor(text string) QuestionStat {
	if qs, ok := s.Questions[text]; ok {
		return *qs
	}
	return QuestionStat{}
}

// InReview reports whether a question text is on the incorrect-review list.
func (s *Store) InReview(text string) bool {
	for _, t := range s.Review {
		if t == text {
			return true
		}
	}
	return false
}

// ReviewList returns a sorted copy of the incorrect-review set.
func (s *Store) ReviewList() []string {
	out := make([]string, len(s.Review))
	copy(out, s.Review)
	sort.Strings(out)
	return out
}

func (s *Store) addToReview(text string) {
	if s.InReview(text) {
		return
	}
	s.Review = append(s.Review, text)
}

// RemoveFromReview drops a question text from the review set. Idempotent;
// also used to prune entries orphaned by bank changes.
func (s *Store) RemoveFromReview(text string) {
	for i, t := range s.Review {
		if t == text {
			s.Review = append(s.Review[:i], s.Review[i+1:]...)
			return
		}
	}
}

// AppendSession records a finished session's summary.
func (s *Store) AppendSession(sum SessionSummary) {
	s.Sessions = append(s.Sessions, sum)
}

// Clear resets the store to empty and re-seeds zero-valued category stats for
// the given bank categories. Destructive; callers gate it behind explicit
// user confirmation.
func (s *Store) Clear(categories []string) {
	*s = *NewStore()
	s.SeedCategories(categories)
}
